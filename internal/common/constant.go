package common

// AuthHeaderName is the HTTP header used to carry the bearer access token
// on authenticated requests.
const AuthHeaderName = "Authorization"

// BearerPrefix is the expected scheme prefix of the auth header value.
const BearerPrefix = "Bearer "
