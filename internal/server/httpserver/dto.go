package httpserver

import "github.com/avdonin/taskhub/internal/server/models"

// Minimum credential lengths enforced at the transport boundary.
const (
	minUsernameLen = 4
	minPasswordLen = 8
)

// CredentialsRequest carries a username/password pair for signup and signin.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignInResponse carries the issued bearer token.
type SignInResponse struct {
	AccessToken string `json:"accessToken"`
}

// CreateTaskRequest carries the fields of a new task.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTaskStatusRequest carries the new status label.
type UpdateTaskStatusRequest struct {
	Status models.TaskStatus `json:"status"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
