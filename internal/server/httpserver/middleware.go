package httpserver

import (
	"net/http"
	"strings"

	"github.com/avdonin/taskhub/internal/common"
	"github.com/avdonin/taskhub/internal/server/auth"
	"github.com/avdonin/taskhub/internal/server/models"
	"github.com/labstack/echo/v4"
)

const userContextKey = "user"

// accessTokenMiddleware verifies the bearer token and resolves its username
// back to a user row, so handlers always work with a concrete caller
// identity. Any verification failure is a uniform 401.
func (s *HTTPServer) accessTokenMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {

		header := c.Request().Header.Get(common.AuthHeaderName)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing token"})
		}

		username, err := auth.GetUsernameFromToken(strings.TrimPrefix(header, common.BearerPrefix), s.jwtSecret)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
		}

		user, err := s.users.GetUserByLogin(c.Request().Context(), username)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// callerID returns the resolved caller's user ID. Only valid on routes
// behind accessTokenMiddleware.
func callerID(c echo.Context) string {
	return c.Get(userContextKey).(*models.User).ID
}
