package httpserver

import (
	"errors"
	"net/http"

	"github.com/avdonin/taskhub/internal/common"
	"github.com/avdonin/taskhub/internal/server/models"
	"github.com/labstack/echo/v4"
)

// writeError translates expected service errors into client responses.
// Everything else is a generic internal failure; the cause is logged but
// never leaked to the client.
func (s *HTTPServer) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorDuplicateUsername):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: common.ErrorDuplicateUsername.Error()})
	case errors.Is(err, common.ErrorUnauthorized):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
	case errors.Is(err, common.ErrorNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: common.ErrorNotFound.Error()})
	default:
		s.logger.Error(c.Request().Context(), err.Error())
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func validateCredentials(req *CredentialsRequest) string {
	if len(req.Username) < minUsernameLen {
		return "username is too short"
	}
	if len(req.Password) < minPasswordLen {
		return "password is too short"
	}
	return ""
}

func (s *HTTPServer) ping(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) signUp(c echo.Context) error {
	req := &CredentialsRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if msg := validateCredentials(req); msg != "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
	}

	ctx := c.Request().Context()

	_, err := s.users.Register(ctx, req.Username, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}

	s.logger.Info(ctx, "Registered", "username", req.Username)
	return c.NoContent(http.StatusCreated)
}

func (s *HTTPServer) signIn(c echo.Context) error {
	req := &CredentialsRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	token, err := s.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, SignInResponse{AccessToken: token})
}

func (s *HTTPServer) listTasks(c echo.Context) error {
	filter := models.TaskFilter{Search: c.QueryParam("search")}

	if status := c.QueryParam("status"); status != "" {
		if !models.ValidStatus(models.TaskStatus(status)) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
		}
		filter.Status = models.TaskStatus(status)
	}

	tasks, err := s.tasks.List(c.Request().Context(), filter, callerID(c))
	if err != nil {
		return s.writeError(c, err)
	}

	if tasks == nil {
		tasks = []*models.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *HTTPServer) getTask(c echo.Context) error {
	task, err := s.tasks.GetByID(c.Request().Context(), c.Param("id"), callerID(c))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *HTTPServer) createTask(c echo.Context) error {
	req := &CreateTaskRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "title is required"})
	}

	task, err := s.tasks.Create(c.Request().Context(), req.Title, req.Description, callerID(c))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (s *HTTPServer) updateTaskStatus(c echo.Context) error {
	req := &UpdateTaskStatusRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if !models.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
	}

	task, err := s.tasks.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status, callerID(c))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *HTTPServer) deleteTask(c echo.Context) error {
	if err := s.tasks.Delete(c.Request().Context(), c.Param("id"), callerID(c)); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
