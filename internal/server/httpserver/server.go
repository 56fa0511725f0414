// Package httpserver exposes the authentication and task operations over
// HTTP. Token verification happens here, at the transport boundary; services
// below receive an already-resolved caller identity.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avdonin/taskhub/internal/logging"
	"github.com/avdonin/taskhub/internal/server/models"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 5 * time.Second

// UserService is the authentication surface consumed by the transport.
type UserService interface {
	Register(ctx context.Context, username string, password string) (*models.User, error)
	Login(ctx context.Context, username string, password string) (string, error)
	GetUserByLogin(ctx context.Context, username string) (*models.User, error)
}

// TaskService is the ownership-scoped task surface consumed by the transport.
type TaskService interface {
	Create(ctx context.Context, title string, description string, userID string) (*models.Task, error)
	List(ctx context.Context, filter models.TaskFilter, userID string) ([]*models.Task, error)
	GetByID(ctx context.Context, id string, userID string) (*models.Task, error)
	UpdateStatus(ctx context.Context, id string, status models.TaskStatus, userID string) (*models.Task, error)
	Delete(ctx context.Context, id string, userID string) error
}

type HTTPServer struct {
	address   string
	logger    logging.Logger
	users     UserService
	tasks     TaskService
	jwtSecret []byte
}

func NewHTTPServer(a string, l logging.Logger, us UserService, ts TaskService, secretKey string) (*HTTPServer, error) {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		tasks:     ts,
		jwtSecret: []byte(secretKey),
	}, nil
}

func (s *HTTPServer) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/ping", s.ping)

	a := e.Group("/auth")
	a.POST("/signup", s.signUp)
	a.POST("/signin", s.signIn)

	g := e.Group("/tasks", s.accessTokenMiddleware)
	g.GET("", s.listTasks)
	g.POST("", s.createTask)
	g.GET("/:id", s.getTask)
	g.PATCH("/:id/status", s.updateTaskStatus)
	g.DELETE("/:id", s.deleteTask)

	return e
}

func (s *HTTPServer) Run(ctx context.Context) error {

	e := s.newEcho()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
