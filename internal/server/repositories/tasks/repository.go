package tasks

import (
	"context"

	"github.com/avdonin/taskhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string, userID string) (*models.Task, error)
	List(ctx context.Context, userID string, filter models.TaskFilter) ([]*models.Task, error)
	UpdateStatus(ctx context.Context, id string, userID string, status models.TaskStatus) (*models.Task, error)
	Delete(ctx context.Context, id string, userID string) error
}
