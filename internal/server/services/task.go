package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avdonin/taskhub/internal/server/models"
	"github.com/avdonin/taskhub/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TaskService implements the ownership-scoped task operations. The caller's
// identity is an explicit parameter on every method; it is never taken from
// ambient state.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService backed by the given repositories.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// Create persists a new task owned by userID with the default open status.
func (s *TaskService) Create(ctx context.Context, title string, description string, userID string) (*models.Task, error) {
	task := &models.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      models.StatusOpen,
		UserID:      userID,
	}

	repo := s.repomanager.Tasks(s.db)
	t, err := repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return t, nil
}

// List returns the caller's tasks matching the filter.
func (s *TaskService) List(ctx context.Context, filter models.TaskFilter, userID string) ([]*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	return repo.List(ctx, userID, filter)
}

// GetByID returns the caller's task with the given id. A task that exists
// under a different owner yields the same common.ErrorNotFound as a missing
// one.
func (s *TaskService) GetByID(ctx context.Context, id string, userID string) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	return repo.GetByID(ctx, id, userID)
}

// UpdateStatus sets the status of the caller's task. Any status in the set
// is a legal transition from any other.
func (s *TaskService) UpdateStatus(ctx context.Context, id string, status models.TaskStatus, userID string) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	return repo.UpdateStatus(ctx, id, userID, status)
}

// Delete removes the caller's task.
func (s *TaskService) Delete(ctx context.Context, id string, userID string) error {
	repo := s.repomanager.Tasks(s.db)
	return repo.Delete(ctx, id, userID)
}
