package repositories

import (
	"context"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
)

// TaskReader defines read operations for task data.
type TaskReader interface {
	FindTaskByID(ctx context.Context, userID, taskID string) (*domain.Task, error)

	// FindTasksByUser retrieves all tasks owned by userID, newest first, with
	// project names resolved.
	FindTasksByUser(ctx context.Context, userID string) ([]domain.Task, error)
}

// TaskWriter defines write operations for task data.
type TaskWriter interface {
	SaveTask(ctx context.Context, task domain.Task) error
	UpdateTask(ctx context.Context, task domain.Task) error
	DeleteTask(ctx context.Context, userID, taskID string) error
}

// TaskRepositoryFacade combines all task repository interfaces.
type TaskRepositoryFacade interface {
	TaskReader
	TaskWriter
}
