package services

import (
	"context"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	"github.com/autonomoapp/autonomo_backend/internal/dto"
)

// TaskReaderSvc defines read operations for tasks.
type TaskReaderSvc interface {
	ListTasks(ctx context.Context, userID, search, status string) ([]domain.Task, error)
	GetTaskByID(ctx context.Context, userID, taskID string) (*domain.Task, error)
	TaskMetrics(ctx context.Context, userID string) (*domain.TaskMetrics, error)
}

// TaskWriterSvc defines write operations for tasks.
type TaskWriterSvc interface {
	CreateTask(ctx context.Context, userID string, req dto.CreateTaskRequest) (*domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, req dto.UpdateTaskRequest) (*domain.Task, error)
	UpdateTaskStatus(ctx context.Context, userID, taskID string, status domain.TaskStatus) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
}

// TaskSvcFacade combines all task service interfaces.
type TaskSvcFacade interface {
	TaskReaderSvc
	TaskWriterSvc
}
