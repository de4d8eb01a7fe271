package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	portsrepo "github.com/autonomoapp/autonomo_backend/internal/core/ports/repositories"
	portssvc "github.com/autonomoapp/autonomo_backend/internal/core/ports/services"
	"github.com/autonomoapp/autonomo_backend/internal/dto"
)

// taskService implements the task business logic.
type taskService struct {
	BaseService
	taskRepo portsrepo.TaskRepositoryFacade
	metrics  portssvc.MetricsInvalidator
}

// NewTaskService creates a new task service instance.
func NewTaskService(taskRepo portsrepo.TaskRepositoryFacade, metrics portssvc.MetricsInvalidator) portssvc.TaskSvcFacade {
	return &taskService{taskRepo: taskRepo, metrics: metrics}
}

var _ portssvc.TaskSvcFacade = (*taskService)(nil)

func (s *taskService) ListTasks(ctx context.Context, userID, search, status string) ([]domain.Task, error) {
	tasks, err := s.taskRepo.FindTasksByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tasks")
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return domain.FilterList(tasks, search, status), nil
}

func (s *taskService) GetTaskByID(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", taskID, err)
	}
	return task, nil
}

func (s *taskService) TaskMetrics(ctx context.Context, userID string) (*domain.TaskMetrics, error) {
	tasks, err := s.taskRepo.FindTasksByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for metrics: %w", err)
	}
	m := domain.ComputeTaskMetrics(tasks)
	return &m, nil
}

func (s *taskService) CreateTask(ctx context.Context, userID string, req dto.CreateTaskRequest) (*domain.Task, error) {
	priority := domain.TaskPriority(req.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now()
	task := domain.Task{
		TaskID:      uuid.NewString(),
		UserID:      userID,
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     req.DueDate,
		Status:      domain.TaskPending,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.taskRepo.SaveTask(ctx, task); err != nil {
		s.LogError(ctx, err, "Failed to save task")
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	s.metrics.InvalidateSummary(ctx, userID)
	return &task, nil
}

func (s *taskService) UpdateTask(ctx context.Context, userID, taskID string, req dto.UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s for update: %w", taskID, err)
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.ProjectID != nil {
		task.ProjectID = *req.ProjectID
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	task.Touch(time.Now())

	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		s.LogError(ctx, err, "Failed to update task", "task_id", taskID)
		return nil, fmt.Errorf("failed to update task %s: %w", taskID, err)
	}

	return task, nil
}

func (s *taskService) UpdateTaskStatus(ctx context.Context, userID, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, userID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s for status update: %w", taskID, err)
	}

	if err := task.TransitionTo(status, time.Now()); err != nil {
		return nil, err
	}

	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		s.LogError(ctx, err, "Failed to persist task status", "task_id", taskID)
		return nil, fmt.Errorf("failed to update task %s: %w", taskID, err)
	}

	s.metrics.InvalidateSummary(ctx, userID)
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	if err := s.taskRepo.DeleteTask(ctx, userID, taskID); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", taskID, err)
	}
	s.metrics.InvalidateSummary(ctx, userID)
	return nil
}
