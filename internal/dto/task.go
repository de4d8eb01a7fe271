package dto

import (
	"time"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
)

// CreateTaskRequest defines the data needed to create a new task.
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	ProjectID   string `json:"projectID"`
	Description string `json:"description"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTaskRequest defines the data allowed for updating a task.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	ProjectID   *string    `json:"projectID"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
}

// ListTasksResponse wraps the list of tasks.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
}
