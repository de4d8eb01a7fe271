package dto

import (
	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest defines the data needed to create a new project.
type CreateProjectRequest struct {
	Name        string          `json:"name" binding:"required"`
	ClientID    string          `json:"clientID"`
	Description string          `json:"description"`
	HourlyRate  decimal.Decimal `json:"hourlyRate"`
}

// UpdateProjectRequest defines the data allowed for updating a project.
type UpdateProjectRequest struct {
	Name        *string          `json:"name"`
	ClientID    *string          `json:"clientID"`
	Description *string          `json:"description"`
	HourlyRate  *decimal.Decimal `json:"hourlyRate"`
}

// ListProjectsResponse wraps the list of projects.
type ListProjectsResponse struct {
	Projects []domain.Project `json:"projects"`
}
