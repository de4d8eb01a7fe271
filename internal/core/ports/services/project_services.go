package services

import (
	"context"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	"github.com/autonomoapp/autonomo_backend/internal/dto"
)

// ProjectReaderSvc defines read operations for projects.
type ProjectReaderSvc interface {
	ListProjects(ctx context.Context, userID, search, status string) ([]domain.Project, error)
	GetProjectByID(ctx context.Context, userID, projectID string) (*domain.Project, error)
	ProjectMetrics(ctx context.Context, userID string) (*domain.ProjectMetrics, error)
}

// ProjectWriterSvc defines write operations for projects.
type ProjectWriterSvc interface {
	CreateProject(ctx context.Context, userID string, req dto.CreateProjectRequest) (*domain.Project, error)
	UpdateProject(ctx context.Context, userID, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error)
	UpdateProjectStatus(ctx context.Context, userID, projectID string, status domain.ProjectStatus) (*domain.Project, error)
	DeleteProject(ctx context.Context, userID, projectID string) error
}

// ProjectSvcFacade combines all project service interfaces.
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
}
