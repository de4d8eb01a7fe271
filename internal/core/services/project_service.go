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

// projectService implements the project business logic.
type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepositoryFacade
	metrics     portssvc.MetricsInvalidator
}

// NewProjectService creates a new project service instance.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade, metrics portssvc.MetricsInvalidator) portssvc.ProjectSvcFacade {
	return &projectService{projectRepo: projectRepo, metrics: metrics}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func (s *projectService) ListProjects(ctx context.Context, userID, search, status string) ([]domain.Project, error) {
	projects, err := s.projectRepo.FindProjectsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects")
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return domain.FilterList(projects, search, status), nil
}

func (s *projectService) GetProjectByID(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, userID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", projectID, err)
	}
	return project, nil
}

func (s *projectService) ProjectMetrics(ctx context.Context, userID string) (*domain.ProjectMetrics, error) {
	projects, err := s.projectRepo.FindProjectsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects for metrics: %w", err)
	}
	m := domain.ComputeProjectMetrics(projects)
	return &m, nil
}

func (s *projectService) CreateProject(ctx context.Context, userID string, req dto.CreateProjectRequest) (*domain.Project, error) {
	now := time.Now()
	project := domain.Project{
		ProjectID:   uuid.NewString(),
		UserID:      userID,
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		HourlyRate:  req.HourlyRate,
		Status:      domain.ProjectActive,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save project")
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	s.metrics.InvalidateSummary(ctx, userID)
	return &project, nil
}

func (s *projectService) UpdateProject(ctx context.Context, userID, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, userID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s for update: %w", projectID, err)
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.ClientID != nil {
		project.ClientID = *req.ClientID
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.HourlyRate != nil {
		project.HourlyRate = *req.HourlyRate
	}
	project.Touch(time.Now())

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		s.LogError(ctx, err, "Failed to update project", "project_id", projectID)
		return nil, fmt.Errorf("failed to update project %s: %w", projectID, err)
	}

	return project, nil
}

func (s *projectService) UpdateProjectStatus(ctx context.Context, userID, projectID string, status domain.ProjectStatus) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, userID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s for status update: %w", projectID, err)
	}

	if err := project.TransitionTo(status, time.Now()); err != nil {
		return nil, err
	}

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		s.LogError(ctx, err, "Failed to persist project status", "project_id", projectID)
		return nil, fmt.Errorf("failed to update project %s: %w", projectID, err)
	}

	s.metrics.InvalidateSummary(ctx, userID)
	return project, nil
}

func (s *projectService) DeleteProject(ctx context.Context, userID, projectID string) error {
	if err := s.projectRepo.DeleteProject(ctx, userID, projectID); err != nil {
		return fmt.Errorf("failed to delete project %s: %w", projectID, err)
	}
	s.metrics.InvalidateSummary(ctx, userID)
	return nil
}
