package repositories

import (
	"context"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
)

// ProjectReader defines read operations for project data.
type ProjectReader interface {
	FindProjectByID(ctx context.Context, userID, projectID string) (*domain.Project, error)

	// FindProjectsByUser retrieves all projects owned by userID, newest first,
	// with client names resolved.
	FindProjectsByUser(ctx context.Context, userID string) ([]domain.Project, error)
}

// ProjectWriter defines write operations for project data.
type ProjectWriter interface {
	SaveProject(ctx context.Context, project domain.Project) error
	UpdateProject(ctx context.Context, project domain.Project) error
	DeleteProject(ctx context.Context, userID, projectID string) error
}

// ProjectRepositoryFacade combines all project repository interfaces.
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
