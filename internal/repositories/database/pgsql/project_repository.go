package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/autonomoapp/autonomo_backend/internal/apperrors"
	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	portsrepo "github.com/autonomoapp/autonomo_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProjectRepository struct {
	BaseRepository
}

func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxProjectRepository implements portsrepo.ProjectRepositoryFacade
var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

// client_id is nullable; NULLIF/COALESCE keep the domain type a plain string.
const projectSelect = `
        SELECT p.project_id, p.user_id, COALESCE(p.client_id::text, ''), p.name, p.description,
               p.hourly_rate, p.status, p.completed_at, p.created_at, p.updated_at,
               COALESCE(c.name, '') AS client_name
        FROM projects p
        LEFT JOIN clients c ON c.client_id = p.client_id`

func scanProject(row pgx.Row) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ProjectID,
		&p.UserID,
		&p.ClientID,
		&p.Name,
		&p.Description,
		&p.HourlyRate,
		&p.Status,
		&p.CompletedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.ClientName,
	)
	return p, err
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	query := `
        INSERT INTO projects (project_id, user_id, client_id, name, description,
            hourly_rate, status, completed_at, created_at, updated_at)
        VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.Pool.Exec(ctx, query,
		project.ProjectID,
		project.UserID,
		project.ClientID,
		project.Name,
		project.Description,
		project.HourlyRate,
		project.Status,
		project.CompletedAt,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	query := projectSelect + `
        WHERE p.project_id = $1 AND p.user_id = $2;
    `
	project, err := scanProject(r.Pool.QueryRow(ctx, query, projectID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project by ID %s: %w", projectID, err)
	}
	return &project, nil
}

func (r *PgxProjectRepository) FindProjectsByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	query := projectSelect + `
        WHERE p.user_id = $1
        ORDER BY p.created_at DESC;
    `
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, project)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", rows.Err())
	}
	return projects, nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	query := `
        UPDATE projects
        SET client_id = NULLIF($1, '')::uuid, name = $2, description = $3,
            hourly_rate = $4, status = $5, completed_at = $6, updated_at = $7
        WHERE project_id = $8 AND user_id = $9;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		project.ClientID,
		project.Name,
		project.Description,
		project.HourlyRate,
		project.Status,
		project.CompletedAt,
		project.UpdatedAt,
		project.ProjectID,
		project.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) DeleteProject(ctx context.Context, userID, projectID string) error {
	query := `DELETE FROM projects WHERE project_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
