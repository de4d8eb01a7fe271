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

type PgxTaskRepository struct {
	BaseRepository
}

func newPgxTaskRepository(pool *pgxpool.Pool) portsrepo.TaskRepositoryFacade {
	return &PgxTaskRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxTaskRepository implements portsrepo.TaskRepositoryFacade
var _ portsrepo.TaskRepositoryFacade = (*PgxTaskRepository)(nil)

const taskSelect = `
        SELECT t.task_id, t.user_id, COALESCE(t.project_id::text, ''), t.title, t.description,
               t.priority, t.due_date, t.status, t.completed_at, t.created_at, t.updated_at,
               COALESCE(p.name, '') AS project_name
        FROM tasks t
        LEFT JOIN projects p ON p.project_id = t.project_id`

func scanTask(row pgx.Row) (domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.TaskID,
		&t.UserID,
		&t.ProjectID,
		&t.Title,
		&t.Description,
		&t.Priority,
		&t.DueDate,
		&t.Status,
		&t.CompletedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.ProjectName,
	)
	return t, err
}

func (r *PgxTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	query := `
        INSERT INTO tasks (task_id, user_id, project_id, title, description,
            priority, due_date, status, completed_at, created_at, updated_at)
        VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.Pool.Exec(ctx, query,
		task.TaskID,
		task.UserID,
		task.ProjectID,
		task.Title,
		task.Description,
		task.Priority,
		task.DueDate,
		task.Status,
		task.CompletedAt,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

func (r *PgxTaskRepository) FindTaskByID(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	query := taskSelect + `
        WHERE t.task_id = $1 AND t.user_id = $2;
    `
	task, err := scanTask(r.Pool.QueryRow(ctx, query, taskID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task by ID %s: %w", taskID, err)
	}
	return &task, nil
}

func (r *PgxTaskRepository) FindTasksByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	query := taskSelect + `
        WHERE t.user_id = $1
        ORDER BY t.created_at DESC;
    `
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", rows.Err())
	}
	return tasks, nil
}

func (r *PgxTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	query := `
        UPDATE tasks
        SET project_id = NULLIF($1, '')::uuid, title = $2, description = $3,
            priority = $4, due_date = $5, status = $6, completed_at = $7, updated_at = $8
        WHERE task_id = $9 AND user_id = $10;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		task.ProjectID,
		task.Title,
		task.Description,
		task.Priority,
		task.DueDate,
		task.Status,
		task.CompletedAt,
		task.UpdatedAt,
		task.TaskID,
		task.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTaskRepository) DeleteTask(ctx context.Context, userID, taskID string) error {
	query := `DELETE FROM tasks WHERE task_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
