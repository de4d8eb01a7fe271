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

type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepositoryFacade
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `client_id, user_id, name, email, phone, tax_id, address, created_at, updated_at`

func scanClient(row pgx.Row) (domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ClientID,
		&c.UserID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.TaxID,
		&c.Address,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	query := `
        INSERT INTO clients (` + clientColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.Pool.Exec(ctx, query,
		client.ClientID,
		client.UserID,
		client.Name,
		client.Email,
		client.Phone,
		client.TaxID,
		client.Address,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error) {
	query := `
        SELECT ` + clientColumns + `
        FROM clients
        WHERE client_id = $1 AND user_id = $2;
    `
	client, err := scanClient(r.Pool.QueryRow(ctx, query, clientID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}
	return &client, nil
}

func (r *PgxClientRepository) FindClientsByUser(ctx context.Context, userID string) ([]domain.Client, error) {
	query := `
        SELECT ` + clientColumns + `
        FROM clients
        WHERE user_id = $1
        ORDER BY created_at DESC;
    `
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, client)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", rows.Err())
	}
	return clients, nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	query := `
        UPDATE clients
        SET name = $1, email = $2, phone = $3, tax_id = $4, address = $5, updated_at = $6
        WHERE client_id = $7 AND user_id = $8;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		client.Name,
		client.Email,
		client.Phone,
		client.TaxID,
		client.Address,
		client.UpdatedAt,
		client.ClientID,
		client.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxClientRepository) DeleteClient(ctx context.Context, userID, clientID string) error {
	query := `DELETE FROM clients WHERE client_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, clientID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
