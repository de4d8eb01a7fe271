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

type PgxProposalRepository struct {
	BaseRepository
}

func newPgxProposalRepository(pool *pgxpool.Pool) portsrepo.ProposalRepositoryFacade {
	return &PgxProposalRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxProposalRepository implements portsrepo.ProposalRepositoryFacade
var _ portsrepo.ProposalRepositoryFacade = (*PgxProposalRepository)(nil)

const proposalSelect = `
        SELECT p.proposal_id, p.user_id, COALESCE(p.client_id::text, ''), p.title, p.description,
               p.amount, p.tax_rate, p.tax_amount, p.total_amount, p.valid_until,
               p.status, p.sent_at, p.accepted_at, p.rejected_at, p.created_at, p.updated_at,
               COALESCE(c.name, '') AS client_name
        FROM proposals p
        LEFT JOIN clients c ON c.client_id = p.client_id`

func scanProposal(row pgx.Row) (domain.Proposal, error) {
	var p domain.Proposal
	err := row.Scan(
		&p.ProposalID,
		&p.UserID,
		&p.ClientID,
		&p.Title,
		&p.Description,
		&p.Amount,
		&p.TaxRate,
		&p.TaxAmount,
		&p.TotalAmount,
		&p.ValidUntil,
		&p.Status,
		&p.SentAt,
		&p.AcceptedAt,
		&p.RejectedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.ClientName,
	)
	return p, err
}

func (r *PgxProposalRepository) SaveProposal(ctx context.Context, proposal domain.Proposal) error {
	query := `
        INSERT INTO proposals (proposal_id, user_id, client_id, title, description,
            amount, tax_rate, tax_amount, total_amount, valid_until,
            status, sent_at, accepted_at, rejected_at, created_at, updated_at)
        VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
    `
	_, err := r.Pool.Exec(ctx, query,
		proposal.ProposalID,
		proposal.UserID,
		proposal.ClientID,
		proposal.Title,
		proposal.Description,
		proposal.Amount,
		proposal.TaxRate,
		proposal.TaxAmount,
		proposal.TotalAmount,
		proposal.ValidUntil,
		proposal.Status,
		proposal.SentAt,
		proposal.AcceptedAt,
		proposal.RejectedAt,
		proposal.CreatedAt,
		proposal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save proposal: %w", err)
	}
	return nil
}

func (r *PgxProposalRepository) FindProposalByID(ctx context.Context, userID, proposalID string) (*domain.Proposal, error) {
	query := proposalSelect + `
        WHERE p.proposal_id = $1 AND p.user_id = $2;
    `
	proposal, err := scanProposal(r.Pool.QueryRow(ctx, query, proposalID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find proposal by ID %s: %w", proposalID, err)
	}
	return &proposal, nil
}

func (r *PgxProposalRepository) FindProposalsByUser(ctx context.Context, userID string) ([]domain.Proposal, error) {
	query := proposalSelect + `
        WHERE p.user_id = $1
        ORDER BY p.created_at DESC;
    `
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query proposals: %w", err)
	}
	defer rows.Close()

	proposals := []domain.Proposal{}
	for rows.Next() {
		proposal, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan proposal row: %w", err)
		}
		proposals = append(proposals, proposal)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating proposal rows: %w", rows.Err())
	}
	return proposals, nil
}

func (r *PgxProposalRepository) UpdateProposal(ctx context.Context, proposal domain.Proposal) error {
	query := `
        UPDATE proposals
        SET client_id = NULLIF($1, '')::uuid, title = $2, description = $3,
            amount = $4, tax_rate = $5, tax_amount = $6, total_amount = $7,
            valid_until = $8, status = $9, sent_at = $10, accepted_at = $11,
            rejected_at = $12, updated_at = $13
        WHERE proposal_id = $14 AND user_id = $15;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		proposal.ClientID,
		proposal.Title,
		proposal.Description,
		proposal.Amount,
		proposal.TaxRate,
		proposal.TaxAmount,
		proposal.TotalAmount,
		proposal.ValidUntil,
		proposal.Status,
		proposal.SentAt,
		proposal.AcceptedAt,
		proposal.RejectedAt,
		proposal.UpdatedAt,
		proposal.ProposalID,
		proposal.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update proposal: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProposalRepository) DeleteProposal(ctx context.Context, userID, proposalID string) error {
	query := `DELETE FROM proposals WHERE proposal_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, proposalID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete proposal: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
