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

type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxBudgetRepository implements portsrepo.BudgetRepositoryFacade
var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

const budgetSelect = `
        SELECT b.budget_id, b.user_id, b.client_id, b.title, b.description,
               b.amount, b.tax_rate, b.tax_amount, b.total_amount, b.status,
               b.sent_at, b.approved_at, b.rejected_at, b.created_at, b.updated_at,
               c.name AS client_name
        FROM budgets b
        JOIN clients c ON c.client_id = b.client_id`

func scanBudget(row pgx.Row) (domain.Budget, error) {
	var b domain.Budget
	err := row.Scan(
		&b.BudgetID,
		&b.UserID,
		&b.ClientID,
		&b.Title,
		&b.Description,
		&b.Amount,
		&b.TaxRate,
		&b.TaxAmount,
		&b.TotalAmount,
		&b.Status,
		&b.SentAt,
		&b.ApprovedAt,
		&b.RejectedAt,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.ClientName,
	)
	return b, err
}

// SaveBudget inserts the budget and its line items in one transaction so a
// failed item insert never leaves a parent without children.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insertBudget := `
        INSERT INTO budgets (budget_id, user_id, client_id, title, description,
            amount, tax_rate, tax_amount, total_amount, status,
            sent_at, approved_at, rejected_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err = tx.Exec(ctx, insertBudget,
		budget.BudgetID,
		budget.UserID,
		budget.ClientID,
		budget.Title,
		budget.Description,
		budget.Amount,
		budget.TaxRate,
		budget.TaxAmount,
		budget.TotalAmount,
		budget.Status,
		budget.SentAt,
		budget.ApprovedAt,
		budget.RejectedAt,
		budget.CreatedAt,
		budget.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save budget: %w", err)
	}

	if err := insertBudgetItems(ctx, tx, budget.Items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertBudgetItems(ctx context.Context, tx pgx.Tx, items []domain.BudgetItem) error {
	insertItem := `
        INSERT INTO budget_items (item_id, budget_id, description, quantity, unit_price, amount)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	for _, item := range items {
		_, err := tx.Exec(ctx, insertItem,
			item.ItemID,
			item.BudgetID,
			item.Description,
			item.Quantity,
			item.UnitPrice,
			item.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to save budget item: %w", err)
		}
	}
	return nil
}

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	query := budgetSelect + `
        WHERE b.budget_id = $1 AND b.user_id = $2;
    `
	budget, err := scanBudget(r.Pool.QueryRow(ctx, query, budgetID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget by ID %s: %w", budgetID, err)
	}

	items, err := r.findBudgetItems(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	budget.Items = items
	return &budget, nil
}

func (r *PgxBudgetRepository) findBudgetItems(ctx context.Context, budgetID string) ([]domain.BudgetItem, error) {
	query := `
        SELECT item_id, budget_id, description, quantity, unit_price, amount
        FROM budget_items
        WHERE budget_id = $1
        ORDER BY item_id;
    `
	rows, err := r.Pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget items: %w", err)
	}
	defer rows.Close()

	items := []domain.BudgetItem{}
	for rows.Next() {
		var item domain.BudgetItem
		err := rows.Scan(
			&item.ItemID,
			&item.BudgetID,
			&item.Description,
			&item.Quantity,
			&item.UnitPrice,
			&item.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget item row: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating budget item rows: %w", rows.Err())
	}
	return items, nil
}

func (r *PgxBudgetRepository) FindBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error) {
	query := budgetSelect + `
        WHERE b.user_id = $1
        ORDER BY b.created_at DESC;
    `
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, budget)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", rows.Err())
	}
	return budgets, nil
}

func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	query := `
        UPDATE budgets
        SET client_id = $1, title = $2, description = $3,
            amount = $4, tax_rate = $5, tax_amount = $6, total_amount = $7,
            status = $8, sent_at = $9, approved_at = $10, rejected_at = $11,
            updated_at = $12
        WHERE budget_id = $13 AND user_id = $14;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		budget.ClientID,
		budget.Title,
		budget.Description,
		budget.Amount,
		budget.TaxRate,
		budget.TaxAmount,
		budget.TotalAmount,
		budget.Status,
		budget.SentAt,
		budget.ApprovedAt,
		budget.RejectedAt,
		budget.UpdatedAt,
		budget.BudgetID,
		budget.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateBudgetWithItems updates the budget row and replaces its full line
// item set in one transaction, so readers never observe a budget whose items
// are half swapped.
func (r *PgxBudgetRepository) UpdateBudgetWithItems(ctx context.Context, budget domain.Budget) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateBudget := `
        UPDATE budgets
        SET client_id = $1, title = $2, description = $3,
            amount = $4, tax_rate = $5, tax_amount = $6, total_amount = $7,
            status = $8, sent_at = $9, approved_at = $10, rejected_at = $11,
            updated_at = $12
        WHERE budget_id = $13 AND user_id = $14;
    `
	cmdTag, err := tx.Exec(ctx, updateBudget,
		budget.ClientID,
		budget.Title,
		budget.Description,
		budget.Amount,
		budget.TaxRate,
		budget.TaxAmount,
		budget.TotalAmount,
		budget.Status,
		budget.SentAt,
		budget.ApprovedAt,
		budget.RejectedAt,
		budget.UpdatedAt,
		budget.BudgetID,
		budget.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	deleteItems := `DELETE FROM budget_items WHERE budget_id = $1;`
	if _, err := tx.Exec(ctx, deleteItems, budget.BudgetID); err != nil {
		return fmt.Errorf("failed to clear budget items: %w", err)
	}

	if err := insertBudgetItems(ctx, tx, budget.Items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteBudget removes the budget; line items go with it via ON DELETE CASCADE.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	query := `DELETE FROM budgets WHERE budget_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, budgetID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
