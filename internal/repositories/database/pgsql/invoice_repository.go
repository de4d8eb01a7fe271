package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/autonomoapp/autonomo_backend/internal/apperrors"
	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	portsrepo "github.com/autonomoapp/autonomo_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryFacade
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceSelect = `
        SELECT i.invoice_id, i.user_id, i.client_id, i.invoice_number, i.concept,
               i.amount, i.tax_rate, i.tax_amount, i.total_amount,
               i.issue_date, i.due_date, i.status, i.sent_at, i.paid_at,
               i.created_at, i.updated_at, c.name AS client_name
        FROM invoices i
        JOIN clients c ON c.client_id = i.client_id`

const invoiceInsert = `
        INSERT INTO invoices (invoice_id, user_id, client_id, invoice_number, concept,
            amount, tax_rate, tax_amount, total_amount, issue_date, due_date,
            status, sent_at, paid_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
    `

func scanInvoice(row pgx.Row) (domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(
		&inv.InvoiceID,
		&inv.UserID,
		&inv.ClientID,
		&inv.InvoiceNumber,
		&inv.Concept,
		&inv.Amount,
		&inv.TaxRate,
		&inv.TaxAmount,
		&inv.TotalAmount,
		&inv.IssueDate,
		&inv.DueDate,
		&inv.Status,
		&inv.SentAt,
		&inv.PaidAt,
		&inv.CreatedAt,
		&inv.UpdatedAt,
		&inv.ClientName,
	)
	return inv, err
}

func invoiceInsertArgs(inv domain.Invoice) []any {
	return []any{
		inv.InvoiceID,
		inv.UserID,
		inv.ClientID,
		inv.InvoiceNumber,
		inv.Concept,
		inv.Amount,
		inv.TaxRate,
		inv.TaxAmount,
		inv.TotalAmount,
		inv.IssueDate,
		inv.DueDate,
		inv.Status,
		inv.SentAt,
		inv.PaidAt,
		inv.CreatedAt,
		inv.UpdatedAt,
	}
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	_, err := r.Pool.Exec(ctx, invoiceInsert, invoiceInsertArgs(invoice)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number %s already in use: %w", invoice.InvoiceNumber, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save invoice: %w", err)
	}
	return nil
}

// SaveInvoiceWithClient inserts the client and the invoice in one transaction.
// A failure on either insert rolls both back: no orphaned client rows.
func (r *PgxInvoiceRepository) SaveInvoiceWithClient(ctx context.Context, client domain.Client, invoice domain.Invoice) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insertClient := `
        INSERT INTO clients (client_id, user_id, name, email, phone, tax_id, address, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err = tx.Exec(ctx, insertClient,
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
		return fmt.Errorf("failed to save client for invoice: %w", err)
	}

	_, err = tx.Exec(ctx, invoiceInsert, invoiceInsertArgs(invoice)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number %s already in use: %w", invoice.InvoiceNumber, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save invoice: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	query := invoiceSelect + `
        WHERE i.invoice_id = $1 AND i.user_id = $2;
    `
	invoice, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}
	return &invoice, nil
}

func (r *PgxInvoiceRepository) FindInvoicesByUser(ctx context.Context, userID string) ([]domain.Invoice, error) {
	query := invoiceSelect + `
        WHERE i.user_id = $1
        ORDER BY i.created_at DESC;
    `
	return r.queryInvoices(ctx, query, userID)
}

func (r *PgxInvoiceRepository) FindPastDueInvoices(ctx context.Context, asOf time.Time) ([]domain.Invoice, error) {
	query := invoiceSelect + `
        WHERE i.status = 'sent' AND i.due_date IS NOT NULL AND i.due_date < $1
        ORDER BY i.due_date;
    `
	return r.queryInvoices(ctx, query, asOf)
}

func (r *PgxInvoiceRepository) queryInvoices(ctx context.Context, query string, args ...any) ([]domain.Invoice, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, invoice)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", rows.Err())
	}
	return invoices, nil
}

// MaxInvoiceSequenceForYear reads the highest numeric suffix among the owner's
// invoice numbers for the year. COUNT would drift behind after a hard delete
// and reassign taken numbers, so the maximum is derived from the numbers
// themselves.
func (r *PgxInvoiceRepository) MaxInvoiceSequenceForYear(ctx context.Context, userID string, year int) (int, error) {
	query := `
        SELECT COALESCE(MAX(split_part(invoice_number, '-', 3)::int), 0)
        FROM invoices
        WHERE user_id = $1 AND EXTRACT(YEAR FROM issue_date) = $2;
    `
	var maxSeq int
	if err := r.Pool.QueryRow(ctx, query, userID, year).Scan(&maxSeq); err != nil {
		return 0, fmt.Errorf("failed to read max invoice sequence for year %d: %w", year, err)
	}
	return maxSeq, nil
}

func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	query := `
        UPDATE invoices
        SET client_id = $1, concept = $2,
            amount = $3, tax_rate = $4, tax_amount = $5, total_amount = $6,
            due_date = $7, status = $8, sent_at = $9, paid_at = $10, updated_at = $11
        WHERE invoice_id = $12 AND user_id = $13;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		invoice.ClientID,
		invoice.Concept,
		invoice.Amount,
		invoice.TaxRate,
		invoice.TaxAmount,
		invoice.TotalAmount,
		invoice.DueDate,
		invoice.Status,
		invoice.SentAt,
		invoice.PaidAt,
		invoice.UpdatedAt,
		invoice.InvoiceID,
		invoice.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, userID, invoiceID string) error {
	query := `DELETE FROM invoices WHERE invoice_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, invoiceID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
