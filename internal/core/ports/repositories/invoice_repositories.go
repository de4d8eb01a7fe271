package repositories

import (
	"context"
	"time"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data.
type InvoiceReader interface {
	// FindInvoiceByID retrieves one invoice owned by userID, with the client
	// name resolved.
	FindInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error)

	// FindInvoicesByUser retrieves all invoices owned by userID, newest first,
	// with client names resolved.
	FindInvoicesByUser(ctx context.Context, userID string) ([]domain.Invoice, error)

	// FindPastDueInvoices retrieves, across all users, sent invoices whose due
	// date precedes asOf. Used by the overdue sweep.
	FindPastDueInvoices(ctx context.Context, asOf time.Time) ([]domain.Invoice, error)

	// MaxInvoiceSequenceForYear returns the highest sequence number already
	// assigned among the owner's invoices issued in the given year, or zero
	// when none exist. Used to assign the next invoice number; deletes leave
	// gaps, so the maximum is authoritative where a row count is not.
	MaxInvoiceSequenceForYear(ctx context.Context, userID string, year int) (int, error)
}

// InvoiceWriter defines write operations for invoice data.
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// SaveInvoiceWithClient persists a new client and a new invoice referencing
	// it in a single transaction, so a failure leaves no orphaned client.
	SaveInvoiceWithClient(ctx context.Context, client domain.Client, invoice domain.Invoice) error

	// UpdateInvoice updates an invoice's mutable fields, including status and
	// transition timestamps.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// DeleteInvoice hard-deletes an invoice owned by userID.
	DeleteInvoice(ctx context.Context, userID, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
