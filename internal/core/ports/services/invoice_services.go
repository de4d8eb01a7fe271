package services

import (
	"context"
	"time"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	"github.com/autonomoapp/autonomo_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices.
type InvoiceReaderSvc interface {
	ListInvoices(ctx context.Context, userID, search, status string) ([]domain.Invoice, error)
	GetInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error)
	InvoiceMetrics(ctx context.Context, userID string) (*domain.InvoiceMetrics, error)
}

// InvoiceWriterSvc defines write operations for invoices.
type InvoiceWriterSvc interface {
	// CreateInvoice creates an invoice, optionally together with a new client
	// in a single transaction, and assigns the next invoice number.
	CreateInvoice(ctx context.Context, userID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error)

	UpdateInvoice(ctx context.Context, userID, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, userID, invoiceID string, status domain.InvoiceStatus) (*domain.Invoice, error)
	DuplicateInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error)

	// SendInvoice emails the invoice and, on success, marks it sent.
	SendInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error)

	DeleteInvoice(ctx context.Context, userID, invoiceID string) error
}

// InvoiceSweeperSvc is consumed by the scheduler.
type InvoiceSweeperSvc interface {
	// MarkOverdueInvoices transitions every sent invoice past its due date to
	// overdue and returns how many were moved.
	MarkOverdueInvoices(ctx context.Context, asOf time.Time) (int, error)
}

// InvoiceSvcFacade combines all invoice service interfaces.
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
	InvoiceSweeperSvc
}
