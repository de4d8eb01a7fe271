package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/autonomoapp/autonomo_backend/internal/apperrors"
	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	portsrepo "github.com/autonomoapp/autonomo_backend/internal/core/ports/repositories"
	portssvc "github.com/autonomoapp/autonomo_backend/internal/core/ports/services"
	"github.com/autonomoapp/autonomo_backend/internal/dto"
	"github.com/autonomoapp/autonomo_backend/internal/platform/mailer"
)

// invoiceService implements the invoice business logic.
type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	clientRepo  portsrepo.ClientReader
	sender      mailer.Sender
	metrics     portssvc.MetricsInvalidator
}

// NewInvoiceService creates a new invoice service instance.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, clientRepo portsrepo.ClientReader, sender mailer.Sender, metrics portssvc.MetricsInvalidator) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		sender:      sender,
		metrics:     metrics,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) ListInvoices(ctx context.Context, userID, search, status string) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.FindInvoicesByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices")
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return domain.FilterList(invoices, search, status), nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %s: %w", invoiceID, err)
	}
	return invoice, nil
}

func (s *invoiceService) InvoiceMetrics(ctx context.Context, userID string) (*domain.InvoiceMetrics, error) {
	invoices, err := s.invoiceRepo.FindInvoicesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices for metrics: %w", err)
	}
	m := domain.ComputeInvoiceMetrics(invoices)
	return &m, nil
}

// nextInvoiceNumber assigns sequential per-owner numbers in the form
// F-YYYY-NNN, restarting at 001 each calendar year. The next number comes
// from the highest existing sequence, so deleted invoices leave gaps instead
// of making the count reassign a number that is still taken.
func (s *invoiceService) nextInvoiceNumber(ctx context.Context, userID string, issueDate time.Time) (string, error) {
	year := issueDate.Year()
	maxSeq, err := s.invoiceRepo.MaxInvoiceSequenceForYear(ctx, userID, year)
	if err != nil {
		return "", fmt.Errorf("failed to read max invoice sequence for year %d: %w", year, err)
	}
	return fmt.Sprintf("F-%d-%03d", year, maxSeq+1), nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, userID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	if !req.TaxRate.IsZero() && !domain.IsValidVATRate(req.TaxRate) {
		return nil, fmt.Errorf("tax rate %s is not a valid VAT band: %w", req.TaxRate, apperrors.ErrValidation)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative: %w", apperrors.ErrValidation)
	}
	if req.ClientID == "" && req.NewClient == nil {
		return nil, fmt.Errorf("either clientID or newClient is required: %w", apperrors.ErrValidation)
	}
	if req.ClientID != "" && req.NewClient != nil {
		return nil, fmt.Errorf("clientID and newClient are mutually exclusive: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}

	number, err := s.nextInvoiceNumber(ctx, userID, issueDate)
	if err != nil {
		return nil, err
	}

	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		UserID:        userID,
		ClientID:      req.ClientID,
		InvoiceNumber: number,
		Concept:       req.Concept,
		Amount:        req.Amount,
		TaxRate:       req.TaxRate,
		IssueDate:     issueDate,
		DueDate:       req.DueDate,
		Status:        domain.InvoiceDraft,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	invoice.Recalculate()

	if req.NewClient != nil {
		// The new client and the invoice referencing it are persisted in one
		// transaction so a failure leaves no orphaned client behind.
		client := domain.Client{
			ClientID: uuid.NewString(),
			UserID:   userID,
			Name:     req.NewClient.Name,
			Email:    req.NewClient.Email,
			Phone:    req.NewClient.Phone,
			TaxID:    req.NewClient.TaxID,
			Address:  req.NewClient.Address,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
		invoice.ClientID = client.ClientID
		invoice.ClientName = client.Name

		if err := s.invoiceRepo.SaveInvoiceWithClient(ctx, client, invoice); err != nil {
			s.LogError(ctx, err, "Failed to save invoice with new client")
			return nil, fmt.Errorf("failed to save invoice with new client: %w", err)
		}
	} else {
		client, err := s.clientRepo.FindClientByID(ctx, userID, req.ClientID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve client %s: %w", req.ClientID, err)
		}
		invoice.ClientName = client.Name

		if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
			s.LogError(ctx, err, "Failed to save invoice")
			return nil, fmt.Errorf("failed to save invoice: %w", err)
		}
	}

	s.metrics.InvalidateSummary(ctx, userID)
	return &invoice, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, userID, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %s for update: %w", invoiceID, err)
	}

	if req.ClientID != nil {
		client, err := s.clientRepo.FindClientByID(ctx, userID, *req.ClientID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve client %s: %w", *req.ClientID, err)
		}
		invoice.ClientID = client.ClientID
		invoice.ClientName = client.Name
	}
	if req.Concept != nil {
		invoice.Concept = *req.Concept
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("amount must not be negative: %w", apperrors.ErrValidation)
		}
		invoice.Amount = *req.Amount
	}
	if req.TaxRate != nil {
		if !req.TaxRate.IsZero() && !domain.IsValidVATRate(*req.TaxRate) {
			return nil, fmt.Errorf("tax rate %s is not a valid VAT band: %w", *req.TaxRate, apperrors.ErrValidation)
		}
		invoice.TaxRate = *req.TaxRate
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate
	}
	if req.Amount != nil || req.TaxRate != nil {
		invoice.Recalculate()
	}
	invoice.Touch(time.Now())

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to update invoice", "invoice_id", invoiceID)
		return nil, fmt.Errorf("failed to update invoice %s: %w", invoiceID, err)
	}

	s.metrics.InvalidateSummary(ctx, userID)
	return invoice, nil
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, userID, invoiceID string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %s for status update: %w", invoiceID, err)
	}

	if err := invoice.TransitionTo(status, time.Now()); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to persist invoice status", "invoice_id", invoiceID)
		return nil, fmt.Errorf("failed to update invoice %s: %w", invoiceID, err)
	}

	s.metrics.InvalidateSummary(ctx, userID)
	return invoice, nil
}

func (s *invoiceService) DuplicateInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %s for duplication: %w", invoiceID, err)
	}

	now := time.Now()
	dup := invoice.Duplicate(uuid.NewString(), now)

	number, err := s.nextInvoiceNumber(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	dup.InvoiceNumber = number

	if err := s.invoiceRepo.SaveInvoice(ctx, dup); err != nil {
		s.LogError(ctx, err, "Failed to save duplicated invoice", "invoice_id", invoiceID)
		return nil, fmt.Errorf("failed to save duplicated invoice: %w", err)
	}

	s.metrics.InvalidateSummary(ctx, userID)
	return &dup, nil
}

func (s *invoiceService) SendInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %s for sending: %w", invoiceID, err)
	}

	if invoice.Status != domain.InvoiceDraft {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, invoice.Status, domain.InvoiceSent)
	}

	client, err := s.clientRepo.FindClientByID(ctx, userID, invoice.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve client for invoice %s: %w", invoiceID, err)
	}

	doc := mailer.Document{
		EntityID: invoice.InvoiceID,
		To:       client.Email,
		Subject:  fmt.Sprintf("Invoice %s", invoice.InvoiceNumber),
		Body: fmt.Sprintf("Dear %s,\n\nPlease find invoice %s (%s) below.\n\nNet amount: %s\nVAT (%s%%): %s\nTotal due: %s\n",
			client.Name, invoice.InvoiceNumber, invoice.Concept, invoice.Amount.StringFixed(2), invoice.TaxRate.String(), invoice.TaxAmount.StringFixed(2), invoice.TotalAmount.StringFixed(2)),
	}

	result, err := s.sender.SendDocument(ctx, doc)
	if err != nil {
		s.LogError(ctx, err, "Failed to send invoice", "invoice_id", invoiceID)
		return nil, fmt.Errorf("failed to send invoice %s: %w", invoiceID, err)
	}

	if err := invoice.TransitionTo(domain.InvoiceSent, time.Now()); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to persist sent invoice", "invoice_id", invoiceID)
		return nil, fmt.Errorf("failed to update invoice %s after send: %w", invoiceID, err)
	}

	s.LogInfo(ctx, "Invoice sent", "invoice_id", invoiceID, "message_id", result.MessageID)
	s.metrics.InvalidateSummary(ctx, userID)
	return invoice, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, userID, invoiceID string) error {
	if err := s.invoiceRepo.DeleteInvoice(ctx, userID, invoiceID); err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	s.metrics.InvalidateSummary(ctx, userID)
	return nil
}

// MarkOverdueInvoices moves every sent invoice whose due date precedes asOf to
// overdue. It keeps going past per-invoice failures and reports how many
// invoices were transitioned.
func (s *invoiceService) MarkOverdueInvoices(ctx context.Context, asOf time.Time) (int, error) {
	invoices, err := s.invoiceRepo.FindPastDueInvoices(ctx, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to find past due invoices: %w", err)
	}

	marked := 0
	for i := range invoices {
		inv := invoices[i]
		if err := inv.TransitionTo(domain.InvoiceOverdue, asOf); err != nil {
			s.LogError(ctx, err, "Skipping invoice in overdue sweep", "invoice_id", inv.InvoiceID)
			continue
		}
		if err := s.invoiceRepo.UpdateInvoice(ctx, inv); err != nil {
			s.LogError(ctx, err, "Failed to persist overdue invoice", "invoice_id", inv.InvoiceID)
			continue
		}
		s.metrics.InvalidateSummary(ctx, inv.UserID)
		marked++
	}

	return marked, nil
}
