package dto

import (
	"time"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines the data needed to create a new invoice.
// Exactly one of ClientID or NewClient must be set; NewClient creates the
// client and the invoice in a single transaction.
type CreateInvoiceRequest struct {
	ClientID  string               `json:"clientID"`
	NewClient *CreateClientRequest `json:"newClient"`
	Concept   string               `json:"concept"`
	Amount    decimal.Decimal      `json:"amount" binding:"required"`
	TaxRate   decimal.Decimal      `json:"taxRate"`
	IssueDate *time.Time           `json:"issueDate"`
	DueDate   *time.Time           `json:"dueDate"`
}

// UpdateInvoiceRequest defines the data allowed for updating an invoice.
// Changing Amount or TaxRate recomputes the derived tax and total fields.
type UpdateInvoiceRequest struct {
	ClientID *string          `json:"clientID"`
	Concept  *string          `json:"concept"`
	Amount   *decimal.Decimal `json:"amount"`
	TaxRate  *decimal.Decimal `json:"taxRate"`
	DueDate  *time.Time       `json:"dueDate"`
}

// ListInvoicesResponse wraps the list of invoices.
type ListInvoicesResponse struct {
	Invoices []domain.Invoice `json:"invoices"`
}
