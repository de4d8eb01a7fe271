package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// invoiceTransitions is the fixed transition table. Paid and cancelled are
// terminal; once paid an invoice can never revert to draft.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceDraft:   {InvoiceSent, InvoiceCancelled},
	InvoiceSent:    {InvoicePaid, InvoiceOverdue, InvoiceCancelled},
	InvoiceOverdue: {InvoicePaid, InvoiceCancelled},
}

// Invoice represents a bill issued to a client.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`    // Owner FK -> users.user_id
	ClientID      string          `json:"clientID"`  // FK -> clients.client_id (Not Null)
	InvoiceNumber string          `json:"invoiceNumber"`
	Concept       string          `json:"concept"`
	Amount        decimal.Decimal `json:"amount"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`   // Derived: amount * taxRate / 100
	TotalAmount   decimal.Decimal `json:"totalAmount"` // Derived: amount + taxAmount
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	Status        InvoiceStatus   `json:"status"`
	SentAt        *time.Time      `json:"sentAt,omitempty"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	ClientName    string          `json:"clientName"` // Resolved at load time for display
	AuditFields
}

func (inv Invoice) SearchFields() []string {
	return []string{inv.InvoiceNumber, inv.Concept, inv.ClientName}
}

func (inv Invoice) StatusValue() string { return string(inv.Status) }

// Recalculate recomputes the derived monetary fields from Amount and TaxRate.
func (inv *Invoice) Recalculate() {
	inv.TaxAmount, inv.TotalAmount = ComputeTax(inv.Amount, inv.TaxRate)
}

// TransitionTo applies a guarded status change, setting exactly the matching
// transition timestamp. Monetary fields are never touched.
func (inv *Invoice) TransitionTo(status InvoiceStatus, now time.Time) error {
	if !canTransition(invoiceTransitions, inv.Status, status) {
		return invalidTransitionErr(inv.Status, status)
	}
	inv.Status = status
	switch status {
	case InvoiceSent:
		inv.SentAt = &now
	case InvoicePaid:
		inv.PaidAt = &now
	}
	inv.Touch(now)
	return nil
}

// IsPastDue reports whether a sent invoice has outlived its due date.
func (inv Invoice) IsPastDue(now time.Time) bool {
	return inv.Status == InvoiceSent && inv.DueDate != nil && inv.DueDate.Before(now)
}

// Duplicate returns a copy of the invoice with a fresh identity, status reset
// to draft and transition timestamps cleared. The invoice number is left empty
// for the caller to assign.
func (inv Invoice) Duplicate(newID string, now time.Time) Invoice {
	dup := inv
	dup.InvoiceID = newID
	dup.InvoiceNumber = ""
	dup.Status = InvoiceDraft
	dup.SentAt = nil
	dup.PaidAt = nil
	dup.IssueDate = now
	dup.CreatedAt = now
	dup.UpdatedAt = now
	return dup
}
