package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetStatus is the lifecycle state of a budget (quotation).
type BudgetStatus string

const (
	BudgetDraft    BudgetStatus = "draft"
	BudgetSent     BudgetStatus = "sent"
	BudgetApproved BudgetStatus = "approved"
	BudgetRejected BudgetStatus = "rejected"
	BudgetExpired  BudgetStatus = "expired"
)

// budgetTransitions is the fixed transition table. Approved and rejected are
// terminal; an expired budget may be re-sent.
var budgetTransitions = map[BudgetStatus][]BudgetStatus{
	BudgetDraft:   {BudgetSent},
	BudgetSent:    {BudgetApproved, BudgetRejected, BudgetExpired},
	BudgetExpired: {BudgetSent},
}

// Budget represents a quotation offered to a client, composed of line items.
type Budget struct {
	BudgetID    string          `json:"budgetID"` // Primary Key (UUID)
	UserID      string          `json:"userID"`   // Owner FK -> users.user_id
	ClientID    string          `json:"clientID"` // FK -> clients.client_id (Not Null)
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`   // Derived: amount * taxRate / 100
	TotalAmount decimal.Decimal `json:"totalAmount"` // Derived: amount + taxAmount
	Status      BudgetStatus    `json:"status"`
	SentAt      *time.Time      `json:"sentAt,omitempty"`
	ApprovedAt  *time.Time      `json:"approvedAt,omitempty"`
	RejectedAt  *time.Time      `json:"rejectedAt,omitempty"`
	ClientName  string          `json:"clientName"` // Resolved at load time for display
	Items       []BudgetItem    `json:"items,omitempty"`
	AuditFields
}

// BudgetItem is a single line of a budget.
type BudgetItem struct {
	ItemID      string          `json:"itemID"`   // Primary Key (UUID)
	BudgetID    string          `json:"budgetID"` // FK -> budgets.budget_id
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"` // Derived: quantity * unitPrice
}

func (b Budget) SearchFields() []string {
	return []string{b.Title, b.ClientName}
}

func (b Budget) StatusValue() string { return string(b.Status) }

// Recalculate recomputes the derived monetary fields from Amount and TaxRate.
func (b *Budget) Recalculate() {
	b.TaxAmount, b.TotalAmount = ComputeTax(b.Amount, b.TaxRate)
}

// TransitionTo applies a guarded status change, setting exactly the matching
// transition timestamp. Returns ErrInvalidTransition (and changes nothing) when
// the target status is not reachable from the current one.
func (b *Budget) TransitionTo(status BudgetStatus, now time.Time) error {
	if !canTransition(budgetTransitions, b.Status, status) {
		return invalidTransitionErr(b.Status, status)
	}
	b.Status = status
	switch status {
	case BudgetSent:
		b.SentAt = &now
	case BudgetApproved:
		b.ApprovedAt = &now
	case BudgetRejected:
		b.RejectedAt = &now
	}
	b.Touch(now)
	return nil
}

// Duplicate returns a copy of the budget with a fresh identity, status reset to
// draft, transition timestamps cleared and the title suffixed. Line items are
// copied with new identities pointing at the new budget.
func (b Budget) Duplicate(newID string, newItemID func() string, now time.Time) Budget {
	dup := b
	dup.BudgetID = newID
	dup.Title = b.Title + " (Copy)"
	dup.Status = BudgetDraft
	dup.SentAt = nil
	dup.ApprovedAt = nil
	dup.RejectedAt = nil
	dup.CreatedAt = now
	dup.UpdatedAt = now
	dup.Items = make([]BudgetItem, len(b.Items))
	for i, item := range b.Items {
		item.ItemID = newItemID()
		item.BudgetID = newID
		dup.Items[i] = item
	}
	return dup
}
