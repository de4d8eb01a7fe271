package dto

import (
	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetItemRequest defines one line item of a budget.
type BudgetItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateBudgetRequest defines the data needed to create a new budget.
// Amount is derived from the line items when present, otherwise taken as-is.
type CreateBudgetRequest struct {
	ClientID    string              `json:"clientID" binding:"required"`
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	Amount      decimal.Decimal     `json:"amount"`
	TaxRate     decimal.Decimal     `json:"taxRate"`
	Items       []BudgetItemRequest `json:"items"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
// Pointers distinguish omitted fields from zero values. Changing Amount or
// TaxRate recomputes the derived tax and total fields. Items, when present,
// replaces the full line item set; a non-empty set drives the net amount the
// same way it does at creation.
type UpdateBudgetRequest struct {
	ClientID    *string              `json:"clientID"`
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Amount      *decimal.Decimal     `json:"amount"`
	TaxRate     *decimal.Decimal     `json:"taxRate"`
	Items       *[]BudgetItemRequest `json:"items"`
}

// ListBudgetsResponse wraps the list of budgets.
type ListBudgetsResponse struct {
	Budgets []domain.Budget `json:"budgets"`
}
