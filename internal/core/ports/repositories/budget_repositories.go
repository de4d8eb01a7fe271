package repositories

import (
	"context"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
)

// BudgetReader defines read operations for budget data.
type BudgetReader interface {
	// FindBudgetByID retrieves one budget owned by userID, including its line
	// items and the resolved client name.
	FindBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error)

	// FindBudgetsByUser retrieves all budgets owned by userID, newest first,
	// with client names resolved. Line items are not loaded for list views.
	FindBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budget data.
type BudgetWriter interface {
	// SaveBudget persists a new budget and its line items atomically.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget updates a budget's mutable fields, including status and
	// transition timestamps. Line items are left untouched.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudgetWithItems updates the budget and replaces its line item set
	// atomically.
	UpdateBudgetWithItems(ctx context.Context, budget domain.Budget) error

	// DeleteBudget hard-deletes a budget and its line items.
	DeleteBudget(ctx context.Context, userID, budgetID string) error
}

// BudgetRepositoryFacade combines all budget repository interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
