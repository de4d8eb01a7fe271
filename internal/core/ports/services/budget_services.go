package services

import (
	"context"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	"github.com/autonomoapp/autonomo_backend/internal/dto"
)

// BudgetReaderSvc defines read operations for budgets.
type BudgetReaderSvc interface {
	// ListBudgets returns the owner's budgets, newest first, filtered by
	// search text and status ("" = all).
	ListBudgets(ctx context.Context, userID, search, status string) ([]domain.Budget, error)

	GetBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error)

	// BudgetMetrics folds the owner's budgets into summary card figures.
	BudgetMetrics(ctx context.Context, userID string) (*domain.BudgetMetrics, error)
}

// BudgetWriterSvc defines write operations for budgets.
type BudgetWriterSvc interface {
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error)
	UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)

	// UpdateBudgetStatus applies a guarded status transition.
	UpdateBudgetStatus(ctx context.Context, userID, budgetID string, status domain.BudgetStatus) (*domain.Budget, error)

	// DuplicateBudget copies a budget and its line items into a fresh draft.
	DuplicateBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error)

	// SendBudget emails the budget to its client and, on success, marks it
	// sent. On failure the status is left untouched.
	SendBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error)

	DeleteBudget(ctx context.Context, userID, budgetID string) error
}

// BudgetSvcFacade combines all budget service interfaces.
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
