package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/autonomoapp/autonomo_backend/internal/apperrors"
	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	portsrepo "github.com/autonomoapp/autonomo_backend/internal/core/ports/repositories"
	portssvc "github.com/autonomoapp/autonomo_backend/internal/core/ports/services"
	"github.com/autonomoapp/autonomo_backend/internal/dto"
	"github.com/autonomoapp/autonomo_backend/internal/platform/mailer"
)

// budgetService implements the budget business logic.
type budgetService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepositoryFacade
	clientRepo portsrepo.ClientReader
	sender     mailer.Sender
	metrics    portssvc.MetricsInvalidator
}

// NewBudgetService creates a new budget service instance.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, clientRepo portsrepo.ClientReader, sender mailer.Sender, metrics portssvc.MetricsInvalidator) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo: budgetRepo,
		clientRepo: clientRepo,
		sender:     sender,
		metrics:    metrics,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) ListBudgets(ctx context.Context, userID, search, status string) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.FindBudgetsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets")
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return domain.FilterList(budgets, search, status), nil
}

func (s *budgetService) GetBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget %s: %w", budgetID, err)
	}
	return budget, nil
}

func (s *budgetService) BudgetMetrics(ctx context.Context, userID string) (*domain.BudgetMetrics, error) {
	budgets, err := s.budgetRepo.FindBudgetsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets for metrics: %w", err)
	}
	m := domain.ComputeBudgetMetrics(budgets)
	return &m, nil
}

// buildBudgetItems materializes line items for the given budget with fresh
// identifiers and per-item amounts, and returns their sum.
func buildBudgetItems(budgetID string, reqs []dto.BudgetItemRequest) ([]domain.BudgetItem, decimal.Decimal) {
	items := make([]domain.BudgetItem, len(reqs))
	itemTotal := decimal.Zero
	for i, item := range reqs {
		amount := item.Quantity.Mul(item.UnitPrice).Round(2)
		items[i] = domain.BudgetItem{
			ItemID:      uuid.NewString(),
			BudgetID:    budgetID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      amount,
		}
		itemTotal = itemTotal.Add(amount)
	}
	return items, itemTotal
}

func (s *budgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	if !req.TaxRate.IsZero() && !domain.IsValidVATRate(req.TaxRate) {
		return nil, fmt.Errorf("tax rate %s is not a valid VAT band: %w", req.TaxRate, apperrors.ErrValidation)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative: %w", apperrors.ErrValidation)
	}

	// Verify the client exists and belongs to the caller.
	if _, err := s.clientRepo.FindClientByID(ctx, userID, req.ClientID); err != nil {
		return nil, fmt.Errorf("failed to resolve client %s: %w", req.ClientID, err)
	}

	now := time.Now()
	budgetID := uuid.NewString()

	items, itemTotal := buildBudgetItems(budgetID, req.Items)

	// Line items, when present, are the source of truth for the net amount.
	amount := req.Amount
	if len(items) > 0 {
		amount = itemTotal
	}

	budget := domain.Budget{
		BudgetID:    budgetID,
		UserID:      userID,
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      amount,
		TaxRate:     req.TaxRate,
		Status:      domain.BudgetDraft,
		Items:       items,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	budget.Recalculate()

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget")
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	s.metrics.InvalidateSummary(ctx, userID)
	return &budget, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget %s for update: %w", budgetID, err)
	}

	if req.ClientID != nil {
		client, err := s.clientRepo.FindClientByID(ctx, userID, *req.ClientID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve client %s: %w", *req.ClientID, err)
		}
		budget.ClientID = client.ClientID
		budget.ClientName = client.Name
	}
	if req.Title != nil {
		budget.Title = *req.Title
	}
	if req.Description != nil {
		budget.Description = *req.Description
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("amount must not be negative: %w", apperrors.ErrValidation)
		}
		budget.Amount = *req.Amount
	}
	if req.TaxRate != nil {
		if !req.TaxRate.IsZero() && !domain.IsValidVATRate(*req.TaxRate) {
			return nil, fmt.Errorf("tax rate %s is not a valid VAT band: %w", *req.TaxRate, apperrors.ErrValidation)
		}
		budget.TaxRate = *req.TaxRate
	}
	if req.Items != nil {
		items, itemTotal := buildBudgetItems(budget.BudgetID, *req.Items)
		budget.Items = items
		if len(items) > 0 {
			budget.Amount = itemTotal
		}
	}
	if req.Amount != nil || req.TaxRate != nil || req.Items != nil {
		budget.Recalculate()
	}
	budget.Touch(time.Now())

	if req.Items != nil {
		if err := s.budgetRepo.UpdateBudgetWithItems(ctx, *budget); err != nil {
			s.LogError(ctx, err, "Failed to update budget with items", "budget_id", budgetID)
			return nil, fmt.Errorf("failed to update budget %s: %w", budgetID, err)
		}
	} else if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget", "budget_id", budgetID)
		return nil, fmt.Errorf("failed to update budget %s: %w", budgetID, err)
	}

	s.metrics.InvalidateSummary(ctx, userID)
	return budget, nil
}

func (s *budgetService) UpdateBudgetStatus(ctx context.Context, userID, budgetID string, status domain.BudgetStatus) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget %s for status update: %w", budgetID, err)
	}

	if err := budget.TransitionTo(status, time.Now()); err != nil {
		return nil, err
	}

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to persist budget status", "budget_id", budgetID)
		return nil, fmt.Errorf("failed to update budget %s: %w", budgetID, err)
	}

	s.metrics.InvalidateSummary(ctx, userID)
	return budget, nil
}

func (s *budgetService) DuplicateBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget %s for duplication: %w", budgetID, err)
	}

	dup := budget.Duplicate(uuid.NewString(), uuid.NewString, time.Now())

	if err := s.budgetRepo.SaveBudget(ctx, dup); err != nil {
		s.LogError(ctx, err, "Failed to save duplicated budget", "budget_id", budgetID)
		return nil, fmt.Errorf("failed to save duplicated budget: %w", err)
	}

	s.metrics.InvalidateSummary(ctx, userID)
	return &dup, nil
}

func (s *budgetService) SendBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget %s for sending: %w", budgetID, err)
	}

	// Refuse up front when the transition would be rejected, so we never
	// deliver mail for a budget that cannot move to sent.
	if budget.Status != domain.BudgetDraft && budget.Status != domain.BudgetExpired {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, budget.Status, domain.BudgetSent)
	}

	client, err := s.clientRepo.FindClientByID(ctx, userID, budget.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve client for budget %s: %w", budgetID, err)
	}

	doc := mailer.Document{
		EntityID: budget.BudgetID,
		To:       client.Email,
		Subject:  fmt.Sprintf("Budget: %s", budget.Title),
		Body: fmt.Sprintf("Dear %s,\n\nPlease find the budget %q below.\n\nNet amount: %s\nVAT (%s%%): %s\nTotal: %s\n",
			client.Name, budget.Title, budget.Amount.StringFixed(2), budget.TaxRate.String(), budget.TaxAmount.StringFixed(2), budget.TotalAmount.StringFixed(2)),
	}

	result, err := s.sender.SendDocument(ctx, doc)
	if err != nil {
		s.LogError(ctx, err, "Failed to send budget", "budget_id", budgetID)
		return nil, fmt.Errorf("failed to send budget %s: %w", budgetID, err)
	}

	if err := budget.TransitionTo(domain.BudgetSent, time.Now()); err != nil {
		return nil, err
	}

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to persist sent budget", "budget_id", budgetID)
		return nil, fmt.Errorf("failed to update budget %s after send: %w", budgetID, err)
	}

	s.LogInfo(ctx, "Budget sent", "budget_id", budgetID, "message_id", result.MessageID)
	s.metrics.InvalidateSummary(ctx, userID)
	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	if err := s.budgetRepo.DeleteBudget(ctx, userID, budgetID); err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	s.metrics.InvalidateSummary(ctx, userID)
	return nil
}
