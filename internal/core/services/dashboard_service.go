package services

import (
	"context"
	"fmt"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	portsrepo "github.com/autonomoapp/autonomo_backend/internal/core/ports/repositories"
	portssvc "github.com/autonomoapp/autonomo_backend/internal/core/ports/services"
	"github.com/autonomoapp/autonomo_backend/internal/platform/cache"
)

// dashboardService aggregates every entity's metrics into the dashboard
// summary, serving from the Redis cache when possible. A nil cache disables
// caching and every call recomputes.
type dashboardService struct {
	BaseService
	repos *portsrepo.RepositoryProvider
	cache *cache.SummaryCache
}

// NewDashboardService creates a new dashboard service instance.
func NewDashboardService(repos *portsrepo.RepositoryProvider, summaryCache *cache.SummaryCache) *dashboardService {
	return &dashboardService{repos: repos, cache: summaryCache}
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)
var _ portssvc.MetricsInvalidator = (*dashboardService)(nil)

func (s *dashboardService) Summary(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err != nil {
			// Cache trouble is not fatal, fall through to recomputation.
			s.LogError(ctx, err, "Dashboard cache read failed")
		}
		if cached != nil {
			return cached, nil
		}
	}

	summary, err := s.compute(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, summary); err != nil {
			s.LogError(ctx, err, "Dashboard cache write failed")
		}
	}

	return summary, nil
}

func (s *dashboardService) compute(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	budgets, err := s.repos.BudgetRepo.FindBudgetsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets for dashboard: %w", err)
	}
	invoices, err := s.repos.InvoiceRepo.FindInvoicesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices for dashboard: %w", err)
	}
	proposals, err := s.repos.ProposalRepo.FindProposalsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load proposals for dashboard: %w", err)
	}
	tasks, err := s.repos.TaskRepo.FindTasksByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for dashboard: %w", err)
	}
	projects, err := s.repos.ProjectRepo.FindProjectsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects for dashboard: %w", err)
	}
	clients, err := s.repos.ClientRepo.FindClientsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load clients for dashboard: %w", err)
	}

	return &domain.DashboardSummary{
		Budgets:   domain.ComputeBudgetMetrics(budgets),
		Invoices:  domain.ComputeInvoiceMetrics(invoices),
		Proposals: domain.ComputeProposalMetrics(proposals),
		Tasks:     domain.ComputeTaskMetrics(tasks),
		Projects:  domain.ComputeProjectMetrics(projects),
		Clients:   len(clients),
	}, nil
}

// InvalidateSummary drops the owner's cached summary. Failures are logged and
// swallowed; the worst case is one stale read within the TTL.
func (s *dashboardService) InvalidateSummary(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.LogError(ctx, err, "Dashboard cache invalidation failed", "user_id", userID)
	}
}
