package services

import (
	"context"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
)

// DashboardSvcFacade aggregates every entity's metrics for the dashboard view.
type DashboardSvcFacade interface {
	// Summary computes (or serves from cache) the owner's dashboard summary.
	Summary(ctx context.Context, userID string) (*domain.DashboardSummary, error)
}

// MetricsInvalidator is implemented by the dashboard service so that entity
// services can drop a user's cached summary after any write.
type MetricsInvalidator interface {
	InvalidateSummary(ctx context.Context, userID string)
}
