package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	"github.com/autonomoapp/autonomo_backend/internal/platform/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*cache.SummaryCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return cache.NewSummaryCache(client, time.Minute), mr
}

func TestSummaryCache_MissReturnsNil(t *testing.T) {
	c, _ := newTestCache(t)

	summary, err := c.Get(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestSummaryCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	want := &domain.DashboardSummary{
		Budgets: domain.BudgetMetrics{TotalBudgets: 4, ApprovedBudgets: 2, ConversionRate: 50},
		Tasks:   domain.TaskMetrics{TotalTasks: 3, CompletedTasks: 1},
		Clients: 7,
	}
	require.NoError(t, c.Set(ctx, "user-1", want))

	got, err := c.Get(ctx, "user-1")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Budgets.TotalBudgets, got.Budgets.TotalBudgets)
	assert.Equal(t, want.Budgets.ConversionRate, got.Budgets.ConversionRate)
	assert.Equal(t, want.Clients, got.Clients)
}

func TestSummaryCache_KeysAreScopedPerUser(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "user-1", &domain.DashboardSummary{Clients: 1}))

	got, err := c.Get(ctx, "user-2")
	require.NoError(t, err)
	assert.Nil(t, got, "another user's summary must not leak")
}

func TestSummaryCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "user-1", &domain.DashboardSummary{Clients: 1}))
	require.NoError(t, c.Invalidate(ctx, "user-1"))

	got, err := c.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSummaryCache_EntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "user-1", &domain.DashboardSummary{Clients: 1}))
	mr.FastForward(2 * time.Minute)

	got, err := c.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
