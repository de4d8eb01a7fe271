package domain_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBudget() domain.Budget {
	b := domain.Budget{
		BudgetID: "budget-1",
		UserID:   "user-1",
		ClientID: "client-1",
		Title:    "Website revamp",
		Amount:   decimal.NewFromInt(2000),
		TaxRate:  decimal.NewFromInt(21),
		Status:   domain.BudgetDraft,
		Items: []domain.BudgetItem{
			{ItemID: "item-1", BudgetID: "budget-1", Description: "Design", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(80), Amount: decimal.NewFromInt(800)},
			{ItemID: "item-2", BudgetID: "budget-1", Description: "Development", Quantity: decimal.NewFromInt(20), UnitPrice: decimal.NewFromInt(60), Amount: decimal.NewFromInt(1200)},
		},
	}
	b.Recalculate()
	return b
}

func TestBudget_TransitionLifecycle(t *testing.T) {
	b := newTestBudget()
	now := time.Now()

	// draft cannot be approved directly
	err := b.TransitionTo(domain.BudgetApproved, now)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.BudgetDraft, b.Status)
	assert.Nil(t, b.ApprovedAt)

	require.NoError(t, b.TransitionTo(domain.BudgetSent, now))
	require.NotNil(t, b.SentAt)

	require.NoError(t, b.TransitionTo(domain.BudgetApproved, now))
	assert.Equal(t, domain.BudgetApproved, b.Status)
	require.NotNil(t, b.ApprovedAt)
	assert.Nil(t, b.RejectedAt)

	// approved is terminal
	assert.ErrorIs(t, b.TransitionTo(domain.BudgetSent, now), domain.ErrInvalidTransition)
}

func TestBudget_ExpiredCanBeResent(t *testing.T) {
	b := newTestBudget()
	now := time.Now()

	require.NoError(t, b.TransitionTo(domain.BudgetSent, now))
	firstSent := *b.SentAt
	require.NoError(t, b.TransitionTo(domain.BudgetExpired, now))

	later := now.Add(time.Hour)
	require.NoError(t, b.TransitionTo(domain.BudgetSent, later))
	assert.True(t, b.SentAt.After(firstSent))
}

func TestBudget_DuplicateCopiesItems(t *testing.T) {
	b := newTestBudget()
	now := time.Now()
	require.NoError(t, b.TransitionTo(domain.BudgetSent, now))
	require.NoError(t, b.TransitionTo(domain.BudgetApproved, now))

	itemSeq := 0
	newItemID := func() string {
		itemSeq++
		return fmt.Sprintf("new-item-%d", itemSeq)
	}

	dup := b.Duplicate("budget-2", newItemID, now)

	assert.Equal(t, "budget-2", dup.BudgetID)
	assert.Equal(t, "Website revamp (Copy)", dup.Title)
	assert.Equal(t, domain.BudgetDraft, dup.Status, "duplicate starts as draft regardless of source status")
	assert.Nil(t, dup.SentAt)
	assert.Nil(t, dup.ApprovedAt)
	assert.Nil(t, dup.RejectedAt)

	require.Len(t, dup.Items, 2)
	for i, item := range dup.Items {
		assert.Equal(t, "budget-2", item.BudgetID, "items must point at the new parent")
		assert.NotEqual(t, b.Items[i].ItemID, item.ItemID)
		assert.Equal(t, b.Items[i].Description, item.Description)
		assert.True(t, item.Quantity.Equal(b.Items[i].Quantity))
		assert.True(t, item.UnitPrice.Equal(b.Items[i].UnitPrice))
	}

	// source is untouched
	assert.Equal(t, domain.BudgetApproved, b.Status)
	assert.Equal(t, "item-1", b.Items[0].ItemID)
}
