package domain_test

import (
	"testing"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeBudgetMetrics(t *testing.T) {
	budgets := []domain.Budget{
		{Status: domain.BudgetDraft},
		{Status: domain.BudgetApproved, TotalAmount: decimal.RequireFromString("1210")},
		{Status: domain.BudgetApproved, TotalAmount: decimal.RequireFromString("550")},
		{Status: domain.BudgetRejected},
	}

	m := domain.ComputeBudgetMetrics(budgets)

	assert.Equal(t, 4, m.TotalBudgets)
	assert.Equal(t, 2, m.ApprovedBudgets)
	assert.Equal(t, 1, m.DraftBudgets)
	assert.Equal(t, 1, m.RejectedBudgets)
	assert.Equal(t, 50.0, m.ConversionRate)
	assert.True(t, m.ApprovedAmount.Equal(decimal.RequireFromString("1760")))
}

func TestComputeBudgetMetrics_Empty(t *testing.T) {
	m := domain.ComputeBudgetMetrics(nil)

	assert.Equal(t, 0, m.TotalBudgets)
	assert.Equal(t, 0.0, m.ConversionRate)
	assert.True(t, m.ApprovedAmount.IsZero())
}

func TestComputeInvoiceMetrics(t *testing.T) {
	invoices := []domain.Invoice{
		{Status: domain.InvoiceDraft, TotalAmount: decimal.RequireFromString("100")},
		{Status: domain.InvoiceSent, TotalAmount: decimal.RequireFromString("1210")},
		{Status: domain.InvoiceOverdue, TotalAmount: decimal.RequireFromString("300")},
		{Status: domain.InvoicePaid, TotalAmount: decimal.RequireFromString("500")},
		{Status: domain.InvoiceCancelled, TotalAmount: decimal.RequireFromString("999")},
	}

	m := domain.ComputeInvoiceMetrics(invoices)

	assert.Equal(t, 5, m.TotalInvoices)
	assert.Equal(t, 2, m.PendingInvoices)
	assert.Equal(t, 1, m.OverdueInvoices)
	assert.Equal(t, 1, m.PaidInvoices)
	assert.True(t, m.CollectedAmount.Equal(decimal.RequireFromString("500")), "collected = %s", m.CollectedAmount)
	assert.True(t, m.PendingAmount.Equal(decimal.RequireFromString("1510")), "pending = %s", m.PendingAmount)
}

func TestComputeTaskMetrics(t *testing.T) {
	tasks := []domain.Task{
		{Status: domain.TaskPending},
		{Status: domain.TaskInProgress},
		{Status: domain.TaskCompleted},
		{Status: domain.TaskCompleted},
		{Status: domain.TaskArchived},
	}

	m := domain.ComputeTaskMetrics(tasks)

	assert.Equal(t, 5, m.TotalTasks)
	assert.Equal(t, 1, m.PendingTasks)
	assert.Equal(t, 1, m.InProgressTasks)
	assert.Equal(t, 2, m.CompletedTasks)
	assert.Equal(t, 40.0, m.CompletionRate)
}

func TestComputeProposalMetrics(t *testing.T) {
	proposals := []domain.Proposal{
		{Status: domain.ProposalSent},
		{Status: domain.ProposalAccepted},
		{Status: domain.ProposalRejected},
	}

	m := domain.ComputeProposalMetrics(proposals)

	assert.Equal(t, 3, m.TotalProposals)
	assert.Equal(t, 1, m.AcceptedProposals)
	assert.InDelta(t, 33.33, m.AcceptanceRate, 0.01)
}

func TestComputeProjectMetrics(t *testing.T) {
	projects := []domain.Project{
		{Status: domain.ProjectActive},
		{Status: domain.ProjectActive},
		{Status: domain.ProjectCompleted},
		{Status: domain.ProjectCancelled},
	}

	m := domain.ComputeProjectMetrics(projects)

	assert.Equal(t, 4, m.TotalProjects)
	assert.Equal(t, 2, m.ActiveProjects)
	assert.Equal(t, 1, m.CompletedProjects)
}
