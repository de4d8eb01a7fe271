package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Metrics are pure folds over the owner's in-memory lists. They are recomputed
// on demand and never persisted.

// BudgetMetrics summarises the owner's budgets for the list view cards.
type BudgetMetrics struct {
	TotalBudgets    int             `json:"totalBudgets"`
	DraftBudgets    int             `json:"draftBudgets"`
	SentBudgets     int             `json:"sentBudgets"`
	ApprovedBudgets int             `json:"approvedBudgets"`
	RejectedBudgets int             `json:"rejectedBudgets"`
	ApprovedAmount  decimal.Decimal `json:"approvedAmount"`
	ConversionRate  float64         `json:"conversionRate"` // approved / total, as a percentage
}

// InvoiceMetrics summarises the owner's invoices.
type InvoiceMetrics struct {
	TotalInvoices   int             `json:"totalInvoices"`
	PendingInvoices int             `json:"pendingInvoices"` // sent + overdue
	PaidInvoices    int             `json:"paidInvoices"`
	OverdueInvoices int             `json:"overdueInvoices"`
	CollectedAmount decimal.Decimal `json:"collectedAmount"` // total of paid invoices
	PendingAmount   decimal.Decimal `json:"pendingAmount"`   // total of sent + overdue invoices
}

// ProposalMetrics summarises the owner's proposals.
type ProposalMetrics struct {
	TotalProposals    int     `json:"totalProposals"`
	SentProposals     int     `json:"sentProposals"`
	AcceptedProposals int     `json:"acceptedProposals"`
	RejectedProposals int     `json:"rejectedProposals"`
	AcceptanceRate    float64 `json:"acceptanceRate"` // accepted / total, as a percentage
}

// TaskMetrics summarises the owner's tasks.
type TaskMetrics struct {
	TotalTasks      int     `json:"totalTasks"`
	PendingTasks    int     `json:"pendingTasks"`
	InProgressTasks int     `json:"inProgressTasks"`
	CompletedTasks  int     `json:"completedTasks"`
	CompletionRate  float64 `json:"completionRate"` // completed / total, as a percentage
}

// ProjectMetrics summarises the owner's projects.
type ProjectMetrics struct {
	TotalProjects     int `json:"totalProjects"`
	ActiveProjects    int `json:"activeProjects"`
	CompletedProjects int `json:"completedProjects"`
}

// DashboardSummary aggregates every entity's metrics for the dashboard view.
type DashboardSummary struct {
	Budgets   BudgetMetrics   `json:"budgets"`
	Invoices  InvoiceMetrics  `json:"invoices"`
	Proposals ProposalMetrics `json:"proposals"`
	Tasks     TaskMetrics     `json:"tasks"`
	Projects  ProjectMetrics  `json:"projects"`
	Clients   int             `json:"clients"`
}

// percentage returns part/total as a percentage rounded to 2 decimals, 0 when
// total is zero.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*10000) / 100
}

// ComputeBudgetMetrics folds the given budgets into summary metrics.
func ComputeBudgetMetrics(budgets []Budget) BudgetMetrics {
	m := BudgetMetrics{
		TotalBudgets:   len(budgets),
		ApprovedAmount: decimal.Zero,
	}
	for _, b := range budgets {
		switch b.Status {
		case BudgetDraft:
			m.DraftBudgets++
		case BudgetSent:
			m.SentBudgets++
		case BudgetApproved:
			m.ApprovedBudgets++
			m.ApprovedAmount = m.ApprovedAmount.Add(b.TotalAmount)
		case BudgetRejected:
			m.RejectedBudgets++
		}
	}
	m.ConversionRate = percentage(m.ApprovedBudgets, m.TotalBudgets)
	return m
}

// ComputeInvoiceMetrics folds the given invoices into summary metrics.
func ComputeInvoiceMetrics(invoices []Invoice) InvoiceMetrics {
	m := InvoiceMetrics{
		TotalInvoices:   len(invoices),
		CollectedAmount: decimal.Zero,
		PendingAmount:   decimal.Zero,
	}
	for _, inv := range invoices {
		switch inv.Status {
		case InvoiceSent:
			m.PendingInvoices++
			m.PendingAmount = m.PendingAmount.Add(inv.TotalAmount)
		case InvoiceOverdue:
			m.PendingInvoices++
			m.OverdueInvoices++
			m.PendingAmount = m.PendingAmount.Add(inv.TotalAmount)
		case InvoicePaid:
			m.PaidInvoices++
			m.CollectedAmount = m.CollectedAmount.Add(inv.TotalAmount)
		}
	}
	return m
}

// ComputeProposalMetrics folds the given proposals into summary metrics.
func ComputeProposalMetrics(proposals []Proposal) ProposalMetrics {
	m := ProposalMetrics{TotalProposals: len(proposals)}
	for _, p := range proposals {
		switch p.Status {
		case ProposalSent:
			m.SentProposals++
		case ProposalAccepted:
			m.AcceptedProposals++
		case ProposalRejected:
			m.RejectedProposals++
		}
	}
	m.AcceptanceRate = percentage(m.AcceptedProposals, m.TotalProposals)
	return m
}

// ComputeTaskMetrics folds the given tasks into summary metrics.
func ComputeTaskMetrics(tasks []Task) TaskMetrics {
	m := TaskMetrics{TotalTasks: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case TaskPending:
			m.PendingTasks++
		case TaskInProgress:
			m.InProgressTasks++
		case TaskCompleted:
			m.CompletedTasks++
		}
	}
	m.CompletionRate = percentage(m.CompletedTasks, m.TotalTasks)
	return m
}

// ComputeProjectMetrics folds the given projects into summary metrics.
func ComputeProjectMetrics(projects []Project) ProjectMetrics {
	m := ProjectMetrics{TotalProjects: len(projects)}
	for _, p := range projects {
		switch p.Status {
		case ProjectActive:
			m.ActiveProjects++
		case ProjectCompleted:
			m.CompletedProjects++
		}
	}
	return m
}
