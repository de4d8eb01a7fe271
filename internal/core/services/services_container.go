package services

import (
	portsrepo "github.com/autonomoapp/autonomo_backend/internal/core/ports/repositories"
	portssvc "github.com/autonomoapp/autonomo_backend/internal/core/ports/services"
	"github.com/autonomoapp/autonomo_backend/internal/platform/cache"
	"github.com/autonomoapp/autonomo_backend/internal/platform/mailer"
)

// NewServiceContainer wires all services with their dependencies. The
// dashboard service doubles as the metrics invalidator, so it is constructed
// first and handed to every entity service.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, sender mailer.Sender, summaryCache *cache.SummaryCache) *portssvc.ServiceContainer {
	dashboard := NewDashboardService(repos, summaryCache)

	return &portssvc.ServiceContainer{
		Auth:      NewAuthService(repos.UserRepo),
		Client:    NewClientService(repos.ClientRepo, dashboard),
		Project:   NewProjectService(repos.ProjectRepo, dashboard),
		Task:      NewTaskService(repos.TaskRepo, dashboard),
		Budget:    NewBudgetService(repos.BudgetRepo, repos.ClientRepo, sender, dashboard),
		Invoice:   NewInvoiceService(repos.InvoiceRepo, repos.ClientRepo, sender, dashboard),
		Proposal:  NewProposalService(repos.ProposalRepo, repos.ClientRepo, sender, dashboard),
		Dashboard: dashboard,
	}
}
