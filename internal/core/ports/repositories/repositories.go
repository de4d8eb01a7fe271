package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ClientRepo   ClientRepositoryFacade
	ProjectRepo  ProjectRepositoryFacade
	TaskRepo     TaskRepositoryFacade
	BudgetRepo   BudgetRepositoryFacade
	InvoiceRepo  InvoiceRepositoryFacade
	ProposalRepo ProposalRepositoryFacade
	UserRepo     UserRepositoryFacade
}
