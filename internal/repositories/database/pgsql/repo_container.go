package pgsql

import (
	portsrepo "github.com/autonomoapp/autonomo_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClientRepo:   newPgxClientRepository(dbPool),
		ProjectRepo:  newPgxProjectRepository(dbPool),
		TaskRepo:     newPgxTaskRepository(dbPool),
		BudgetRepo:   newPgxBudgetRepository(dbPool),
		InvoiceRepo:  newPgxInvoiceRepository(dbPool),
		ProposalRepo: newPgxProposalRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
	}
}
