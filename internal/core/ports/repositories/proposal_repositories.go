package repositories

import (
	"context"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
)

// ProposalReader defines read operations for proposal data.
type ProposalReader interface {
	FindProposalByID(ctx context.Context, userID, proposalID string) (*domain.Proposal, error)

	// FindProposalsByUser retrieves all proposals owned by userID, newest
	// first, with client names resolved.
	FindProposalsByUser(ctx context.Context, userID string) ([]domain.Proposal, error)
}

// ProposalWriter defines write operations for proposal data.
type ProposalWriter interface {
	SaveProposal(ctx context.Context, proposal domain.Proposal) error
	UpdateProposal(ctx context.Context, proposal domain.Proposal) error
	DeleteProposal(ctx context.Context, userID, proposalID string) error
}

// ProposalRepositoryFacade combines all proposal repository interfaces.
type ProposalRepositoryFacade interface {
	ProposalReader
	ProposalWriter
}
