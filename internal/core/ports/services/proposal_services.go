package services

import (
	"context"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	"github.com/autonomoapp/autonomo_backend/internal/dto"
)

// ProposalReaderSvc defines read operations for proposals.
type ProposalReaderSvc interface {
	ListProposals(ctx context.Context, userID, search, status string) ([]domain.Proposal, error)
	GetProposalByID(ctx context.Context, userID, proposalID string) (*domain.Proposal, error)
	ProposalMetrics(ctx context.Context, userID string) (*domain.ProposalMetrics, error)
}

// ProposalWriterSvc defines write operations for proposals.
type ProposalWriterSvc interface {
	CreateProposal(ctx context.Context, userID string, req dto.CreateProposalRequest) (*domain.Proposal, error)
	UpdateProposal(ctx context.Context, userID, proposalID string, req dto.UpdateProposalRequest) (*domain.Proposal, error)
	UpdateProposalStatus(ctx context.Context, userID, proposalID string, status domain.ProposalStatus) (*domain.Proposal, error)
	DuplicateProposal(ctx context.Context, userID, proposalID string) (*domain.Proposal, error)

	// SendProposal emails the proposal and, on success, marks it sent.
	SendProposal(ctx context.Context, userID, proposalID string) (*domain.Proposal, error)

	DeleteProposal(ctx context.Context, userID, proposalID string) error
}

// ProposalSvcFacade combines all proposal service interfaces.
type ProposalSvcFacade interface {
	ProposalReaderSvc
	ProposalWriterSvc
}
