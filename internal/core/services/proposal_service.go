package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/autonomoapp/autonomo_backend/internal/apperrors"
	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	portsrepo "github.com/autonomoapp/autonomo_backend/internal/core/ports/repositories"
	portssvc "github.com/autonomoapp/autonomo_backend/internal/core/ports/services"
	"github.com/autonomoapp/autonomo_backend/internal/dto"
	"github.com/autonomoapp/autonomo_backend/internal/platform/mailer"
)

// proposalService implements the proposal business logic.
type proposalService struct {
	BaseService
	proposalRepo portsrepo.ProposalRepositoryFacade
	clientRepo   portsrepo.ClientReader
	sender       mailer.Sender
	metrics      portssvc.MetricsInvalidator
}

// NewProposalService creates a new proposal service instance.
func NewProposalService(proposalRepo portsrepo.ProposalRepositoryFacade, clientRepo portsrepo.ClientReader, sender mailer.Sender, metrics portssvc.MetricsInvalidator) portssvc.ProposalSvcFacade {
	return &proposalService{
		proposalRepo: proposalRepo,
		clientRepo:   clientRepo,
		sender:       sender,
		metrics:      metrics,
	}
}

var _ portssvc.ProposalSvcFacade = (*proposalService)(nil)

func (s *proposalService) ListProposals(ctx context.Context, userID, search, status string) ([]domain.Proposal, error) {
	proposals, err := s.proposalRepo.FindProposalsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list proposals")
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	return domain.FilterList(proposals, search, status), nil
}

func (s *proposalService) GetProposalByID(ctx context.Context, userID, proposalID string) (*domain.Proposal, error) {
	proposal, err := s.proposalRepo.FindProposalByID(ctx, userID, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal %s: %w", proposalID, err)
	}
	return proposal, nil
}

func (s *proposalService) ProposalMetrics(ctx context.Context, userID string) (*domain.ProposalMetrics, error) {
	proposals, err := s.proposalRepo.FindProposalsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load proposals for metrics: %w", err)
	}
	m := domain.ComputeProposalMetrics(proposals)
	return &m, nil
}

func (s *proposalService) CreateProposal(ctx context.Context, userID string, req dto.CreateProposalRequest) (*domain.Proposal, error) {
	if !req.TaxRate.IsZero() && !domain.IsValidVATRate(req.TaxRate) {
		return nil, fmt.Errorf("tax rate %s is not a valid VAT band: %w", req.TaxRate, apperrors.ErrValidation)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative: %w", apperrors.ErrValidation)
	}
	if req.ClientID != "" {
		if _, err := s.clientRepo.FindClientByID(ctx, userID, req.ClientID); err != nil {
			return nil, fmt.Errorf("failed to resolve client %s: %w", req.ClientID, err)
		}
	}

	now := time.Now()
	proposal := domain.Proposal{
		ProposalID:  uuid.NewString(),
		UserID:      userID,
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		TaxRate:     req.TaxRate,
		ValidUntil:  req.ValidUntil,
		Status:      domain.ProposalDraft,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	proposal.Recalculate()

	if err := s.proposalRepo.SaveProposal(ctx, proposal); err != nil {
		s.LogError(ctx, err, "Failed to save proposal")
		return nil, fmt.Errorf("failed to save proposal: %w", err)
	}

	s.metrics.InvalidateSummary(ctx, userID)
	return &proposal, nil
}

func (s *proposalService) UpdateProposal(ctx context.Context, userID, proposalID string, req dto.UpdateProposalRequest) (*domain.Proposal, error) {
	proposal, err := s.proposalRepo.FindProposalByID(ctx, userID, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal %s for update: %w", proposalID, err)
	}

	if req.ClientID != nil {
		if *req.ClientID != "" {
			client, err := s.clientRepo.FindClientByID(ctx, userID, *req.ClientID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve client %s: %w", *req.ClientID, err)
			}
			proposal.ClientName = client.Name
		} else {
			proposal.ClientName = ""
		}
		proposal.ClientID = *req.ClientID
	}
	if req.Title != nil {
		proposal.Title = *req.Title
	}
	if req.Description != nil {
		proposal.Description = *req.Description
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("amount must not be negative: %w", apperrors.ErrValidation)
		}
		proposal.Amount = *req.Amount
	}
	if req.TaxRate != nil {
		if !req.TaxRate.IsZero() && !domain.IsValidVATRate(*req.TaxRate) {
			return nil, fmt.Errorf("tax rate %s is not a valid VAT band: %w", *req.TaxRate, apperrors.ErrValidation)
		}
		proposal.TaxRate = *req.TaxRate
	}
	if req.ValidUntil != nil {
		proposal.ValidUntil = req.ValidUntil
	}
	if req.Amount != nil || req.TaxRate != nil {
		proposal.Recalculate()
	}
	proposal.Touch(time.Now())

	if err := s.proposalRepo.UpdateProposal(ctx, *proposal); err != nil {
		s.LogError(ctx, err, "Failed to update proposal", "proposal_id", proposalID)
		return nil, fmt.Errorf("failed to update proposal %s: %w", proposalID, err)
	}

	s.metrics.InvalidateSummary(ctx, userID)
	return proposal, nil
}

func (s *proposalService) UpdateProposalStatus(ctx context.Context, userID, proposalID string, status domain.ProposalStatus) (*domain.Proposal, error) {
	proposal, err := s.proposalRepo.FindProposalByID(ctx, userID, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal %s for status update: %w", proposalID, err)
	}

	if err := proposal.TransitionTo(status, time.Now()); err != nil {
		return nil, err
	}

	if err := s.proposalRepo.UpdateProposal(ctx, *proposal); err != nil {
		s.LogError(ctx, err, "Failed to persist proposal status", "proposal_id", proposalID)
		return nil, fmt.Errorf("failed to update proposal %s: %w", proposalID, err)
	}

	s.metrics.InvalidateSummary(ctx, userID)
	return proposal, nil
}

func (s *proposalService) DuplicateProposal(ctx context.Context, userID, proposalID string) (*domain.Proposal, error) {
	proposal, err := s.proposalRepo.FindProposalByID(ctx, userID, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal %s for duplication: %w", proposalID, err)
	}

	dup := proposal.Duplicate(uuid.NewString(), time.Now())

	if err := s.proposalRepo.SaveProposal(ctx, dup); err != nil {
		s.LogError(ctx, err, "Failed to save duplicated proposal", "proposal_id", proposalID)
		return nil, fmt.Errorf("failed to save duplicated proposal: %w", err)
	}

	s.metrics.InvalidateSummary(ctx, userID)
	return &dup, nil
}

func (s *proposalService) SendProposal(ctx context.Context, userID, proposalID string) (*domain.Proposal, error) {
	proposal, err := s.proposalRepo.FindProposalByID(ctx, userID, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal %s for sending: %w", proposalID, err)
	}

	if proposal.Status != domain.ProposalDraft && proposal.Status != domain.ProposalExpired {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, proposal.Status, domain.ProposalSent)
	}

	if proposal.ClientID == "" {
		return nil, fmt.Errorf("proposal %s has no client to send to: %w", proposalID, apperrors.ErrValidation)
	}

	client, err := s.clientRepo.FindClientByID(ctx, userID, proposal.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve client for proposal %s: %w", proposalID, err)
	}

	doc := mailer.Document{
		EntityID: proposal.ProposalID,
		To:       client.Email,
		Subject:  fmt.Sprintf("Proposal: %s", proposal.Title),
		Body: fmt.Sprintf("Dear %s,\n\nPlease find the proposal %q below.\n\n%s\n\nTotal: %s\n",
			client.Name, proposal.Title, proposal.Description, proposal.TotalAmount.StringFixed(2)),
	}

	result, err := s.sender.SendDocument(ctx, doc)
	if err != nil {
		s.LogError(ctx, err, "Failed to send proposal", "proposal_id", proposalID)
		return nil, fmt.Errorf("failed to send proposal %s: %w", proposalID, err)
	}

	if err := proposal.TransitionTo(domain.ProposalSent, time.Now()); err != nil {
		return nil, err
	}

	if err := s.proposalRepo.UpdateProposal(ctx, *proposal); err != nil {
		s.LogError(ctx, err, "Failed to persist sent proposal", "proposal_id", proposalID)
		return nil, fmt.Errorf("failed to update proposal %s after send: %w", proposalID, err)
	}

	s.LogInfo(ctx, "Proposal sent", "proposal_id", proposalID, "message_id", result.MessageID)
	s.metrics.InvalidateSummary(ctx, userID)
	return proposal, nil
}

func (s *proposalService) DeleteProposal(ctx context.Context, userID, proposalID string) error {
	if err := s.proposalRepo.DeleteProposal(ctx, userID, proposalID); err != nil {
		return fmt.Errorf("failed to delete proposal %s: %w", proposalID, err)
	}
	s.metrics.InvalidateSummary(ctx, userID)
	return nil
}
