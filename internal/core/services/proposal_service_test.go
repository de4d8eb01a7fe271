package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	portssvc "github.com/autonomoapp/autonomo_backend/internal/core/ports/services"
	"github.com/autonomoapp/autonomo_backend/internal/core/services"
	"github.com/autonomoapp/autonomo_backend/internal/dto"
)

type ProposalServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockProposalRepository
	mockClientRepo *MockClientRepository
	mockSender     *MockSender
	service        portssvc.ProposalSvcFacade
}

func (suite *ProposalServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockProposalRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockSender = new(MockSender)
	suite.service = services.NewProposalService(suite.mockRepo, suite.mockClientRepo, suite.mockSender, noopInvalidator{})
}

func (suite *ProposalServiceTestSuite) TestUpdateProposal_ClientChangeRefreshesClientName() {
	ctx := context.Background()
	userID := uuid.NewString()
	proposalID := uuid.NewString()
	newClientID := uuid.NewString()
	proposal := &domain.Proposal{
		ProposalID: proposalID,
		UserID:     userID,
		ClientID:   uuid.NewString(),
		ClientName: "Old Client",
		Title:      "Maintenance plan",
		Status:     domain.ProposalDraft,
	}

	suite.mockRepo.On("FindProposalByID", ctx, userID, proposalID).Return(proposal, nil).Once()
	suite.mockClientRepo.On("FindClientByID", ctx, userID, newClientID).Return(&domain.Client{ClientID: newClientID, Name: "New Client"}, nil).Once()
	suite.mockRepo.On("UpdateProposal", ctx, mock.MatchedBy(func(p domain.Proposal) bool {
		return p.ClientID == newClientID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateProposal(ctx, userID, proposalID, dto.UpdateProposalRequest{ClientID: &newClientID})

	suite.Require().NoError(err)
	suite.Equal(newClientID, updated.ClientID)
	suite.Equal("New Client", updated.ClientName)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ProposalServiceTestSuite) TestUpdateProposal_ClientClearedClearsClientName() {
	ctx := context.Background()
	userID := uuid.NewString()
	proposalID := uuid.NewString()
	empty := ""
	proposal := &domain.Proposal{
		ProposalID: proposalID,
		UserID:     userID,
		ClientID:   uuid.NewString(),
		ClientName: "Old Client",
		Title:      "Unassigned work",
		Status:     domain.ProposalDraft,
	}

	suite.mockRepo.On("FindProposalByID", ctx, userID, proposalID).Return(proposal, nil).Once()
	suite.mockRepo.On("UpdateProposal", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.UpdateProposal(ctx, userID, proposalID, dto.UpdateProposalRequest{ClientID: &empty})

	suite.Require().NoError(err)
	suite.Empty(updated.ClientID)
	suite.Empty(updated.ClientName)
	suite.mockClientRepo.AssertNotCalled(suite.T(), "FindClientByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestProposalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProposalServiceTestSuite))
}
