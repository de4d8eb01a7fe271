package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/autonomoapp/autonomo_backend/internal/apperrors"
	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	portssvc "github.com/autonomoapp/autonomo_backend/internal/core/ports/services"
	"github.com/autonomoapp/autonomo_backend/internal/core/services"
	"github.com/autonomoapp/autonomo_backend/internal/dto"
	"github.com/autonomoapp/autonomo_backend/internal/platform/mailer"
)

type BudgetServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockBudgetRepository
	mockClientRepo *MockClientRepository
	mockSender     *MockSender
	service        portssvc.BudgetSvcFacade
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBudgetRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockSender = new(MockSender)
	suite.service = services.NewBudgetService(suite.mockRepo, suite.mockClientRepo, suite.mockSender, noopInvalidator{})
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_AmountDerivedFromItems() {
	ctx := context.Background()
	userID := uuid.NewString()
	clientID := uuid.NewString()
	req := dto.CreateBudgetRequest{
		ClientID: clientID,
		Title:    "Website redesign",
		TaxRate:  decimal.NewFromInt(21),
		Items: []dto.BudgetItemRequest{
			{Description: "Design", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(50)},
			{Description: "Development", Quantity: decimal.NewFromInt(20), UnitPrice: decimal.NewFromInt(25)},
		},
	}

	suite.mockClientRepo.On("FindClientByID", ctx, userID, clientID).Return(&domain.Client{ClientID: clientID, UserID: userID}, nil).Once()
	suite.mockRepo.On("SaveBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.Amount.Equal(decimal.NewFromInt(1000)) &&
			b.TaxAmount.Equal(decimal.NewFromInt(210)) &&
			b.TotalAmount.Equal(decimal.NewFromInt(1210)) &&
			b.Status == domain.BudgetDraft &&
			len(b.Items) == 2
	})).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(budget)
	suite.True(budget.Amount.Equal(decimal.NewFromInt(1000)))
	suite.True(budget.TotalAmount.Equal(decimal.NewFromInt(1210)))
	suite.Len(budget.Items, 2)
	for _, item := range budget.Items {
		suite.Equal(budget.BudgetID, item.BudgetID)
	}
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_InvalidVATRate() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateBudgetRequest{
		ClientID: uuid.NewString(),
		Title:    "Bad rate",
		TaxRate:  decimal.NewFromInt(15),
	}

	budget, err := suite.service.CreateBudget(ctx, userID, req)

	suite.Require().Error(err)
	suite.Nil(budget)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_ItemsReplacedAndAmountRederived() {
	ctx := context.Background()
	userID := uuid.NewString()
	budgetID := uuid.NewString()
	oldItemID := uuid.NewString()
	budget := &domain.Budget{
		BudgetID: budgetID,
		UserID:   userID,
		ClientID: uuid.NewString(),
		Title:    "Website",
		Status:   domain.BudgetDraft,
		Amount:   decimal.NewFromInt(500),
		TaxRate:  decimal.NewFromInt(21),
		Items: []domain.BudgetItem{
			{ItemID: oldItemID, BudgetID: budgetID, Description: "Old work", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(500), Amount: decimal.NewFromInt(500)},
		},
	}
	req := dto.UpdateBudgetRequest{
		Items: &[]dto.BudgetItemRequest{
			{Description: "Design", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(300)},
			{Description: "Development", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(100)},
		},
	}

	suite.mockRepo.On("FindBudgetByID", ctx, userID, budgetID).Return(budget, nil).Once()
	suite.mockRepo.On("UpdateBudgetWithItems", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return len(b.Items) == 2 &&
			b.Items[0].ItemID != oldItemID &&
			b.Amount.Equal(decimal.NewFromInt(1000)) &&
			b.TaxAmount.Equal(decimal.NewFromInt(210)) &&
			b.TotalAmount.Equal(decimal.NewFromInt(1210))
	})).Return(nil).Once()

	updated, err := suite.service.UpdateBudget(ctx, userID, budgetID, req)

	suite.Require().NoError(err)
	suite.Len(updated.Items, 2)
	suite.True(updated.Amount.Equal(decimal.NewFromInt(1000)))
	suite.True(updated.TotalAmount.Equal(decimal.NewFromInt(1210)))
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_ClientChangeRefreshesClientName() {
	ctx := context.Background()
	userID := uuid.NewString()
	budgetID := uuid.NewString()
	newClientID := uuid.NewString()
	budget := &domain.Budget{
		BudgetID:   budgetID,
		UserID:     userID,
		ClientID:   uuid.NewString(),
		ClientName: "Old Client",
		Title:      "Rebrand",
		Status:     domain.BudgetDraft,
	}

	suite.mockRepo.On("FindBudgetByID", ctx, userID, budgetID).Return(budget, nil).Once()
	suite.mockClientRepo.On("FindClientByID", ctx, userID, newClientID).Return(&domain.Client{ClientID: newClientID, Name: "New Client"}, nil).Once()
	suite.mockRepo.On("UpdateBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.ClientID == newClientID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateBudget(ctx, userID, budgetID, dto.UpdateBudgetRequest{ClientID: &newClientID})

	suite.Require().NoError(err)
	suite.Equal(newClientID, updated.ClientID)
	suite.Equal("New Client", updated.ClientName)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestUpdateBudgetStatus_InvalidTransition() {
	ctx := context.Background()
	userID := uuid.NewString()
	budgetID := uuid.NewString()
	budget := &domain.Budget{
		BudgetID: budgetID,
		UserID:   userID,
		Status:   domain.BudgetApproved,
	}

	suite.mockRepo.On("FindBudgetByID", ctx, userID, budgetID).Return(budget, nil).Once()

	updated, err := suite.service.UpdateBudgetStatus(ctx, userID, budgetID, domain.BudgetDraft)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, domain.ErrInvalidTransition)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestUpdateBudgetStatus_ApproveSetsTimestamp() {
	ctx := context.Background()
	userID := uuid.NewString()
	budgetID := uuid.NewString()
	sentAt := time.Now().Add(-24 * time.Hour)
	budget := &domain.Budget{
		BudgetID: budgetID,
		UserID:   userID,
		Status:   domain.BudgetSent,
		SentAt:   &sentAt,
	}

	suite.mockRepo.On("FindBudgetByID", ctx, userID, budgetID).Return(budget, nil).Once()
	suite.mockRepo.On("UpdateBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.Status == domain.BudgetApproved && b.ApprovedAt != nil && b.SentAt != nil
	})).Return(nil).Once()

	updated, err := suite.service.UpdateBudgetStatus(ctx, userID, budgetID, domain.BudgetApproved)

	suite.Require().NoError(err)
	suite.Equal(domain.BudgetApproved, updated.Status)
	suite.NotNil(updated.ApprovedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestDuplicateBudget_ResetsLifecycle() {
	ctx := context.Background()
	userID := uuid.NewString()
	budgetID := uuid.NewString()
	sentAt := time.Now().Add(-48 * time.Hour)
	approvedAt := time.Now().Add(-24 * time.Hour)
	budget := &domain.Budget{
		BudgetID:   budgetID,
		UserID:     userID,
		ClientID:   uuid.NewString(),
		Title:      "Original",
		Status:     domain.BudgetApproved,
		SentAt:     &sentAt,
		ApprovedAt: &approvedAt,
		Items: []domain.BudgetItem{
			{ItemID: uuid.NewString(), BudgetID: budgetID, Description: "Line", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100), Amount: decimal.NewFromInt(100)},
		},
	}

	suite.mockRepo.On("FindBudgetByID", ctx, userID, budgetID).Return(budget, nil).Once()
	suite.mockRepo.On("SaveBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.BudgetID != budgetID &&
			b.Title == "Original (Copy)" &&
			b.Status == domain.BudgetDraft &&
			b.SentAt == nil && b.ApprovedAt == nil &&
			len(b.Items) == 1 &&
			b.Items[0].BudgetID == b.BudgetID &&
			b.Items[0].ItemID != budget.Items[0].ItemID
	})).Return(nil).Once()

	dup, err := suite.service.DuplicateBudget(ctx, userID, budgetID)

	suite.Require().NoError(err)
	suite.NotEqual(budgetID, dup.BudgetID)
	suite.Equal(domain.BudgetDraft, dup.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestSendBudget_FailureLeavesStatusUntouched() {
	ctx := context.Background()
	userID := uuid.NewString()
	budgetID := uuid.NewString()
	clientID := uuid.NewString()
	budget := &domain.Budget{
		BudgetID: budgetID,
		UserID:   userID,
		ClientID: clientID,
		Title:    "Pending work",
		Status:   domain.BudgetDraft,
	}

	suite.mockRepo.On("FindBudgetByID", ctx, userID, budgetID).Return(budget, nil).Once()
	suite.mockClientRepo.On("FindClientByID", ctx, userID, clientID).Return(&domain.Client{ClientID: clientID, Name: "ACME", Email: "billing@acme.test"}, nil).Once()
	suite.mockSender.On("SendDocument", ctx, mock.AnythingOfType("mailer.Document")).Return(nil, assert.AnError).Once()

	sent, err := suite.service.SendBudget(ctx, userID, budgetID)

	suite.Require().Error(err)
	suite.Nil(sent)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestSendBudget_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	budgetID := uuid.NewString()
	clientID := uuid.NewString()
	budget := &domain.Budget{
		BudgetID: budgetID,
		UserID:   userID,
		ClientID: clientID,
		Title:    "Pending work",
		Status:   domain.BudgetDraft,
	}

	suite.mockRepo.On("FindBudgetByID", ctx, userID, budgetID).Return(budget, nil).Once()
	suite.mockClientRepo.On("FindClientByID", ctx, userID, clientID).Return(&domain.Client{ClientID: clientID, Name: "ACME", Email: "billing@acme.test"}, nil).Once()
	suite.mockSender.On("SendDocument", ctx, mock.MatchedBy(func(doc mailer.Document) bool {
		return doc.EntityID == budgetID && doc.To == "billing@acme.test"
	})).Return(&mailer.SendResult{MessageID: "msg-1"}, nil).Once()
	suite.mockRepo.On("UpdateBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.Status == domain.BudgetSent && b.SentAt != nil
	})).Return(nil).Once()

	sent, err := suite.service.SendBudget(ctx, userID, budgetID)

	suite.Require().NoError(err)
	suite.Equal(domain.BudgetSent, sent.Status)
	suite.NotNil(sent.SentAt)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockSender.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestBudgetMetrics() {
	ctx := context.Background()
	userID := uuid.NewString()
	budgets := []domain.Budget{
		{Status: domain.BudgetDraft},
		{Status: domain.BudgetApproved, TotalAmount: decimal.NewFromInt(500)},
		{Status: domain.BudgetApproved, TotalAmount: decimal.NewFromInt(700)},
		{Status: domain.BudgetRejected},
	}

	suite.mockRepo.On("FindBudgetsByUser", ctx, userID).Return(budgets, nil).Once()

	metrics, err := suite.service.BudgetMetrics(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(4, metrics.TotalBudgets)
	suite.Equal(2, metrics.ApprovedBudgets)
	suite.Equal(1, metrics.RejectedBudgets)
	suite.InDelta(50.0, metrics.ConversionRate, 0.001)
	suite.True(metrics.ApprovedAmount.Equal(decimal.NewFromInt(1200)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestListBudgets_FilterApplied() {
	ctx := context.Background()
	userID := uuid.NewString()
	budgets := []domain.Budget{
		{Title: "Website redesign", Status: domain.BudgetDraft},
		{Title: "Logo refresh", Status: domain.BudgetSent},
		{Title: "website maintenance", Status: domain.BudgetSent},
	}

	suite.mockRepo.On("FindBudgetsByUser", ctx, userID).Return(budgets, nil).Once()

	filtered, err := suite.service.ListBudgets(ctx, userID, "WEBSITE", "sent")

	suite.Require().NoError(err)
	suite.Require().Len(filtered, 1)
	suite.Equal("website maintenance", filtered[0].Title)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
