package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/autonomoapp/autonomo_backend/internal/apperrors"
	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	portssvc "github.com/autonomoapp/autonomo_backend/internal/core/ports/services"
	"github.com/autonomoapp/autonomo_backend/internal/core/services"
	"github.com/autonomoapp/autonomo_backend/internal/dto"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockInvoiceRepository
	mockClientRepo *MockClientRepository
	mockSender     *MockSender
	service        portssvc.InvoiceSvcFacade
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInvoiceRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockSender = new(MockSender)
	suite.service = services.NewInvoiceService(suite.mockRepo, suite.mockClientRepo, suite.mockSender, noopInvalidator{})
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_AssignsSequentialNumber() {
	ctx := context.Background()
	userID := uuid.NewString()
	clientID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		ClientID: clientID,
		Concept:  "Consulting",
		Amount:   decimal.NewFromInt(1000),
		TaxRate:  decimal.NewFromInt(21),
	}
	year := time.Now().Year()
	expectedNumber := fmt.Sprintf("F-%d-%03d", year, 5)

	suite.mockRepo.On("MaxInvoiceSequenceForYear", ctx, userID, year).Return(4, nil).Once()
	suite.mockClientRepo.On("FindClientByID", ctx, userID, clientID).Return(&domain.Client{ClientID: clientID, Name: "ACME"}, nil).Once()
	suite.mockRepo.On("SaveInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceNumber == expectedNumber &&
			inv.TaxAmount.Equal(decimal.NewFromInt(210)) &&
			inv.TotalAmount.Equal(decimal.NewFromInt(1210)) &&
			inv.Status == domain.InvoiceDraft
	})).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Equal(expectedNumber, invoice.InvoiceNumber)
	suite.True(invoice.TotalAmount.Equal(decimal.NewFromInt(1210)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NumberSkipsPastHighestAfterDelete() {
	// The user deleted F-YYYY-001 and still holds F-YYYY-002 and F-YYYY-003.
	// The next number must follow the highest surviving sequence, never
	// reassign 003 (a row count of 2 would).
	ctx := context.Background()
	userID := uuid.NewString()
	clientID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		ClientID: clientID,
		Concept:  "After delete",
		Amount:   decimal.NewFromInt(300),
	}
	year := time.Now().Year()

	suite.mockRepo.On("MaxInvoiceSequenceForYear", ctx, userID, year).Return(3, nil).Once()
	suite.mockClientRepo.On("FindClientByID", ctx, userID, clientID).Return(&domain.Client{ClientID: clientID, Name: "ACME"}, nil).Once()
	suite.mockRepo.On("SaveInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceNumber == fmt.Sprintf("F-%d-%03d", year, 4)
	})).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Equal(fmt.Sprintf("F-%d-%03d", year, 4), invoice.InvoiceNumber)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_NumberCollisionSurfacesAsDuplicate() {
	ctx := context.Background()
	userID := uuid.NewString()
	clientID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		ClientID: clientID,
		Concept:  "Racing",
		Amount:   decimal.NewFromInt(100),
	}
	year := time.Now().Year()

	suite.mockRepo.On("MaxInvoiceSequenceForYear", ctx, userID, year).Return(6, nil).Once()
	suite.mockClientRepo.On("FindClientByID", ctx, userID, clientID).Return(&domain.Client{ClientID: clientID, Name: "ACME"}, nil).Once()
	suite.mockRepo.On("SaveInvoice", ctx, mock.Anything).
		Return(fmt.Errorf("invoice number F-%d-007 already in use: %w", year, apperrors.ErrDuplicate)).Once()

	invoice, err := suite.service.CreateInvoice(ctx, userID, req)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_ClientChangeRefreshesClientName() {
	ctx := context.Background()
	userID := uuid.NewString()
	invoiceID := uuid.NewString()
	newClientID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:  invoiceID,
		UserID:     userID,
		ClientID:   uuid.NewString(),
		ClientName: "Old Client",
		Status:     domain.InvoiceDraft,
		Amount:     decimal.NewFromInt(100),
	}

	suite.mockRepo.On("FindInvoiceByID", ctx, userID, invoiceID).Return(invoice, nil).Once()
	suite.mockClientRepo.On("FindClientByID", ctx, userID, newClientID).Return(&domain.Client{ClientID: newClientID, Name: "New Client"}, nil).Once()
	suite.mockRepo.On("UpdateInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.ClientID == newClientID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateInvoice(ctx, userID, invoiceID, dto.UpdateInvoiceRequest{ClientID: &newClientID})

	suite.Require().NoError(err)
	suite.Equal(newClientID, updated.ClientID)
	suite.Equal("New Client", updated.ClientName)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_WithNewClientSingleTransaction() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		NewClient: &dto.CreateClientRequest{Name: "Fresh Client", Email: "new@client.test"},
		Concept:   "Kickoff",
		Amount:    decimal.NewFromInt(500),
	}
	year := time.Now().Year()

	suite.mockRepo.On("MaxInvoiceSequenceForYear", ctx, userID, year).Return(0, nil).Once()
	suite.mockRepo.On("SaveInvoiceWithClient", ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.Name == "Fresh Client" && c.UserID == userID
	}), mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.ClientID != "" && inv.ClientName == "Fresh Client"
	})).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, userID, req)

	suite.Require().NoError(err)
	suite.NotEmpty(invoice.ClientID)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockClientRepo.AssertNotCalled(suite.T(), "FindClientByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_RequiresClient() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		Concept: "No client",
		Amount:  decimal.NewFromInt(100),
	}

	invoice, err := suite.service.CreateInvoice(ctx, userID, req)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_PaidSetsOnlyPaidAt() {
	ctx := context.Background()
	userID := uuid.NewString()
	invoiceID := uuid.NewString()
	sentAt := time.Now().Add(-72 * time.Hour)
	invoice := &domain.Invoice{
		InvoiceID:   invoiceID,
		UserID:      userID,
		Status:      domain.InvoiceSent,
		SentAt:      &sentAt,
		Amount:      decimal.NewFromInt(1000),
		TaxAmount:   decimal.NewFromInt(210),
		TotalAmount: decimal.NewFromInt(1210),
	}

	suite.mockRepo.On("FindInvoiceByID", ctx, userID, invoiceID).Return(invoice, nil).Once()
	suite.mockRepo.On("UpdateInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoicePaid &&
			inv.PaidAt != nil &&
			inv.TotalAmount.Equal(decimal.NewFromInt(1210))
	})).Return(nil).Once()

	updated, err := suite.service.UpdateInvoiceStatus(ctx, userID, invoiceID, domain.InvoicePaid)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, updated.Status)
	suite.NotNil(updated.PaidAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_PaidToDraftRejected() {
	ctx := context.Background()
	userID := uuid.NewString()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID: invoiceID,
		UserID:    userID,
		Status:    domain.InvoicePaid,
	}

	suite.mockRepo.On("FindInvoiceByID", ctx, userID, invoiceID).Return(invoice, nil).Once()

	updated, err := suite.service.UpdateInvoiceStatus(ctx, userID, invoiceID, domain.InvoiceDraft)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, domain.ErrInvalidTransition)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestDuplicateInvoice_NewNumberAndDraft() {
	ctx := context.Background()
	userID := uuid.NewString()
	invoiceID := uuid.NewString()
	paidAt := time.Now().Add(-24 * time.Hour)
	invoice := &domain.Invoice{
		InvoiceID:     invoiceID,
		UserID:        userID,
		ClientID:      uuid.NewString(),
		InvoiceNumber: "F-2025-001",
		Concept:       "Retainer",
		Status:        domain.InvoicePaid,
		PaidAt:        &paidAt,
		Amount:        decimal.NewFromInt(800),
	}
	year := time.Now().Year()

	suite.mockRepo.On("FindInvoiceByID", ctx, userID, invoiceID).Return(invoice, nil).Once()
	suite.mockRepo.On("MaxInvoiceSequenceForYear", ctx, userID, year).Return(9, nil).Once()
	suite.mockRepo.On("SaveInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceID != invoiceID &&
			inv.InvoiceNumber == fmt.Sprintf("F-%d-%03d", year, 10) &&
			inv.Status == domain.InvoiceDraft &&
			inv.PaidAt == nil && inv.SentAt == nil
	})).Return(nil).Once()

	dup, err := suite.service.DuplicateInvoice(ctx, userID, invoiceID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceDraft, dup.Status)
	suite.NotEqual("F-2025-001", dup.InvoiceNumber)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestMarkOverdueInvoices() {
	ctx := context.Background()
	asOf := time.Now()
	due := asOf.Add(-48 * time.Hour)
	invoices := []domain.Invoice{
		{InvoiceID: uuid.NewString(), UserID: uuid.NewString(), Status: domain.InvoiceSent, DueDate: &due},
		{InvoiceID: uuid.NewString(), UserID: uuid.NewString(), Status: domain.InvoiceSent, DueDate: &due},
	}

	suite.mockRepo.On("FindPastDueInvoices", ctx, asOf).Return(invoices, nil).Once()
	suite.mockRepo.On("UpdateInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoiceOverdue
	})).Return(nil).Twice()

	marked, err := suite.service.MarkOverdueInvoices(ctx, asOf)

	suite.Require().NoError(err)
	suite.Equal(2, marked)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestMarkOverdueInvoices_ContinuesPastFailures() {
	ctx := context.Background()
	asOf := time.Now()
	due := asOf.Add(-48 * time.Hour)
	failing := domain.Invoice{InvoiceID: "bad", UserID: uuid.NewString(), Status: domain.InvoiceSent, DueDate: &due}
	ok := domain.Invoice{InvoiceID: "good", UserID: uuid.NewString(), Status: domain.InvoiceSent, DueDate: &due}

	suite.mockRepo.On("FindPastDueInvoices", ctx, asOf).Return([]domain.Invoice{failing, ok}, nil).Once()
	suite.mockRepo.On("UpdateInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceID == "bad"
	})).Return(apperrors.ErrNotFound).Once()
	suite.mockRepo.On("UpdateInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceID == "good"
	})).Return(nil).Once()

	marked, err := suite.service.MarkOverdueInvoices(ctx, asOf)

	suite.Require().NoError(err)
	suite.Equal(1, marked)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
