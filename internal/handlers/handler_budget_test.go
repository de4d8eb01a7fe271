package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/autonomoapp/autonomo_backend/internal/apperrors"
	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	portssvc "github.com/autonomoapp/autonomo_backend/internal/core/ports/services"
	"github.com/autonomoapp/autonomo_backend/internal/dto"
	"github.com/autonomoapp/autonomo_backend/internal/handlers"
	"github.com/autonomoapp/autonomo_backend/internal/middleware"
	"github.com/autonomoapp/autonomo_backend/internal/platform/config"
)

// --- Mock BudgetService ---
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) ListBudgets(ctx context.Context, userID, search, status string) ([]domain.Budget, error) {
	args := m.Called(ctx, userID, search, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetService) GetBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, userID, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetService) BudgetMetrics(ctx context.Context, userID string) (*domain.BudgetMetrics, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetMetrics), args.Error(1)
}

func (m *MockBudgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetService) UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	args := m.Called(ctx, userID, budgetID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetService) UpdateBudgetStatus(ctx context.Context, userID, budgetID string, status domain.BudgetStatus) (*domain.Budget, error) {
	args := m.Called(ctx, userID, budgetID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetService) DuplicateBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, userID, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetService) SendBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, userID, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	args := m.Called(ctx, userID, budgetID)
	return args.Error(0)
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

// --- Test Suite ---
type BudgetHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockBudgetService *MockBudgetService
	jwtSecret         string
}

func (suite *BudgetHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "autonomo-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *BudgetHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockBudgetService = new(MockBudgetService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skip swagger route registration
	}
	services := &portssvc.ServiceContainer{
		Budget: suite.mockBudgetService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

// --- Test Cases ---

func (suite *BudgetHandlerTestSuite) TestListBudgets_Success() {
	userID := uuid.NewString()
	expected := []domain.Budget{
		{BudgetID: uuid.NewString(), UserID: userID, Title: "Website", Status: domain.BudgetDraft},
		{BudgetID: uuid.NewString(), UserID: userID, Title: "Branding", Status: domain.BudgetSent},
	}

	suite.mockBudgetService.On("ListBudgets", mock.Anything, userID, "web", "draft").Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/budgets?search=web&status=draft", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.ListBudgetsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Budgets, 2)
	suite.Equal("Website", body.Budgets[0].Title)
	suite.mockBudgetService.AssertExpectations(suite.T())
}

func (suite *BudgetHandlerTestSuite) TestListBudgets_MissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/budgets", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockBudgetService.AssertNotCalled(suite.T(), "ListBudgets", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BudgetHandlerTestSuite) TestGetBudget_NotFound() {
	userID := uuid.NewString()
	budgetID := uuid.NewString()

	suite.mockBudgetService.On("GetBudgetByID", mock.Anything, userID, budgetID).Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/budgets/"+budgetID, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockBudgetService.AssertExpectations(suite.T())
}

func (suite *BudgetHandlerTestSuite) TestUpdateBudgetStatus_InvalidTransitionConflict() {
	userID := uuid.NewString()
	budgetID := uuid.NewString()

	suite.mockBudgetService.On("UpdateBudgetStatus", mock.Anything, userID, budgetID, domain.BudgetDraft).
		Return(nil, domain.ErrInvalidTransition).Once()

	payload, _ := json.Marshal(dto.UpdateStatusRequest{Status: "draft"})
	req, _ := http.NewRequest(http.MethodPatch, "/api/v1/budgets/"+budgetID+"/status", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockBudgetService.AssertExpectations(suite.T())
}

func (suite *BudgetHandlerTestSuite) TestDuplicateBudget_Created() {
	userID := uuid.NewString()
	budgetID := uuid.NewString()
	dup := &domain.Budget{
		BudgetID: uuid.NewString(),
		UserID:   userID,
		Title:    "Website (Copy)",
		Status:   domain.BudgetDraft,
		Amount:   decimal.NewFromInt(1000),
	}

	suite.mockBudgetService.On("DuplicateBudget", mock.Anything, userID, budgetID).Return(dup, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/budgets/"+budgetID+"/duplicate", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var body domain.Budget
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Website (Copy)", body.Title)
	suite.Equal(domain.BudgetDraft, body.Status)
	suite.mockBudgetService.AssertExpectations(suite.T())
}

func TestBudgetHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetHandlerTestSuite))
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// Middleware sanity check: the logging middleware must still allow requests
// through when no token is involved, e.g. the health endpoint.
func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(testLogger()))
	handlers.RegisterRoutes(r, &config.Config{JWTSecret: "s", IsProduction: true}, &portssvc.ServiceContainer{})

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", w.Code)
	}
}
