package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
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

	"github.com/marcostaira/travel-expense/internal/apperrors"
	"github.com/marcostaira/travel-expense/internal/core/domain"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/handlers"
	"github.com/marcostaira/travel-expense/internal/middleware"
	"github.com/marcostaira/travel-expense/internal/platform/config"
)

// --- Mock ExpenseService ---
type MockExpenseService struct {
	mock.Mock
}

func (m *MockExpenseService) CreateExpense(ctx context.Context, actor domain.Actor, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) GetExpense(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, actor, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) ListExpenses(ctx context.Context, actor domain.Actor, params dto.ListExpensesParams) ([]domain.Expense, int, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Expense), args.Int(1), args.Error(2)
}

func (m *MockExpenseService) UpdateExpense(ctx context.Context, actor domain.Actor, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	args := m.Called(ctx, actor, expenseID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) RemoveExpense(ctx context.Context, actor domain.Actor, expenseID string) error {
	args := m.Called(ctx, actor, expenseID)
	return args.Error(0)
}

func (m *MockExpenseService) SubmitExpense(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, actor, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) ApproveExpense(ctx context.Context, actor domain.Actor, expenseID string, notes string) (*domain.Expense, error) {
	args := m.Called(ctx, actor, expenseID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) RejectExpense(ctx context.Context, actor domain.Actor, expenseID string, reason string) (*domain.Expense, error) {
	args := m.Called(ctx, actor, expenseID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) AdjustExpense(ctx context.Context, actor domain.Actor, expenseID string, req dto.AdjustExpenseRequest) (*domain.Expense, error) {
	args := m.Called(ctx, actor, expenseID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) ReimburseExpense(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, actor, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseService) UploadExpenseFile(ctx context.Context, actor domain.Actor, expenseID string, upload dto.FileUpload) (*domain.ExpenseFile, error) {
	args := m.Called(ctx, actor, expenseID, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseFile), args.Error(1)
}

func (m *MockExpenseService) DeleteExpenseFile(ctx context.Context, actor domain.Actor, expenseID, fileID string) error {
	args := m.Called(ctx, actor, expenseID, fileID)
	return args.Error(0)
}

var _ portssvc.ExpenseSvcFacade = (*MockExpenseService)(nil)

// --- Test Suite ---
type ExpenseHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockExpenseService *MockExpenseService
	jwtSecret          string
	tenantID           string
	userID             string
}

// generateTestToken creates a signed token carrying the tenant, user and role claims.
func (suite *ExpenseHandlerTestSuite) generateTestToken(role domain.UserRole) string {
	claims := middleware.AccessClaims{
		TenantID: suite.tenantID,
		Role:     string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   suite.userID,
			Issuer:    "tem-test",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ExpenseHandlerTestSuite) actorWithRole(role domain.UserRole) domain.Actor {
	return domain.Actor{TenantID: suite.tenantID, UserID: suite.userID, Role: role}
}

func (suite *ExpenseHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.mockExpenseService = new(MockExpenseService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	container := &portssvc.ServiceContainer{Expense: suite.mockExpenseService}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *ExpenseHandlerTestSuite) doRequest(method, url string, body any, role domain.UserRole) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(role))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_Success() {
	expenseID := uuid.NewString()
	costCenterID := uuid.NewString()
	body := dto.CreateExpenseRequest{
		Category:     domain.CategoryFood,
		Date:         time.Now().UTC(),
		Currency:     "USD",
		Amount:       decimal.NewFromInt(100),
		CostCenterID: costCenterID,
		HasReceipt:   true,
	}
	created := &domain.Expense{
		ExpenseID:    expenseID,
		TenantID:     suite.tenantID,
		UserID:       suite.userID,
		CostCenterID: costCenterID,
		Category:     domain.CategoryFood,
		Currency:     "USD",
		Amount:       decimal.NewFromInt(100),
		AmountBrl:    decimal.NewFromFloat(550.00),
		Status:       domain.ExpenseDraft,
		PolicyCheck:  domain.ValidPolicyCheck(),
	}

	suite.mockExpenseService.On("CreateExpense",
		mock.Anything,
		suite.actorWithRole(domain.RoleCollaborator),
		mock.AnythingOfType("dto.CreateExpenseRequest"),
	).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/expenses", body, domain.RoleCollaborator)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ExpenseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expenseID, resp.ExpenseID)
	suite.Equal(domain.ExpenseDraft, resp.Status)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestCreateExpense_InvalidBodyRejected() {
	w := suite.doRequest(http.MethodPost, "/api/v1/expenses", map[string]any{"category": "FOOD"}, domain.RoleCollaborator)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "CreateExpense")
}

func (suite *ExpenseHandlerTestSuite) TestGetExpense_NotFound() {
	expenseID := uuid.NewString()

	suite.mockExpenseService.On("GetExpense",
		mock.Anything,
		suite.actorWithRole(domain.RoleCollaborator),
		expenseID,
	).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/expenses/"+expenseID, nil, domain.RoleCollaborator)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ExpenseHandlerTestSuite) TestListExpenses_ReturnsPage() {
	expenses := []domain.Expense{
		{
			ExpenseID:   uuid.NewString(),
			TenantID:    suite.tenantID,
			UserID:      suite.userID,
			Category:    domain.CategoryFood,
			Currency:    "BRL",
			Amount:      decimal.NewFromInt(45),
			AmountBrl:   decimal.NewFromInt(45),
			Status:      domain.ExpenseSubmitted,
			PolicyCheck: domain.ValidPolicyCheck(),
		},
	}

	suite.mockExpenseService.On("ListExpenses",
		mock.Anything,
		suite.actorWithRole(domain.RoleManager),
		mock.MatchedBy(func(p dto.ListExpensesParams) bool {
			return p.Page == 1 && p.Limit == 20
		}),
	).Return(expenses, 1, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/expenses", nil, domain.RoleManager)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListExpensesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Data, 1)
	suite.Equal(1, resp.Meta.Total)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestSubmitExpense_BusinessRuleMapsTo422() {
	expenseID := uuid.NewString()

	suite.mockExpenseService.On("SubmitExpense",
		mock.Anything,
		suite.actorWithRole(domain.RoleCollaborator),
		expenseID,
	).Return(nil, apperrors.NewBusinessRuleError("Apenas despesas em rascunho podem ser enviadas")).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/expenses/%s/submit", expenseID), nil, domain.RoleCollaborator)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(w.Body.String(), "Apenas despesas em rascunho podem ser enviadas")
}

func (suite *ExpenseHandlerTestSuite) TestApproveExpense_ForbiddenMapsTo403() {
	expenseID := uuid.NewString()

	suite.mockExpenseService.On("ApproveExpense",
		mock.Anything,
		suite.actorWithRole(domain.RoleCollaborator),
		expenseID,
		"",
	).Return(nil, apperrors.ErrForbidden).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/expenses/%s/approve", expenseID), nil, domain.RoleCollaborator)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *ExpenseHandlerTestSuite) TestRejectExpense_ReasonIsBound() {
	expenseID := uuid.NewString()
	rejected := &domain.Expense{
		ExpenseID:   expenseID,
		TenantID:    suite.tenantID,
		UserID:      uuid.NewString(),
		Status:      domain.ExpenseRejected,
		PolicyCheck: domain.ValidPolicyCheck(),
	}

	suite.mockExpenseService.On("RejectExpense",
		mock.Anything,
		suite.actorWithRole(domain.RoleManager),
		expenseID,
		"Fora da política",
	).Return(rejected, nil).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/expenses/%s/reject", expenseID),
		dto.RejectExpenseRequest{Reason: "Fora da política"}, domain.RoleManager)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockExpenseService.AssertExpectations(suite.T())
}

func (suite *ExpenseHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockExpenseService.AssertNotCalled(suite.T(), "ListExpenses")
}

func TestExpenseHandler(t *testing.T) {
	suite.Run(t, new(ExpenseHandlerTestSuite))
}
