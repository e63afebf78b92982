package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/marcostaira/travel-expense/internal/apperrors"
	"github.com/marcostaira/travel-expense/internal/core/domain"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/core/services"
	"github.com/marcostaira/travel-expense/internal/dto"
)

// --- Mock PolicyRepository ---
type MockPolicyRepository struct {
	mock.Mock
}

func (m *MockPolicyRepository) SavePolicy(ctx context.Context, policy domain.Policy) error {
	args := m.Called(ctx, policy)
	return args.Error(0)
}

func (m *MockPolicyRepository) UpdatePolicy(ctx context.Context, policy domain.Policy) error {
	args := m.Called(ctx, policy)
	return args.Error(0)
}

func (m *MockPolicyRepository) FindPolicyByID(ctx context.Context, tenantID, policyID string) (*domain.Policy, error) {
	args := m.Called(ctx, tenantID, policyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Policy), args.Error(1)
}

func (m *MockPolicyRepository) FindActivePolicyByCategory(ctx context.Context, tenantID string, category domain.ExpenseCategory) (*domain.Policy, error) {
	args := m.Called(ctx, tenantID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Policy), args.Error(1)
}

func (m *MockPolicyRepository) ListActivePolicies(ctx context.Context, tenantID string) ([]domain.Policy, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Policy), args.Error(1)
}

// --- Test Suite ---
type PolicyServiceTestSuite struct {
	suite.Suite
	mockPolicyRepo  *MockPolicyRepository
	mockExpenseRepo *MockExpenseRepository
	service         portssvc.PolicySvcFacade
	tenantID        string
	userID          string
	admin           domain.Actor
	manager         domain.Actor
}

func (suite *PolicyServiceTestSuite) SetupTest() {
	suite.mockPolicyRepo = new(MockPolicyRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.service = services.NewPolicyService(suite.mockPolicyRepo, suite.mockExpenseRepo)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.admin = domain.Actor{TenantID: suite.tenantID, UserID: uuid.NewString(), Role: domain.RoleAdmin}
	suite.manager = domain.Actor{TenantID: suite.tenantID, UserID: uuid.NewString(), Role: domain.RoleManager}
}

// --- Test Cases ---

func (suite *PolicyServiceTestSuite) TestEvaluate_NoActivePolicyIsValid() {
	ctx := context.Background()

	suite.mockPolicyRepo.On("FindActivePolicyByCategory", ctx, suite.tenantID, domain.CategoryOther).Return(nil, apperrors.ErrNotFound).Once()

	check, err := suite.service.Evaluate(ctx, suite.tenantID, domain.CategoryOther, time.Now(), suite.userID, decimal.NewFromInt(500), false)

	suite.Require().NoError(err)
	suite.True(check.Valid)
	suite.Empty(check.Errors)
	suite.Empty(check.Warnings)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SumDailySpent")
}

func (suite *PolicyServiceTestSuite) TestEvaluate_MissingReceiptInvalidates() {
	ctx := context.Background()
	threshold := decimal.NewFromInt(50)
	policy := &domain.Policy{
		PolicyID:            uuid.NewString(),
		TenantID:            suite.tenantID,
		Category:            domain.CategoryFood,
		ReceiptRequiredOver: &threshold,
		IsActive:            true,
	}

	suite.mockPolicyRepo.On("FindActivePolicyByCategory", ctx, suite.tenantID, domain.CategoryFood).Return(policy, nil).Once()

	check, err := suite.service.Evaluate(ctx, suite.tenantID, domain.CategoryFood, time.Now(), suite.userID, decimal.NewFromFloat(89.90), false)

	suite.Require().NoError(err)
	suite.False(check.Valid)
	suite.True(check.ReceiptRequired)
	suite.True(check.ReceiptMissing)
	suite.Require().Len(check.Errors, 1)
	suite.Contains(check.Errors[0], "Recibo obrigatório para valores acima de R$ 50.00")
}

func (suite *PolicyServiceTestSuite) TestEvaluate_ReceiptPresentStaysValid() {
	ctx := context.Background()
	threshold := decimal.NewFromInt(50)
	policy := &domain.Policy{
		PolicyID:            uuid.NewString(),
		TenantID:            suite.tenantID,
		Category:            domain.CategoryFood,
		ReceiptRequiredOver: &threshold,
		IsActive:            true,
	}

	suite.mockPolicyRepo.On("FindActivePolicyByCategory", ctx, suite.tenantID, domain.CategoryFood).Return(policy, nil).Once()

	check, err := suite.service.Evaluate(ctx, suite.tenantID, domain.CategoryFood, time.Now(), suite.userID, decimal.NewFromFloat(89.90), true)

	suite.Require().NoError(err)
	suite.True(check.Valid)
	suite.True(check.ReceiptRequired)
	suite.False(check.ReceiptMissing)
	suite.Empty(check.Errors)
}

func (suite *PolicyServiceTestSuite) TestEvaluate_DailyLimitExceededOnlyWarns() {
	ctx := context.Background()
	limit := decimal.NewFromInt(120)
	policy := &domain.Policy{
		PolicyID:   uuid.NewString(),
		TenantID:   suite.tenantID,
		Category:   domain.CategoryFood,
		DailyLimit: &limit,
		IsActive:   true,
	}

	suite.mockPolicyRepo.On("FindActivePolicyByCategory", ctx, suite.tenantID, domain.CategoryFood).Return(policy, nil).Once()
	suite.mockExpenseRepo.On("SumDailySpent", ctx, mock.AnythingOfType("repositories.DailySpendFilter")).Return(decimal.NewFromInt(100), nil).Once()

	check, err := suite.service.Evaluate(ctx, suite.tenantID, domain.CategoryFood, time.Now(), suite.userID, decimal.NewFromInt(30), true)

	suite.Require().NoError(err)
	suite.True(check.Valid)
	suite.True(check.ExceedsDailyLimit)
	suite.Require().NotNil(check.DailySpent)
	suite.Equal("130.00", check.DailySpent.StringFixed(2))
	suite.Require().Len(check.Warnings, 1)
	suite.Contains(check.Warnings[0], "Limite diário excedido (R$ 120.00 - gasto hoje: R$ 130.00)")
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *PolicyServiceTestSuite) TestEvaluate_WithinDailyLimitNoWarning() {
	ctx := context.Background()
	limit := decimal.NewFromInt(120)
	policy := &domain.Policy{
		PolicyID:   uuid.NewString(),
		TenantID:   suite.tenantID,
		Category:   domain.CategoryFood,
		DailyLimit: &limit,
		IsActive:   true,
	}

	suite.mockPolicyRepo.On("FindActivePolicyByCategory", ctx, suite.tenantID, domain.CategoryFood).Return(policy, nil).Once()
	suite.mockExpenseRepo.On("SumDailySpent", ctx, mock.AnythingOfType("repositories.DailySpendFilter")).Return(decimal.NewFromInt(40), nil).Once()

	check, err := suite.service.Evaluate(ctx, suite.tenantID, domain.CategoryFood, time.Now(), suite.userID, decimal.NewFromInt(30), true)

	suite.Require().NoError(err)
	suite.True(check.Valid)
	suite.False(check.ExceedsDailyLimit)
	suite.Empty(check.Warnings)
}

func (suite *PolicyServiceTestSuite) TestCreatePolicy_Success() {
	ctx := context.Background()
	threshold := decimal.NewFromInt(50)
	req := dto.CreatePolicyRequest{
		Category:            domain.CategoryFood,
		ReceiptRequiredOver: &threshold,
	}

	suite.mockPolicyRepo.On("SavePolicy", ctx, mock.AnythingOfType("domain.Policy")).Return(nil).Once()

	policy, err := suite.service.CreatePolicy(ctx, suite.admin, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(policy)
	suite.NotEmpty(policy.PolicyID)
	suite.True(policy.IsActive)
	suite.Equal(suite.admin.UserID, policy.CreatedBy)
	suite.mockPolicyRepo.AssertExpectations(suite.T())
}

func (suite *PolicyServiceTestSuite) TestCreatePolicy_NonAdminForbidden() {
	ctx := context.Background()

	_, err := suite.service.CreatePolicy(ctx, suite.manager, dto.CreatePolicyRequest{Category: domain.CategoryFood})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPolicyRepo.AssertNotCalled(suite.T(), "SavePolicy")
}

func (suite *PolicyServiceTestSuite) TestCreatePolicy_NonPositiveLimitFails() {
	ctx := context.Background()
	limit := decimal.NewFromInt(-10)

	_, err := suite.service.CreatePolicy(ctx, suite.admin, dto.CreatePolicyRequest{
		Category:   domain.CategoryFood,
		DailyLimit: &limit,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PolicyServiceTestSuite) TestRemovePolicy_SoftDeletes() {
	ctx := context.Background()
	policyID := uuid.NewString()
	policy := &domain.Policy{
		PolicyID: policyID,
		TenantID: suite.tenantID,
		Category: domain.CategoryFood,
		IsActive: true,
	}

	suite.mockPolicyRepo.On("FindPolicyByID", ctx, suite.tenantID, policyID).Return(policy, nil).Once()
	suite.mockPolicyRepo.On("UpdatePolicy", ctx, mock.MatchedBy(func(p domain.Policy) bool {
		return p.PolicyID == policyID && !p.IsActive
	})).Return(nil).Once()

	err := suite.service.RemovePolicy(ctx, suite.admin, policyID)

	suite.Require().NoError(err)
	suite.mockPolicyRepo.AssertExpectations(suite.T())
}

func (suite *PolicyServiceTestSuite) TestRemovePolicy_NonAdminForbidden() {
	ctx := context.Background()

	err := suite.service.RemovePolicy(ctx, suite.manager, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPolicyRepo.AssertNotCalled(suite.T(), "FindPolicyByID")
}

func TestPolicyService(t *testing.T) {
	suite.Run(t, new(PolicyServiceTestSuite))
}
