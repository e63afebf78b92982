package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/marcostaira/travel-expense/internal/apperrors"
	"github.com/marcostaira/travel-expense/internal/core/domain"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/core/services"
	"github.com/marcostaira/travel-expense/internal/dto"
)

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mockCcRepo   *MockCostCenterRepository
	service      portssvc.UserSvcFacade
	tenantID     string
	admin        domain.Actor
	manager      domain.Actor
	collaborator domain.Actor
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCcRepo = new(MockCostCenterRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockCcRepo)

	suite.tenantID = uuid.NewString()
	suite.admin = domain.Actor{TenantID: suite.tenantID, UserID: uuid.NewString(), Role: domain.RoleAdmin}
	suite.manager = domain.Actor{TenantID: suite.tenantID, UserID: uuid.NewString(), Role: domain.RoleManager}
	suite.collaborator = domain.Actor{TenantID: suite.tenantID, UserID: uuid.NewString(), Role: domain.RoleCollaborator}
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestCreateUser_HashesPassword() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Bruno Lima",
		Email:    "Bruno@Example.com",
		Password: "senha-segura",
		Role:     domain.RoleCollaborator,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "bruno@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, suite.admin, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.Equal("bruno@example.com", user.Email)
	suite.True(user.IsActive)
	suite.NotEqual(req.Password, user.PasswordHash)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_NonAdminForbidden() {
	ctx := context.Background()

	_, err := suite.service.CreateUser(ctx, suite.manager, dto.CreateUserRequest{
		Name:     "Bruno Lima",
		Email:    "bruno@example.com",
		Password: "senha-segura",
		Role:     domain.RoleCollaborator,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser")
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmailFails() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "bruno@example.com"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "bruno@example.com").Return(existing, nil).Once()

	_, err := suite.service.CreateUser(ctx, suite.admin, dto.CreateUserRequest{
		Name:     "Bruno Lima",
		Email:    "bruno@example.com",
		Password: "senha-segura",
		Role:     domain.RoleCollaborator,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.Contains(err.Error(), "Email já cadastrado")
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser")
}

func (suite *UserServiceTestSuite) TestListUsers_CollaboratorForbidden() {
	ctx := context.Background()

	_, err := suite.service.ListUsers(ctx, suite.collaborator)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestAssignCostCenters_OnlyManagersReceiveThem() {
	ctx := context.Background()
	userID := uuid.NewString()
	target := &domain.User{UserID: userID, TenantID: suite.tenantID, Role: domain.RoleCollaborator}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.tenantID, userID).Return(target, nil).Once()

	err := suite.service.AssignCostCenters(ctx, suite.admin, userID, []string{uuid.NewString()})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.Contains(err.Error(), "Apenas gestores podem receber centros de custo")
	suite.mockUserRepo.AssertNotCalled(suite.T(), "AssignCostCenters")
}

func (suite *UserServiceTestSuite) TestAssignCostCenters_ValidatesEachCostCenter() {
	ctx := context.Background()
	userID := uuid.NewString()
	ccID := uuid.NewString()
	target := &domain.User{UserID: userID, TenantID: suite.tenantID, Role: domain.RoleManager}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.tenantID, userID).Return(target, nil).Once()
	suite.mockCcRepo.On("FindActiveCostCenterByID", ctx, suite.tenantID, ccID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.AssignCostCenters(ctx, suite.admin, userID, []string{ccID})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "Centro de custo não encontrado ou inativo")
}

func (suite *UserServiceTestSuite) TestAssignCostCenters_ReplacesAssignments() {
	ctx := context.Background()
	userID := uuid.NewString()
	ccIDs := []string{uuid.NewString(), uuid.NewString()}
	target := &domain.User{UserID: userID, TenantID: suite.tenantID, Role: domain.RoleManager}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.tenantID, userID).Return(target, nil).Once()
	for _, ccID := range ccIDs {
		suite.mockCcRepo.On("FindActiveCostCenterByID", ctx, suite.tenantID, ccID).Return(&domain.CostCenter{CostCenterID: ccID}, nil).Once()
	}
	suite.mockUserRepo.On("AssignCostCenters", ctx, suite.tenantID, userID, ccIDs).Return(nil).Once()

	err := suite.service.AssignCostCenters(ctx, suite.admin, userID, ccIDs)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestScopeFor_AdminIsTenantWide() {
	ctx := context.Background()

	scope, err := suite.service.ScopeFor(ctx, suite.admin)

	suite.Require().NoError(err)
	suite.Equal(domain.ScopeTenantWide, scope.Kind)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "ListManagedCostCenterIDs")
}

func (suite *UserServiceTestSuite) TestScopeFor_ManagerGetsAssignedCostCenters() {
	ctx := context.Background()
	ccIDs := []string{uuid.NewString(), uuid.NewString()}

	suite.mockUserRepo.On("ListManagedCostCenterIDs", ctx, suite.tenantID, suite.manager.UserID).Return(ccIDs, nil).Once()

	scope, err := suite.service.ScopeFor(ctx, suite.manager)

	suite.Require().NoError(err)
	suite.Equal(domain.ScopeCostCenters, scope.Kind)
	suite.Equal(ccIDs, scope.CostCenterIDs)
}

func (suite *UserServiceTestSuite) TestScopeFor_CollaboratorIsSelf() {
	ctx := context.Background()

	scope, err := suite.service.ScopeFor(ctx, suite.collaborator)

	suite.Require().NoError(err)
	suite.Equal(domain.ScopeSelf, scope.Kind)
	suite.Equal(suite.collaborator.UserID, scope.UserID)
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
