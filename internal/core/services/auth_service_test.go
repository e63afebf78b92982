package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/marcostaira/travel-expense/internal/apperrors"
	"github.com/marcostaira/travel-expense/internal/core/domain"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/core/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
	"github.com/marcostaira/travel-expense/internal/platform/config"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, tenantID, userID string) (*domain.User, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, tenantID string) ([]domain.User, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) ListManagedCostCenterIDs(ctx context.Context, tenantID, userID string) ([]string, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRepository) AssignCostCenters(ctx context.Context, tenantID, userID string, costCenterIDs []string) error {
	args := m.Called(ctx, tenantID, userID, costCenterIDs)
	return args.Error(0)
}

// --- Test Suite ---
type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.AuthSvcFacade
	jwtSecret    string
	password     string
	user         *domain.User
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.jwtSecret = "test-secret"
	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "travel-expense",
	}
	suite.service = services.NewAuthService(cfg, suite.mockUserRepo)

	suite.password = "s3nh4-f0rte"
	hash, err := bcrypt.GenerateFromPassword([]byte(suite.password), bcrypt.MinCost)
	suite.Require().NoError(err)
	suite.user = &domain.User{
		UserID:       uuid.NewString(),
		TenantID:     uuid.NewString(),
		Name:         "Ana Souza",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleManager,
		IsActive:     true,
	}
}

// --- Test Cases ---

func (suite *AuthServiceTestSuite) TestLogin_IssuesTokenWithClaims() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(suite.user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: suite.password})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.NotEmpty(resp.AccessToken)
	suite.Equal(suite.user.UserID, resp.User.UserID)

	claims := &middleware.AccessClaims{}
	token, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(suite.jwtSecret), nil
	})
	suite.Require().NoError(err)
	suite.True(token.Valid)
	suite.Equal(suite.user.TenantID, claims.TenantID)
	suite.Equal(string(domain.RoleManager), claims.Role)
	suite.Equal(suite.user.UserID, claims.Subject)
}

func (suite *AuthServiceTestSuite) TestLogin_EmailIsNormalized() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(suite.user, nil).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Email: "  Ana@Example.com ", Password: suite.password})

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownEmailSameError() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "Credenciais inválidas")
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPasswordSameError() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(suite.user, nil).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "errada"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "Credenciais inválidas")
}

func (suite *AuthServiceTestSuite) TestLogin_InactiveUserRejected() {
	ctx := context.Background()
	suite.user.IsActive = false

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ana@example.com").Return(suite.user, nil).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: suite.password})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "Credenciais inválidas")
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
