package services_test

import (
	"context"
	"testing"

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

// --- Mock AdvanceRepository ---
type MockAdvanceRepository struct {
	mock.Mock
}

func (m *MockAdvanceRepository) SaveAdvance(ctx context.Context, advance domain.Advance) error {
	args := m.Called(ctx, advance)
	return args.Error(0)
}

func (m *MockAdvanceRepository) UpdateAdvance(ctx context.Context, advance domain.Advance) error {
	args := m.Called(ctx, advance)
	return args.Error(0)
}

func (m *MockAdvanceRepository) FindAdvanceByID(ctx context.Context, tenantID, advanceID string) (*domain.Advance, error) {
	args := m.Called(ctx, tenantID, advanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Advance), args.Error(1)
}

func (m *MockAdvanceRepository) ListAdvancesByTrip(ctx context.Context, tenantID, tripID string) ([]domain.Advance, error) {
	args := m.Called(ctx, tenantID, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Advance), args.Error(1)
}

// --- Test Suite ---
type AdvanceServiceTestSuite struct {
	suite.Suite
	mockAdvanceRepo *MockAdvanceRepository
	mockTripRepo    *MockTripRepository
	mockUserSvc     *MockUserService
	service         portssvc.AdvanceSvcFacade
	tenantID        string
	requester       domain.Actor
	manager         domain.Actor
	admin           domain.Actor
	trip            *domain.Trip
}

func (suite *AdvanceServiceTestSuite) SetupTest() {
	suite.mockAdvanceRepo = new(MockAdvanceRepository)
	suite.mockTripRepo = new(MockTripRepository)
	suite.mockUserSvc = new(MockUserService)
	suite.service = services.NewAdvanceService(suite.mockAdvanceRepo, suite.mockTripRepo, suite.mockUserSvc)

	suite.tenantID = uuid.NewString()
	suite.requester = domain.Actor{TenantID: suite.tenantID, UserID: uuid.NewString(), Role: domain.RoleCollaborator}
	suite.manager = domain.Actor{TenantID: suite.tenantID, UserID: uuid.NewString(), Role: domain.RoleManager}
	suite.admin = domain.Actor{TenantID: suite.tenantID, UserID: uuid.NewString(), Role: domain.RoleAdmin}
	suite.trip = &domain.Trip{
		TripID:       uuid.NewString(),
		TenantID:     suite.tenantID,
		RequesterID:  suite.requester.UserID,
		CostCenterID: uuid.NewString(),
		Status:       domain.TripApproved,
	}
}

func (suite *AdvanceServiceTestSuite) advanceInStatus(status domain.AdvanceStatus) *domain.Advance {
	return &domain.Advance{
		AdvanceID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		TripID:      suite.trip.TripID,
		RequesterID: suite.requester.UserID,
		Amount:      decimal.NewFromInt(800),
		Reason:      "Hospedagem e alimentação",
		Status:      status,
	}
}

// --- Test Cases ---

func (suite *AdvanceServiceTestSuite) TestCreateAdvance_AgainstApprovedTrip() {
	ctx := context.Background()
	req := dto.CreateAdvanceRequest{
		TripID: suite.trip.TripID,
		Amount: decimal.NewFromInt(800),
		Reason: "Hospedagem e alimentação",
	}

	suite.mockTripRepo.On("FindTripByID", ctx, suite.tenantID, suite.trip.TripID).Return(suite.trip, nil).Once()
	suite.mockAdvanceRepo.On("SaveAdvance", ctx, mock.AnythingOfType("domain.Advance")).Return(nil).Once()

	advance, err := suite.service.CreateAdvance(ctx, suite.requester, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(advance)
	suite.NotEmpty(advance.AdvanceID)
	suite.Equal(domain.AdvanceDraft, advance.Status)
	suite.Equal(suite.requester.UserID, advance.RequesterID)
	suite.mockAdvanceRepo.AssertExpectations(suite.T())
}

func (suite *AdvanceServiceTestSuite) TestCreateAdvance_DraftTripFails() {
	ctx := context.Background()
	suite.trip.Status = domain.TripDraft

	suite.mockTripRepo.On("FindTripByID", ctx, suite.tenantID, suite.trip.TripID).Return(suite.trip, nil).Once()

	_, err := suite.service.CreateAdvance(ctx, suite.requester, dto.CreateAdvanceRequest{
		TripID: suite.trip.TripID,
		Amount: decimal.NewFromInt(800),
		Reason: "Hospedagem",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.Contains(err.Error(), "Adiantamento só pode ser solicitado para viagens aprovadas")
	suite.mockAdvanceRepo.AssertNotCalled(suite.T(), "SaveAdvance")
}

func (suite *AdvanceServiceTestSuite) TestCreateAdvance_NonPositiveAmountFails() {
	ctx := context.Background()

	_, err := suite.service.CreateAdvance(ctx, suite.requester, dto.CreateAdvanceRequest{
		TripID: suite.trip.TripID,
		Amount: decimal.Zero,
		Reason: "Hospedagem",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTripRepo.AssertNotCalled(suite.T(), "FindTripByID")
}

func (suite *AdvanceServiceTestSuite) TestSubmitAdvance_FromDraft() {
	ctx := context.Background()
	advance := suite.advanceInStatus(domain.AdvanceDraft)

	suite.mockAdvanceRepo.On("FindAdvanceByID", ctx, suite.tenantID, advance.AdvanceID).Return(advance, nil).Once()
	suite.mockTripRepo.On("FindTripByID", ctx, suite.tenantID, suite.trip.TripID).Return(suite.trip, nil).Once()
	suite.mockUserSvc.On("ScopeFor", ctx, suite.requester).Return(domain.AccessScope{Kind: domain.ScopeSelf, UserID: suite.requester.UserID}, nil).Once()
	suite.mockAdvanceRepo.On("UpdateAdvance", ctx, mock.AnythingOfType("domain.Advance")).Return(nil).Once()

	updated, err := suite.service.SubmitAdvance(ctx, suite.requester, advance.AdvanceID)

	suite.Require().NoError(err)
	suite.Equal(domain.AdvanceSubmitted, updated.Status)
	suite.mockAdvanceRepo.AssertExpectations(suite.T())
}

func (suite *AdvanceServiceTestSuite) TestApproveAdvance_CollaboratorForbidden() {
	ctx := context.Background()

	_, err := suite.service.ApproveAdvance(ctx, suite.requester, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAdvanceRepo.AssertNotCalled(suite.T(), "FindAdvanceByID")
}

func (suite *AdvanceServiceTestSuite) TestApproveAdvance_RecordsApprover() {
	ctx := context.Background()
	advance := suite.advanceInStatus(domain.AdvanceSubmitted)

	suite.mockAdvanceRepo.On("FindAdvanceByID", ctx, suite.tenantID, advance.AdvanceID).Return(advance, nil).Once()
	suite.mockTripRepo.On("FindTripByID", ctx, suite.tenantID, suite.trip.TripID).Return(suite.trip, nil).Once()
	suite.mockUserSvc.On("ScopeFor", ctx, suite.manager).Return(domain.AccessScope{
		Kind:          domain.ScopeCostCenters,
		UserID:        suite.manager.UserID,
		CostCenterIDs: []string{suite.trip.CostCenterID},
	}, nil).Once()
	suite.mockAdvanceRepo.On("UpdateAdvance", ctx, mock.AnythingOfType("domain.Advance")).Return(nil).Once()

	updated, err := suite.service.ApproveAdvance(ctx, suite.manager, advance.AdvanceID)

	suite.Require().NoError(err)
	suite.Equal(domain.AdvanceApproved, updated.Status)
	suite.Require().NotNil(updated.ApproverID)
	suite.Equal(suite.manager.UserID, *updated.ApproverID)
}

func (suite *AdvanceServiceTestSuite) TestRejectAdvance_ReasonRequired() {
	ctx := context.Background()

	_, err := suite.service.RejectAdvance(ctx, suite.manager, uuid.NewString(), " ")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "Motivo da rejeição é obrigatório")
}

func (suite *AdvanceServiceTestSuite) TestRejectAdvance_AppendsReason() {
	ctx := context.Background()
	advance := suite.advanceInStatus(domain.AdvanceSubmitted)

	suite.mockAdvanceRepo.On("FindAdvanceByID", ctx, suite.tenantID, advance.AdvanceID).Return(advance, nil).Once()
	suite.mockTripRepo.On("FindTripByID", ctx, suite.tenantID, suite.trip.TripID).Return(suite.trip, nil).Once()
	suite.mockUserSvc.On("ScopeFor", ctx, suite.manager).Return(domain.AccessScope{Kind: domain.ScopeTenantWide, UserID: suite.manager.UserID}, nil).Once()
	suite.mockAdvanceRepo.On("UpdateAdvance", ctx, mock.MatchedBy(func(a domain.Advance) bool {
		return a.Status == domain.AdvanceRejected &&
			a.Reason == "Hospedagem e alimentação | Rejeitado: Valor acima do previsto"
	})).Return(nil).Once()

	updated, err := suite.service.RejectAdvance(ctx, suite.manager, advance.AdvanceID, "Valor acima do previsto")

	suite.Require().NoError(err)
	suite.Equal(domain.AdvanceRejected, updated.Status)
	suite.mockAdvanceRepo.AssertExpectations(suite.T())
}

func (suite *AdvanceServiceTestSuite) TestPayAdvance_ManagerForbidden() {
	ctx := context.Background()

	_, err := suite.service.PayAdvance(ctx, suite.manager, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AdvanceServiceTestSuite) TestPayAdvance_StampsPaymentTime() {
	ctx := context.Background()
	advance := suite.advanceInStatus(domain.AdvanceApproved)

	suite.mockAdvanceRepo.On("FindAdvanceByID", ctx, suite.tenantID, advance.AdvanceID).Return(advance, nil).Once()
	suite.mockTripRepo.On("FindTripByID", ctx, suite.tenantID, suite.trip.TripID).Return(suite.trip, nil).Once()
	suite.mockUserSvc.On("ScopeFor", ctx, suite.admin).Return(domain.AccessScope{Kind: domain.ScopeTenantWide, UserID: suite.admin.UserID}, nil).Once()
	suite.mockAdvanceRepo.On("UpdateAdvance", ctx, mock.AnythingOfType("domain.Advance")).Return(nil).Once()

	updated, err := suite.service.PayAdvance(ctx, suite.admin, advance.AdvanceID)

	suite.Require().NoError(err)
	suite.Equal(domain.AdvancePaid, updated.Status)
	suite.Require().NotNil(updated.PaidAt)
}

func (suite *AdvanceServiceTestSuite) TestPayAdvance_FromSubmittedFails() {
	ctx := context.Background()
	advance := suite.advanceInStatus(domain.AdvanceSubmitted)

	suite.mockAdvanceRepo.On("FindAdvanceByID", ctx, suite.tenantID, advance.AdvanceID).Return(advance, nil).Once()
	suite.mockTripRepo.On("FindTripByID", ctx, suite.tenantID, suite.trip.TripID).Return(suite.trip, nil).Once()
	suite.mockUserSvc.On("ScopeFor", ctx, suite.admin).Return(domain.AccessScope{Kind: domain.ScopeTenantWide, UserID: suite.admin.UserID}, nil).Once()

	_, err := suite.service.PayAdvance(ctx, suite.admin, advance.AdvanceID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.Contains(err.Error(), "Apenas adiantamentos aprovados podem ser pagos")
	suite.mockAdvanceRepo.AssertNotCalled(suite.T(), "UpdateAdvance")
}

func (suite *AdvanceServiceTestSuite) TestListAdvancesByTrip_OutOfScopeMasked() {
	ctx := context.Background()
	suite.trip.RequesterID = uuid.NewString()

	suite.mockTripRepo.On("FindTripByID", ctx, suite.tenantID, suite.trip.TripID).Return(suite.trip, nil).Once()
	suite.mockUserSvc.On("ScopeFor", ctx, suite.requester).Return(domain.AccessScope{Kind: domain.ScopeSelf, UserID: suite.requester.UserID}, nil).Once()

	_, err := suite.service.ListAdvancesByTrip(ctx, suite.requester, suite.trip.TripID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAdvanceRepo.AssertNotCalled(suite.T(), "ListAdvancesByTrip")
}

func TestAdvanceService(t *testing.T) {
	suite.Run(t, new(AdvanceServiceTestSuite))
}
