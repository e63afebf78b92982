package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/marcostaira/travel-expense/internal/apperrors"
	"github.com/marcostaira/travel-expense/internal/core/domain"
	portsrepo "github.com/marcostaira/travel-expense/internal/core/ports/repositories"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/core/services"
	"github.com/marcostaira/travel-expense/internal/dto"
)

// --- Mock TripRepository ---
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) FindTripByID(ctx context.Context, tenantID, tripID string) (*domain.Trip, error) {
	args := m.Called(ctx, tenantID, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trip), args.Error(1)
}

func (m *MockTripRepository) ListTrips(ctx context.Context, filter portsrepo.TripFilter) ([]domain.Trip, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Trip), args.Int(1), args.Error(2)
}

func (m *MockTripRepository) SaveTrip(ctx context.Context, trip domain.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripRepository) UpdateTrip(ctx context.Context, trip domain.Trip) error {
	args := m.Called(ctx, trip)
	return args.Error(0)
}

func (m *MockTripRepository) DeleteTrip(ctx context.Context, tenantID, tripID string) error {
	args := m.Called(ctx, tenantID, tripID)
	return args.Error(0)
}

func (m *MockTripRepository) SaveTripNote(ctx context.Context, tripID string, note domain.WorkflowNote) error {
	args := m.Called(ctx, tripID, note)
	return args.Error(0)
}

// --- Mock CostCenterRepository ---
type MockCostCenterRepository struct {
	mock.Mock
}

func (m *MockCostCenterRepository) SaveCostCenter(ctx context.Context, cc domain.CostCenter) error {
	args := m.Called(ctx, cc)
	return args.Error(0)
}

func (m *MockCostCenterRepository) UpdateCostCenter(ctx context.Context, cc domain.CostCenter) error {
	args := m.Called(ctx, cc)
	return args.Error(0)
}

func (m *MockCostCenterRepository) FindCostCenterByID(ctx context.Context, tenantID, costCenterID string) (*domain.CostCenter, error) {
	args := m.Called(ctx, tenantID, costCenterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostCenter), args.Error(1)
}

func (m *MockCostCenterRepository) FindActiveCostCenterByID(ctx context.Context, tenantID, costCenterID string) (*domain.CostCenter, error) {
	args := m.Called(ctx, tenantID, costCenterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostCenter), args.Error(1)
}

func (m *MockCostCenterRepository) ListActiveCostCenters(ctx context.Context, tenantID string) ([]domain.CostCenter, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCenter), args.Error(1)
}

// --- Mock ProjectRepository ---
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, tenantID, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, tenantID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) FindActiveProjectByID(ctx context.Context, tenantID, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, tenantID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) ListActiveProjects(ctx context.Context, tenantID string) ([]domain.Project, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, actor domain.Actor, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, actor domain.Actor, userID string) (*domain.User, error) {
	args := m.Called(ctx, actor, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) AssignCostCenters(ctx context.Context, actor domain.Actor, userID string, costCenterIDs []string) error {
	args := m.Called(ctx, actor, userID, costCenterIDs)
	return args.Error(0)
}

func (m *MockUserService) ScopeFor(ctx context.Context, actor domain.Actor) (domain.AccessScope, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(domain.AccessScope), args.Error(1)
}

// --- Test Suite ---
type TripServiceTestSuite struct {
	suite.Suite
	mockTripRepo *MockTripRepository
	mockCcRepo   *MockCostCenterRepository
	mockProjRepo *MockProjectRepository
	mockUserSvc  *MockUserService
	service      portssvc.TripSvcFacade
	tenantID     string
	requester    domain.Actor
	manager      domain.Actor
	costCenterID string
}

func (suite *TripServiceTestSuite) SetupTest() {
	suite.mockTripRepo = new(MockTripRepository)
	suite.mockCcRepo = new(MockCostCenterRepository)
	suite.mockProjRepo = new(MockProjectRepository)
	suite.mockUserSvc = new(MockUserService)
	suite.service = services.NewTripService(suite.mockTripRepo, suite.mockCcRepo, suite.mockProjRepo, suite.mockUserSvc)

	suite.tenantID = uuid.NewString()
	suite.costCenterID = uuid.NewString()
	suite.requester = domain.Actor{TenantID: suite.tenantID, UserID: uuid.NewString(), Role: domain.RoleCollaborator}
	suite.manager = domain.Actor{TenantID: suite.tenantID, UserID: uuid.NewString(), Role: domain.RoleManager}
}

func (suite *TripServiceTestSuite) selfScope(actor domain.Actor) domain.AccessScope {
	return domain.AccessScope{Kind: domain.ScopeSelf, UserID: actor.UserID}
}

func (suite *TripServiceTestSuite) tripInStatus(status domain.TripStatus) *domain.Trip {
	return &domain.Trip{
		TripID:       uuid.NewString(),
		TenantID:     suite.tenantID,
		RequesterID:  suite.requester.UserID,
		CostCenterID: suite.costCenterID,
		Origin:       "São Paulo",
		Destination:  "Recife",
		StartDate:    time.Now().AddDate(0, 0, 7),
		EndDate:      time.Now().AddDate(0, 0, 10),
		Purpose:      "Client onboarding",
		Status:       status,
	}
}

// --- Test Cases ---

func (suite *TripServiceTestSuite) TestCreateTrip_Success() {
	ctx := context.Background()
	req := dto.CreateTripRequest{
		Origin:       "São Paulo",
		Destination:  "Recife",
		StartDate:    time.Now().AddDate(0, 0, 7),
		EndDate:      time.Now().AddDate(0, 0, 10),
		Purpose:      "Client onboarding",
		CostCenterID: suite.costCenterID,
	}

	suite.mockCcRepo.On("FindActiveCostCenterByID", ctx, suite.tenantID, suite.costCenterID).Return(&domain.CostCenter{CostCenterID: suite.costCenterID}, nil).Once()
	suite.mockTripRepo.On("SaveTrip", ctx, mock.AnythingOfType("domain.Trip")).Return(nil).Once()

	trip, err := suite.service.CreateTrip(ctx, suite.requester, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(trip)
	suite.NotEmpty(trip.TripID)
	suite.Equal(domain.TripDraft, trip.Status)
	suite.Equal(suite.requester.UserID, trip.RequesterID)
	suite.mockTripRepo.AssertExpectations(suite.T())
}

func (suite *TripServiceTestSuite) TestCreateTrip_StartAfterEndFails() {
	ctx := context.Background()
	req := dto.CreateTripRequest{
		Origin:       "São Paulo",
		Destination:  "Recife",
		StartDate:    time.Now().AddDate(0, 0, 10),
		EndDate:      time.Now().AddDate(0, 0, 7),
		Purpose:      "Client onboarding",
		CostCenterID: suite.costCenterID,
	}

	_, err := suite.service.CreateTrip(ctx, suite.requester, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "Data de início deve ser anterior à data de fim")
	suite.mockTripRepo.AssertNotCalled(suite.T(), "SaveTrip")
}

func (suite *TripServiceTestSuite) TestCreateTrip_PastStartDateFails() {
	ctx := context.Background()
	req := dto.CreateTripRequest{
		Origin:       "São Paulo",
		Destination:  "Recife",
		StartDate:    time.Now().AddDate(0, 0, -2),
		EndDate:      time.Now().AddDate(0, 0, 5),
		Purpose:      "Client onboarding",
		CostCenterID: suite.costCenterID,
	}

	_, err := suite.service.CreateTrip(ctx, suite.requester, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "Data de início deve ser futura")
}

func (suite *TripServiceTestSuite) TestCreateTrip_InactiveCostCenterFails() {
	ctx := context.Background()
	req := dto.CreateTripRequest{
		Origin:       "São Paulo",
		Destination:  "Recife",
		StartDate:    time.Now().AddDate(0, 0, 7),
		EndDate:      time.Now().AddDate(0, 0, 10),
		Purpose:      "Client onboarding",
		CostCenterID: suite.costCenterID,
	}

	suite.mockCcRepo.On("FindActiveCostCenterByID", ctx, suite.tenantID, suite.costCenterID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateTrip(ctx, suite.requester, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "Centro de custo não encontrado ou inativo")
}

func (suite *TripServiceTestSuite) TestGetTrip_OutOfScopeMaskedAsNotFound() {
	ctx := context.Background()
	trip := suite.tripInStatus(domain.TripDraft)
	trip.RequesterID = uuid.NewString() // someone else's trip

	suite.mockTripRepo.On("FindTripByID", ctx, suite.tenantID, trip.TripID).Return(trip, nil).Once()
	suite.mockUserSvc.On("ScopeFor", ctx, suite.requester).Return(suite.selfScope(suite.requester), nil).Once()

	_, err := suite.service.GetTrip(ctx, suite.requester, trip.TripID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TripServiceTestSuite) TestSubmitTrip_FromDraft() {
	ctx := context.Background()
	trip := suite.tripInStatus(domain.TripDraft)

	suite.mockTripRepo.On("FindTripByID", ctx, suite.tenantID, trip.TripID).Return(trip, nil).Once()
	suite.mockUserSvc.On("ScopeFor", ctx, suite.requester).Return(suite.selfScope(suite.requester), nil).Once()
	suite.mockTripRepo.On("UpdateTrip", ctx, mock.AnythingOfType("domain.Trip")).Return(nil).Once()

	updated, err := suite.service.SubmitTrip(ctx, suite.requester, trip.TripID)

	suite.Require().NoError(err)
	suite.Equal(domain.TripPendingApproval, updated.Status)
	suite.mockTripRepo.AssertExpectations(suite.T())
}

func (suite *TripServiceTestSuite) TestSubmitTrip_WrongStatusFails() {
	ctx := context.Background()
	trip := suite.tripInStatus(domain.TripApproved)

	suite.mockTripRepo.On("FindTripByID", ctx, suite.tenantID, trip.TripID).Return(trip, nil).Once()
	suite.mockUserSvc.On("ScopeFor", ctx, suite.requester).Return(suite.selfScope(suite.requester), nil).Once()

	_, err := suite.service.SubmitTrip(ctx, suite.requester, trip.TripID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.mockTripRepo.AssertNotCalled(suite.T(), "UpdateTrip")
}

func (suite *TripServiceTestSuite) TestApproveTrip_CollaboratorForbidden() {
	ctx := context.Background()

	_, err := suite.service.ApproveTrip(ctx, suite.requester, uuid.NewString(), "ok")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTripRepo.AssertNotCalled(suite.T(), "FindTripByID")
}

func (suite *TripServiceTestSuite) TestApproveTrip_RecordsManagerAndNote() {
	ctx := context.Background()
	trip := suite.tripInStatus(domain.TripPendingApproval)

	suite.mockTripRepo.On("FindTripByID", ctx, suite.tenantID, trip.TripID).Return(trip, nil).Once()
	suite.mockUserSvc.On("ScopeFor", ctx, suite.manager).Return(domain.AccessScope{Kind: domain.ScopeTenantWide, UserID: suite.manager.UserID}, nil).Once()
	suite.mockTripRepo.On("UpdateTrip", ctx, mock.AnythingOfType("domain.Trip")).Return(nil).Once()
	suite.mockTripRepo.On("SaveTripNote", ctx, trip.TripID, mock.AnythingOfType("domain.WorkflowNote")).Return(nil).Once()

	updated, err := suite.service.ApproveTrip(ctx, suite.manager, trip.TripID, "Aprovado para o trimestre")

	suite.Require().NoError(err)
	suite.Equal(domain.TripApproved, updated.Status)
	suite.Require().NotNil(updated.ManagerID)
	suite.Equal(suite.manager.UserID, *updated.ManagerID)
	suite.Require().Len(updated.Notes, 1)
	suite.Equal(domain.NoteApproval, updated.Notes[0].Action)
	suite.mockTripRepo.AssertExpectations(suite.T())
}

func (suite *TripServiceTestSuite) TestRejectTrip_ReasonRequired() {
	ctx := context.Background()

	_, err := suite.service.RejectTrip(ctx, suite.manager, uuid.NewString(), "   ")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "Motivo da rejeição é obrigatório")
}

func (suite *TripServiceTestSuite) TestStartTrip_BeforeStartDateFails() {
	ctx := context.Background()
	trip := suite.tripInStatus(domain.TripApproved)
	trip.StartDate = time.Now().AddDate(0, 0, 3)

	suite.mockTripRepo.On("FindTripByID", ctx, suite.tenantID, trip.TripID).Return(trip, nil).Once()
	suite.mockUserSvc.On("ScopeFor", ctx, suite.requester).Return(suite.selfScope(suite.requester), nil).Once()

	_, err := suite.service.StartTrip(ctx, suite.requester, trip.TripID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.Contains(err.Error(), "Viagem só pode ser iniciada na data prevista ou após")
	suite.mockTripRepo.AssertNotCalled(suite.T(), "UpdateTrip")
}

func (suite *TripServiceTestSuite) TestStartTrip_OnStartDate() {
	ctx := context.Background()
	trip := suite.tripInStatus(domain.TripApproved)
	trip.StartDate = time.Now()

	suite.mockTripRepo.On("FindTripByID", ctx, suite.tenantID, trip.TripID).Return(trip, nil).Once()
	suite.mockUserSvc.On("ScopeFor", ctx, suite.requester).Return(suite.selfScope(suite.requester), nil).Once()
	suite.mockTripRepo.On("UpdateTrip", ctx, mock.AnythingOfType("domain.Trip")).Return(nil).Once()

	updated, err := suite.service.StartTrip(ctx, suite.requester, trip.TripID)

	suite.Require().NoError(err)
	suite.Equal(domain.TripInProgress, updated.Status)
}

func (suite *TripServiceTestSuite) TestArchiveTrip_FromCompleted() {
	ctx := context.Background()
	trip := suite.tripInStatus(domain.TripCompleted)

	suite.mockTripRepo.On("FindTripByID", ctx, suite.tenantID, trip.TripID).Return(trip, nil).Once()
	suite.mockUserSvc.On("ScopeFor", ctx, suite.manager).Return(domain.AccessScope{Kind: domain.ScopeTenantWide, UserID: suite.manager.UserID}, nil).Once()
	suite.mockTripRepo.On("UpdateTrip", ctx, mock.AnythingOfType("domain.Trip")).Return(nil).Once()

	updated, err := suite.service.ArchiveTrip(ctx, suite.manager, trip.TripID)

	suite.Require().NoError(err)
	suite.Equal(domain.TripArchived, updated.Status)
}

func (suite *TripServiceTestSuite) TestArchiveTrip_FromInProgressFails() {
	ctx := context.Background()
	trip := suite.tripInStatus(domain.TripInProgress)

	suite.mockTripRepo.On("FindTripByID", ctx, suite.tenantID, trip.TripID).Return(trip, nil).Once()
	suite.mockUserSvc.On("ScopeFor", ctx, suite.manager).Return(domain.AccessScope{Kind: domain.ScopeTenantWide, UserID: suite.manager.UserID}, nil).Once()

	_, err := suite.service.ArchiveTrip(ctx, suite.manager, trip.TripID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.Contains(err.Error(), "Apenas viagens concluídas ou rejeitadas podem ser arquivadas")
}

func (suite *TripServiceTestSuite) TestArchiveTrip_CollaboratorForbidden() {
	ctx := context.Background()
	trip := suite.tripInStatus(domain.TripCompleted)

	_, err := suite.service.ArchiveTrip(ctx, suite.requester, trip.TripID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTripRepo.AssertNotCalled(suite.T(), "FindTripByID")
}

func (suite *TripServiceTestSuite) TestRemoveTrip_OnlyDraft() {
	ctx := context.Background()
	trip := suite.tripInStatus(domain.TripPendingApproval)

	suite.mockTripRepo.On("FindTripByID", ctx, suite.tenantID, trip.TripID).Return(trip, nil).Once()
	suite.mockUserSvc.On("ScopeFor", ctx, suite.requester).Return(suite.selfScope(suite.requester), nil).Once()

	err := suite.service.RemoveTrip(ctx, suite.requester, trip.TripID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.mockTripRepo.AssertNotCalled(suite.T(), "DeleteTrip")
}

func TestTripService(t *testing.T) {
	suite.Run(t, new(TripServiceTestSuite))
}
