package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marcostaira/travel-expense/internal/apperrors"
	"github.com/marcostaira/travel-expense/internal/core/domain"
	portsrepo "github.com/marcostaira/travel-expense/internal/core/ports/repositories"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
)

// tripService orchestrates the trip lifecycle from draft through approval,
// execution and archival.
type tripService struct {
	tripRepo    portsrepo.TripRepositoryFacade
	ccRepo      portsrepo.CostCenterRepository
	projectRepo portsrepo.ProjectRepository
	userSvc     portssvc.UserSvcFacade
}

// NewTripService creates a new TripService.
func NewTripService(
	tripRepo portsrepo.TripRepositoryFacade,
	ccRepo portsrepo.CostCenterRepository,
	projectRepo portsrepo.ProjectRepository,
	userSvc portssvc.UserSvcFacade,
) portssvc.TripSvcFacade {
	return &tripService{
		tripRepo:    tripRepo,
		ccRepo:      ccRepo,
		projectRepo: projectRepo,
		userSvc:     userSvc,
	}
}

var _ portssvc.TripSvcFacade = (*tripService)(nil)

// findTripForActor loads a trip and enforces the actor's access scope; records
// outside the scope surface as not found.
func (s *tripService) findTripForActor(ctx context.Context, actor domain.Actor, tripID string) (*domain.Trip, error) {
	trip, err := s.tripRepo.FindTripByID(ctx, actor.TenantID, tripID)
	if err != nil {
		return nil, err
	}

	scope, err := s.userSvc.ScopeFor(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve access scope: %w", err)
	}
	if !scope.Allows(trip.RequesterID, trip.CostCenterID) {
		return nil, apperrors.ErrNotFound
	}
	return trip, nil
}

func validateTripDates(startDate, endDate time.Time) error {
	if !startDate.Before(endDate) {
		return apperrors.NewValidationError("Data de início deve ser anterior à data de fim")
	}
	if startDate.Before(startOfDay(time.Now())) {
		return apperrors.NewValidationError("Data de início deve ser futura")
	}
	return nil
}

// CreateTrip creates a new trip in DRAFT.
func (s *tripService) CreateTrip(ctx context.Context, actor domain.Actor, req dto.CreateTripRequest) (*domain.Trip, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateTripDates(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	if _, err := s.ccRepo.FindActiveCostCenterByID(ctx, actor.TenantID, req.CostCenterID); err != nil {
		return nil, apperrors.NewValidationError("Centro de custo não encontrado ou inativo")
	}
	if req.ProjectID != nil {
		if _, err := s.projectRepo.FindActiveProjectByID(ctx, actor.TenantID, *req.ProjectID); err != nil {
			return nil, apperrors.NewValidationError("Projeto não encontrado ou inativo")
		}
	}

	now := time.Now()
	trip := domain.Trip{
		TripID:       uuid.NewString(),
		TenantID:     actor.TenantID,
		RequesterID:  actor.UserID,
		CostCenterID: req.CostCenterID,
		ProjectID:    req.ProjectID,
		Origin:       req.Origin,
		Destination:  req.Destination,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Purpose:      req.Purpose,
		Status:       domain.TripDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.tripRepo.SaveTrip(ctx, trip); err != nil {
		logger.Error("Failed to save trip", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	logger.Info("Trip created",
		slog.String("trip_id", trip.TripID),
		slog.String("destination", trip.Destination))
	return &trip, nil
}

// GetTrip retrieves one trip within the actor's scope.
func (s *tripService) GetTrip(ctx context.Context, actor domain.Actor, tripID string) (*domain.Trip, error) {
	return s.findTripForActor(ctx, actor, tripID)
}

// ListTrips retrieves a page of trips visible to the actor.
func (s *tripService) ListTrips(ctx context.Context, actor domain.Actor, params dto.ListTripsParams) ([]domain.Trip, int, error) {
	scope, err := s.userSvc.ScopeFor(ctx, actor)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to resolve access scope: %w", err)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := portsrepo.TripFilter{
		TenantID: actor.TenantID,
		Scope:    scope,
		Status:   params.Status,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}
	return s.tripRepo.ListTrips(ctx, filter)
}

// UpdateTrip edits a DRAFT trip.
func (s *tripService) UpdateTrip(ctx context.Context, actor domain.Actor, tripID string, req dto.UpdateTripRequest) (*domain.Trip, error) {
	trip, err := s.findTripForActor(ctx, actor, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != domain.TripDraft {
		return nil, apperrors.NewBusinessRuleError("Apenas viagens em rascunho podem ser editadas")
	}

	if req.Origin != nil {
		trip.Origin = *req.Origin
	}
	if req.Destination != nil {
		trip.Destination = *req.Destination
	}
	if req.Purpose != nil {
		trip.Purpose = *req.Purpose
	}
	if req.StartDate != nil {
		trip.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		trip.EndDate = *req.EndDate
	}
	if req.StartDate != nil || req.EndDate != nil {
		if err := validateTripDates(trip.StartDate, trip.EndDate); err != nil {
			return nil, err
		}
	}
	if req.CostCenterID != nil {
		if _, err := s.ccRepo.FindActiveCostCenterByID(ctx, actor.TenantID, *req.CostCenterID); err != nil {
			return nil, apperrors.NewValidationError("Centro de custo não encontrado ou inativo")
		}
		trip.CostCenterID = *req.CostCenterID
	}
	if req.ProjectID != nil {
		if _, err := s.projectRepo.FindActiveProjectByID(ctx, actor.TenantID, *req.ProjectID); err != nil {
			return nil, apperrors.NewValidationError("Projeto não encontrado ou inativo")
		}
		trip.ProjectID = req.ProjectID
	}

	trip.LastUpdatedAt = time.Now()
	trip.LastUpdatedBy = actor.UserID

	if err := s.tripRepo.UpdateTrip(ctx, *trip); err != nil {
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}
	return trip, nil
}

// RemoveTrip deletes a DRAFT trip.
func (s *tripService) RemoveTrip(ctx context.Context, actor domain.Actor, tripID string) error {
	trip, err := s.findTripForActor(ctx, actor, tripID)
	if err != nil {
		return err
	}
	if trip.Status != domain.TripDraft {
		return apperrors.NewBusinessRuleError("Apenas viagens em rascunho podem ser excluídas")
	}

	if err := s.tripRepo.DeleteTrip(ctx, actor.TenantID, tripID); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return nil
}

// SubmitTrip moves a DRAFT trip to PENDING_APPROVAL.
func (s *tripService) SubmitTrip(ctx context.Context, actor domain.Actor, tripID string) (*domain.Trip, error) {
	return s.transition(ctx, actor, tripID, domain.TripPendingApproval, "Apenas viagens em rascunho podem ser enviadas", nil, "", domain.NoteAnnotation)
}

// ApproveTrip moves a PENDING_APPROVAL trip to APPROVED and records the
// deciding manager. Managers and admins only.
func (s *tripService) ApproveTrip(ctx context.Context, actor domain.Actor, tripID string, notes string) (*domain.Trip, error) {
	if !actor.IsApprover() {
		return nil, apperrors.ErrForbidden
	}
	mutate := func(t *domain.Trip) {
		managerID := actor.UserID
		t.ManagerID = &managerID
	}
	return s.transition(ctx, actor, tripID, domain.TripApproved, "Apenas viagens pendentes podem ser avaliadas", mutate, notes, domain.NoteApproval)
}

// RejectTrip moves a PENDING_APPROVAL trip to REJECTED. A reason is mandatory.
func (s *tripService) RejectTrip(ctx context.Context, actor domain.Actor, tripID string, reason string) (*domain.Trip, error) {
	if !actor.IsApprover() {
		return nil, apperrors.ErrForbidden
	}
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.NewValidationError("Motivo da rejeição é obrigatório")
	}
	return s.transition(ctx, actor, tripID, domain.TripRejected, "Apenas viagens pendentes podem ser avaliadas", nil, reason, domain.NoteRejection)
}

// StartTrip moves an APPROVED trip to IN_PROGRESS, on or after its start date.
func (s *tripService) StartTrip(ctx context.Context, actor domain.Actor, tripID string) (*domain.Trip, error) {
	trip, err := s.findTripForActor(ctx, actor, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.CanTransitionTo(domain.TripInProgress) {
		return nil, apperrors.NewBusinessRuleError("Apenas viagens aprovadas podem ser iniciadas")
	}
	if time.Now().Before(startOfDay(trip.StartDate)) {
		return nil, apperrors.NewBusinessRuleError("Viagem só pode ser iniciada na data prevista ou após")
	}
	return s.apply(ctx, actor, trip, domain.TripInProgress, nil, "", domain.NoteAnnotation)
}

// CompleteTrip moves an IN_PROGRESS trip to COMPLETED.
func (s *tripService) CompleteTrip(ctx context.Context, actor domain.Actor, tripID string) (*domain.Trip, error) {
	return s.transition(ctx, actor, tripID, domain.TripCompleted, "Apenas viagens em andamento podem ser concluídas", nil, "", domain.NoteAnnotation)
}

// ArchiveTrip moves a COMPLETED or REJECTED trip to ARCHIVED. Managers and
// admins only.
func (s *tripService) ArchiveTrip(ctx context.Context, actor domain.Actor, tripID string) (*domain.Trip, error) {
	if !actor.IsApprover() {
		return nil, apperrors.ErrForbidden
	}
	return s.transition(ctx, actor, tripID, domain.TripArchived, "Apenas viagens concluídas ou rejeitadas podem ser arquivadas", nil, "", domain.NoteAnnotation)
}

// transition loads the trip, checks the state machine, then applies.
func (s *tripService) transition(ctx context.Context, actor domain.Actor, tripID string, target domain.TripStatus, blockedMsg string, mutate func(*domain.Trip), message string, action domain.NoteAction) (*domain.Trip, error) {
	trip, err := s.findTripForActor(ctx, actor, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.CanTransitionTo(target) {
		return nil, apperrors.NewBusinessRuleError(blockedMsg)
	}
	return s.apply(ctx, actor, trip, target, mutate, message, action)
}

// apply persists one trip status change plus its optional audit note.
func (s *tripService) apply(ctx context.Context, actor domain.Actor, trip *domain.Trip, target domain.TripStatus, mutate func(*domain.Trip), message string, action domain.NoteAction) (*domain.Trip, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if mutate != nil {
		mutate(trip)
	}

	trip.Status = target
	trip.LastUpdatedAt = time.Now()
	trip.LastUpdatedBy = actor.UserID

	if err := s.tripRepo.UpdateTrip(ctx, *trip); err != nil {
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}

	if message != "" {
		note := domain.WorkflowNote{
			NoteID:    uuid.NewString(),
			ActorID:   actor.UserID,
			Action:    action,
			Message:   message,
			CreatedAt: time.Now(),
		}
		if err := s.tripRepo.SaveTripNote(ctx, trip.TripID, note); err != nil {
			return nil, fmt.Errorf("failed to save trip note: %w", err)
		}
		trip.Notes = append(trip.Notes, note)
	}

	logger.Info("Trip status changed",
		slog.String("trip_id", trip.TripID),
		slog.String("status", string(target)))
	return trip, nil
}
