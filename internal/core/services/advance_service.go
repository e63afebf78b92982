package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marcostaira/travel-expense/internal/apperrors"
	"github.com/marcostaira/travel-expense/internal/core/domain"
	portsrepo "github.com/marcostaira/travel-expense/internal/core/ports/repositories"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
)

// advanceService manages cash advances requested against trips.
type advanceService struct {
	advanceRepo portsrepo.AdvanceRepository
	tripRepo    portsrepo.TripReader
	userSvc     portssvc.UserSvcFacade
}

// NewAdvanceService creates a new AdvanceService.
func NewAdvanceService(advanceRepo portsrepo.AdvanceRepository, tripRepo portsrepo.TripReader, userSvc portssvc.UserSvcFacade) portssvc.AdvanceSvcFacade {
	return &advanceService{
		advanceRepo: advanceRepo,
		tripRepo:    tripRepo,
		userSvc:     userSvc,
	}
}

var _ portssvc.AdvanceSvcFacade = (*advanceService)(nil)

func (s *advanceService) findAdvanceForActor(ctx context.Context, actor domain.Actor, advanceID string) (*domain.Advance, error) {
	advance, err := s.advanceRepo.FindAdvanceByID(ctx, actor.TenantID, advanceID)
	if err != nil {
		return nil, err
	}

	trip, err := s.tripRepo.FindTripByID(ctx, actor.TenantID, advance.TripID)
	if err != nil {
		return nil, err
	}

	scope, err := s.userSvc.ScopeFor(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve access scope: %w", err)
	}
	if !scope.Allows(advance.RequesterID, trip.CostCenterID) {
		return nil, apperrors.ErrNotFound
	}
	return advance, nil
}

// CreateAdvance requests a cash advance against an approved trip.
func (s *advanceService) CreateAdvance(ctx context.Context, actor domain.Actor, req dto.CreateAdvanceRequest) (*domain.Advance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("Valor deve ser positivo")
	}

	trip, err := s.tripRepo.FindTripByID(ctx, actor.TenantID, req.TripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != domain.TripApproved && trip.Status != domain.TripInProgress {
		return nil, apperrors.NewBusinessRuleError("Adiantamento só pode ser solicitado para viagens aprovadas")
	}

	now := time.Now()
	advance := domain.Advance{
		AdvanceID:   uuid.NewString(),
		TenantID:    actor.TenantID,
		TripID:      req.TripID,
		RequesterID: actor.UserID,
		Amount:      req.Amount.Round(2),
		Reason:      req.Reason,
		Status:      domain.AdvanceDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.advanceRepo.SaveAdvance(ctx, advance); err != nil {
		logger.Error("Failed to save advance", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create advance: %w", err)
	}

	logger.Info("Advance created",
		slog.String("advance_id", advance.AdvanceID),
		slog.String("trip_id", advance.TripID))
	return &advance, nil
}

// GetAdvance retrieves one advance within the actor's scope.
func (s *advanceService) GetAdvance(ctx context.Context, actor domain.Actor, advanceID string) (*domain.Advance, error) {
	return s.findAdvanceForActor(ctx, actor, advanceID)
}

// ListAdvancesByTrip retrieves the advances of one trip within the actor's scope.
func (s *advanceService) ListAdvancesByTrip(ctx context.Context, actor domain.Actor, tripID string) ([]domain.Advance, error) {
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

	return s.advanceRepo.ListAdvancesByTrip(ctx, actor.TenantID, tripID)
}

// SubmitAdvance moves a DRAFT advance to SUBMITTED.
func (s *advanceService) SubmitAdvance(ctx context.Context, actor domain.Actor, advanceID string) (*domain.Advance, error) {
	return s.transition(ctx, actor, advanceID, domain.AdvanceSubmitted, "Apenas adiantamentos em rascunho podem ser enviados", nil)
}

// ApproveAdvance moves a SUBMITTED advance to APPROVED and records the
// approver. Managers and admins only.
func (s *advanceService) ApproveAdvance(ctx context.Context, actor domain.Actor, advanceID string) (*domain.Advance, error) {
	if !actor.IsApprover() {
		return nil, apperrors.ErrForbidden
	}
	return s.transition(ctx, actor, advanceID, domain.AdvanceApproved, "Apenas adiantamentos enviados podem ser avaliados", func(a *domain.Advance) {
		approverID := actor.UserID
		a.ApproverID = &approverID
	})
}

// RejectAdvance moves a SUBMITTED advance to REJECTED. A reason is mandatory.
func (s *advanceService) RejectAdvance(ctx context.Context, actor domain.Actor, advanceID string, reason string) (*domain.Advance, error) {
	if !actor.IsApprover() {
		return nil, apperrors.ErrForbidden
	}
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.NewValidationError("Motivo da rejeição é obrigatório")
	}
	return s.transition(ctx, actor, advanceID, domain.AdvanceRejected, "Apenas adiantamentos enviados podem ser avaliados", func(a *domain.Advance) {
		a.Reason = fmt.Sprintf("%s | Rejeitado: %s", a.Reason, reason)
	})
}

// PayAdvance moves an APPROVED advance to PAID and stamps the payment time.
// Admin only.
func (s *advanceService) PayAdvance(ctx context.Context, actor domain.Actor, advanceID string) (*domain.Advance, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}
	return s.transition(ctx, actor, advanceID, domain.AdvancePaid, "Apenas adiantamentos aprovados podem ser pagos", func(a *domain.Advance) {
		paidAt := time.Now()
		a.PaidAt = &paidAt
	})
}

// transition applies one advance status change.
func (s *advanceService) transition(ctx context.Context, actor domain.Actor, advanceID string, target domain.AdvanceStatus, blockedMsg string, mutate func(*domain.Advance)) (*domain.Advance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	advance, err := s.findAdvanceForActor(ctx, actor, advanceID)
	if err != nil {
		return nil, err
	}
	if !advance.CanTransitionTo(target) {
		return nil, apperrors.NewBusinessRuleError(blockedMsg)
	}

	if mutate != nil {
		mutate(advance)
	}

	advance.Status = target
	advance.LastUpdatedAt = time.Now()
	advance.LastUpdatedBy = actor.UserID

	if err := s.advanceRepo.UpdateAdvance(ctx, *advance); err != nil {
		return nil, fmt.Errorf("failed to update advance: %w", err)
	}

	logger.Info("Advance status changed",
		slog.String("advance_id", advanceID),
		slog.String("status", string(target)))
	return advance, nil
}
