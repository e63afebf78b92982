package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/marcostaira/travel-expense/internal/apperrors"
	"github.com/marcostaira/travel-expense/internal/core/domain"
	portsrepo "github.com/marcostaira/travel-expense/internal/core/ports/repositories"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
)

type costCenterService struct {
	ccRepo portsrepo.CostCenterRepository
}

// NewCostCenterService creates a new CostCenterService.
func NewCostCenterService(ccRepo portsrepo.CostCenterRepository) portssvc.CostCenterSvcFacade {
	return &costCenterService{ccRepo: ccRepo}
}

var _ portssvc.CostCenterSvcFacade = (*costCenterService)(nil)

// CreateCostCenter creates an active cost center. Admin only.
func (s *costCenterService) CreateCostCenter(ctx context.Context, actor domain.Actor, req dto.CreateCostCenterRequest) (*domain.CostCenter, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now()
	cc := domain.CostCenter{
		CostCenterID: uuid.NewString(),
		TenantID:     actor.TenantID,
		Name:         req.Name,
		Code:         req.Code,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.ccRepo.SaveCostCenter(ctx, cc); err != nil {
		logger.Error("Failed to save cost center", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create cost center: %w", err)
	}

	logger.Info("Cost center created", slog.String("cost_center_id", cc.CostCenterID))
	return &cc, nil
}

// GetCostCenter retrieves a cost center within the actor's tenant.
func (s *costCenterService) GetCostCenter(ctx context.Context, actor domain.Actor, costCenterID string) (*domain.CostCenter, error) {
	return s.ccRepo.FindCostCenterByID(ctx, actor.TenantID, costCenterID)
}

// ListCostCenters retrieves the tenant's active cost centers.
func (s *costCenterService) ListCostCenters(ctx context.Context, actor domain.Actor) ([]domain.CostCenter, error) {
	return s.ccRepo.ListActiveCostCenters(ctx, actor.TenantID)
}

// UpdateCostCenter updates a cost center's name and code. Admin only.
func (s *costCenterService) UpdateCostCenter(ctx context.Context, actor domain.Actor, costCenterID string, req dto.UpdateCostCenterRequest) (*domain.CostCenter, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	cc, err := s.ccRepo.FindCostCenterByID(ctx, actor.TenantID, costCenterID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		cc.Name = *req.Name
	}
	if req.Code != nil {
		cc.Code = *req.Code
	}
	cc.LastUpdatedAt = time.Now()
	cc.LastUpdatedBy = actor.UserID

	if err := s.ccRepo.UpdateCostCenter(ctx, *cc); err != nil {
		return nil, fmt.Errorf("failed to update cost center: %w", err)
	}
	return cc, nil
}

// RemoveCostCenter soft-deletes a cost center; existing records keep their
// reference but new ones cannot use it. Admin only.
func (s *costCenterService) RemoveCostCenter(ctx context.Context, actor domain.Actor, costCenterID string) error {
	if actor.Role != domain.RoleAdmin {
		return apperrors.ErrForbidden
	}

	cc, err := s.ccRepo.FindCostCenterByID(ctx, actor.TenantID, costCenterID)
	if err != nil {
		return err
	}

	cc.IsActive = false
	cc.LastUpdatedAt = time.Now()
	cc.LastUpdatedBy = actor.UserID

	if err := s.ccRepo.UpdateCostCenter(ctx, *cc); err != nil {
		return fmt.Errorf("failed to deactivate cost center: %w", err)
	}
	return nil
}
