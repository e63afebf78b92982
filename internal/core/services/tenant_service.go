package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/marcostaira/travel-expense/internal/core/domain"
	portsrepo "github.com/marcostaira/travel-expense/internal/core/ports/repositories"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
)

type tenantService struct {
	tenantRepo portsrepo.TenantRepository
}

// NewTenantService creates a new TenantService.
func NewTenantService(tenantRepo portsrepo.TenantRepository) portssvc.TenantSvcFacade {
	return &tenantService{tenantRepo: tenantRepo}
}

var _ portssvc.TenantSvcFacade = (*tenantService)(nil)

// CreateTenant provisions a new isolated company account.
func (s *tenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	tenant := domain.Tenant{
		TenantID: uuid.NewString(),
		Name:     req.Name,
		Document: req.Document,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.tenantRepo.SaveTenant(ctx, tenant); err != nil {
		logger.Error("Failed to save tenant", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	logger.Info("Tenant created", slog.String("tenant_id", tenant.TenantID))
	return &tenant, nil
}

// GetTenant retrieves a tenant by id.
func (s *tenantService) GetTenant(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	return s.tenantRepo.FindTenantByID(ctx, tenantID)
}
