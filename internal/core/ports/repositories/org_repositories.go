package repositories

import (
	"context"

	"github.com/marcostaira/travel-expense/internal/core/domain"
)

// CostCenterRepository defines persistence operations for cost centers.
type CostCenterRepository interface {
	SaveCostCenter(ctx context.Context, cc domain.CostCenter) error
	UpdateCostCenter(ctx context.Context, cc domain.CostCenter) error
	FindCostCenterByID(ctx context.Context, tenantID, costCenterID string) (*domain.CostCenter, error)

	// FindActiveCostCenterByID retrieves a cost center only when it is active.
	FindActiveCostCenterByID(ctx context.Context, tenantID, costCenterID string) (*domain.CostCenter, error)

	ListActiveCostCenters(ctx context.Context, tenantID string) ([]domain.CostCenter, error)
}

// ProjectRepository defines persistence operations for projects. SaveProject
// relies on the partial unique index over (tenant, code) for active projects
// and returns apperrors.ErrDuplicate on conflict.
type ProjectRepository interface {
	SaveProject(ctx context.Context, project domain.Project) error
	UpdateProject(ctx context.Context, project domain.Project) error
	FindProjectByID(ctx context.Context, tenantID, projectID string) (*domain.Project, error)
	FindActiveProjectByID(ctx context.Context, tenantID, projectID string) (*domain.Project, error)
	ListActiveProjects(ctx context.Context, tenantID string) ([]domain.Project, error)
}

// TenantRepository defines persistence operations for tenants.
type TenantRepository interface {
	SaveTenant(ctx context.Context, tenant domain.Tenant) error
	UpdateTenant(ctx context.Context, tenant domain.Tenant) error
	FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)
}

// UserRepository defines persistence operations for tenant users, including
// the explicit manager-to-cost-center assignments that back manager scoping.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, tenantID, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context, tenantID string) ([]domain.User, error)

	// ListManagedCostCenterIDs returns the cost centers assigned to a manager.
	ListManagedCostCenterIDs(ctx context.Context, tenantID, userID string) ([]string, error)

	// AssignCostCenters replaces a manager's cost-center assignments.
	AssignCostCenters(ctx context.Context, tenantID, userID string, costCenterIDs []string) error
}
