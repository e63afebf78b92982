package services

import (
	"context"

	"github.com/marcostaira/travel-expense/internal/core/domain"
	"github.com/marcostaira/travel-expense/internal/dto"
)

// CostCenterSvcFacade exposes cost-center administration.
type CostCenterSvcFacade interface {
	CreateCostCenter(ctx context.Context, actor domain.Actor, req dto.CreateCostCenterRequest) (*domain.CostCenter, error)
	GetCostCenter(ctx context.Context, actor domain.Actor, costCenterID string) (*domain.CostCenter, error)
	ListCostCenters(ctx context.Context, actor domain.Actor) ([]domain.CostCenter, error)
	UpdateCostCenter(ctx context.Context, actor domain.Actor, costCenterID string, req dto.UpdateCostCenterRequest) (*domain.CostCenter, error)
	RemoveCostCenter(ctx context.Context, actor domain.Actor, costCenterID string) error
}

// ProjectSvcFacade exposes project administration.
type ProjectSvcFacade interface {
	CreateProject(ctx context.Context, actor domain.Actor, req dto.CreateProjectRequest) (*domain.Project, error)
	GetProject(ctx context.Context, actor domain.Actor, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context, actor domain.Actor) ([]domain.Project, error)
	UpdateProject(ctx context.Context, actor domain.Actor, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error)
	RemoveProject(ctx context.Context, actor domain.Actor, projectID string) error
}

// TenantSvcFacade exposes tenant administration.
type TenantSvcFacade interface {
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error)
	GetTenant(ctx context.Context, tenantID string) (*domain.Tenant, error)
}

// UserSvcFacade exposes tenant user administration, including the explicit
// manager-to-cost-center assignments that back manager scoping.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, actor domain.Actor, req dto.CreateUserRequest) (*domain.User, error)
	GetUser(ctx context.Context, actor domain.Actor, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, actor domain.Actor) ([]domain.User, error)
	AssignCostCenters(ctx context.Context, actor domain.Actor, userID string, costCenterIDs []string) error

	// ScopeFor computes the caller's access scope once per request.
	ScopeFor(ctx context.Context, actor domain.Actor) (domain.AccessScope, error)
}
