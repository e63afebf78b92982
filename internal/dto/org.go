package dto

import (
	"time"

	"github.com/marcostaira/travel-expense/internal/core/domain"
)

// CreateCostCenterRequest defines the structure for creating a cost center.
type CreateCostCenterRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// UpdateCostCenterRequest defines the structure for updating a cost center.
type UpdateCostCenterRequest struct {
	Name *string `json:"name,omitempty"`
	Code *string `json:"code,omitempty"`
}

// CostCenterResponse defines the API shape of a cost center.
type CostCenterResponse struct {
	CostCenterID string    `json:"costCenterID"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToCostCenterResponse converts a domain.CostCenter to its DTO.
func ToCostCenterResponse(cc *domain.CostCenter) CostCenterResponse {
	return CostCenterResponse{
		CostCenterID: cc.CostCenterID,
		Name:         cc.Name,
		Code:         cc.Code,
		IsActive:     cc.IsActive,
		CreatedAt:    cc.CreatedAt,
	}
}

// ToListCostCenterResponse converts a slice of cost centers to DTOs.
func ToListCostCenterResponse(ccs []domain.CostCenter) []CostCenterResponse {
	out := make([]CostCenterResponse, len(ccs))
	for i := range ccs {
		out[i] = ToCostCenterResponse(&ccs[i])
	}
	return out
}

// CreateProjectRequest defines the structure for creating a project.
type CreateProjectRequest struct {
	Name         string  `json:"name" binding:"required"`
	Code         string  `json:"code" binding:"required"`
	CostCenterID *string `json:"costCenterID,omitempty" binding:"omitempty,uuid"`
}

// UpdateProjectRequest defines the structure for updating a project.
type UpdateProjectRequest struct {
	Name         *string `json:"name,omitempty"`
	CostCenterID *string `json:"costCenterID,omitempty" binding:"omitempty,uuid"`
}

// ProjectResponse defines the API shape of a project.
type ProjectResponse struct {
	ProjectID    string    `json:"projectID"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	CostCenterID *string   `json:"costCenterID,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToProjectResponse converts a domain.Project to its DTO.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:    p.ProjectID,
		Name:         p.Name,
		Code:         p.Code,
		CostCenterID: p.CostCenterID,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}

// ToListProjectResponse converts a slice of projects to DTOs.
func ToListProjectResponse(ps []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, len(ps))
	for i := range ps {
		out[i] = ToProjectResponse(&ps[i])
	}
	return out
}

// CreateTenantRequest defines the structure for creating a tenant.
type CreateTenantRequest struct {
	Name     string `json:"name" binding:"required"`
	Document string `json:"document" binding:"required"`
}

// TenantResponse defines the API shape of a tenant.
type TenantResponse struct {
	TenantID  string    `json:"tenantID"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToTenantResponse converts a domain.Tenant to its DTO.
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:  t.TenantID,
		Name:      t.Name,
		Document:  t.Document,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
	}
}

// CreateUserRequest defines the structure for creating a tenant user.
type CreateUserRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     domain.UserRole `json:"role" binding:"required,oneof=ADMIN MANAGER COLLABORATOR"`
}

// AssignCostCentersRequest replaces a manager's cost-center assignments.
type AssignCostCentersRequest struct {
	CostCenterIDs []string `json:"costCenterIDs" binding:"required,dive,uuid"`
}

// UserResponse defines the API shape of a user. The password hash never leaves the domain.
type UserResponse struct {
	UserID    string          `json:"userID"`
	TenantID  string          `json:"tenantID"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      domain.UserRole `json:"role"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		TenantID:  u.TenantID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// ToListUserResponse converts a slice of users to DTOs.
func ToListUserResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}
