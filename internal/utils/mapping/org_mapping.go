package mapping

import (
	"github.com/marcostaira/travel-expense/internal/core/domain"
	"github.com/marcostaira/travel-expense/internal/models"
)

// ToModelTenant converts a domain Tenant to a model Tenant
func ToModelTenant(d domain.Tenant) models.Tenant {
	return models.Tenant{
		TenantID:    d.TenantID,
		Name:        d.Name,
		Document:    d.Document,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTenant converts a model Tenant to a domain Tenant
func ToDomainTenant(m models.Tenant) domain.Tenant {
	return domain.Tenant{
		TenantID:    m.TenantID,
		Name:        m.Name,
		Document:    m.Document,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		TenantID:     d.TenantID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         string(d.Role),
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		TenantID:     m.TenantID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCostCenter converts a domain CostCenter to a model CostCenter
func ToModelCostCenter(d domain.CostCenter) models.CostCenter {
	return models.CostCenter{
		CostCenterID: d.CostCenterID,
		TenantID:     d.TenantID,
		Name:         d.Name,
		Code:         d.Code,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCostCenter converts a model CostCenter to a domain CostCenter
func ToDomainCostCenter(m models.CostCenter) domain.CostCenter {
	return domain.CostCenter{
		CostCenterID: m.CostCenterID,
		TenantID:     m.TenantID,
		Name:         m.Name,
		Code:         m.Code,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelProject converts a domain Project to a model Project
func ToModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:    d.ProjectID,
		TenantID:     d.TenantID,
		Name:         d.Name,
		Code:         d.Code,
		CostCenterID: d.CostCenterID,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProject converts a model Project to a domain Project
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:    m.ProjectID,
		TenantID:     m.TenantID,
		Name:         m.Name,
		Code:         m.Code,
		CostCenterID: m.CostCenterID,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
