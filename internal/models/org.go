package models

// Tenant mirrors the tenants table.
type Tenant struct {
	TenantID string `db:"tenant_id"`
	Name     string `db:"name"`
	Document string `db:"document"`
	IsActive bool   `db:"is_active"`
	AuditFields
}

// User mirrors the users table.
type User struct {
	UserID       string `db:"user_id"`
	TenantID     string `db:"tenant_id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}

// CostCenter mirrors the cost_centers table.
type CostCenter struct {
	CostCenterID string `db:"cost_center_id"`
	TenantID     string `db:"tenant_id"`
	Name         string `db:"name"`
	Code         string `db:"code"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}

// Project mirrors the projects table.
type Project struct {
	ProjectID    string  `db:"project_id"`
	TenantID     string  `db:"tenant_id"`
	Name         string  `db:"name"`
	Code         string  `db:"code"`
	CostCenterID *string `db:"cost_center_id"`
	IsActive     bool    `db:"is_active"`
	AuditFields
}
