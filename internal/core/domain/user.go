package domain

// UserRole defines the possible roles a user can have within a tenant.
type UserRole string

const (
	RoleAdmin        UserRole = "ADMIN"
	RoleManager      UserRole = "MANAGER"
	RoleCollaborator UserRole = "COLLABORATOR"
)

// User represents an employee account scoped to a tenant.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	TenantID     string   `json:"tenantID"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	IsActive     bool     `json:"isActive"`
	AuditFields
}
