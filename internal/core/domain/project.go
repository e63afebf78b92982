package domain

// Project is an optional scoping dimension for budgets, trips and expenses.
// The project code is unique per tenant among active projects.
type Project struct {
	ProjectID    string  `json:"projectID"` // Primary Key (UUID)
	TenantID     string  `json:"tenantID"`
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	CostCenterID *string `json:"costCenterID,omitempty"`
	IsActive     bool    `json:"isActive"` // soft delete flag
	AuditFields
}
