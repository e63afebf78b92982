package domain

// CostCenter is a scoping dimension for budgets, trips and expenses.
type CostCenter struct {
	CostCenterID string `json:"costCenterID"` // Primary Key (UUID)
	TenantID     string `json:"tenantID"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	IsActive     bool   `json:"isActive"` // soft delete flag
	AuditFields
}
