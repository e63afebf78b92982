package domain

// Tenant is an isolated company account. Every other entity belongs to exactly one tenant.
type Tenant struct {
	TenantID string `json:"tenantID"` // Primary Key (UUID)
	Name     string `json:"name"`
	Document string `json:"document"` // CNPJ or equivalent registration number
	IsActive bool   `json:"isActive"`
	AuditFields
}
