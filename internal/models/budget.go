package models

import "github.com/shopspring/decimal"

// Budget mirrors the budgets table.
type Budget struct {
	BudgetID     string          `db:"budget_id"`
	TenantID     string          `db:"tenant_id"`
	Year         int             `db:"year"`
	Period       string          `db:"period"`
	CostCenterID string          `db:"cost_center_id"`
	ProjectID    *string         `db:"project_id"`
	Amount       decimal.Decimal `db:"amount"`
	AuditFields
}
