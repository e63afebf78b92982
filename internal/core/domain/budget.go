package domain

import "github.com/shopspring/decimal"

// BudgetPeriod enumerates the declared granularity of a budget.
type BudgetPeriod string

const (
	PeriodYearly    BudgetPeriod = "YEARLY"
	PeriodQuarterly BudgetPeriod = "QUARTERLY"
	PeriodMonthly   BudgetPeriod = "MONTHLY"
)

// Budget tracks a target amount for a tenant/year/period/cost-center scope,
// optionally narrowed to a project. The composite key is unique.
type Budget struct {
	BudgetID     string          `json:"budgetID"` // Primary Key (UUID)
	TenantID     string          `json:"tenantID"`
	Year         int             `json:"year"`
	Period       BudgetPeriod    `json:"period"`
	CostCenterID string          `json:"costCenterID"`
	ProjectID    *string         `json:"projectID,omitempty"`
	Amount       decimal.Decimal `json:"amount"` // target, BRL
	AuditFields
}

// BudgetWithVariance is a budget enriched with on-demand actual spend.
// Actual spend sums base-currency amounts of APPROVED and REIMBURSED expenses
// in the budget's scope over the full-year bounds, whatever the declared
// period granularity.
type BudgetWithVariance struct {
	Budget
	ActualSpent        decimal.Decimal `json:"actualSpent"`
	Variance           decimal.Decimal `json:"variance"` // actual - target
	VariancePercentage decimal.Decimal `json:"variancePercentage"`
}

// BudgetTotals aggregates a tenant-year budget summary.
type BudgetTotals struct {
	TotalBudget             decimal.Decimal `json:"totalBudget"`
	TotalSpent              decimal.Decimal `json:"totalSpent"`
	TotalVariance           decimal.Decimal `json:"totalVariance"`
	TotalVariancePercentage decimal.Decimal `json:"totalVariancePercentage"`
}
