package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marcostaira/travel-expense/internal/core/domain"
)

// CreateBudgetRequest defines the structure for creating a new budget.
type CreateBudgetRequest struct {
	Year         int                 `json:"year" binding:"required,min=2000,max=2100"`
	Period       domain.BudgetPeriod `json:"period" binding:"required,oneof=YEARLY QUARTERLY MONTHLY"`
	CostCenterID string              `json:"costCenterID" binding:"required,uuid"`
	ProjectID    *string             `json:"projectID,omitempty" binding:"omitempty,uuid"`
	Amount       decimal.Decimal     `json:"amount" binding:"required"`
}

// UpdateBudgetRequest defines the structure for updating a budget.
type UpdateBudgetRequest struct {
	Year         *int                 `json:"year,omitempty" binding:"omitempty,min=2000,max=2100"`
	Period       *domain.BudgetPeriod `json:"period,omitempty" binding:"omitempty,oneof=YEARLY QUARTERLY MONTHLY"`
	CostCenterID *string              `json:"costCenterID,omitempty" binding:"omitempty,uuid"`
	ProjectID    *string              `json:"projectID,omitempty" binding:"omitempty,uuid"`
	Amount       *decimal.Decimal     `json:"amount,omitempty"`
}

// ListBudgetsParams holds query parameters for listing budgets.
type ListBudgetsParams struct {
	Year         *int                 `form:"year"`
	Period       *domain.BudgetPeriod `form:"period"`
	CostCenterID *string              `form:"costCenterID"`
}

// BudgetResponse defines the structure for API responses containing budget details.
type BudgetResponse struct {
	BudgetID     string              `json:"budgetID"`
	TenantID     string              `json:"tenantID"`
	Year         int                 `json:"year"`
	Period       domain.BudgetPeriod `json:"period"`
	CostCenterID string              `json:"costCenterID"`
	ProjectID    *string             `json:"projectID,omitempty"`
	Amount       decimal.Decimal     `json:"amount"`
	CreatedAt    time.Time           `json:"createdAt"`
	LastUpdated  time.Time           `json:"lastUpdatedAt"`
}

// BudgetWithVarianceResponse is a budget with its computed actual spend.
type BudgetWithVarianceResponse struct {
	BudgetResponse
	ActualSpent        decimal.Decimal `json:"actualSpent"`
	Variance           decimal.Decimal `json:"variance"`
	VariancePercentage decimal.Decimal `json:"variancePercentage"`
}

// BudgetSummaryResponse aggregates a tenant-year budget summary.
type BudgetSummaryResponse struct {
	Budgets []BudgetWithVarianceResponse `json:"budgets"`
	Summary BudgetTotalsResponse         `json:"summary"`
}

// BudgetTotalsResponse holds the summary totals.
type BudgetTotalsResponse struct {
	TotalBudget             decimal.Decimal `json:"totalBudget"`
	TotalSpent              decimal.Decimal `json:"totalSpent"`
	TotalVariance           decimal.Decimal `json:"totalVariance"`
	TotalVariancePercentage decimal.Decimal `json:"totalVariancePercentage"`
}

// ToBudgetResponse converts a domain.Budget to BudgetResponse DTO
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:     b.BudgetID,
		TenantID:     b.TenantID,
		Year:         b.Year,
		Period:       b.Period,
		CostCenterID: b.CostCenterID,
		ProjectID:    b.ProjectID,
		Amount:       b.Amount,
		CreatedAt:    b.CreatedAt,
		LastUpdated:  b.LastUpdatedAt,
	}
}

// ToBudgetSummaryResponse converts the domain summary to its DTO.
func ToBudgetSummaryResponse(budgets []domain.BudgetWithVariance, totals domain.BudgetTotals) BudgetSummaryResponse {
	out := make([]BudgetWithVarianceResponse, len(budgets))
	for i := range budgets {
		out[i] = BudgetWithVarianceResponse{
			BudgetResponse:     ToBudgetResponse(&budgets[i].Budget),
			ActualSpent:        budgets[i].ActualSpent,
			Variance:           budgets[i].Variance,
			VariancePercentage: budgets[i].VariancePercentage,
		}
	}
	return BudgetSummaryResponse{
		Budgets: out,
		Summary: BudgetTotalsResponse{
			TotalBudget:             totals.TotalBudget,
			TotalSpent:              totals.TotalSpent,
			TotalVariance:           totals.TotalVariance,
			TotalVariancePercentage: totals.TotalVariancePercentage,
		},
	}
}
