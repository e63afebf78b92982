package services

import (
	"context"

	"github.com/marcostaira/travel-expense/internal/core/domain"
	"github.com/marcostaira/travel-expense/internal/dto"
)

// BudgetSvcFacade exposes budget administration and the on-demand variance summary.
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, actor domain.Actor, req dto.CreateBudgetRequest) (*domain.Budget, error)
	GetBudget(ctx context.Context, actor domain.Actor, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, actor domain.Actor, params dto.ListBudgetsParams) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, actor domain.Actor, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)
	RemoveBudget(ctx context.Context, actor domain.Actor, budgetID string) error

	// GetBudgetSummary computes actual spend and variance for every budget of
	// the tenant year.
	GetBudgetSummary(ctx context.Context, actor domain.Actor, year int) ([]domain.BudgetWithVariance, domain.BudgetTotals, error)
}
