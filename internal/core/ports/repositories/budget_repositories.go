package repositories

import (
	"context"

	"github.com/marcostaira/travel-expense/internal/core/domain"
)

// BudgetFilter narrows budget list queries.
type BudgetFilter struct {
	TenantID     string
	Year         *int
	Period       *domain.BudgetPeriod
	CostCenterID *string
}

// BudgetKey is the composite uniqueness key of a budget.
type BudgetKey struct {
	TenantID     string
	Year         int
	Period       domain.BudgetPeriod
	CostCenterID string
	ProjectID    *string
}

// BudgetRepository defines persistence operations for budgets. SaveBudget
// relies on the database-level unique constraint over the composite key, so
// duplicate creation stays safe under concurrent requests; it returns
// apperrors.ErrDuplicate on conflict.
type BudgetRepository interface {
	SaveBudget(ctx context.Context, budget domain.Budget) error
	UpdateBudget(ctx context.Context, budget domain.Budget) error
	DeleteBudget(ctx context.Context, tenantID, budgetID string) error

	FindBudgetByID(ctx context.Context, tenantID, budgetID string) (*domain.Budget, error)

	// FindBudgetByKey retrieves a budget by its composite key, or
	// apperrors.ErrNotFound.
	FindBudgetByKey(ctx context.Context, key BudgetKey) (*domain.Budget, error)

	ListBudgets(ctx context.Context, filter BudgetFilter) ([]domain.Budget, error)
}
