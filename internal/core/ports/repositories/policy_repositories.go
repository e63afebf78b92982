package repositories

import (
	"context"

	"github.com/marcostaira/travel-expense/internal/core/domain"
)

// PolicyRepository defines persistence operations for expense policies.
type PolicyRepository interface {
	SavePolicy(ctx context.Context, policy domain.Policy) error
	UpdatePolicy(ctx context.Context, policy domain.Policy) error

	// FindPolicyByID retrieves a policy regardless of its active flag.
	FindPolicyByID(ctx context.Context, tenantID, policyID string) (*domain.Policy, error)

	// FindActivePolicyByCategory retrieves the active policy for a category,
	// or apperrors.ErrNotFound when no active policy constrains it.
	FindActivePolicyByCategory(ctx context.Context, tenantID string, category domain.ExpenseCategory) (*domain.Policy, error)

	// ListActivePolicies retrieves all active policies of a tenant ordered by category.
	ListActivePolicies(ctx context.Context, tenantID string) ([]domain.Policy, error)
}
