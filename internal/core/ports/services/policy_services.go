package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marcostaira/travel-expense/internal/core/domain"
	"github.com/marcostaira/travel-expense/internal/dto"
)

// PolicyEvaluator produces a compliance verdict for a candidate expense.
// Errors in the verdict block submission; warnings never do.
type PolicyEvaluator interface {
	Evaluate(ctx context.Context, tenantID string, category domain.ExpenseCategory, date time.Time, userID string, amountBrl decimal.Decimal, hasReceipt bool) (domain.PolicyCheck, error)
}

// PolicySvcFacade combines policy administration with evaluation.
type PolicySvcFacade interface {
	PolicyEvaluator

	CreatePolicy(ctx context.Context, actor domain.Actor, req dto.CreatePolicyRequest) (*domain.Policy, error)
	GetPolicy(ctx context.Context, actor domain.Actor, policyID string) (*domain.Policy, error)
	ListPolicies(ctx context.Context, actor domain.Actor) ([]domain.Policy, error)
	UpdatePolicy(ctx context.Context, actor domain.Actor, policyID string, req dto.UpdatePolicyRequest) (*domain.Policy, error)
	RemovePolicy(ctx context.Context, actor domain.Actor, policyID string) error
}
