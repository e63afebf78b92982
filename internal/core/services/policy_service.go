package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marcostaira/travel-expense/internal/apperrors"
	"github.com/marcostaira/travel-expense/internal/core/domain"
	portsrepo "github.com/marcostaira/travel-expense/internal/core/ports/repositories"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
)

// policyCountedStatuses are the expense statuses that count toward a user's
// daily spend in a category.
var policyCountedStatuses = []domain.ExpenseStatus{
	domain.ExpenseSubmitted,
	domain.ExpenseApproved,
	domain.ExpenseAdjusted,
}

// policyService provides compliance evaluation and policy administration.
type policyService struct {
	policyRepo  portsrepo.PolicyRepository
	expenseRepo portsrepo.ExpenseReader
}

// NewPolicyService creates a new PolicyService.
func NewPolicyService(policyRepo portsrepo.PolicyRepository, expenseRepo portsrepo.ExpenseReader) portssvc.PolicySvcFacade {
	return &policyService{
		policyRepo:  policyRepo,
		expenseRepo: expenseRepo,
	}
}

var _ portssvc.PolicySvcFacade = (*policyService)(nil)

// Evaluate produces the compliance verdict for a candidate expense. The
// receipt rule yields an error and invalidates the verdict; the daily-limit
// rule only yields a warning so managers see flagged-but-not-blocked cases.
func (s *policyService) Evaluate(ctx context.Context, tenantID string, category domain.ExpenseCategory, date time.Time, userID string, amountBrl decimal.Decimal, hasReceipt bool) (domain.PolicyCheck, error) {
	result := domain.ValidPolicyCheck()

	policy, err := s.policyRepo.FindActivePolicyByCategory(ctx, tenantID, category)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// No active policy for the category: no constraints.
			return result, nil
		}
		return result, fmt.Errorf("failed to load policy for category %s: %w", category, err)
	}

	if policy.ReceiptRequiredOver != nil && amountBrl.GreaterThanOrEqual(*policy.ReceiptRequiredOver) {
		result.ReceiptRequired = true
		if !hasReceipt {
			result.ReceiptMissing = true
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Recibo obrigatório para valores acima de R$ %s", policy.ReceiptRequiredOver.StringFixed(2)))
		}
	}

	if policy.DailyLimit != nil {
		dayStart := startOfDay(date)
		dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

		spent, err := s.expenseRepo.SumDailySpent(ctx, portsrepo.DailySpendFilter{
			TenantID: tenantID,
			UserID:   userID,
			Category: category,
			DayStart: dayStart,
			DayEnd:   dayEnd,
			Statuses: policyCountedStatuses,
		})
		if err != nil {
			return result, fmt.Errorf("failed to aggregate daily spend: %w", err)
		}

		totalDailySpent := spent.Add(amountBrl)
		limit := *policy.DailyLimit
		result.DailyLimit = &limit
		result.DailySpent = &totalDailySpent

		if totalDailySpent.GreaterThan(limit) {
			result.ExceedsDailyLimit = true
			result.Warnings = append(result.Warnings, fmt.Sprintf("Limite diário excedido (R$ %s - gasto hoje: R$ %s)", limit.StringFixed(2), totalDailySpent.StringFixed(2)))
		}
	}

	return result, nil
}

// CreatePolicy creates a new policy for a category. Admin only.
func (s *policyService) CreatePolicy(ctx context.Context, actor domain.Actor, req dto.CreatePolicyRequest) (*domain.Policy, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}
	if req.ReceiptRequiredOver != nil && req.ReceiptRequiredOver.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("limite de recibo deve ser positivo")
	}
	if req.DailyLimit != nil && req.DailyLimit.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("limite diário deve ser positivo")
	}

	now := time.Now()
	policy := domain.Policy{
		PolicyID:            uuid.NewString(),
		TenantID:            actor.TenantID,
		Category:            req.Category,
		ReceiptRequiredOver: req.ReceiptRequiredOver,
		DailyLimit:          req.DailyLimit,
		KmRate:              req.KmRate,
		Notes:               req.Notes,
		IsActive:            true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.policyRepo.SavePolicy(ctx, policy); err != nil {
		logger.Error("Failed to save policy", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create policy: %w", err)
	}

	logger.Info("Policy created", slog.String("policy_id", policy.PolicyID), slog.String("category", string(policy.Category)))
	return &policy, nil
}

// GetPolicy retrieves a policy by id within the actor's tenant.
func (s *policyService) GetPolicy(ctx context.Context, actor domain.Actor, policyID string) (*domain.Policy, error) {
	policy, err := s.policyRepo.FindPolicyByID(ctx, actor.TenantID, policyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find policy %s: %w", policyID, err)
	}
	return policy, nil
}

// ListPolicies retrieves the tenant's active policies.
func (s *policyService) ListPolicies(ctx context.Context, actor domain.Actor) ([]domain.Policy, error) {
	policies, err := s.policyRepo.ListActivePolicies(ctx, actor.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	return policies, nil
}

// UpdatePolicy updates a policy's limits and notes. Admin only.
func (s *policyService) UpdatePolicy(ctx context.Context, actor domain.Actor, policyID string, req dto.UpdatePolicyRequest) (*domain.Policy, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	policy, err := s.policyRepo.FindPolicyByID(ctx, actor.TenantID, policyID)
	if err != nil {
		return nil, err
	}

	if req.ReceiptRequiredOver != nil {
		policy.ReceiptRequiredOver = req.ReceiptRequiredOver
	}
	if req.DailyLimit != nil {
		policy.DailyLimit = req.DailyLimit
	}
	if req.KmRate != nil {
		policy.KmRate = req.KmRate
	}
	if req.Notes != nil {
		policy.Notes = *req.Notes
	}
	policy.LastUpdatedAt = time.Now()
	policy.LastUpdatedBy = actor.UserID

	if err := s.policyRepo.UpdatePolicy(ctx, *policy); err != nil {
		return nil, fmt.Errorf("failed to update policy: %w", err)
	}
	return policy, nil
}

// RemovePolicy soft-deletes a policy; evaluation ignores it afterwards. Admin only.
func (s *policyService) RemovePolicy(ctx context.Context, actor domain.Actor, policyID string) error {
	if actor.Role != domain.RoleAdmin {
		return apperrors.ErrForbidden
	}

	policy, err := s.policyRepo.FindPolicyByID(ctx, actor.TenantID, policyID)
	if err != nil {
		return err
	}

	policy.IsActive = false
	policy.LastUpdatedAt = time.Now()
	policy.LastUpdatedBy = actor.UserID

	if err := s.policyRepo.UpdatePolicy(ctx, *policy); err != nil {
		return fmt.Errorf("failed to deactivate policy: %w", err)
	}
	return nil
}
