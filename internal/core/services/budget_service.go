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

// budgetCountedStatuses are the expense statuses that count toward a budget's
// actual spend.
var budgetCountedStatuses = []domain.ExpenseStatus{
	domain.ExpenseApproved,
	domain.ExpenseReimbursed,
}

var hundred = decimal.NewFromInt(100)

// budgetService manages budget targets and the on-demand variance summary.
type budgetService struct {
	budgetRepo  portsrepo.BudgetRepository
	expenseRepo portsrepo.ExpenseReader
	ccRepo      portsrepo.CostCenterRepository
	projectRepo portsrepo.ProjectRepository
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(
	budgetRepo portsrepo.BudgetRepository,
	expenseRepo portsrepo.ExpenseReader,
	ccRepo portsrepo.CostCenterRepository,
	projectRepo portsrepo.ProjectRepository,
) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
		ccRepo:      ccRepo,
		projectRepo: projectRepo,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// yearBounds returns the calendar-year window used for actual spend,
// regardless of the budget's declared period granularity.
func yearBounds(year int) (time.Time, time.Time) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 999999999, time.UTC)
	return from, to
}

// CreateBudget creates a budget target. The composite key (year, period, cost
// center, project) is unique per tenant. Admin only.
func (s *budgetService) CreateBudget(ctx context.Context, actor domain.Actor, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("Valor do orçamento deve ser positivo")
	}
	if _, err := s.ccRepo.FindActiveCostCenterByID(ctx, actor.TenantID, req.CostCenterID); err != nil {
		return nil, apperrors.NewValidationError("Centro de custo não encontrado ou inativo")
	}
	if req.ProjectID != nil {
		if _, err := s.projectRepo.FindActiveProjectByID(ctx, actor.TenantID, *req.ProjectID); err != nil {
			return nil, apperrors.NewValidationError("Projeto não encontrado ou inativo")
		}
	}

	key := portsrepo.BudgetKey{
		TenantID:     actor.TenantID,
		Year:         req.Year,
		Period:       req.Period,
		CostCenterID: req.CostCenterID,
		ProjectID:    req.ProjectID,
	}
	if _, err := s.budgetRepo.FindBudgetByKey(ctx, key); err == nil {
		return nil, apperrors.NewBusinessRuleError("Orçamento já existe para este período e centro de custo")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check budget uniqueness: %w", err)
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:     uuid.NewString(),
		TenantID:     actor.TenantID,
		Year:         req.Year,
		Period:       req.Period,
		CostCenterID: req.CostCenterID,
		ProjectID:    req.ProjectID,
		Amount:       req.Amount.Round(2),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewBusinessRuleError("Orçamento já existe para este período e centro de custo")
		}
		logger.Error("Failed to save budget", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	logger.Info("Budget created",
		slog.String("budget_id", budget.BudgetID),
		slog.Int("year", budget.Year))
	return &budget, nil
}

// GetBudget retrieves a budget by id within the actor's tenant.
func (s *budgetService) GetBudget(ctx context.Context, actor domain.Actor, budgetID string) (*domain.Budget, error) {
	return s.budgetRepo.FindBudgetByID(ctx, actor.TenantID, budgetID)
}

// ListBudgets retrieves the tenant's budgets matching the filter.
func (s *budgetService) ListBudgets(ctx context.Context, actor domain.Actor, params dto.ListBudgetsParams) ([]domain.Budget, error) {
	filter := portsrepo.BudgetFilter{
		TenantID:     actor.TenantID,
		Year:         params.Year,
		Period:       params.Period,
		CostCenterID: params.CostCenterID,
	}
	return s.budgetRepo.ListBudgets(ctx, filter)
}

// UpdateBudget updates a budget target. Moving it onto an existing composite
// key is rejected. Admin only.
func (s *budgetService) UpdateBudget(ctx context.Context, actor domain.Actor, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	budget, err := s.budgetRepo.FindBudgetByID(ctx, actor.TenantID, budgetID)
	if err != nil {
		return nil, err
	}

	keyChanged := false
	if req.Year != nil && *req.Year != budget.Year {
		budget.Year = *req.Year
		keyChanged = true
	}
	if req.Period != nil && *req.Period != budget.Period {
		budget.Period = *req.Period
		keyChanged = true
	}
	if req.CostCenterID != nil && *req.CostCenterID != budget.CostCenterID {
		if _, err := s.ccRepo.FindActiveCostCenterByID(ctx, actor.TenantID, *req.CostCenterID); err != nil {
			return nil, apperrors.NewValidationError("Centro de custo não encontrado ou inativo")
		}
		budget.CostCenterID = *req.CostCenterID
		keyChanged = true
	}
	if req.ProjectID != nil {
		if _, err := s.projectRepo.FindActiveProjectByID(ctx, actor.TenantID, *req.ProjectID); err != nil {
			return nil, apperrors.NewValidationError("Projeto não encontrado ou inativo")
		}
		budget.ProjectID = req.ProjectID
		keyChanged = true
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, apperrors.NewValidationError("Valor do orçamento deve ser positivo")
		}
		budget.Amount = req.Amount.Round(2)
	}

	if keyChanged {
		key := portsrepo.BudgetKey{
			TenantID:     actor.TenantID,
			Year:         budget.Year,
			Period:       budget.Period,
			CostCenterID: budget.CostCenterID,
			ProjectID:    budget.ProjectID,
		}
		existing, err := s.budgetRepo.FindBudgetByKey(ctx, key)
		if err == nil && existing.BudgetID != budget.BudgetID {
			return nil, apperrors.NewBusinessRuleError("Orçamento já existe para este período e centro de custo")
		}
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check budget uniqueness: %w", err)
		}
	}

	budget.LastUpdatedAt = time.Now()
	budget.LastUpdatedBy = actor.UserID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewBusinessRuleError("Orçamento já existe para este período e centro de custo")
		}
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return budget, nil
}

// RemoveBudget deletes a budget target. Admin only.
func (s *budgetService) RemoveBudget(ctx context.Context, actor domain.Actor, budgetID string) error {
	if actor.Role != domain.RoleAdmin {
		return apperrors.ErrForbidden
	}
	if _, err := s.budgetRepo.FindBudgetByID(ctx, actor.TenantID, budgetID); err != nil {
		return err
	}
	return s.budgetRepo.DeleteBudget(ctx, actor.TenantID, budgetID)
}

// GetBudgetSummary computes actual spend and variance for every budget of the
// tenant year. Spend always covers the full calendar year of the budget, even
// for quarterly and monthly budgets. Managers and admins only.
func (s *budgetService) GetBudgetSummary(ctx context.Context, actor domain.Actor, year int) ([]domain.BudgetWithVariance, domain.BudgetTotals, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.IsApprover() {
		return nil, domain.BudgetTotals{}, apperrors.ErrForbidden
	}

	budgets, err := s.budgetRepo.ListBudgets(ctx, portsrepo.BudgetFilter{TenantID: actor.TenantID, Year: &year})
	if err != nil {
		return nil, domain.BudgetTotals{}, fmt.Errorf("failed to list budgets: %w", err)
	}

	from, to := yearBounds(year)
	enriched := make([]domain.BudgetWithVariance, 0, len(budgets))
	totalBudget := decimal.Zero
	totalSpent := decimal.Zero

	for _, budget := range budgets {
		spent, err := s.expenseRepo.SumBudgetSpent(ctx, portsrepo.BudgetSpendFilter{
			TenantID:     actor.TenantID,
			CostCenterID: budget.CostCenterID,
			ProjectID:    budget.ProjectID,
			DateFrom:     from,
			DateTo:       to,
			Statuses:     budgetCountedStatuses,
		})
		if err != nil {
			return nil, domain.BudgetTotals{}, fmt.Errorf("failed to aggregate budget spend: %w", err)
		}

		enriched = append(enriched, domain.BudgetWithVariance{
			Budget:             budget,
			ActualSpent:        spent,
			Variance:           spent.Sub(budget.Amount),
			VariancePercentage: variancePct(budget.Amount, spent),
		})
		totalBudget = totalBudget.Add(budget.Amount)
		totalSpent = totalSpent.Add(spent)
	}

	totals := domain.BudgetTotals{
		TotalBudget:             totalBudget,
		TotalSpent:              totalSpent,
		TotalVariance:           totalSpent.Sub(totalBudget),
		TotalVariancePercentage: variancePct(totalBudget, totalSpent),
	}

	logger.Info("Budget summary computed",
		slog.Int("year", year),
		slog.Int("budgets", len(enriched)))
	return enriched, totals, nil
}

// variancePct is (actual - target) / target * 100, rounded to 2 decimals; a
// zero target yields zero instead of a division error.
func variancePct(target, actual decimal.Decimal) decimal.Decimal {
	if target.IsZero() {
		return decimal.Zero
	}
	return actual.Sub(target).Div(target).Mul(hundred).Round(2)
}
