package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcostaira/travel-expense/internal/apperrors"
	"github.com/marcostaira/travel-expense/internal/core/domain"
	portsrepo "github.com/marcostaira/travel-expense/internal/core/ports/repositories"
	"github.com/marcostaira/travel-expense/internal/models"
	"github.com/marcostaira/travel-expense/internal/utils/mapping"
)

const budgetColumns = `budget_id, tenant_id, year, period, cost_center_id, project_id, amount,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxBudgetRepository implements the budget repository interface using pgxpool.
type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(db *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID, &m.TenantID, &m.Year, &m.Period, &m.CostCenterID, &m.ProjectID, &m.Amount,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err)
	}
	budget := mapping.ToDomainBudget(m)
	return &budget, nil
}

// SaveBudget persists a new budget. The unique index on the composite key
// turns concurrent duplicates into apperrors.ErrDuplicate.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO budgets (`+budgetColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		m.BudgetID, m.TenantID, m.Year, m.Period, m.CostCenterID, m.ProjectID, m.Amount,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save budget: %w", translateError(err))
	}
	return nil
}

// UpdateBudget persists changes to an existing budget.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE budgets SET
			year = $1, period = $2, cost_center_id = $3, project_id = $4,
			amount = $5, last_updated_at = $6, last_updated_by = $7
		WHERE tenant_id = $8 AND budget_id = $9;`,
		m.Year, m.Period, m.CostCenterID, m.ProjectID,
		m.Amount, m.LastUpdatedAt, m.LastUpdatedBy,
		m.TenantID, m.BudgetID,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBudget removes a budget row.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, tenantID, budgetID string) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM budgets WHERE tenant_id = $1 AND budget_id = $2;`, tenantID, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindBudgetByID retrieves a budget by id, tenant-scoped.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, tenantID, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE tenant_id = $1 AND budget_id = $2;`
	return scanBudget(r.Pool.QueryRow(ctx, query, tenantID, budgetID))
}

// FindBudgetByKey retrieves a budget by its composite key.
func (r *PgxBudgetRepository) FindBudgetByKey(ctx context.Context, key portsrepo.BudgetKey) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + `
		FROM budgets
		WHERE tenant_id = $1 AND year = $2 AND period = $3 AND cost_center_id = $4`
	args := []interface{}{key.TenantID, key.Year, string(key.Period), key.CostCenterID}
	if key.ProjectID != nil {
		query += ` AND project_id = $5`
		args = append(args, *key.ProjectID)
	} else {
		query += ` AND project_id IS NULL`
	}

	return scanBudget(r.Pool.QueryRow(ctx, query+";", args...))
}

// ListBudgets retrieves the tenant's budgets matching the filter.
func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, filter portsrepo.BudgetFilter) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE tenant_id = $1`
	args := []interface{}{filter.TenantID}
	argNum := 2

	if filter.Year != nil {
		query += fmt.Sprintf(" AND year = $%d", argNum)
		args = append(args, *filter.Year)
		argNum++
	}
	if filter.Period != nil {
		query += fmt.Sprintf(" AND period = $%d", argNum)
		args = append(args, string(*filter.Period))
		argNum++
	}
	if filter.CostCenterID != nil {
		query += fmt.Sprintf(" AND cost_center_id = $%d", argNum)
		args = append(args, *filter.CostCenterID)
		argNum++
	}

	query += " ORDER BY year DESC, cost_center_id;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, *budget)
	}
	return budgets, rows.Err()
}
