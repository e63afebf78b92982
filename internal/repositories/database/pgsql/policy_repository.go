package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcostaira/travel-expense/internal/apperrors"
	"github.com/marcostaira/travel-expense/internal/core/domain"
	"github.com/marcostaira/travel-expense/internal/models"
	"github.com/marcostaira/travel-expense/internal/utils/mapping"
)

const policyColumns = `policy_id, tenant_id, category, receipt_required_over, daily_limit,
	km_rate, notes, is_active, created_at, created_by, last_updated_at, last_updated_by`

// PgxPolicyRepository implements the policy repository interface using pgxpool.
type PgxPolicyRepository struct {
	BaseRepository
}

func newPgxPolicyRepository(db *pgxpool.Pool) *PgxPolicyRepository {
	return &PgxPolicyRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanPolicy(row pgx.Row) (*domain.Policy, error) {
	var m models.Policy
	err := row.Scan(
		&m.PolicyID, &m.TenantID, &m.Category, &m.ReceiptRequiredOver, &m.DailyLimit,
		&m.KmRate, &m.Notes, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err)
	}
	policy := mapping.ToDomainPolicy(m)
	return &policy, nil
}

// SavePolicy persists a new policy.
func (r *PgxPolicyRepository) SavePolicy(ctx context.Context, policy domain.Policy) error {
	m := mapping.ToModelPolicy(policy)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO policies (`+policyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
		m.PolicyID, m.TenantID, m.Category, m.ReceiptRequiredOver, m.DailyLimit,
		m.KmRate, m.Notes, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save policy: %w", translateError(err))
	}
	return nil
}

// UpdatePolicy persists changes to an existing policy.
func (r *PgxPolicyRepository) UpdatePolicy(ctx context.Context, policy domain.Policy) error {
	m := mapping.ToModelPolicy(policy)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE policies SET
			receipt_required_over = $1, daily_limit = $2, km_rate = $3,
			notes = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE tenant_id = $8 AND policy_id = $9;`,
		m.ReceiptRequiredOver, m.DailyLimit, m.KmRate,
		m.Notes, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
		m.TenantID, m.PolicyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update policy: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindPolicyByID retrieves a policy regardless of its active flag.
func (r *PgxPolicyRepository) FindPolicyByID(ctx context.Context, tenantID, policyID string) (*domain.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies WHERE tenant_id = $1 AND policy_id = $2;`
	return scanPolicy(r.Pool.QueryRow(ctx, query, tenantID, policyID))
}

// FindActivePolicyByCategory retrieves the active policy for a category.
func (r *PgxPolicyRepository) FindActivePolicyByCategory(ctx context.Context, tenantID string, category domain.ExpenseCategory) (*domain.Policy, error) {
	query := `SELECT ` + policyColumns + `
		FROM policies WHERE tenant_id = $1 AND category = $2 AND is_active = TRUE;`
	return scanPolicy(r.Pool.QueryRow(ctx, query, tenantID, string(category)))
}

// ListActivePolicies retrieves all active policies of a tenant ordered by category.
func (r *PgxPolicyRepository) ListActivePolicies(ctx context.Context, tenantID string) ([]domain.Policy, error) {
	query := `SELECT ` + policyColumns + `
		FROM policies WHERE tenant_id = $1 AND is_active = TRUE ORDER BY category;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	defer rows.Close()

	var policies []domain.Policy
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan policy: %w", err)
		}
		policies = append(policies, *policy)
	}
	return policies, rows.Err()
}
