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

const userColumns = `user_id, tenant_id, name, email, password_hash, role, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxUserRepository implements the user repository interface using pgxpool,
// including the manager_cost_centers assignment table.
type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID, &m.TenantID, &m.Name, &m.Email, &m.PasswordHash, &m.Role, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

// SaveUser persists a new user. The unique index on email turns duplicates
// into apperrors.ErrDuplicate.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		m.UserID, m.TenantID, m.Name, m.Email, m.PasswordHash, m.Role, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", translateError(err))
	}
	return nil
}

// UpdateUser persists changes to an existing user.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE users SET
			name = $1, email = $2, password_hash = $3, role = $4, is_active = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE tenant_id = $8 AND user_id = $9;`,
		m.Name, m.Email, m.PasswordHash, m.Role, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.TenantID, m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindUserByID retrieves a user by id, tenant-scoped.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, tenantID, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE tenant_id = $1 AND user_id = $2;`
	return scanUser(r.Pool.QueryRow(ctx, query, tenantID, userID))
}

// FindUserByEmail retrieves a user by email across tenants. Used by login,
// which has no tenant context yet.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	return scanUser(r.Pool.QueryRow(ctx, query, email))
}

// ListUsers retrieves the tenant's users ordered by name.
func (r *PgxUserRepository) ListUsers(ctx context.Context, tenantID string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE tenant_id = $1 ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// ListManagedCostCenterIDs returns the cost centers assigned to a manager.
func (r *PgxUserRepository) ListManagedCostCenterIDs(ctx context.Context, tenantID, userID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT cost_center_id FROM manager_cost_centers
		WHERE tenant_id = $1 AND user_id = $2;`, tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list managed cost centers: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan cost center id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AssignCostCenters replaces a manager's cost-center assignments atomically.
func (r *PgxUserRepository) AssignCostCenters(ctx context.Context, tenantID, userID string, costCenterIDs []string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM manager_cost_centers WHERE tenant_id = $1 AND user_id = $2;`,
		tenantID, userID); err != nil {
		_ = r.Rollback(ctx, tx)
		return fmt.Errorf("failed to clear cost center assignments: %w", err)
	}

	for _, ccID := range costCenterIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO manager_cost_centers (tenant_id, user_id, cost_center_id) VALUES ($1, $2, $3);`,
			tenantID, userID, ccID); err != nil {
			_ = r.Rollback(ctx, tx)
			return fmt.Errorf("failed to assign cost center: %w", translateError(err))
		}
	}

	return r.Commit(ctx, tx)
}
