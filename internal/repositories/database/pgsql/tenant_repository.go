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

const tenantColumns = `tenant_id, name, document, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxTenantRepository implements the tenant repository interface using pgxpool.
type PgxTenantRepository struct {
	BaseRepository
}

func newPgxTenantRepository(db *pgxpool.Pool) *PgxTenantRepository {
	return &PgxTenantRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanTenant(row pgx.Row) (*domain.Tenant, error) {
	var m models.Tenant
	err := row.Scan(
		&m.TenantID, &m.Name, &m.Document, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err)
	}
	tenant := mapping.ToDomainTenant(m)
	return &tenant, nil
}

// SaveTenant persists a new tenant.
func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	m := mapping.ToModelTenant(tenant)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO tenants (`+tenantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		m.TenantID, m.Name, m.Document, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save tenant: %w", translateError(err))
	}
	return nil
}

// UpdateTenant persists changes to an existing tenant.
func (r *PgxTenantRepository) UpdateTenant(ctx context.Context, tenant domain.Tenant) error {
	m := mapping.ToModelTenant(tenant)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE tenants SET
			name = $1, document = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $6;`,
		m.Name, m.Document, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy, m.TenantID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tenant: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindTenantByID retrieves a tenant by id.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE tenant_id = $1;`
	return scanTenant(r.Pool.QueryRow(ctx, query, tenantID))
}
