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

const costCenterColumns = `cost_center_id, tenant_id, name, code, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxCostCenterRepository implements the cost-center repository interface using pgxpool.
type PgxCostCenterRepository struct {
	BaseRepository
}

func newPgxCostCenterRepository(db *pgxpool.Pool) *PgxCostCenterRepository {
	return &PgxCostCenterRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanCostCenter(row pgx.Row) (*domain.CostCenter, error) {
	var m models.CostCenter
	err := row.Scan(
		&m.CostCenterID, &m.TenantID, &m.Name, &m.Code, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err)
	}
	cc := mapping.ToDomainCostCenter(m)
	return &cc, nil
}

// SaveCostCenter persists a new cost center.
func (r *PgxCostCenterRepository) SaveCostCenter(ctx context.Context, cc domain.CostCenter) error {
	m := mapping.ToModelCostCenter(cc)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO cost_centers (`+costCenterColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		m.CostCenterID, m.TenantID, m.Name, m.Code, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save cost center: %w", translateError(err))
	}
	return nil
}

// UpdateCostCenter persists changes to an existing cost center.
func (r *PgxCostCenterRepository) UpdateCostCenter(ctx context.Context, cc domain.CostCenter) error {
	m := mapping.ToModelCostCenter(cc)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE cost_centers SET
			name = $1, code = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $6 AND cost_center_id = $7;`,
		m.Name, m.Code, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
		m.TenantID, m.CostCenterID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cost center: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindCostCenterByID retrieves a cost center regardless of its active flag.
func (r *PgxCostCenterRepository) FindCostCenterByID(ctx context.Context, tenantID, costCenterID string) (*domain.CostCenter, error) {
	query := `SELECT ` + costCenterColumns + `
		FROM cost_centers WHERE tenant_id = $1 AND cost_center_id = $2;`
	return scanCostCenter(r.Pool.QueryRow(ctx, query, tenantID, costCenterID))
}

// FindActiveCostCenterByID retrieves a cost center only when it is active.
func (r *PgxCostCenterRepository) FindActiveCostCenterByID(ctx context.Context, tenantID, costCenterID string) (*domain.CostCenter, error) {
	query := `SELECT ` + costCenterColumns + `
		FROM cost_centers WHERE tenant_id = $1 AND cost_center_id = $2 AND is_active = TRUE;`
	return scanCostCenter(r.Pool.QueryRow(ctx, query, tenantID, costCenterID))
}

// ListActiveCostCenters retrieves the tenant's active cost centers ordered by code.
func (r *PgxCostCenterRepository) ListActiveCostCenters(ctx context.Context, tenantID string) ([]domain.CostCenter, error) {
	query := `SELECT ` + costCenterColumns + `
		FROM cost_centers WHERE tenant_id = $1 AND is_active = TRUE ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost centers: %w", err)
	}
	defer rows.Close()

	var ccs []domain.CostCenter
	for rows.Next() {
		cc, err := scanCostCenter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cost center: %w", err)
		}
		ccs = append(ccs, *cc)
	}
	return ccs, rows.Err()
}
