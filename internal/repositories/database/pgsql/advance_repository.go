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

const advanceColumns = `advance_id, tenant_id, trip_id, requester_id, approver_id,
	amount, reason, status, paid_at,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxAdvanceRepository implements the advance repository interface using pgxpool.
type PgxAdvanceRepository struct {
	BaseRepository
}

func newPgxAdvanceRepository(db *pgxpool.Pool) *PgxAdvanceRepository {
	return &PgxAdvanceRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanAdvance(row pgx.Row) (*domain.Advance, error) {
	var m models.Advance
	err := row.Scan(
		&m.AdvanceID, &m.TenantID, &m.TripID, &m.RequesterID, &m.ApproverID,
		&m.Amount, &m.Reason, &m.Status, &m.PaidAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err)
	}
	advance := mapping.ToDomainAdvance(m)
	return &advance, nil
}

// SaveAdvance persists a new advance.
func (r *PgxAdvanceRepository) SaveAdvance(ctx context.Context, advance domain.Advance) error {
	m := mapping.ToModelAdvance(advance)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO advances (`+advanceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
		m.AdvanceID, m.TenantID, m.TripID, m.RequesterID, m.ApproverID,
		m.Amount, m.Reason, m.Status, m.PaidAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save advance: %w", translateError(err))
	}
	return nil
}

// UpdateAdvance persists changes to an existing advance.
func (r *PgxAdvanceRepository) UpdateAdvance(ctx context.Context, advance domain.Advance) error {
	m := mapping.ToModelAdvance(advance)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE advances SET
			approver_id = $1, amount = $2, reason = $3, status = $4, paid_at = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE tenant_id = $8 AND advance_id = $9;`,
		m.ApproverID, m.Amount, m.Reason, m.Status, m.PaidAt,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.TenantID, m.AdvanceID,
	)
	if err != nil {
		return fmt.Errorf("failed to update advance: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAdvanceByID retrieves an advance by id, tenant-scoped.
func (r *PgxAdvanceRepository) FindAdvanceByID(ctx context.Context, tenantID, advanceID string) (*domain.Advance, error) {
	query := `SELECT ` + advanceColumns + ` FROM advances WHERE tenant_id = $1 AND advance_id = $2;`
	return scanAdvance(r.Pool.QueryRow(ctx, query, tenantID, advanceID))
}

// ListAdvancesByTrip retrieves the advances attached to one trip.
func (r *PgxAdvanceRepository) ListAdvancesByTrip(ctx context.Context, tenantID, tripID string) ([]domain.Advance, error) {
	query := `SELECT ` + advanceColumns + `
		FROM advances WHERE tenant_id = $1 AND trip_id = $2 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, tenantID, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	var advances []domain.Advance
	for rows.Next() {
		advance, err := scanAdvance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		advances = append(advances, *advance)
	}
	return advances, rows.Err()
}
