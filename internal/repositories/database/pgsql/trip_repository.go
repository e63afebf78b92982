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

const tripColumns = `trip_id, tenant_id, requester_id, manager_id, cost_center_id, project_id,
	origin, destination, start_date, end_date, purpose, status,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxTripRepository implements the trip repository interfaces using pgxpool.
type PgxTripRepository struct {
	BaseRepository
}

func newPgxTripRepository(db *pgxpool.Pool) *PgxTripRepository {
	return &PgxTripRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanTrip(row pgx.Row) (*domain.Trip, error) {
	var m models.Trip
	err := row.Scan(
		&m.TripID, &m.TenantID, &m.RequesterID, &m.ManagerID, &m.CostCenterID, &m.ProjectID,
		&m.Origin, &m.Destination, &m.StartDate, &m.EndDate, &m.Purpose, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err)
	}
	trip := mapping.ToDomainTrip(m)
	return &trip, nil
}

// FindTripByID retrieves a trip with its notes, tenant-scoped.
func (r *PgxTripRepository) FindTripByID(ctx context.Context, tenantID, tripID string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE tenant_id = $1 AND trip_id = $2;`

	trip, err := scanTrip(r.Pool.QueryRow(ctx, query, tenantID, tripID))
	if err != nil {
		return nil, err
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT note_id, trip_id, actor_id, action, message, created_at
		FROM trip_notes WHERE trip_id = $1 ORDER BY created_at;`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trip notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.WorkflowNote
		if err := rows.Scan(&m.NoteID, &m.OwnerID, &m.ActorID, &m.Action, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trip note: %w", err)
		}
		trip.Notes = append(trip.Notes, mapping.ToDomainWorkflowNote(m))
	}
	return trip, rows.Err()
}

// ListTrips retrieves trips matching the filter, newest first, plus the total count.
func (r *PgxTripRepository) ListTrips(ctx context.Context, filter portsrepo.TripFilter) ([]domain.Trip, int, error) {
	baseQuery := `FROM trips WHERE tenant_id = $1`
	args := []interface{}{filter.TenantID}
	argNum := 2

	switch filter.Scope.Kind {
	case domain.ScopeTenantWide:
	case domain.ScopeCostCenters:
		baseQuery += fmt.Sprintf(" AND (requester_id = $%d OR cost_center_id = ANY($%d))", argNum, argNum+1)
		args = append(args, filter.Scope.UserID, filter.Scope.CostCenterIDs)
		argNum += 2
	default:
		baseQuery += fmt.Sprintf(" AND requester_id = $%d", argNum)
		args = append(args, filter.Scope.UserID)
		argNum++
	}

	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, string(*filter.Status))
		argNum++
	}

	var total int
	if err := r.Pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}
	if total == 0 {
		return []domain.Trip{}, 0, nil
	}

	query := "SELECT " + tripColumns + " " + baseQuery + " ORDER BY start_date DESC, created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, *trip)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating trips: %w", err)
	}

	return trips, total, nil
}

// SaveTrip persists a new trip.
func (r *PgxTripRepository) SaveTrip(ctx context.Context, trip domain.Trip) error {
	m := mapping.ToModelTrip(trip)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO trips (`+tripColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`,
		m.TripID, m.TenantID, m.RequesterID, m.ManagerID, m.CostCenterID, m.ProjectID,
		m.Origin, m.Destination, m.StartDate, m.EndDate, m.Purpose, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save trip: %w", translateError(err))
	}
	return nil
}

// UpdateTrip persists changes to an existing trip.
func (r *PgxTripRepository) UpdateTrip(ctx context.Context, trip domain.Trip) error {
	m := mapping.ToModelTrip(trip)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE trips SET
			requester_id = $1, manager_id = $2, cost_center_id = $3, project_id = $4,
			origin = $5, destination = $6, start_date = $7, end_date = $8,
			purpose = $9, status = $10, last_updated_at = $11, last_updated_by = $12
		WHERE tenant_id = $13 AND trip_id = $14;`,
		m.RequesterID, m.ManagerID, m.CostCenterID, m.ProjectID,
		m.Origin, m.Destination, m.StartDate, m.EndDate,
		m.Purpose, m.Status, m.LastUpdatedAt, m.LastUpdatedBy,
		m.TenantID, m.TripID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTrip removes the trip row; note rows cascade.
func (r *PgxTripRepository) DeleteTrip(ctx context.Context, tenantID, tripID string) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM trips WHERE tenant_id = $1 AND trip_id = $2;`, tenantID, tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveTripNote appends one workflow note to the trip's audit trail.
func (r *PgxTripRepository) SaveTripNote(ctx context.Context, tripID string, note domain.WorkflowNote) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO trip_notes (note_id, trip_id, actor_id, action, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		note.NoteID, tripID, note.ActorID, string(note.Action), note.Message, note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save trip note: %w", err)
	}
	return nil
}
