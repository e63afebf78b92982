package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcostaira/travel-expense/internal/core/domain"
	"github.com/marcostaira/travel-expense/internal/models"
	"github.com/marcostaira/travel-expense/internal/utils/mapping"
)

const fxRateColumns = `fx_rate_id, currency, rate, date,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxFxRateRepository implements the fx-rate repository interface using pgxpool.
type PgxFxRateRepository struct {
	BaseRepository
}

func newPgxFxRateRepository(db *pgxpool.Pool) *PgxFxRateRepository {
	return &PgxFxRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanFxRate(row pgx.Row) (*domain.FxRate, error) {
	var m models.FxRate
	err := row.Scan(
		&m.FxRateID, &m.Currency, &m.Rate, &m.Date,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err)
	}
	rate := mapping.ToDomainFxRate(m)
	return &rate, nil
}

// FindRateByDate retrieves the rate for a currency on a specific day.
func (r *PgxFxRateRepository) FindRateByDate(ctx context.Context, currency string, date time.Time) (*domain.FxRate, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	query := `SELECT ` + fxRateColumns + ` FROM fx_rates WHERE currency = $1 AND date = $2;`
	return scanFxRate(r.Pool.QueryRow(ctx, query, strings.ToUpper(currency), day))
}

// FindLatestRate retrieves the most recent rate record for a currency.
func (r *PgxFxRateRepository) FindLatestRate(ctx context.Context, currency string) (*domain.FxRate, error) {
	query := `SELECT ` + fxRateColumns + `
		FROM fx_rates WHERE currency = $1 ORDER BY date DESC LIMIT 1;`
	return scanFxRate(r.Pool.QueryRow(ctx, query, strings.ToUpper(currency)))
}

// UpsertRate inserts the rate for (currency, date) or updates it in place.
func (r *PgxFxRateRepository) UpsertRate(ctx context.Context, rate domain.FxRate) error {
	m := mapping.ToModelFxRate(rate)
	m.Currency = strings.ToUpper(m.Currency)
	m.Date = time.Date(m.Date.Year(), m.Date.Month(), m.Date.Day(), 0, 0, 0, 0, time.UTC)

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO fx_rates (`+fxRateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (currency, date) DO UPDATE
		SET rate = EXCLUDED.rate,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;`,
		m.FxRateID, m.Currency, m.Rate, m.Date,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert fx rate: %w", err)
	}
	return nil
}
