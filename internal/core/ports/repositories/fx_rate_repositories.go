package repositories

import (
	"context"
	"time"

	"github.com/marcostaira/travel-expense/internal/core/domain"
)

// FxRateRepository defines persistence operations for daily exchange rates.
type FxRateRepository interface {
	// FindRateByDate retrieves the rate for a currency on the given day
	// (date normalized to midnight), or apperrors.ErrNotFound.
	FindRateByDate(ctx context.Context, currency string, date time.Time) (*domain.FxRate, error)

	// FindLatestRate retrieves the most recent rate record for a currency,
	// or apperrors.ErrNotFound when none exists at all.
	FindLatestRate(ctx context.Context, currency string) (*domain.FxRate, error)

	// UpsertRate inserts the rate for (currency, date) or updates it in place.
	UpsertRate(ctx context.Context, rate domain.FxRate) error
}
