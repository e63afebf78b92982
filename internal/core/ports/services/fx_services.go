package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/marcostaira/travel-expense/internal/core/domain"
)

// FxSvcFacade normalizes amounts to the base currency and maintains the
// daily rate table.
type FxSvcFacade interface {
	// ConvertToBase converts an amount in fromCurrency to BRL using today's
	// rate, falling back to the latest known rate, then to built-in defaults.
	ConvertToBase(ctx context.Context, amount decimal.Decimal, fromCurrency string) (decimal.Decimal, error)

	// GetRate resolves the effective rate for a currency, applying the same
	// fallback chain as ConvertToBase.
	GetRate(ctx context.Context, currency string) (decimal.Decimal, error)

	// SyncRates upserts today's rate rows for the fixed currency set.
	SyncRates(ctx context.Context, actorUserID string) ([]domain.FxRate, error)
}
