package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marcostaira/travel-expense/internal/apperrors"
	"github.com/marcostaira/travel-expense/internal/core/domain"
	portsrepo "github.com/marcostaira/travel-expense/internal/core/ports/repositories"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/middleware"
)

// defaultFxRates is the built-in fallback table used when no rate record
// exists at all for a currency.
var defaultFxRates = map[string]decimal.Decimal{
	"USD": decimal.NewFromFloat(5.50),
	"EUR": decimal.NewFromFloat(6.00),
	"GBP": decimal.NewFromFloat(7.00),
}

// syncCurrencies is the fixed currency set maintained by SyncRates.
var syncCurrencies = []string{"USD", "EUR", "GBP"}

// fxService normalizes amounts to the tenant base currency (BRL).
type fxService struct {
	rateRepo portsrepo.FxRateRepository
}

// NewFxService creates a new FxService.
func NewFxService(rateRepo portsrepo.FxRateRepository) portssvc.FxSvcFacade {
	return &fxService{rateRepo: rateRepo}
}

var _ portssvc.FxSvcFacade = (*fxService)(nil)

// startOfDay normalizes a timestamp to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ConvertToBase converts an amount in fromCurrency to BRL. Same-currency
// conversion is the identity. The rate table stores foreign units per BRL,
// so the base amount is the original amount divided by the rate.
func (s *fxService) ConvertToBase(ctx context.Context, amount decimal.Decimal, fromCurrency string) (decimal.Decimal, error) {
	fromCurrency = strings.ToUpper(fromCurrency)
	if fromCurrency == domain.BaseCurrencyCode {
		return amount, nil
	}

	rate, err := s.GetRate(ctx, fromCurrency)
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Div(rate).Round(2), nil
}

// GetRate resolves the effective rate for a currency: today's rate first,
// then the most recent prior record, then the built-in default table.
// Unknown currencies fall back to a 1:1 rate.
func (s *fxService) GetRate(ctx context.Context, currency string) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	currency = strings.ToUpper(currency)
	today := startOfDay(time.Now())

	rate, err := s.rateRepo.FindRateByDate(ctx, currency, today)
	if err == nil {
		return rate.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to look up today's rate for %s: %w", currency, err)
	}

	latest, err := s.rateRepo.FindLatestRate(ctx, currency)
	if err == nil {
		return latest.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to look up latest rate for %s: %w", currency, err)
	}

	if def, ok := defaultFxRates[currency]; ok {
		logger.Warn("No rate record found, using built-in default", slog.String("currency", currency))
		return def, nil
	}

	logger.Warn("Unknown currency, conversion degrades to 1:1", slog.String("currency", currency))
	return decimal.NewFromInt(1), nil
}

// SyncRates upserts today's rate rows for the fixed currency set. The rates
// come from an external provider in production; the demo values mirror the
// default table.
func (s *fxService) SyncRates(ctx context.Context, actorUserID string) ([]domain.FxRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()
	today := startOfDay(now)

	synced := make([]domain.FxRate, 0, len(syncCurrencies))
	for _, currency := range syncCurrencies {
		rate := domain.FxRate{
			FxRateID: uuid.NewString(),
			Currency: currency,
			Rate:     defaultFxRates[currency],
			Date:     today,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorUserID,
			},
		}
		if err := s.rateRepo.UpsertRate(ctx, rate); err != nil {
			logger.Error("Failed to upsert daily rate", slog.String("currency", currency), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to sync rate for %s: %w", currency, err)
		}
		synced = append(synced, rate)
	}

	logger.Info("Daily rates synced", slog.Int("count", len(synced)))
	return synced, nil
}
