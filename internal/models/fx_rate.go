package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FxRate mirrors the fx_rates table. Rows are keyed by (currency, date).
type FxRate struct {
	FxRateID string          `db:"fx_rate_id"`
	Currency string          `db:"currency"`
	Rate     decimal.Decimal `db:"rate"`
	Date     time.Time       `db:"date"`
	AuditFields
}
