package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FxRate stores the exchange rate of one foreign currency for a specific day.
// Rates are keyed by (currency, date) with the date normalized to midnight.
type FxRate struct {
	FxRateID string          `json:"fxRateID"` // Primary Key (UUID)
	Currency string          `json:"currency"` // ISO 4217 code, e.g. "USD"
	Rate     decimal.Decimal `json:"rate"`
	Date     time.Time       `json:"date"`
	AuditFields
}
