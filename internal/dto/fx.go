package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marcostaira/travel-expense/internal/core/domain"
)

// FxRateResponse defines the structure for API responses containing a daily rate.
type FxRateResponse struct {
	FxRateID string          `json:"fxRateID"`
	Currency string          `json:"currency"`
	Rate     decimal.Decimal `json:"rate"`
	Date     time.Time       `json:"date"`
}

// ToFxRateResponse converts a domain.FxRate to FxRateResponse DTO
func ToFxRateResponse(r *domain.FxRate) FxRateResponse {
	return FxRateResponse{
		FxRateID: r.FxRateID,
		Currency: r.Currency,
		Rate:     r.Rate,
		Date:     r.Date,
	}
}
