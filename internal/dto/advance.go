package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marcostaira/travel-expense/internal/core/domain"
)

// CreateAdvanceRequest defines the structure for requesting a cash advance.
type CreateAdvanceRequest struct {
	TripID string          `json:"tripID" binding:"required,uuid"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Reason string          `json:"reason" binding:"required"`
}

// RejectAdvanceRequest carries the mandatory rejection reason.
type RejectAdvanceRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AdvanceResponse defines the API shape of a cash advance.
type AdvanceResponse struct {
	AdvanceID   string               `json:"advanceID"`
	TenantID    string               `json:"tenantID"`
	TripID      string               `json:"tripID"`
	RequesterID string               `json:"requesterID"`
	ApproverID  *string              `json:"approverID,omitempty"`
	Amount      decimal.Decimal      `json:"amount"`
	Reason      string               `json:"reason"`
	Status      domain.AdvanceStatus `json:"status"`
	PaidAt      *time.Time           `json:"paidAt,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// ToAdvanceResponse converts a domain.Advance to its DTO.
func ToAdvanceResponse(a *domain.Advance) AdvanceResponse {
	return AdvanceResponse{
		AdvanceID:   a.AdvanceID,
		TenantID:    a.TenantID,
		TripID:      a.TripID,
		RequesterID: a.RequesterID,
		ApproverID:  a.ApproverID,
		Amount:      a.Amount,
		Reason:      a.Reason,
		Status:      a.Status,
		PaidAt:      a.PaidAt,
		CreatedAt:   a.CreatedAt,
	}
}

// ToListAdvanceResponse converts a slice of advances to DTOs.
func ToListAdvanceResponse(advances []domain.Advance) []AdvanceResponse {
	out := make([]AdvanceResponse, len(advances))
	for i := range advances {
		out[i] = ToAdvanceResponse(&advances[i])
	}
	return out
}
