package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdvanceStatus enumerates the cash-advance lifecycle states.
type AdvanceStatus string

const (
	AdvanceDraft     AdvanceStatus = "DRAFT"
	AdvanceSubmitted AdvanceStatus = "SUBMITTED"
	AdvanceApproved  AdvanceStatus = "APPROVED"
	AdvanceRejected  AdvanceStatus = "REJECTED"
	AdvancePaid      AdvanceStatus = "PAID"
)

// Advance is a cash advance requested against a trip.
type Advance struct {
	AdvanceID   string          `json:"advanceID"` // Primary Key (UUID)
	TenantID    string          `json:"tenantID"`
	TripID      string          `json:"tripID"`
	RequesterID string          `json:"requesterID"`
	ApproverID  *string         `json:"approverID,omitempty"`
	Amount      decimal.Decimal `json:"amount"` // BRL
	Reason      string          `json:"reason"`
	Status      AdvanceStatus   `json:"status"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`
	AuditFields
}

// CanTransitionTo reports whether the advance state machine permits moving to
// the target status. REJECTED and PAID are terminal.
func (a Advance) CanTransitionTo(target AdvanceStatus) bool {
	switch a.Status {
	case AdvanceDraft:
		return target == AdvanceSubmitted
	case AdvanceSubmitted:
		return target == AdvanceApproved || target == AdvanceRejected
	case AdvanceApproved:
		return target == AdvancePaid
	default:
		return false
	}
}
