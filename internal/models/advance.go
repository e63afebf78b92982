package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Advance mirrors the advances table.
type Advance struct {
	AdvanceID   string          `db:"advance_id"`
	TenantID    string          `db:"tenant_id"`
	TripID      string          `db:"trip_id"`
	RequesterID string          `db:"requester_id"`
	ApproverID  *string         `db:"approver_id"`
	Amount      decimal.Decimal `db:"amount"`
	Reason      string          `db:"reason"`
	Status      string          `db:"status"`
	PaidAt      *time.Time      `db:"paid_at"`
	AuditFields
}
