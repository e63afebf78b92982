package domain

import "time"

// TripStatus enumerates the trip lifecycle states.
type TripStatus string

const (
	TripDraft           TripStatus = "DRAFT"
	TripPendingApproval TripStatus = "PENDING_APPROVAL"
	TripApproved        TripStatus = "APPROVED"
	TripRejected        TripStatus = "REJECTED"
	TripInProgress      TripStatus = "IN_PROGRESS"
	TripCompleted       TripStatus = "COMPLETED"
	TripArchived        TripStatus = "ARCHIVED"
)

// Trip is a travel request that expenses and advances attach to.
type Trip struct {
	TripID       string         `json:"tripID"` // Primary Key (UUID)
	TenantID     string         `json:"tenantID"`
	RequesterID  string         `json:"requesterID"`
	ManagerID    *string        `json:"managerID,omitempty"` // assigned at approval time
	CostCenterID string         `json:"costCenterID"`
	ProjectID    *string        `json:"projectID,omitempty"`
	Origin       string         `json:"origin"`
	Destination  string         `json:"destination"`
	StartDate    time.Time      `json:"startDate"`
	EndDate      time.Time      `json:"endDate"`
	Purpose      string         `json:"purpose"`
	Status       TripStatus     `json:"status"`
	Notes        []WorkflowNote `json:"notes,omitempty"`
	AuditFields
}

// CanTransitionTo reports whether the trip state machine permits moving to the
// target status. The on-or-after-start-date condition for IN_PROGRESS is
// checked by the service, not here.
func (t Trip) CanTransitionTo(target TripStatus) bool {
	switch t.Status {
	case TripDraft:
		return target == TripPendingApproval
	case TripPendingApproval:
		return target == TripApproved || target == TripRejected
	case TripApproved:
		return target == TripInProgress
	case TripInProgress:
		return target == TripCompleted
	case TripCompleted, TripRejected:
		return target == TripArchived
	default:
		return false
	}
}
