package models

import "time"

// Trip mirrors the trips table.
type Trip struct {
	TripID       string    `db:"trip_id"`
	TenantID     string    `db:"tenant_id"`
	RequesterID  string    `db:"requester_id"`
	ManagerID    *string   `db:"manager_id"`
	CostCenterID string    `db:"cost_center_id"`
	ProjectID    *string   `db:"project_id"`
	Origin       string    `db:"origin"`
	Destination  string    `db:"destination"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	Purpose      string    `db:"purpose"`
	Status       string    `db:"status"`
	AuditFields
}
