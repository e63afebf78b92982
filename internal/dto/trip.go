package dto

import (
	"time"

	"github.com/marcostaira/travel-expense/internal/core/domain"
)

// CreateTripRequest defines the structure for creating a new trip.
type CreateTripRequest struct {
	Origin       string    `json:"origin" binding:"required"`
	Destination  string    `json:"destination" binding:"required"`
	StartDate    time.Time `json:"startDate" binding:"required"`
	EndDate      time.Time `json:"endDate" binding:"required"`
	Purpose      string    `json:"purpose" binding:"required"`
	CostCenterID string    `json:"costCenterID" binding:"required,uuid"`
	ProjectID    *string   `json:"projectID,omitempty" binding:"omitempty,uuid"`
}

// UpdateTripRequest defines the structure for updating a draft trip.
type UpdateTripRequest struct {
	Origin       *string    `json:"origin,omitempty"`
	Destination  *string    `json:"destination,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	Purpose      *string    `json:"purpose,omitempty"`
	CostCenterID *string    `json:"costCenterID,omitempty" binding:"omitempty,uuid"`
	ProjectID    *string    `json:"projectID,omitempty" binding:"omitempty,uuid"`
}

// ApproveTripRequest carries the optional approval annotation.
type ApproveTripRequest struct {
	Notes string `json:"notes,omitempty"`
}

// RejectTripRequest carries the mandatory rejection reason.
type RejectTripRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListTripsParams holds query parameters for listing trips.
type ListTripsParams struct {
	Status *domain.TripStatus `form:"status"`
	Page   int                `form:"page,default=1"`
	Limit  int                `form:"limit,default=20"`
}

// TripResponse defines the structure for API responses containing trip details.
type TripResponse struct {
	TripID       string                 `json:"tripID"`
	TenantID     string                 `json:"tenantID"`
	RequesterID  string                 `json:"requesterID"`
	ManagerID    *string                `json:"managerID,omitempty"`
	CostCenterID string                 `json:"costCenterID"`
	ProjectID    *string                `json:"projectID,omitempty"`
	Origin       string                 `json:"origin"`
	Destination  string                 `json:"destination"`
	StartDate    time.Time              `json:"startDate"`
	EndDate      time.Time              `json:"endDate"`
	Purpose      string                 `json:"purpose"`
	Status       domain.TripStatus      `json:"status"`
	Notes        []WorkflowNoteResponse `json:"notes"`
	CreatedAt    time.Time              `json:"createdAt"`
	LastUpdated  time.Time              `json:"lastUpdatedAt"`
}

// ListTripsResponse pairs a page of trips with pagination metadata.
type ListTripsResponse struct {
	Data []TripResponse `json:"data"`
	Meta PageMeta       `json:"meta"`
}

// ToTripResponse converts a domain.Trip to TripResponse DTO
func ToTripResponse(t *domain.Trip) TripResponse {
	return TripResponse{
		TripID:       t.TripID,
		TenantID:     t.TenantID,
		RequesterID:  t.RequesterID,
		ManagerID:    t.ManagerID,
		CostCenterID: t.CostCenterID,
		ProjectID:    t.ProjectID,
		Origin:       t.Origin,
		Destination:  t.Destination,
		StartDate:    t.StartDate,
		EndDate:      t.EndDate,
		Purpose:      t.Purpose,
		Status:       t.Status,
		Notes:        ToWorkflowNoteResponses(t.Notes),
		CreatedAt:    t.CreatedAt,
		LastUpdated:  t.LastUpdatedAt,
	}
}

// ToListTripsResponse converts a page of domain trips to the list DTO.
func ToListTripsResponse(trips []domain.Trip, total, page, limit int) ListTripsResponse {
	data := make([]TripResponse, len(trips))
	for i := range trips {
		data[i] = ToTripResponse(&trips[i])
	}
	return ListTripsResponse{Data: data, Meta: NewPageMeta(total, page, limit)}
}
