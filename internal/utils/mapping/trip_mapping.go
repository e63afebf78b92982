package mapping

import (
	"github.com/marcostaira/travel-expense/internal/core/domain"
	"github.com/marcostaira/travel-expense/internal/models"
)

// ToModelTrip converts a domain Trip to a model Trip
func ToModelTrip(d domain.Trip) models.Trip {
	return models.Trip{
		TripID:       d.TripID,
		TenantID:     d.TenantID,
		RequesterID:  d.RequesterID,
		ManagerID:    d.ManagerID,
		CostCenterID: d.CostCenterID,
		ProjectID:    d.ProjectID,
		Origin:       d.Origin,
		Destination:  d.Destination,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		Purpose:      d.Purpose,
		Status:       string(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTrip converts a model Trip to a domain Trip
func ToDomainTrip(m models.Trip) domain.Trip {
	return domain.Trip{
		TripID:       m.TripID,
		TenantID:     m.TenantID,
		RequesterID:  m.RequesterID,
		ManagerID:    m.ManagerID,
		CostCenterID: m.CostCenterID,
		ProjectID:    m.ProjectID,
		Origin:       m.Origin,
		Destination:  m.Destination,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Purpose:      m.Purpose,
		Status:       domain.TripStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
