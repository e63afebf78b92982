package mapping

import (
	"github.com/marcostaira/travel-expense/internal/core/domain"
	"github.com/marcostaira/travel-expense/internal/models"
)

// ToModelAdvance converts a domain Advance to a model Advance
func ToModelAdvance(d domain.Advance) models.Advance {
	return models.Advance{
		AdvanceID:   d.AdvanceID,
		TenantID:    d.TenantID,
		TripID:      d.TripID,
		RequesterID: d.RequesterID,
		ApproverID:  d.ApproverID,
		Amount:      d.Amount,
		Reason:      d.Reason,
		Status:      string(d.Status),
		PaidAt:      d.PaidAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAdvance converts a model Advance to a domain Advance
func ToDomainAdvance(m models.Advance) domain.Advance {
	return domain.Advance{
		AdvanceID:   m.AdvanceID,
		TenantID:    m.TenantID,
		TripID:      m.TripID,
		RequesterID: m.RequesterID,
		ApproverID:  m.ApproverID,
		Amount:      m.Amount,
		Reason:      m.Reason,
		Status:      domain.AdvanceStatus(m.Status),
		PaidAt:      m.PaidAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
