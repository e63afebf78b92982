package mapping

import (
	"github.com/marcostaira/travel-expense/internal/core/domain"
	"github.com/marcostaira/travel-expense/internal/models"
)

// ToModelPolicy converts a domain Policy to a model Policy
func ToModelPolicy(d domain.Policy) models.Policy {
	return models.Policy{
		PolicyID:            d.PolicyID,
		TenantID:            d.TenantID,
		Category:            string(d.Category),
		ReceiptRequiredOver: d.ReceiptRequiredOver,
		DailyLimit:          d.DailyLimit,
		KmRate:              d.KmRate,
		Notes:               d.Notes,
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPolicy converts a model Policy to a domain Policy
func ToDomainPolicy(m models.Policy) domain.Policy {
	return domain.Policy{
		PolicyID:            m.PolicyID,
		TenantID:            m.TenantID,
		Category:            domain.ExpenseCategory(m.Category),
		ReceiptRequiredOver: m.ReceiptRequiredOver,
		DailyLimit:          m.DailyLimit,
		KmRate:              m.KmRate,
		Notes:               m.Notes,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}
