package mapping

import (
	"github.com/marcostaira/travel-expense/internal/core/domain"
	"github.com/marcostaira/travel-expense/internal/models"
)

// ToModelFxRate converts a domain FxRate to a model FxRate
func ToModelFxRate(d domain.FxRate) models.FxRate {
	return models.FxRate{
		FxRateID:    d.FxRateID,
		Currency:    d.Currency,
		Rate:        d.Rate,
		Date:        d.Date,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFxRate converts a model FxRate to a domain FxRate
func ToDomainFxRate(m models.FxRate) domain.FxRate {
	return domain.FxRate{
		FxRateID:    m.FxRateID,
		Currency:    m.Currency,
		Rate:        m.Rate,
		Date:        m.Date,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
