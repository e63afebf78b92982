package mapping

import (
	"github.com/marcostaira/travel-expense/internal/core/domain"
	"github.com/marcostaira/travel-expense/internal/models"
)

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:     d.BudgetID,
		TenantID:     d.TenantID,
		Year:         d.Year,
		Period:       string(d.Period),
		CostCenterID: d.CostCenterID,
		ProjectID:    d.ProjectID,
		Amount:       d.Amount,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:     m.BudgetID,
		TenantID:     m.TenantID,
		Year:         m.Year,
		Period:       domain.BudgetPeriod(m.Period),
		CostCenterID: m.CostCenterID,
		ProjectID:    m.ProjectID,
		Amount:       m.Amount,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
