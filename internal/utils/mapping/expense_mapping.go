package mapping

import (
	"encoding/json"

	"github.com/marcostaira/travel-expense/internal/core/domain"
	"github.com/marcostaira/travel-expense/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense. The policy
// verdict is serialized to JSON for the jsonb column.
func ToModelExpense(d domain.Expense) (models.Expense, error) {
	check, err := json.Marshal(d.PolicyCheck)
	if err != nil {
		return models.Expense{}, err
	}
	return models.Expense{
		ExpenseID:    d.ExpenseID,
		TenantID:     d.TenantID,
		UserID:       d.UserID,
		CostCenterID: d.CostCenterID,
		ProjectID:    d.ProjectID,
		TripID:       d.TripID,
		Category:     string(d.Category),
		Date:         d.Date,
		Currency:     d.Currency,
		Amount:       d.Amount,
		AmountBrl:    d.AmountBrl,
		HasReceipt:   d.HasReceipt,
		Vendor:       d.Vendor,
		KmDriven:     d.KmDriven,
		Status:       string(d.Status),
		PolicyCheck:  check,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainExpense converts a model Expense to a domain Expense.
func ToDomainExpense(m models.Expense) (domain.Expense, error) {
	var check domain.PolicyCheck
	if len(m.PolicyCheck) > 0 {
		if err := json.Unmarshal(m.PolicyCheck, &check); err != nil {
			return domain.Expense{}, err
		}
	}
	return domain.Expense{
		ExpenseID:    m.ExpenseID,
		TenantID:     m.TenantID,
		UserID:       m.UserID,
		CostCenterID: m.CostCenterID,
		ProjectID:    m.ProjectID,
		TripID:       m.TripID,
		Category:     domain.ExpenseCategory(m.Category),
		Date:         m.Date,
		Currency:     m.Currency,
		Amount:       m.Amount,
		AmountBrl:    m.AmountBrl,
		HasReceipt:   m.HasReceipt,
		Vendor:       m.Vendor,
		KmDriven:     m.KmDriven,
		Status:       domain.ExpenseStatus(m.Status),
		PolicyCheck:  check,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToDomainExpenseFile converts a model ExpenseFile to its domain counterpart.
func ToDomainExpenseFile(m models.ExpenseFile) domain.ExpenseFile {
	return domain.ExpenseFile{
		FileID:     m.FileID,
		ExpenseID:  m.ExpenseID,
		URL:        m.URL,
		StorageKey: m.StorageKey,
		MimeType:   m.MimeType,
		Size:       m.Size,
		CreatedAt:  m.CreatedAt,
	}
}

// ToDomainWorkflowNote converts a model WorkflowNote to its domain counterpart.
func ToDomainWorkflowNote(m models.WorkflowNote) domain.WorkflowNote {
	return domain.WorkflowNote{
		NoteID:    m.NoteID,
		ActorID:   m.ActorID,
		Action:    domain.NoteAction(m.Action),
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}
