package domain

import "github.com/shopspring/decimal"

// Policy holds the per-tenant, per-category compliance rules applied to
// expenses. Soft-deleted policies (IsActive=false) are ignored by evaluation,
// and the absence of a policy for a category means no constraints.
type Policy struct {
	PolicyID            string           `json:"policyID"` // Primary Key (UUID)
	TenantID            string           `json:"tenantID"`
	Category            ExpenseCategory  `json:"category"`
	ReceiptRequiredOver *decimal.Decimal `json:"receiptRequiredOver,omitempty"` // BRL threshold
	DailyLimit          *decimal.Decimal `json:"dailyLimit,omitempty"`          // BRL per user per day
	KmRate              *decimal.Decimal `json:"kmRate,omitempty"`              // BRL reimbursed per km driven
	Notes               string           `json:"notes,omitempty"`
	IsActive            bool             `json:"isActive"`
	AuditFields
}

// PolicyCheck is the structured verdict of evaluating one expense against its
// category's active policy. Errors block submission; warnings never do.
type PolicyCheck struct {
	ReceiptRequired   bool             `json:"receiptRequired"`
	ReceiptMissing    bool             `json:"receiptMissing,omitempty"`
	ExceedsDailyLimit bool             `json:"exceedsDailyLimit,omitempty"`
	DailyLimit        *decimal.Decimal `json:"dailyLimit,omitempty"`
	DailySpent        *decimal.Decimal `json:"dailySpent,omitempty"`
	Valid             bool             `json:"valid"`
	Warnings          []string         `json:"warnings"`
	Errors            []string         `json:"errors"`
}

// ValidPolicyCheck returns the trivially-valid verdict used when no active
// policy constrains the category.
func ValidPolicyCheck() PolicyCheck {
	return PolicyCheck{Valid: true, Warnings: []string{}, Errors: []string{}}
}
