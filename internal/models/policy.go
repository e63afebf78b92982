package models

import "github.com/shopspring/decimal"

// Policy mirrors the policies table.
type Policy struct {
	PolicyID            string           `db:"policy_id"`
	TenantID            string           `db:"tenant_id"`
	Category            string           `db:"category"`
	ReceiptRequiredOver *decimal.Decimal `db:"receipt_required_over"`
	DailyLimit          *decimal.Decimal `db:"daily_limit"`
	KmRate              *decimal.Decimal `db:"km_rate"`
	Notes               string           `db:"notes"`
	IsActive            bool             `db:"is_active"`
	AuditFields
}
