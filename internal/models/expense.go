package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense mirrors the expenses table.
type Expense struct {
	ExpenseID    string           `db:"expense_id"`
	TenantID     string           `db:"tenant_id"`
	UserID       string           `db:"user_id"`
	CostCenterID string           `db:"cost_center_id"`
	ProjectID    *string          `db:"project_id"`
	TripID       *string          `db:"trip_id"`
	Category     string           `db:"category"`
	Date         time.Time        `db:"date"`
	Currency     string           `db:"currency"`
	Amount       decimal.Decimal  `db:"amount"`
	AmountBrl    decimal.Decimal  `db:"amount_brl"`
	HasReceipt   bool             `db:"has_receipt"`
	Vendor       string           `db:"vendor"`
	KmDriven     *decimal.Decimal `db:"km_driven"`
	Status       string           `db:"status"`
	PolicyCheck  []byte           `db:"policy_check"` // JSONB verdict snapshot
	AuditFields
}

// ExpenseFile mirrors the expense_files table.
type ExpenseFile struct {
	FileID     string    `db:"file_id"`
	ExpenseID  string    `db:"expense_id"`
	URL        string    `db:"url"`
	StorageKey string    `db:"storage_key"`
	MimeType   string    `db:"mime_type"`
	Size       int64     `db:"size"`
	CreatedAt  time.Time `db:"created_at"`
}

// WorkflowNote mirrors the expense_notes and trip_notes tables.
type WorkflowNote struct {
	NoteID    string    `db:"note_id"`
	OwnerID   string    `db:"owner_id"` // expense_id or trip_id
	ActorID   string    `db:"actor_id"`
	Action    string    `db:"action"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}
