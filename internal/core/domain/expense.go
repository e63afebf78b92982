package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus enumerates the expense lifecycle states.
type ExpenseStatus string

const (
	ExpenseDraft      ExpenseStatus = "DRAFT"
	ExpenseSubmitted  ExpenseStatus = "SUBMITTED"
	ExpenseApproved   ExpenseStatus = "APPROVED"
	ExpenseRejected   ExpenseStatus = "REJECTED"
	ExpenseAdjusted   ExpenseStatus = "ADJUSTED"
	ExpenseReimbursed ExpenseStatus = "REIMBURSED"
)

// ExpenseCategory enumerates the supported expense categories.
type ExpenseCategory string

const (
	CategoryFood          ExpenseCategory = "FOOD"
	CategoryAccommodation ExpenseCategory = "ACCOMMODATION"
	CategoryTransport     ExpenseCategory = "TRANSPORT"
	CategoryFuel          ExpenseCategory = "FUEL"
	CategoryParking       ExpenseCategory = "PARKING"
	CategoryToll          ExpenseCategory = "TOLL"
	CategoryOther         ExpenseCategory = "OTHER"
)

// NoteAction labels a workflow annotation on an expense or trip.
type NoteAction string

const (
	NoteApproval   NoteAction = "APPROVAL"
	NoteRejection  NoteAction = "REJECTION"
	NoteAdjustment NoteAction = "ADJUSTMENT"
	NoteReimbursed NoteAction = "REIMBURSEMENT"
	NoteAnnotation NoteAction = "ANNOTATION"
)

// WorkflowNote is one entry of the append-only audit trail kept per entity.
type WorkflowNote struct {
	NoteID    string     `json:"noteID"`
	ActorID   string     `json:"actorID"`
	Action    NoteAction `json:"action"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ExpenseFile is a receipt or supporting document attached to an expense.
type ExpenseFile struct {
	FileID     string    `json:"fileID"` // Primary Key (UUID)
	ExpenseID  string    `json:"expenseID"`
	URL        string    `json:"url"`
	StorageKey string    `json:"storageKey"`
	MimeType   string    `json:"mimeType"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Expense is the central entity of the lifecycle. AmountBrl is always kept
// consistent with Amount+Currency via the daily FX rate, and PolicyCheck is
// recomputed whenever amount, category, date or the receipt flag changes.
type Expense struct {
	ExpenseID    string           `json:"expenseID"` // Primary Key (UUID)
	TenantID     string           `json:"tenantID"`
	UserID       string           `json:"userID"` // submitting user
	CostCenterID string           `json:"costCenterID"`
	ProjectID    *string          `json:"projectID,omitempty"`
	TripID       *string          `json:"tripID,omitempty"`
	Category     ExpenseCategory  `json:"category"`
	Date         time.Time        `json:"date"`
	Currency     string           `json:"currency"`
	Amount       decimal.Decimal  `json:"amount"`    // original currency, 2-decimal money
	AmountBrl    decimal.Decimal  `json:"amountBrl"` // derived base-currency amount
	HasReceipt   bool             `json:"hasReceipt"`
	Vendor       string           `json:"vendor,omitempty"`
	KmDriven     *decimal.Decimal `json:"kmDriven,omitempty"` // TRANSPORT only
	Status       ExpenseStatus    `json:"status"`
	PolicyCheck  PolicyCheck      `json:"policyCheck"`
	Files        []ExpenseFile    `json:"files,omitempty"`
	Notes        []WorkflowNote   `json:"notes,omitempty"`
	AuditFields
}

// CanTransitionTo reports whether the expense state machine permits moving to
// the target status. REJECTED and REIMBURSED are terminal.
func (e Expense) CanTransitionTo(target ExpenseStatus) bool {
	switch e.Status {
	case ExpenseDraft:
		return target == ExpenseSubmitted
	case ExpenseSubmitted:
		return target == ExpenseApproved || target == ExpenseRejected || target == ExpenseAdjusted
	case ExpenseApproved, ExpenseAdjusted:
		return target == ExpenseReimbursed
	default:
		return false
	}
}
