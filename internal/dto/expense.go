package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marcostaira/travel-expense/internal/core/domain"
)

// CreateExpenseRequest defines the structure for creating a new expense.
type CreateExpenseRequest struct {
	Category     domain.ExpenseCategory `json:"category" binding:"required,oneof=FOOD ACCOMMODATION TRANSPORT FUEL PARKING TOLL OTHER"`
	Date         time.Time              `json:"date" binding:"required"`
	Currency     string                 `json:"currency" binding:"required,len=3,uppercase"`
	Amount       decimal.Decimal        `json:"amount" binding:"required"`
	CostCenterID string                 `json:"costCenterID" binding:"required,uuid"`
	ProjectID    *string                `json:"projectID,omitempty" binding:"omitempty,uuid"`
	TripID       *string                `json:"tripID,omitempty" binding:"omitempty,uuid"`
	HasReceipt   bool                   `json:"hasReceipt"`
	Vendor       string                 `json:"vendor,omitempty"`
	KmDriven     *decimal.Decimal       `json:"kmDriven,omitempty"`
}

// UpdateExpenseRequest defines the structure for updating a draft expense.
// Nil fields are left unchanged.
type UpdateExpenseRequest struct {
	Category   *domain.ExpenseCategory `json:"category,omitempty" binding:"omitempty,oneof=FOOD ACCOMMODATION TRANSPORT FUEL PARKING TOLL OTHER"`
	Date       *time.Time              `json:"date,omitempty"`
	Currency   *string                 `json:"currency,omitempty" binding:"omitempty,len=3,uppercase"`
	Amount     *decimal.Decimal        `json:"amount,omitempty"`
	ProjectID  *string                 `json:"projectID,omitempty" binding:"omitempty,uuid"`
	TripID     *string                 `json:"tripID,omitempty" binding:"omitempty,uuid"`
	HasReceipt *bool                   `json:"hasReceipt,omitempty"`
	Vendor     *string                 `json:"vendor,omitempty"`
	KmDriven   *decimal.Decimal        `json:"kmDriven,omitempty"`
}

// ApproveExpenseRequest carries the optional approval annotation.
type ApproveExpenseRequest struct {
	Notes string `json:"notes,omitempty"`
}

// RejectExpenseRequest carries the mandatory rejection reason.
type RejectExpenseRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AdjustExpenseRequest carries the approver-specified amount and reason.
type AdjustExpenseRequest struct {
	AdjustedAmount decimal.Decimal `json:"adjustedAmount" binding:"required"`
	Reason         string          `json:"reason" binding:"required"`
}

// ListExpensesParams holds query parameters for listing expenses.
type ListExpensesParams struct {
	Status   *domain.ExpenseStatus   `form:"status"`
	Category *domain.ExpenseCategory `form:"category"`
	DateFrom *time.Time              `form:"dateFrom" time_format:"2006-01-02"`
	DateTo   *time.Time              `form:"dateTo" time_format:"2006-01-02"`
	TripID   *string                 `form:"tripID"`
	Page     int                     `form:"page,default=1"`
	Limit    int                     `form:"limit,default=20"`
}

// WorkflowNoteResponse is one audit-trail entry in API responses.
type WorkflowNoteResponse struct {
	NoteID    string    `json:"noteID"`
	ActorID   string    `json:"actorID"`
	Action    string    `json:"action"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExpenseFileResponse describes an attached receipt file.
type ExpenseFileResponse struct {
	FileID     string    `json:"fileID"`
	URL        string    `json:"url"`
	MimeType   string    `json:"mimeType"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"createdAt"`
	StorageKey string    `json:"storageKey"`
}

// ExpenseResponse defines the structure for API responses containing expense details.
type ExpenseResponse struct {
	ExpenseID    string                 `json:"expenseID"`
	TenantID     string                 `json:"tenantID"`
	UserID       string                 `json:"userID"`
	CostCenterID string                 `json:"costCenterID"`
	ProjectID    *string                `json:"projectID,omitempty"`
	TripID       *string                `json:"tripID,omitempty"`
	Category     domain.ExpenseCategory `json:"category"`
	Date         time.Time              `json:"date"`
	Currency     string                 `json:"currency"`
	Amount       decimal.Decimal        `json:"amount"`
	AmountBrl    decimal.Decimal        `json:"amountBrl"`
	HasReceipt   bool                   `json:"hasReceipt"`
	Vendor       string                 `json:"vendor,omitempty"`
	KmDriven     *decimal.Decimal       `json:"kmDriven,omitempty"`
	Status       domain.ExpenseStatus   `json:"status"`
	PolicyCheck  domain.PolicyCheck     `json:"policyCheck"`
	Files        []ExpenseFileResponse  `json:"files"`
	Notes        []WorkflowNoteResponse `json:"notes"`
	CreatedAt    time.Time              `json:"createdAt"`
	LastUpdated  time.Time              `json:"lastUpdatedAt"`
}

// ListExpensesResponse pairs a page of expenses with pagination metadata.
type ListExpensesResponse struct {
	Data []ExpenseResponse `json:"data"`
	Meta PageMeta          `json:"meta"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	files := make([]ExpenseFileResponse, len(e.Files))
	for i, f := range e.Files {
		files[i] = ExpenseFileResponse{
			FileID:     f.FileID,
			URL:        f.URL,
			MimeType:   f.MimeType,
			Size:       f.Size,
			CreatedAt:  f.CreatedAt,
			StorageKey: f.StorageKey,
		}
	}
	return ExpenseResponse{
		ExpenseID:    e.ExpenseID,
		TenantID:     e.TenantID,
		UserID:       e.UserID,
		CostCenterID: e.CostCenterID,
		ProjectID:    e.ProjectID,
		TripID:       e.TripID,
		Category:     e.Category,
		Date:         e.Date,
		Currency:     e.Currency,
		Amount:       e.Amount,
		AmountBrl:    e.AmountBrl,
		HasReceipt:   e.HasReceipt,
		Vendor:       e.Vendor,
		KmDriven:     e.KmDriven,
		Status:       e.Status,
		PolicyCheck:  e.PolicyCheck,
		Files:        files,
		Notes:        ToWorkflowNoteResponses(e.Notes),
		CreatedAt:    e.CreatedAt,
		LastUpdated:  e.LastUpdatedAt,
	}
}

// ToWorkflowNoteResponses converts domain workflow notes to DTOs.
func ToWorkflowNoteResponses(notes []domain.WorkflowNote) []WorkflowNoteResponse {
	out := make([]WorkflowNoteResponse, len(notes))
	for i, n := range notes {
		out[i] = WorkflowNoteResponse{
			NoteID:    n.NoteID,
			ActorID:   n.ActorID,
			Action:    string(n.Action),
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
		}
	}
	return out
}

// ToListExpensesResponse converts a page of domain expenses to the list DTO.
func ToListExpensesResponse(expenses []domain.Expense, total, page, limit int) ListExpensesResponse {
	data := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		data[i] = ToExpenseResponse(&expenses[i])
	}
	return ListExpensesResponse{Data: data, Meta: NewPageMeta(total, page, limit)}
}
