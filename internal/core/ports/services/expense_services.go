package services

import (
	"context"

	"github.com/marcostaira/travel-expense/internal/core/domain"
	"github.com/marcostaira/travel-expense/internal/dto"
)

// ExpenseSvcFacade exposes the expense lifecycle operations. Every operation
// is tenant-scoped through the actor; cross-tenant access surfaces as
// apperrors.ErrNotFound.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, actor domain.Actor, req dto.CreateExpenseRequest) (*domain.Expense, error)
	GetExpense(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, actor domain.Actor, params dto.ListExpensesParams) ([]domain.Expense, int, error)
	UpdateExpense(ctx context.Context, actor domain.Actor, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)
	RemoveExpense(ctx context.Context, actor domain.Actor, expenseID string) error

	SubmitExpense(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error)
	ApproveExpense(ctx context.Context, actor domain.Actor, expenseID string, notes string) (*domain.Expense, error)
	RejectExpense(ctx context.Context, actor domain.Actor, expenseID string, reason string) (*domain.Expense, error)
	AdjustExpense(ctx context.Context, actor domain.Actor, expenseID string, req dto.AdjustExpenseRequest) (*domain.Expense, error)
	ReimburseExpense(ctx context.Context, actor domain.Actor, expenseID string) (*domain.Expense, error)

	UploadExpenseFile(ctx context.Context, actor domain.Actor, expenseID string, upload dto.FileUpload) (*domain.ExpenseFile, error)
	DeleteExpenseFile(ctx context.Context, actor domain.Actor, expenseID, fileID string) error
}
