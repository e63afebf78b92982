package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marcostaira/travel-expense/internal/core/domain"
)

// ExpenseFilter is the typed filter passed to expense list queries. The
// access scope is applied on top of the tenant id; repositories translate it
// into ownership and cost-center predicates.
type ExpenseFilter struct {
	TenantID string
	Scope    domain.AccessScope
	Status   *domain.ExpenseStatus
	Category *domain.ExpenseCategory
	DateFrom *time.Time
	DateTo   *time.Time
	TripID   *string
	Limit    int
	Offset   int
}

// DailySpendFilter selects the expenses that count toward a user's daily
// spend in one category: same tenant/user/category, date within the calendar
// day, status in Statuses.
type DailySpendFilter struct {
	TenantID string
	UserID   string
	Category domain.ExpenseCategory
	DayStart time.Time
	DayEnd   time.Time
	Statuses []domain.ExpenseStatus
}

// BudgetSpendFilter selects the expenses that count toward a budget's actual
// spend: the budget's cost-center (and project, when set) scope, date range,
// status in Statuses.
type BudgetSpendFilter struct {
	TenantID     string
	CostCenterID string
	ProjectID    *string
	DateFrom     time.Time
	DateTo       time.Time
	Statuses     []domain.ExpenseStatus
}

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense with its files and notes. Lookups
	// never cross tenants; a mismatched tenant yields apperrors.ErrNotFound.
	FindExpenseByID(ctx context.Context, tenantID, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves expenses matching the filter, newest first, plus
	// the total count for pagination.
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]domain.Expense, int, error)

	// SumDailySpent returns the base-currency sum of the matching expenses.
	SumDailySpent(ctx context.Context, filter DailySpendFilter) (decimal.Decimal, error)

	// SumBudgetSpent returns the base-currency sum of the matching expenses.
	SumBudgetSpent(ctx context.Context, filter BudgetSpendFilter) (decimal.Decimal, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense persists changes to an existing expense.
	UpdateExpense(ctx context.Context, expense domain.Expense) error

	// DeleteExpense removes the expense row along with its file and note rows.
	DeleteExpense(ctx context.Context, tenantID, expenseID string) error

	// SaveExpenseNote appends one workflow note to the expense's audit trail.
	SaveExpenseNote(ctx context.Context, expenseID string, note domain.WorkflowNote) error

	// SaveExpenseFile attaches a file record to an expense.
	SaveExpenseFile(ctx context.Context, file domain.ExpenseFile) error

	// DeleteExpenseFile removes a file record; returns the number of files
	// still attached afterwards.
	DeleteExpenseFile(ctx context.Context, expenseID, fileID string) (int, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}

// ExpenseRepositoryWithTx extends ExpenseRepositoryFacade with transaction capabilities
type ExpenseRepositoryWithTx interface {
	ExpenseRepositoryFacade
	TransactionManager
}
