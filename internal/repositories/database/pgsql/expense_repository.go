package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/marcostaira/travel-expense/internal/apperrors"
	"github.com/marcostaira/travel-expense/internal/core/domain"
	portsrepo "github.com/marcostaira/travel-expense/internal/core/ports/repositories"
	"github.com/marcostaira/travel-expense/internal/models"
	"github.com/marcostaira/travel-expense/internal/utils/mapping"
)

const expenseColumns = `expense_id, tenant_id, user_id, cost_center_id, project_id, trip_id,
	category, date, currency, amount, amount_brl, has_receipt, vendor, km_driven,
	status, policy_check, created_at, created_by, last_updated_at, last_updated_by`

// PgxExpenseRepository implements the expense repository interfaces using pgxpool.
type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(db *pgxpool.Pool) *PgxExpenseRepository {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID, &m.TenantID, &m.UserID, &m.CostCenterID, &m.ProjectID, &m.TripID,
		&m.Category, &m.Date, &m.Currency, &m.Amount, &m.AmountBrl, &m.HasReceipt,
		&m.Vendor, &m.KmDriven, &m.Status, &m.PolicyCheck,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, translateError(err)
	}
	expense, err := mapping.ToDomainExpense(m)
	if err != nil {
		return nil, fmt.Errorf("failed to decode expense: %w", err)
	}
	return &expense, nil
}

// FindExpenseByID retrieves an expense with its files and notes, tenant-scoped.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, tenantID, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE tenant_id = $1 AND expense_id = $2;`

	expense, err := scanExpense(r.Pool.QueryRow(ctx, query, tenantID, expenseID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}

	files, err := r.listFiles(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	expense.Files = files

	notes, err := r.listNotes(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	expense.Notes = notes

	return expense, nil
}

func (r *PgxExpenseRepository) listFiles(ctx context.Context, expenseID string) ([]domain.ExpenseFile, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT file_id, expense_id, url, storage_key, mime_type, size, created_at
		FROM expense_files WHERE expense_id = $1 ORDER BY created_at;`, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense files: %w", err)
	}
	defer rows.Close()

	var files []domain.ExpenseFile
	for rows.Next() {
		var m models.ExpenseFile
		if err := rows.Scan(&m.FileID, &m.ExpenseID, &m.URL, &m.StorageKey, &m.MimeType, &m.Size, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense file: %w", err)
		}
		files = append(files, mapping.ToDomainExpenseFile(m))
	}
	return files, rows.Err()
}

func (r *PgxExpenseRepository) listNotes(ctx context.Context, expenseID string) ([]domain.WorkflowNote, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT note_id, expense_id, actor_id, action, message, created_at
		FROM expense_notes WHERE expense_id = $1 ORDER BY created_at;`, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.WorkflowNote
	for rows.Next() {
		var m models.WorkflowNote
		if err := rows.Scan(&m.NoteID, &m.OwnerID, &m.ActorID, &m.Action, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense note: %w", err)
		}
		notes = append(notes, mapping.ToDomainWorkflowNote(m))
	}
	return notes, rows.Err()
}

// ListExpenses retrieves expenses matching the filter, newest first, plus the
// total count. The access scope becomes ownership and cost-center predicates.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ExpenseFilter) ([]domain.Expense, int, error) {
	baseQuery := `FROM expenses WHERE tenant_id = $1`
	args := []interface{}{filter.TenantID}
	argNum := 2

	switch filter.Scope.Kind {
	case domain.ScopeTenantWide:
		// no extra predicate
	case domain.ScopeCostCenters:
		baseQuery += fmt.Sprintf(" AND (user_id = $%d OR cost_center_id = ANY($%d))", argNum, argNum+1)
		args = append(args, filter.Scope.UserID, filter.Scope.CostCenterIDs)
		argNum += 2
	default:
		baseQuery += fmt.Sprintf(" AND user_id = $%d", argNum)
		args = append(args, filter.Scope.UserID)
		argNum++
	}

	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, string(*filter.Status))
		argNum++
	}
	if filter.Category != nil {
		baseQuery += fmt.Sprintf(" AND category = $%d", argNum)
		args = append(args, string(*filter.Category))
		argNum++
	}
	if filter.DateFrom != nil {
		baseQuery += fmt.Sprintf(" AND date >= $%d", argNum)
		args = append(args, *filter.DateFrom)
		argNum++
	}
	if filter.DateTo != nil {
		baseQuery += fmt.Sprintf(" AND date <= $%d", argNum)
		args = append(args, *filter.DateTo)
		argNum++
	}
	if filter.TripID != nil {
		baseQuery += fmt.Sprintf(" AND trip_id = $%d", argNum)
		args = append(args, *filter.TripID)
		argNum++
	}

	var total int
	if err := r.Pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	if total == 0 {
		return []domain.Expense{}, 0, nil
	}

	query := "SELECT " + expenseColumns + " " + baseQuery + " ORDER BY date DESC, created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, total, nil
}

// SumDailySpent returns the base-currency sum of the matching expenses.
func (r *PgxExpenseRepository) SumDailySpent(ctx context.Context, filter portsrepo.DailySpendFilter) (decimal.Decimal, error) {
	statuses := make([]string, len(filter.Statuses))
	for i, s := range filter.Statuses {
		statuses[i] = string(s)
	}

	var sum decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_brl), 0)
		FROM expenses
		WHERE tenant_id = $1 AND user_id = $2 AND category = $3
		  AND date >= $4 AND date <= $5 AND status = ANY($6);`,
		filter.TenantID, filter.UserID, string(filter.Category),
		filter.DayStart, filter.DayEnd, statuses,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum daily spend: %w", err)
	}
	return sum, nil
}

// SumBudgetSpent returns the base-currency sum of the matching expenses.
func (r *PgxExpenseRepository) SumBudgetSpent(ctx context.Context, filter portsrepo.BudgetSpendFilter) (decimal.Decimal, error) {
	statuses := make([]string, len(filter.Statuses))
	for i, s := range filter.Statuses {
		statuses[i] = string(s)
	}

	query := `
		SELECT COALESCE(SUM(amount_brl), 0)
		FROM expenses
		WHERE tenant_id = $1 AND cost_center_id = $2
		  AND date >= $3 AND date <= $4 AND status = ANY($5)`
	args := []interface{}{filter.TenantID, filter.CostCenterID, filter.DateFrom, filter.DateTo, statuses}
	if filter.ProjectID != nil {
		query += " AND project_id = $6"
		args = append(args, *filter.ProjectID)
	}

	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query+";", args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum budget spend: %w", err)
	}
	return sum, nil
}

// SaveExpense persists a new expense.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m, err := mapping.ToModelExpense(expense)
	if err != nil {
		return fmt.Errorf("failed to encode expense: %w", err)
	}

	_, err = r.Pool.Exec(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);`,
		m.ExpenseID, m.TenantID, m.UserID, m.CostCenterID, m.ProjectID, m.TripID,
		m.Category, m.Date, m.Currency, m.Amount, m.AmountBrl, m.HasReceipt,
		m.Vendor, m.KmDriven, m.Status, m.PolicyCheck,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", translateError(err))
	}
	return nil
}

// UpdateExpense persists changes to an existing expense.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	m, err := mapping.ToModelExpense(expense)
	if err != nil {
		return fmt.Errorf("failed to encode expense: %w", err)
	}

	tag, err := r.Pool.Exec(ctx, `
		UPDATE expenses SET
			cost_center_id = $1, project_id = $2, trip_id = $3, category = $4,
			date = $5, currency = $6, amount = $7, amount_brl = $8,
			has_receipt = $9, vendor = $10, km_driven = $11, status = $12,
			policy_check = $13, last_updated_at = $14, last_updated_by = $15
		WHERE tenant_id = $16 AND expense_id = $17;`,
		m.CostCenterID, m.ProjectID, m.TripID, m.Category,
		m.Date, m.Currency, m.Amount, m.AmountBrl,
		m.HasReceipt, m.Vendor, m.KmDriven, m.Status,
		m.PolicyCheck, m.LastUpdatedAt, m.LastUpdatedBy,
		m.TenantID, m.ExpenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteExpense removes the expense row; file and note rows cascade.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, tenantID, expenseID string) error {
	tag, err := r.Pool.Exec(ctx,
		`DELETE FROM expenses WHERE tenant_id = $1 AND expense_id = $2;`, tenantID, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveExpenseNote appends one workflow note to the expense's audit trail.
func (r *PgxExpenseRepository) SaveExpenseNote(ctx context.Context, expenseID string, note domain.WorkflowNote) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO expense_notes (note_id, expense_id, actor_id, action, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		note.NoteID, expenseID, note.ActorID, string(note.Action), note.Message, note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense note: %w", err)
	}
	return nil
}

// SaveExpenseFile attaches a file record to an expense.
func (r *PgxExpenseRepository) SaveExpenseFile(ctx context.Context, file domain.ExpenseFile) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO expense_files (file_id, expense_id, url, storage_key, mime_type, size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		file.FileID, file.ExpenseID, file.URL, file.StorageKey, file.MimeType, file.Size, file.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense file: %w", err)
	}
	return nil
}

// DeleteExpenseFile removes a file record and returns how many files remain.
func (r *PgxExpenseRepository) DeleteExpenseFile(ctx context.Context, expenseID, fileID string) (int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM expense_files WHERE expense_id = $1 AND file_id = $2;`, expenseID, fileID)
	if err != nil {
		_ = r.Rollback(ctx, tx)
		return 0, fmt.Errorf("failed to delete expense file: %w", err)
	}
	if tag.RowsAffected() == 0 {
		_ = r.Rollback(ctx, tx)
		return 0, apperrors.ErrNotFound
	}

	var remaining int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM expense_files WHERE expense_id = $1;`, expenseID).Scan(&remaining); err != nil {
		_ = r.Rollback(ctx, tx)
		return 0, fmt.Errorf("failed to count remaining files: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return remaining, nil
}
