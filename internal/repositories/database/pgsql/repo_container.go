package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/marcostaira/travel-expense/internal/core/ports/repositories"
)

// NewRepositoryProvider builds every pgx-backed repository over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExpenseRepo:    newPgxExpenseRepository(dbPool),
		TripRepo:       newPgxTripRepository(dbPool),
		PolicyRepo:     newPgxPolicyRepository(dbPool),
		BudgetRepo:     newPgxBudgetRepository(dbPool),
		FxRateRepo:     newPgxFxRateRepository(dbPool),
		CostCenterRepo: newPgxCostCenterRepository(dbPool),
		ProjectRepo:    newPgxProjectRepository(dbPool),
		AdvanceRepo:    newPgxAdvanceRepository(dbPool),
		TenantRepo:     newPgxTenantRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
	}
}
