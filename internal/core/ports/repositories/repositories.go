package repositories

// RepositoryProvider bundles every repository implementation handed to the
// service container at startup.
type RepositoryProvider struct {
	ExpenseRepo    ExpenseRepositoryWithTx
	TripRepo       TripRepositoryFacade
	PolicyRepo     PolicyRepository
	BudgetRepo     BudgetRepository
	FxRateRepo     FxRateRepository
	CostCenterRepo CostCenterRepository
	ProjectRepo    ProjectRepository
	AdvanceRepo    AdvanceRepository
	TenantRepo     TenantRepository
	UserRepo       UserRepository
}
