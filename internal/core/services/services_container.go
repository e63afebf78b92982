package services

import (
	portsrepo "github.com/marcostaira/travel-expense/internal/core/ports/repositories"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/platform/config"
)

// NewServiceContainer wires every application service with its repository and
// collaborator dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, storage portssvc.FileStorage) *portssvc.ServiceContainer {
	fxSvc := NewFxService(repos.FxRateRepo)
	policySvc := NewPolicyService(repos.PolicyRepo, repos.ExpenseRepo)
	userSvc := NewUserService(repos.UserRepo, repos.CostCenterRepo)

	return &portssvc.ServiceContainer{
		Expense:    NewExpenseService(repos.ExpenseRepo, repos.CostCenterRepo, repos.ProjectRepo, repos.TripRepo, fxSvc, policySvc, userSvc, storage),
		Trip:       NewTripService(repos.TripRepo, repos.CostCenterRepo, repos.ProjectRepo, userSvc),
		Policy:     policySvc,
		Fx:         fxSvc,
		Budget:     NewBudgetService(repos.BudgetRepo, repos.ExpenseRepo, repos.CostCenterRepo, repos.ProjectRepo),
		CostCenter: NewCostCenterService(repos.CostCenterRepo),
		Project:    NewProjectService(repos.ProjectRepo, repos.CostCenterRepo),
		Advance:    NewAdvanceService(repos.AdvanceRepo, repos.TripRepo, userSvc),
		Tenant:     NewTenantService(repos.TenantRepo),
		User:       userSvc,
		Auth:       NewAuthService(cfg, repos.UserRepo),
	}
}
