package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/middleware"
	"github.com/marcostaira/travel-expense/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public routes: login and tenant onboarding.
	registerAuthRoutes(r, cfg, services.Auth)
	registerTenantRoutes(r, services.Tenant)

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// per-entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerExpenseRoutes(v1, services.Expense)
	registerTripRoutes(v1, services.Trip)
	registerAdvanceRoutes(v1, services.Advance)
	registerPolicyRoutes(v1, services.Policy)
	registerBudgetRoutes(v1, services.Budget)
	registerCostCenterRoutes(v1, services.CostCenter)
	registerProjectRoutes(v1, services.Project)
	registerUserRoutes(v1, services.User)
	registerFxRoutes(v1, services.Fx)
	registerTenantMeRoute(v1, services.Tenant)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
