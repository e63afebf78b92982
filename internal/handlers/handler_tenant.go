package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
)

// tenantHandler handles tenant onboarding and lookup.
type tenantHandler struct {
	tenantService portssvc.TenantSvcFacade
}

func newTenantHandler(ts portssvc.TenantSvcFacade) *tenantHandler {
	return &tenantHandler{tenantService: ts}
}

// registerTenantRoutes registers the public onboarding route.
func registerTenantRoutes(r *gin.Engine, tenantService portssvc.TenantSvcFacade) {
	h := newTenantHandler(tenantService)
	r.POST("/api/v1/tenants", h.createTenant)
}

// registerTenantMeRoute registers the authenticated tenant lookup.
func registerTenantMeRoute(rg *gin.RouterGroup, tenantService portssvc.TenantSvcFacade) {
	h := newTenantHandler(tenantService)
	rg.GET("/tenants/me", h.getOwnTenant)
}

// createTenant godoc
// @Summary Create a tenant
// @Description Provisions a new isolated company account.
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant body dto.CreateTenantRequest true "Tenant details"
// @Success 201 {object} dto.TenantResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Router /tenants [post]
func (h *tenantHandler) createTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	// Onboarding happens before any user of the tenant exists.
	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), req, "system")
	if err != nil {
		respondWithError(c, err, "Failed to create tenant")
		return
	}

	logger.Info("Tenant onboarded", slog.String("tenant_id", tenant.TenantID))
	c.JSON(http.StatusCreated, dto.ToTenantResponse(tenant))
}

// getOwnTenant godoc
// @Summary Get the caller's tenant
// @Tags tenants
// @Produce json
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} ErrorResponse "Tenant not found"
// @Security BearerAuth
// @Router /tenants/me [get]
func (h *tenantHandler) getOwnTenant(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	tenant, err := h.tenantService.GetTenant(c.Request.Context(), actor.TenantID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve tenant")
		return
	}

	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}
