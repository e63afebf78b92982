package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcostaira/travel-expense/internal/core/domain"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
)

// costCenterHandler handles HTTP requests for cost-center administration.
type costCenterHandler struct {
	costCenterService portssvc.CostCenterSvcFacade
}

func newCostCenterHandler(ccs portssvc.CostCenterSvcFacade) *costCenterHandler {
	return &costCenterHandler{costCenterService: ccs}
}

// registerCostCenterRoutes registers the cost-center routes. Writes are admin only.
func registerCostCenterRoutes(rg *gin.RouterGroup, costCenterService portssvc.CostCenterSvcFacade) {
	h := newCostCenterHandler(costCenterService)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	costCenters := rg.Group("/cost-centers")
	{
		costCenters.POST("", adminOnly, h.createCostCenter)
		costCenters.GET("", h.listCostCenters)
		costCenters.GET("/:id", h.getCostCenter)
		costCenters.PUT("/:id", adminOnly, h.updateCostCenter)
		costCenters.DELETE("/:id", adminOnly, h.removeCostCenter)
	}
}

// createCostCenter godoc
// @Summary Create a cost center
// @Tags cost centers
// @Accept json
// @Produce json
// @Param costCenter body dto.CreateCostCenterRequest true "Cost center details"
// @Success 201 {object} dto.CostCenterResponse
// @Failure 403 {object} ErrorResponse "Caller is not an administrator"
// @Security BearerAuth
// @Router /cost-centers [post]
func (h *costCenterHandler) createCostCenter(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.CreateCostCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	cc, err := h.costCenterService.CreateCostCenter(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to create cost center")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCostCenterResponse(cc))
}

// listCostCenters godoc
// @Summary List cost centers
// @Tags cost centers
// @Produce json
// @Success 200 {array} dto.CostCenterResponse
// @Security BearerAuth
// @Router /cost-centers [get]
func (h *costCenterHandler) listCostCenters(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	ccs, err := h.costCenterService.ListCostCenters(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, err, "Failed to list cost centers")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCostCenterResponse(ccs))
}

// getCostCenter godoc
// @Summary Get a cost center
// @Tags cost centers
// @Produce json
// @Param id path string true "Cost center ID"
// @Success 200 {object} dto.CostCenterResponse
// @Failure 404 {object} ErrorResponse "Cost center not found"
// @Security BearerAuth
// @Router /cost-centers/{id} [get]
func (h *costCenterHandler) getCostCenter(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	cc, err := h.costCenterService.GetCostCenter(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve cost center")
		return
	}

	c.JSON(http.StatusOK, dto.ToCostCenterResponse(cc))
}

// updateCostCenter godoc
// @Summary Update a cost center
// @Tags cost centers
// @Accept json
// @Produce json
// @Param id path string true "Cost center ID"
// @Param costCenter body dto.UpdateCostCenterRequest true "Fields to update"
// @Success 200 {object} dto.CostCenterResponse
// @Failure 403 {object} ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} ErrorResponse "Cost center not found"
// @Security BearerAuth
// @Router /cost-centers/{id} [put]
func (h *costCenterHandler) updateCostCenter(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.UpdateCostCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	cc, err := h.costCenterService.UpdateCostCenter(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update cost center")
		return
	}

	c.JSON(http.StatusOK, dto.ToCostCenterResponse(cc))
}

// removeCostCenter godoc
// @Summary Deactivate a cost center
// @Description Soft-deletes the cost center; existing records keep referencing it.
// @Tags cost centers
// @Produce json
// @Param id path string true "Cost center ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} ErrorResponse "Cost center not found"
// @Security BearerAuth
// @Router /cost-centers/{id} [delete]
func (h *costCenterHandler) removeCostCenter(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	if err := h.costCenterService.RemoveCostCenter(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to remove cost center")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Centro de custo desativado"})
}
