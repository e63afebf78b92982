package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marcostaira/travel-expense/internal/core/domain"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
)

// budgetHandler handles HTTP requests for budget administration and reporting.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: bs}
}

// registerBudgetRoutes registers the budget routes. Writes are admin only;
// the variance summary is available to approvers.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	approvers := middleware.RequireRoles(domain.RoleAdmin, domain.RoleManager)

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", adminOnly, h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/summary", approvers, h.getBudgetSummary)
		budgets.GET("/:id", h.getBudget)
		budgets.PUT("/:id", adminOnly, h.updateBudget)
		budgets.DELETE("/:id", adminOnly, h.removeBudget)
	}
}

// createBudget godoc
// @Summary Create a budget
// @Description Creates a spending target for a year, period and cost center (optionally a project).
// @Tags budgets
// @Accept json
// @Produce json
// @Param budget body dto.CreateBudgetRequest true "Budget details"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} ErrorResponse "Invalid input or validation error"
// @Failure 403 {object} ErrorResponse "Caller is not an administrator"
// @Failure 409 {object} ErrorResponse "Budget already exists for this key"
// @Security BearerAuth
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to create budget")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBudgetResponse(budget))
}

// listBudgets godoc
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Param year query int false "Filter by year"
// @Param period query string false "Filter by period"
// @Param costCenterID query string false "Filter by cost center"
// @Success 200 {array} dto.BudgetResponse
// @Security BearerAuth
// @Router /budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var params dto.ListBudgetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), actor, params)
	if err != nil {
		respondWithError(c, err, "Failed to list budgets")
		return
	}

	out := make([]dto.BudgetResponse, len(budgets))
	for i := range budgets {
		out[i] = dto.ToBudgetResponse(&budgets[i])
	}
	c.JSON(http.StatusOK, out)
}

// getBudgetSummary godoc
// @Summary Budget variance summary
// @Description Computes actual spend and variance per budget for the given year, plus aggregate totals.
// @Tags budgets
// @Produce json
// @Param year query int false "Year (defaults to the current year)"
// @Success 200 {object} dto.BudgetSummaryResponse
// @Failure 403 {object} ErrorResponse "Caller is not an approver"
// @Security BearerAuth
// @Router /budgets/summary [get]
func (h *budgetHandler) getBudgetSummary(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Ano inválido"})
			return
		}
		year = parsed
	}

	budgets, totals, err := h.budgetService.GetBudgetSummary(c.Request.Context(), actor, year)
	if err != nil {
		respondWithError(c, err, "Failed to compute budget summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetSummaryResponse(budgets, totals))
}

// getBudget godoc
// @Summary Get a budget
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} ErrorResponse "Budget not found"
// @Security BearerAuth
// @Router /budgets/{id} [get]
func (h *budgetHandler) getBudget(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	budget, err := h.budgetService.GetBudget(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// updateBudget godoc
// @Summary Update a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param budget body dto.UpdateBudgetRequest true "Fields to update"
// @Success 200 {object} dto.BudgetResponse
// @Failure 403 {object} ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} ErrorResponse "Budget not found"
// @Failure 409 {object} ErrorResponse "Budget already exists for the new key"
// @Security BearerAuth
// @Router /budgets/{id} [put]
func (h *budgetHandler) updateBudget(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update budget")
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// removeBudget godoc
// @Summary Delete a budget
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} ErrorResponse "Budget not found"
// @Security BearerAuth
// @Router /budgets/{id} [delete]
func (h *budgetHandler) removeBudget(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	if err := h.budgetService.RemoveBudget(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to remove budget")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Orçamento excluído"})
}
