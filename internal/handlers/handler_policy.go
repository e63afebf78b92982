package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcostaira/travel-expense/internal/core/domain"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
)

// policyHandler handles HTTP requests for policy administration.
type policyHandler struct {
	policyService portssvc.PolicySvcFacade
}

func newPolicyHandler(ps portssvc.PolicySvcFacade) *policyHandler {
	return &policyHandler{policyService: ps}
}

// registerPolicyRoutes registers the policy routes. Writes are admin only.
func registerPolicyRoutes(rg *gin.RouterGroup, policyService portssvc.PolicySvcFacade) {
	h := newPolicyHandler(policyService)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	policies := rg.Group("/policies")
	{
		policies.POST("", adminOnly, h.createPolicy)
		policies.GET("", h.listPolicies)
		policies.GET("/:id", h.getPolicy)
		policies.PUT("/:id", adminOnly, h.updatePolicy)
		policies.DELETE("/:id", adminOnly, h.removePolicy)
	}
}

// createPolicy godoc
// @Summary Create a policy rule
// @Description Creates the per-category compliance rule used when evaluating expenses.
// @Tags policies
// @Accept json
// @Produce json
// @Param policy body dto.CreatePolicyRequest true "Policy details"
// @Success 201 {object} dto.PolicyResponse
// @Failure 400 {object} ErrorResponse "Invalid input or validation error"
// @Failure 403 {object} ErrorResponse "Caller is not an administrator"
// @Failure 409 {object} ErrorResponse "Active policy already exists for this category"
// @Security BearerAuth
// @Router /policies [post]
func (h *policyHandler) createPolicy(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	policy, err := h.policyService.CreatePolicy(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to create policy")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPolicyResponse(policy))
}

// listPolicies godoc
// @Summary List active policies
// @Tags policies
// @Produce json
// @Success 200 {array} dto.PolicyResponse
// @Security BearerAuth
// @Router /policies [get]
func (h *policyHandler) listPolicies(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	policies, err := h.policyService.ListPolicies(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, err, "Failed to list policies")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPolicyResponse(policies))
}

// getPolicy godoc
// @Summary Get a policy rule
// @Tags policies
// @Produce json
// @Param id path string true "Policy ID"
// @Success 200 {object} dto.PolicyResponse
// @Failure 404 {object} ErrorResponse "Policy not found"
// @Security BearerAuth
// @Router /policies/{id} [get]
func (h *policyHandler) getPolicy(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	policy, err := h.policyService.GetPolicy(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve policy")
		return
	}

	c.JSON(http.StatusOK, dto.ToPolicyResponse(policy))
}

// updatePolicy godoc
// @Summary Update a policy rule
// @Tags policies
// @Accept json
// @Produce json
// @Param id path string true "Policy ID"
// @Param policy body dto.UpdatePolicyRequest true "Fields to update"
// @Success 200 {object} dto.PolicyResponse
// @Failure 403 {object} ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} ErrorResponse "Policy not found"
// @Security BearerAuth
// @Router /policies/{id} [put]
func (h *policyHandler) updatePolicy(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	policy, err := h.policyService.UpdatePolicy(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update policy")
		return
	}

	c.JSON(http.StatusOK, dto.ToPolicyResponse(policy))
}

// removePolicy godoc
// @Summary Deactivate a policy rule
// @Description Soft-deletes the policy; the category stops being enforced.
// @Tags policies
// @Produce json
// @Param id path string true "Policy ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} ErrorResponse "Policy not found"
// @Security BearerAuth
// @Router /policies/{id} [delete]
func (h *policyHandler) removePolicy(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	if err := h.policyService.RemovePolicy(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to remove policy")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Política desativada"})
}
