package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
)

// advanceHandler handles HTTP requests for the cash-advance lifecycle.
type advanceHandler struct {
	advanceService portssvc.AdvanceSvcFacade
}

func newAdvanceHandler(as portssvc.AdvanceSvcFacade) *advanceHandler {
	return &advanceHandler{advanceService: as}
}

// registerAdvanceRoutes registers the advance workflow routes plus the
// trip-nested listing.
func registerAdvanceRoutes(rg *gin.RouterGroup, advanceService portssvc.AdvanceSvcFacade) {
	h := newAdvanceHandler(advanceService)

	advances := rg.Group("/advances")
	{
		advances.POST("", h.createAdvance)
		advances.GET("/:id", h.getAdvance)
		advances.POST("/:id/submit", h.submitAdvance)
		advances.POST("/:id/approve", h.approveAdvance)
		advances.POST("/:id/reject", h.rejectAdvance)
		advances.POST("/:id/pay", h.payAdvance)
	}

	rg.GET("/trips/:id/advances", h.listAdvancesByTrip)
}

// createAdvance godoc
// @Summary Request a cash advance
// @Description Creates a draft advance against an approved or in-progress trip.
// @Tags advances
// @Accept json
// @Produce json
// @Param advance body dto.CreateAdvanceRequest true "Advance details"
// @Success 201 {object} dto.AdvanceResponse
// @Failure 404 {object} ErrorResponse "Trip not found"
// @Failure 422 {object} ErrorResponse "Trip is not eligible for advances"
// @Security BearerAuth
// @Router /advances [post]
func (h *advanceHandler) createAdvance(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.CreateAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	advance, err := h.advanceService.CreateAdvance(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to create advance")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAdvanceResponse(advance))
}

// getAdvance godoc
// @Summary Get a cash advance
// @Tags advances
// @Produce json
// @Param id path string true "Advance ID"
// @Success 200 {object} dto.AdvanceResponse
// @Failure 404 {object} ErrorResponse "Advance not found"
// @Security BearerAuth
// @Router /advances/{id} [get]
func (h *advanceHandler) getAdvance(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	advance, err := h.advanceService.GetAdvance(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve advance")
		return
	}

	c.JSON(http.StatusOK, dto.ToAdvanceResponse(advance))
}

// listAdvancesByTrip godoc
// @Summary List a trip's cash advances
// @Tags advances
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {array} dto.AdvanceResponse
// @Failure 404 {object} ErrorResponse "Trip not found"
// @Security BearerAuth
// @Router /trips/{id}/advances [get]
func (h *advanceHandler) listAdvancesByTrip(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	advances, err := h.advanceService.ListAdvancesByTrip(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to list advances")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAdvanceResponse(advances))
}

// submitAdvance godoc
// @Summary Submit a cash advance for approval
// @Tags advances
// @Produce json
// @Param id path string true "Advance ID"
// @Success 200 {object} dto.AdvanceResponse
// @Failure 404 {object} ErrorResponse "Advance not found"
// @Failure 422 {object} ErrorResponse "Advance is not submittable"
// @Security BearerAuth
// @Router /advances/{id}/submit [post]
func (h *advanceHandler) submitAdvance(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	advance, err := h.advanceService.SubmitAdvance(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to submit advance")
		return
	}

	c.JSON(http.StatusOK, dto.ToAdvanceResponse(advance))
}

// approveAdvance godoc
// @Summary Approve a submitted cash advance
// @Tags advances
// @Produce json
// @Param id path string true "Advance ID"
// @Success 200 {object} dto.AdvanceResponse
// @Failure 403 {object} ErrorResponse "Caller is not an approver"
// @Failure 404 {object} ErrorResponse "Advance not found"
// @Security BearerAuth
// @Router /advances/{id}/approve [post]
func (h *advanceHandler) approveAdvance(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	advance, err := h.advanceService.ApproveAdvance(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to approve advance")
		return
	}

	c.JSON(http.StatusOK, dto.ToAdvanceResponse(advance))
}

// rejectAdvance godoc
// @Summary Reject a submitted cash advance
// @Tags advances
// @Accept json
// @Produce json
// @Param id path string true "Advance ID"
// @Param decision body dto.RejectAdvanceRequest true "Rejection reason"
// @Success 200 {object} dto.AdvanceResponse
// @Failure 403 {object} ErrorResponse "Caller is not an approver"
// @Failure 404 {object} ErrorResponse "Advance not found"
// @Security BearerAuth
// @Router /advances/{id}/reject [post]
func (h *advanceHandler) rejectAdvance(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.RejectAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	advance, err := h.advanceService.RejectAdvance(c.Request.Context(), actor, c.Param("id"), req.Reason)
	if err != nil {
		respondWithError(c, err, "Failed to reject advance")
		return
	}

	c.JSON(http.StatusOK, dto.ToAdvanceResponse(advance))
}

// payAdvance godoc
// @Summary Mark an approved cash advance as paid
// @Tags advances
// @Produce json
// @Param id path string true "Advance ID"
// @Success 200 {object} dto.AdvanceResponse
// @Failure 403 {object} ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} ErrorResponse "Advance not found"
// @Security BearerAuth
// @Router /advances/{id}/pay [post]
func (h *advanceHandler) payAdvance(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	advance, err := h.advanceService.PayAdvance(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to pay advance")
		return
	}

	c.JSON(http.StatusOK, dto.ToAdvanceResponse(advance))
}
