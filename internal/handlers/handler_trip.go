package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
)

// tripHandler handles HTTP requests for the trip lifecycle.
type tripHandler struct {
	tripService portssvc.TripSvcFacade
}

func newTripHandler(ts portssvc.TripSvcFacade) *tripHandler {
	return &tripHandler{tripService: ts}
}

// registerTripRoutes registers the trip CRUD and workflow routes.
func registerTripRoutes(rg *gin.RouterGroup, tripService portssvc.TripSvcFacade) {
	h := newTripHandler(tripService)

	trips := rg.Group("/trips")
	{
		trips.POST("", h.createTrip)
		trips.GET("", h.listTrips)
		trips.GET("/:id", h.getTrip)
		trips.PUT("/:id", h.updateTrip)
		trips.DELETE("/:id", h.removeTrip)

		trips.POST("/:id/submit", h.submitTrip)
		trips.POST("/:id/approve", h.approveTrip)
		trips.POST("/:id/reject", h.rejectTrip)
		trips.POST("/:id/start", h.startTrip)
		trips.POST("/:id/complete", h.completeTrip)
		trips.POST("/:id/archive", h.archiveTrip)
	}
}

// createTrip godoc
// @Summary Create a new trip request
// @Description Creates a draft trip. Start date must be in the future and before the end date.
// @Tags trips
// @Accept json
// @Produce json
// @Param trip body dto.CreateTripRequest true "Trip details"
// @Success 201 {object} dto.TripResponse
// @Failure 400 {object} ErrorResponse "Invalid input or validation error"
// @Security BearerAuth
// @Router /trips [post]
func (h *tripHandler) createTrip(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTrip", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to create trip")
		return
	}

	logger.Info("Trip created", slog.String("trip_id", trip.TripID))
	c.JSON(http.StatusCreated, dto.ToTripResponse(trip))
}

// listTrips godoc
// @Summary List trips
// @Description Lists trips visible to the caller's access scope, with pagination.
// @Tags trips
// @Produce json
// @Param status query string false "Filter by status"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} dto.ListTripsResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Security BearerAuth
// @Router /trips [get]
func (h *tripHandler) listTrips(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var params dto.ListTripsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	trips, total, err := h.tripService.ListTrips(c.Request.Context(), actor, params)
	if err != nil {
		respondWithError(c, err, "Failed to list trips")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTripsResponse(trips, total, params.Page, params.Limit))
}

// getTrip godoc
// @Summary Get a trip
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.TripResponse
// @Failure 404 {object} ErrorResponse "Trip not found"
// @Security BearerAuth
// @Router /trips/{id} [get]
func (h *tripHandler) getTrip(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	trip, err := h.tripService.GetTrip(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve trip")
		return
	}

	c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

// updateTrip godoc
// @Summary Update a draft trip
// @Tags trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param trip body dto.UpdateTripRequest true "Fields to update"
// @Success 200 {object} dto.TripResponse
// @Failure 404 {object} ErrorResponse "Trip not found"
// @Failure 422 {object} ErrorResponse "Trip is not a draft"
// @Security BearerAuth
// @Router /trips/{id} [put]
func (h *tripHandler) updateTrip(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	trip, err := h.tripService.UpdateTrip(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update trip")
		return
	}

	c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

// removeTrip godoc
// @Summary Delete a draft trip
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} ErrorResponse "Trip not found"
// @Failure 422 {object} ErrorResponse "Trip is not a draft"
// @Security BearerAuth
// @Router /trips/{id} [delete]
func (h *tripHandler) removeTrip(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	if err := h.tripService.RemoveTrip(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete trip")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Viagem excluída"})
}

// submitTrip godoc
// @Summary Submit a trip for approval
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.TripResponse
// @Failure 404 {object} ErrorResponse "Trip not found"
// @Failure 422 {object} ErrorResponse "Trip is not submittable"
// @Security BearerAuth
// @Router /trips/{id}/submit [post]
func (h *tripHandler) submitTrip(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	trip, err := h.tripService.SubmitTrip(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to submit trip")
		return
	}

	c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

// approveTrip godoc
// @Summary Approve a pending trip
// @Tags trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param decision body dto.ApproveTripRequest false "Optional approval notes"
// @Success 200 {object} dto.TripResponse
// @Failure 403 {object} ErrorResponse "Caller is not an approver"
// @Failure 404 {object} ErrorResponse "Trip not found"
// @Security BearerAuth
// @Router /trips/{id}/approve [post]
func (h *tripHandler) approveTrip(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.ApproveTripRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	trip, err := h.tripService.ApproveTrip(c.Request.Context(), actor, c.Param("id"), req.Notes)
	if err != nil {
		respondWithError(c, err, "Failed to approve trip")
		return
	}

	c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

// rejectTrip godoc
// @Summary Reject a pending trip
// @Tags trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param decision body dto.RejectTripRequest true "Rejection reason"
// @Success 200 {object} dto.TripResponse
// @Failure 403 {object} ErrorResponse "Caller is not an approver"
// @Failure 404 {object} ErrorResponse "Trip not found"
// @Security BearerAuth
// @Router /trips/{id}/reject [post]
func (h *tripHandler) rejectTrip(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.RejectTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	trip, err := h.tripService.RejectTrip(c.Request.Context(), actor, c.Param("id"), req.Reason)
	if err != nil {
		respondWithError(c, err, "Failed to reject trip")
		return
	}

	c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

// startTrip godoc
// @Summary Start an approved trip
// @Description Moves an approved trip into progress. Only allowed on or after its start date.
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.TripResponse
// @Failure 404 {object} ErrorResponse "Trip not found"
// @Failure 422 {object} ErrorResponse "Trip cannot start yet"
// @Security BearerAuth
// @Router /trips/{id}/start [post]
func (h *tripHandler) startTrip(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	trip, err := h.tripService.StartTrip(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to start trip")
		return
	}

	c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

// completeTrip godoc
// @Summary Complete an in-progress trip
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.TripResponse
// @Failure 404 {object} ErrorResponse "Trip not found"
// @Failure 422 {object} ErrorResponse "Trip is not in progress"
// @Security BearerAuth
// @Router /trips/{id}/complete [post]
func (h *tripHandler) completeTrip(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	trip, err := h.tripService.CompleteTrip(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to complete trip")
		return
	}

	c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}

// archiveTrip godoc
// @Summary Archive a finished trip
// @Description Archives a completed or rejected trip.
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} dto.TripResponse
// @Failure 404 {object} ErrorResponse "Trip not found"
// @Failure 422 {object} ErrorResponse "Trip is not archivable"
// @Security BearerAuth
// @Router /trips/{id}/archive [post]
func (h *tripHandler) archiveTrip(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	trip, err := h.tripService.ArchiveTrip(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to archive trip")
		return
	}

	c.JSON(http.StatusOK, dto.ToTripResponse(trip))
}
