package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/marcostaira/travel-expense/internal/core/domain"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
)

// fxHandler handles HTTP requests for currency rate lookup and sync.
type fxHandler struct {
	fxService portssvc.FxSvcFacade
}

func newFxHandler(fs portssvc.FxSvcFacade) *fxHandler {
	return &fxHandler{fxService: fs}
}

// registerFxRoutes registers the rate lookup and the admin-only daily sync.
func registerFxRoutes(rg *gin.RouterGroup, fxService portssvc.FxSvcFacade) {
	h := newFxHandler(fxService)

	fxRates := rg.Group("/fx-rates")
	{
		fxRates.GET("/:currency", h.getRate)
		fxRates.POST("/sync", middleware.RequireRoles(domain.RoleAdmin), h.syncRates)
	}
}

// getRate godoc
// @Summary Get the effective BRL rate for a currency
// @Description Resolves today's rate, falling back to the latest known rate and then to built-in defaults.
// @Tags fx rates
// @Produce json
// @Param currency path string true "Currency code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse "Invalid currency code"
// @Security BearerAuth
// @Router /fx-rates/{currency} [get]
func (h *fxHandler) getRate(c *gin.Context) {
	if _, ok := mustActor(c); !ok {
		return
	}

	currency := strings.ToUpper(c.Param("currency"))
	if len(currency) != 3 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Código de moeda deve ter 3 letras"})
		return
	}

	rate, err := h.fxService.GetRate(c.Request.Context(), currency)
	if err != nil {
		respondWithError(c, err, "Failed to resolve rate")
		return
	}

	c.JSON(http.StatusOK, gin.H{"currency": currency, "rate": rate})
}

// syncRates godoc
// @Summary Sync today's currency rates
// @Description Upserts today's rate rows for the supported currency set.
// @Tags fx rates
// @Produce json
// @Success 200 {array} dto.FxRateResponse
// @Failure 403 {object} ErrorResponse "Caller is not an administrator"
// @Security BearerAuth
// @Router /fx-rates/sync [post]
func (h *fxHandler) syncRates(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	rates, err := h.fxService.SyncRates(c.Request.Context(), actor.UserID)
	if err != nil {
		respondWithError(c, err, "Failed to sync rates")
		return
	}

	out := make([]dto.FxRateResponse, len(rates))
	for i := range rates {
		out[i] = dto.ToFxRateResponse(&rates[i])
	}
	c.JSON(http.StatusOK, out)
}
