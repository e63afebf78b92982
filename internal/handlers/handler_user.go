package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcostaira/travel-expense/internal/core/domain"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
)

// userHandler handles HTTP requests for tenant user administration.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers the user administration routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	users := rg.Group("/users")
	{
		users.POST("", adminOnly, h.createUser)
		users.GET("", h.listUsers)
		users.GET("/:id", h.getUser)
		users.PUT("/:id/cost-centers", adminOnly, h.assignCostCenters)
	}
}

// createUser godoc
// @Summary Create a tenant user
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "Invalid input or email already registered"
// @Failure 403 {object} ErrorResponse "Caller is not an administrator"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List tenant users
// @Tags users
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} ErrorResponse "Caller is not an approver"
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// getUser godoc
// @Summary Get a tenant user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// assignCostCenters godoc
// @Summary Assign cost centers to a manager
// @Description Replaces the manager's cost-center assignments, which define their approval scope.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param assignment body dto.AssignCostCentersRequest true "Cost center IDs"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ErrorResponse "Target user is not a manager or a cost center is invalid"
// @Failure 403 {object} ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /users/{id}/cost-centers [put]
func (h *userHandler) assignCostCenters(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.AssignCostCentersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.userService.AssignCostCenters(c.Request.Context(), actor, c.Param("id"), req.CostCenterIDs); err != nil {
		respondWithError(c, err, "Failed to assign cost centers")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Centros de custo atribuídos"})
}
