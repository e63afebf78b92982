package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcostaira/travel-expense/internal/core/domain"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
)

// projectHandler handles HTTP requests for project administration.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

func newProjectHandler(ps portssvc.ProjectSvcFacade) *projectHandler {
	return &projectHandler{projectService: ps}
}

// registerProjectRoutes registers the project routes. Writes are admin only.
func registerProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade) {
	h := newProjectHandler(projectService)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	projects := rg.Group("/projects")
	{
		projects.POST("", adminOnly, h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:id", h.getProject)
		projects.PUT("/:id", adminOnly, h.updateProject)
		projects.DELETE("/:id", adminOnly, h.removeProject)
	}
}

// createProject godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectResponse
// @Failure 403 {object} ErrorResponse "Caller is not an administrator"
// @Failure 409 {object} ErrorResponse "Project code already exists"
// @Security BearerAuth
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// listProjects godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Success 200 {array} dto.ProjectResponse
// @Security BearerAuth
// @Router /projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	projects, err := h.projectService.ListProjects(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, err, "Failed to list projects")
		return
	}

	c.JSON(http.StatusOK, dto.ToListProjectResponse(projects))
}

// getProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// updateProject godoc
// @Summary Update a project
// @Description Updates project fields. The project code is immutable.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param project body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.ProjectResponse
// @Failure 403 {object} ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *projectHandler) updateProject(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update project")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// removeProject godoc
// @Summary Deactivate a project
// @Description Soft-deletes the project, releasing its code for reuse.
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} ErrorResponse "Caller is not an administrator"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *projectHandler) removeProject(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	if err := h.projectService.RemoveProject(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to remove project")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Projeto desativado"})
}
