package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/marcostaira/travel-expense/internal/apperrors"
	"github.com/marcostaira/travel-expense/internal/core/domain"
	portsrepo "github.com/marcostaira/travel-expense/internal/core/ports/repositories"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
)

type projectService struct {
	projectRepo portsrepo.ProjectRepository
	ccRepo      portsrepo.CostCenterRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo portsrepo.ProjectRepository, ccRepo portsrepo.CostCenterRepository) portssvc.ProjectSvcFacade {
	return &projectService{projectRepo: projectRepo, ccRepo: ccRepo}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

// CreateProject creates an active project. The code is unique among the
// tenant's active projects. Admin only.
func (s *projectService) CreateProject(ctx context.Context, actor domain.Actor, req dto.CreateProjectRequest) (*domain.Project, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}
	if req.CostCenterID != nil {
		if _, err := s.ccRepo.FindActiveCostCenterByID(ctx, actor.TenantID, *req.CostCenterID); err != nil {
			return nil, apperrors.NewValidationError("Centro de custo não encontrado ou inativo")
		}
	}

	now := time.Now()
	project := domain.Project{
		ProjectID:    uuid.NewString(),
		TenantID:     actor.TenantID,
		Name:         req.Name,
		Code:         req.Code,
		CostCenterID: req.CostCenterID,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewBusinessRuleError("Código do projeto já existe")
		}
		logger.Error("Failed to save project", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	logger.Info("Project created",
		slog.String("project_id", project.ProjectID),
		slog.String("code", project.Code))
	return &project, nil
}

// GetProject retrieves a project within the actor's tenant.
func (s *projectService) GetProject(ctx context.Context, actor domain.Actor, projectID string) (*domain.Project, error) {
	return s.projectRepo.FindProjectByID(ctx, actor.TenantID, projectID)
}

// ListProjects retrieves the tenant's active projects.
func (s *projectService) ListProjects(ctx context.Context, actor domain.Actor) ([]domain.Project, error) {
	return s.projectRepo.ListActiveProjects(ctx, actor.TenantID)
}

// UpdateProject updates a project's name and cost center. The code is
// immutable once created. Admin only.
func (s *projectService) UpdateProject(ctx context.Context, actor domain.Actor, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	project, err := s.projectRepo.FindProjectByID(ctx, actor.TenantID, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.CostCenterID != nil {
		if _, err := s.ccRepo.FindActiveCostCenterByID(ctx, actor.TenantID, *req.CostCenterID); err != nil {
			return nil, apperrors.NewValidationError("Centro de custo não encontrado ou inativo")
		}
		project.CostCenterID = req.CostCenterID
	}
	project.LastUpdatedAt = time.Now()
	project.LastUpdatedBy = actor.UserID

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// RemoveProject soft-deletes a project, releasing its code for reuse. Admin only.
func (s *projectService) RemoveProject(ctx context.Context, actor domain.Actor, projectID string) error {
	if actor.Role != domain.RoleAdmin {
		return apperrors.ErrForbidden
	}

	project, err := s.projectRepo.FindProjectByID(ctx, actor.TenantID, projectID)
	if err != nil {
		return err
	}

	project.IsActive = false
	project.LastUpdatedAt = time.Now()
	project.LastUpdatedBy = actor.UserID

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		return fmt.Errorf("failed to deactivate project: %w", err)
	}
	return nil
}
