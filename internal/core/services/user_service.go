package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/marcostaira/travel-expense/internal/apperrors"
	"github.com/marcostaira/travel-expense/internal/core/domain"
	portsrepo "github.com/marcostaira/travel-expense/internal/core/ports/repositories"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
)

// userService manages tenant users and the manager-to-cost-center assignments
// that back manager scoping.
type userService struct {
	userRepo portsrepo.UserRepository
	ccRepo   portsrepo.CostCenterRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepository, ccRepo portsrepo.CostCenterRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, ccRepo: ccRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser creates a tenant user with a bcrypt password hash. Admin only.
func (s *userService) CreateUser(ctx context.Context, actor domain.Actor, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := s.userRepo.FindUserByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.NewBusinessRuleError("Email já cadastrado")
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		TenantID:     actor.TenantID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewBusinessRuleError("Email já cadastrado")
		}
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User created",
		slog.String("user_id", user.UserID),
		slog.String("role", string(user.Role)))
	return &user, nil
}

// GetUser retrieves a user within the actor's tenant.
func (s *userService) GetUser(ctx context.Context, actor domain.Actor, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, actor.TenantID, userID)
}

// ListUsers retrieves the tenant's users. Managers and admins only.
func (s *userService) ListUsers(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if !actor.IsApprover() {
		return nil, apperrors.ErrForbidden
	}
	return s.userRepo.ListUsers(ctx, actor.TenantID)
}

// AssignCostCenters replaces a manager's cost-center assignments. Admin only.
func (s *userService) AssignCostCenters(ctx context.Context, actor domain.Actor, userID string, costCenterIDs []string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actor.Role != domain.RoleAdmin {
		return apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindUserByID(ctx, actor.TenantID, userID)
	if err != nil {
		return err
	}
	if user.Role != domain.RoleManager {
		return apperrors.NewBusinessRuleError("Apenas gestores podem receber centros de custo")
	}

	for _, ccID := range costCenterIDs {
		if _, err := s.ccRepo.FindActiveCostCenterByID(ctx, actor.TenantID, ccID); err != nil {
			return apperrors.NewValidationError("Centro de custo não encontrado ou inativo")
		}
	}

	if err := s.userRepo.AssignCostCenters(ctx, actor.TenantID, userID, costCenterIDs); err != nil {
		return fmt.Errorf("failed to assign cost centers: %w", err)
	}

	logger.Info("Cost centers assigned",
		slog.String("user_id", userID),
		slog.Int("count", len(costCenterIDs)))
	return nil
}

// ScopeFor computes the actor's access scope. Managers get their explicit
// cost-center assignments; admins see the whole tenant; everyone else sees
// their own records only.
func (s *userService) ScopeFor(ctx context.Context, actor domain.Actor) (domain.AccessScope, error) {
	user := domain.User{UserID: actor.UserID, Role: actor.Role}
	if actor.Role != domain.RoleManager {
		return domain.ScopeForUser(user, nil), nil
	}

	ccIDs, err := s.userRepo.ListManagedCostCenterIDs(ctx, actor.TenantID, actor.UserID)
	if err != nil {
		return domain.AccessScope{}, fmt.Errorf("failed to load managed cost centers: %w", err)
	}
	return domain.ScopeForUser(user, ccIDs), nil
}
