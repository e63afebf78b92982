package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/marcostaira/travel-expense/internal/apperrors"
	portsrepo "github.com/marcostaira/travel-expense/internal/core/ports/repositories"
	portssvc "github.com/marcostaira/travel-expense/internal/core/ports/services"
	"github.com/marcostaira/travel-expense/internal/dto"
	"github.com/marcostaira/travel-expense/internal/middleware"
	"github.com/marcostaira/travel-expense/internal/platform/config"
)

// authService authenticates users against their stored bcrypt hash and issues
// HS256 access tokens.
type authService struct {
	userRepo  portsrepo.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepository) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: cfg.JWTExpiryDuration,
		jwtIssuer: cfg.JWTIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies the credentials and returns a signed access token. Unknown
// emails and wrong passwords produce the same error.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("Credenciais inválidas")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.NewValidationError("Credenciais inválidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login failed", slog.String("email", email))
		return nil, apperrors.NewValidationError("Credenciais inválidas")
	}

	now := time.Now()
	claims := middleware.AccessClaims{
		TenantID: user.TenantID,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			Issuer:    s.jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		AccessToken: signed,
		User:        dto.ToUserResponse(user),
	}, nil
}
