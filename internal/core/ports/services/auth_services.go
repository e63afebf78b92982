package services

import (
	"context"

	"github.com/marcostaira/travel-expense/internal/dto"
)

// AuthSvcFacade authenticates users and issues access tokens carrying the
// tenant, user and role claims consumed by the auth middleware.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
