package services

import (
	"context"

	"github.com/marcostaira/travel-expense/internal/core/domain"
	"github.com/marcostaira/travel-expense/internal/dto"
)

// AdvanceSvcFacade exposes the cash-advance lifecycle operations.
type AdvanceSvcFacade interface {
	CreateAdvance(ctx context.Context, actor domain.Actor, req dto.CreateAdvanceRequest) (*domain.Advance, error)
	GetAdvance(ctx context.Context, actor domain.Actor, advanceID string) (*domain.Advance, error)
	ListAdvancesByTrip(ctx context.Context, actor domain.Actor, tripID string) ([]domain.Advance, error)

	SubmitAdvance(ctx context.Context, actor domain.Actor, advanceID string) (*domain.Advance, error)
	ApproveAdvance(ctx context.Context, actor domain.Actor, advanceID string) (*domain.Advance, error)
	RejectAdvance(ctx context.Context, actor domain.Actor, advanceID string, reason string) (*domain.Advance, error)
	PayAdvance(ctx context.Context, actor domain.Actor, advanceID string) (*domain.Advance, error)
}
