package services

import (
	"context"

	"github.com/marcostaira/travel-expense/internal/core/domain"
	"github.com/marcostaira/travel-expense/internal/dto"
)

// TripSvcFacade exposes the trip lifecycle operations.
type TripSvcFacade interface {
	CreateTrip(ctx context.Context, actor domain.Actor, req dto.CreateTripRequest) (*domain.Trip, error)
	GetTrip(ctx context.Context, actor domain.Actor, tripID string) (*domain.Trip, error)
	ListTrips(ctx context.Context, actor domain.Actor, params dto.ListTripsParams) ([]domain.Trip, int, error)
	UpdateTrip(ctx context.Context, actor domain.Actor, tripID string, req dto.UpdateTripRequest) (*domain.Trip, error)
	RemoveTrip(ctx context.Context, actor domain.Actor, tripID string) error

	SubmitTrip(ctx context.Context, actor domain.Actor, tripID string) (*domain.Trip, error)
	ApproveTrip(ctx context.Context, actor domain.Actor, tripID string, notes string) (*domain.Trip, error)
	RejectTrip(ctx context.Context, actor domain.Actor, tripID string, reason string) (*domain.Trip, error)
	StartTrip(ctx context.Context, actor domain.Actor, tripID string) (*domain.Trip, error)
	CompleteTrip(ctx context.Context, actor domain.Actor, tripID string) (*domain.Trip, error)
	ArchiveTrip(ctx context.Context, actor domain.Actor, tripID string) (*domain.Trip, error)
}
