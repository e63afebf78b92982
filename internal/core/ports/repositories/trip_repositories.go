package repositories

import (
	"context"

	"github.com/marcostaira/travel-expense/internal/core/domain"
)

// TripFilter is the typed filter passed to trip list queries.
type TripFilter struct {
	TenantID string
	Scope    domain.AccessScope
	Status   *domain.TripStatus
	Limit    int
	Offset   int
}

// TripReader defines read operations for trip data
type TripReader interface {
	// FindTripByID retrieves a trip with its notes, tenant-scoped.
	FindTripByID(ctx context.Context, tenantID, tripID string) (*domain.Trip, error)

	// ListTrips retrieves trips matching the filter, newest first, plus the
	// total count for pagination.
	ListTrips(ctx context.Context, filter TripFilter) ([]domain.Trip, int, error)
}

// TripWriter defines write operations for trip data
type TripWriter interface {
	SaveTrip(ctx context.Context, trip domain.Trip) error
	UpdateTrip(ctx context.Context, trip domain.Trip) error
	DeleteTrip(ctx context.Context, tenantID, tripID string) error

	// SaveTripNote appends one workflow note to the trip's audit trail.
	SaveTripNote(ctx context.Context, tripID string, note domain.WorkflowNote) error
}

// TripRepositoryFacade combines all trip-related repository interfaces
type TripRepositoryFacade interface {
	TripReader
	TripWriter
}
