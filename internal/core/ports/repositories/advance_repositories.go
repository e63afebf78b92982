package repositories

import (
	"context"

	"github.com/marcostaira/travel-expense/internal/core/domain"
)

// AdvanceRepository defines persistence operations for cash advances.
type AdvanceRepository interface {
	SaveAdvance(ctx context.Context, advance domain.Advance) error
	UpdateAdvance(ctx context.Context, advance domain.Advance) error
	FindAdvanceByID(ctx context.Context, tenantID, advanceID string) (*domain.Advance, error)
	ListAdvancesByTrip(ctx context.Context, tenantID, tripID string) ([]domain.Advance, error)
}
