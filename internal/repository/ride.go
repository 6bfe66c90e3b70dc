package repository

import (
	"context"
	"time"

	"ridehail/internal/domain"
)

// RideRepository defines the persistence operations for rides.
//
// Every state-changing method is a single conditional update scoped by
// ride id plus the required prior state. When the row exists but is not
// in the expected state the method returns ErrStaleState, so that two
// callers racing on the same ride produce exactly one success.
type RideRepository interface {
	// Create persists a new ride in REQUESTED state.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// GetByCaptainAndStatus retrieves rides bound to a captain in the
	// given status, newest first.
	GetByCaptainAndStatus(ctx context.Context, captainID string, status domain.RideStatus) ([]*domain.Ride, error)

	// Accept binds a captain and moves the ride to ACCEPTED, only if the
	// ride is still REQUESTED and no captain is bound yet.
	Accept(ctx context.Context, id, captainID string) error

	// UpdateStatus moves the ride from one status to the next.
	UpdateStatus(ctx context.Context, id string, from, to domain.RideStatus) error

	// MarkOrderPending records the gateway order reference and moves
	// payment status NONE -> PENDING, only while the ride is COMPLETED.
	MarkOrderPending(ctx context.Context, id, orderRef string) error

	// CompletePayment records the gateway payment reference and moves
	// payment status PENDING -> COMPLETED.
	CompletePayment(ctx context.Context, id, paymentRef string, paidAt time.Time) error
}
