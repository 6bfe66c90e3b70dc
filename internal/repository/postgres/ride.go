package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
//
// The lifecycle methods compile down to conditional UPDATEs guarded by the
// expected prior state; RowsAffected distinguishes a missing row from a row
// that lost the race.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

const rideColumns = `id, rider_id, captain_id, pickup, destination, vehicle_class, fare, distance_km, duration_min, otp_hash, status, payment_status, order_ref, payment_ref, payment_date, created_at`

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (` + rideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.RiderID,
		nullString(ride.CaptainID),
		ride.Pickup,
		ride.Destination,
		ride.VehicleClass,
		ride.Fare,
		ride.DistanceKm,
		ride.DurationMin,
		ride.OTPHash,
		ride.Status,
		ride.PaymentStatus,
		nullString(ride.OrderRef),
		nullString(ride.PaymentRef),
		nullTime(ride.PaymentDate),
		ride.CreatedAt,
	)

	return err
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return ride, nil
}

// GetByCaptainAndStatus retrieves rides bound to a captain in the given status.
func (r *RideRepository) GetByCaptainAndStatus(ctx context.Context, captainID string, status domain.RideStatus) ([]*domain.Ride, error) {
	query := `
		SELECT ` + rideColumns + ` FROM rides
		WHERE captain_id = $1 AND status = $2
		ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, captainID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// Accept binds a captain and moves the ride to ACCEPTED. The guard on
// status and the unset captain column makes concurrent accepts resolve to
// exactly one winner.
func (r *RideRepository) Accept(ctx context.Context, id, captainID string) error {
	query := `
		UPDATE rides SET status = $1, captain_id = $2
		WHERE id = $3 AND status = $4 AND captain_id IS NULL
	`

	result, err := r.q.ExecContext(ctx, query,
		domain.RideStatusAccepted, captainID, id, domain.RideStatusRequested)
	if err != nil {
		return err
	}
	return r.conditionalResult(ctx, result, id)
}

// UpdateStatus moves the ride from one status to the next.
func (r *RideRepository) UpdateStatus(ctx context.Context, id string, from, to domain.RideStatus) error {
	query := `UPDATE rides SET status = $1 WHERE id = $2 AND status = $3`

	result, err := r.q.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return err
	}
	return r.conditionalResult(ctx, result, id)
}

// MarkOrderPending records the gateway order reference while the ride is
// COMPLETED and no payment is pending yet.
func (r *RideRepository) MarkOrderPending(ctx context.Context, id, orderRef string) error {
	query := `
		UPDATE rides SET order_ref = $1, payment_status = $2
		WHERE id = $3 AND status = $4 AND payment_status = $5
	`

	result, err := r.q.ExecContext(ctx, query,
		orderRef, domain.PaymentStatusPending, id,
		domain.RideStatusCompleted, domain.PaymentStatusNone)
	if err != nil {
		return err
	}
	return r.conditionalResult(ctx, result, id)
}

// CompletePayment records the verified payment reference. The guard on
// payment_status = PENDING makes settlement apply at most once per ride.
func (r *RideRepository) CompletePayment(ctx context.Context, id, paymentRef string, paidAt time.Time) error {
	query := `
		UPDATE rides SET payment_ref = $1, payment_status = $2, payment_date = $3
		WHERE id = $4 AND payment_status = $5
	`

	result, err := r.q.ExecContext(ctx, query,
		paymentRef, domain.PaymentStatusCompleted, paidAt, id,
		domain.PaymentStatusPending)
	if err != nil {
		return err
	}
	return r.conditionalResult(ctx, result, id)
}

// conditionalResult maps a zero-row conditional update to either
// ErrNotFound (no such ride) or ErrStaleState (ride exists, guard failed).
func (r *RideRepository) conditionalResult(ctx context.Context, result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists bool
	if err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM rides WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrStaleState
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRide(row rowScanner) (*domain.Ride, error) {
	var ride domain.Ride
	var captainID, orderRef, paymentRef sql.NullString
	var paymentDate sql.NullTime

	err := row.Scan(
		&ride.ID,
		&ride.RiderID,
		&captainID,
		&ride.Pickup,
		&ride.Destination,
		&ride.VehicleClass,
		&ride.Fare,
		&ride.DistanceKm,
		&ride.DurationMin,
		&ride.OTPHash,
		&ride.Status,
		&ride.PaymentStatus,
		&orderRef,
		&paymentRef,
		&paymentDate,
		&ride.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if captainID.Valid {
		ride.CaptainID = captainID.String
	}
	if orderRef.Valid {
		ride.OrderRef = orderRef.String
	}
	if paymentRef.Valid {
		ride.PaymentRef = paymentRef.String
	}
	if paymentDate.Valid {
		ride.PaymentDate = paymentDate.Time
	}

	return &ride, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
