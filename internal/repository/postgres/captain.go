package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// CaptainRepository is a PostgreSQL implementation of repository.CaptainRepository.
type CaptainRepository struct {
	q Querier
}

// NewCaptainRepository creates a new PostgreSQL captain repository.
func NewCaptainRepository(db *sql.DB) *CaptainRepository {
	return &CaptainRepository{q: db}
}

// NewCaptainRepositoryWithTx creates a captain repository using a transaction.
func NewCaptainRepositoryWithTx(tx *sql.Tx) *CaptainRepository {
	return &CaptainRepository{q: tx}
}

// Create adds a new captain.
func (r *CaptainRepository) Create(ctx context.Context, captain *domain.Captain) error {
	query := `
		INSERT INTO captains (id, name, phone, vehicle_class, vehicle_plate, status, earnings)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.q.ExecContext(ctx, query,
		captain.ID, captain.Name, captain.Phone,
		captain.VehicleClass, captain.VehiclePlate, captain.Status, captain.Earnings)
	return err
}

// GetByID retrieves a captain by ID.
func (r *CaptainRepository) GetByID(ctx context.Context, id string) (*domain.Captain, error) {
	query := `
		SELECT id, COALESCE(name, ''), COALESCE(phone, ''), vehicle_class, COALESCE(vehicle_plate, ''), status, earnings
		FROM captains WHERE id = $1
	`

	var captain domain.Captain
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&captain.ID,
		&captain.Name,
		&captain.Phone,
		&captain.VehicleClass,
		&captain.VehiclePlate,
		&captain.Status,
		&captain.Earnings,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &captain, nil
}

// GetByPhone retrieves a captain by phone number.
func (r *CaptainRepository) GetByPhone(ctx context.Context, phone string) (*domain.Captain, error) {
	query := `
		SELECT id, COALESCE(name, ''), phone, vehicle_class, COALESCE(vehicle_plate, ''), status, earnings
		FROM captains WHERE phone = $1
	`

	var captain domain.Captain
	err := r.q.QueryRowContext(ctx, query, phone).Scan(
		&captain.ID,
		&captain.Name,
		&captain.Phone,
		&captain.VehicleClass,
		&captain.VehiclePlate,
		&captain.Status,
		&captain.Earnings,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &captain, nil
}

// GetAll retrieves all captains.
func (r *CaptainRepository) GetAll(ctx context.Context) ([]*domain.Captain, error) {
	query := `
		SELECT id, COALESCE(name, ''), COALESCE(phone, ''), vehicle_class, COALESCE(vehicle_plate, ''), status, earnings
		FROM captains ORDER BY id
	`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var captains []*domain.Captain
	for rows.Next() {
		var captain domain.Captain
		if err := rows.Scan(
			&captain.ID, &captain.Name, &captain.Phone,
			&captain.VehicleClass, &captain.VehiclePlate, &captain.Status, &captain.Earnings,
		); err != nil {
			return nil, err
		}
		captains = append(captains, &captain)
	}
	return captains, rows.Err()
}

// UpdateStatus updates the availability status of a captain.
func (r *CaptainRepository) UpdateStatus(ctx context.Context, id string, status domain.CaptainStatus) error {
	query := `UPDATE captains SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddEarnings credits the captain's earnings as a single atomic increment.
// The add happens inside the UPDATE so concurrent settlements for the same
// captain never lose a credit.
func (r *CaptainRepository) AddEarnings(ctx context.Context, id string, amount int64) error {
	query := `UPDATE captains SET earnings = earnings + $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, amount, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
