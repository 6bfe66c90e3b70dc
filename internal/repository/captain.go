package repository

import (
	"context"

	"ridehail/internal/domain"
)

// CaptainRepository defines the persistence operations for captains.
type CaptainRepository interface {
	// Create adds a new captain.
	Create(ctx context.Context, captain *domain.Captain) error

	// GetByID retrieves a captain by ID.
	GetByID(ctx context.Context, id string) (*domain.Captain, error)

	// GetByPhone retrieves a captain by phone number.
	GetByPhone(ctx context.Context, phone string) (*domain.Captain, error)

	// GetAll retrieves all captains.
	GetAll(ctx context.Context) ([]*domain.Captain, error)

	// UpdateStatus updates the availability status of a captain.
	UpdateStatus(ctx context.Context, id string, status domain.CaptainStatus) error

	// AddEarnings credits the captain's earnings ledger by amount as a
	// single atomic increment in the store. Callers must never
	// read-modify-write the balance.
	AddEarnings(ctx context.Context, id string, amount int64) error
}
