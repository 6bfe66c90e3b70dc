package service

import (
	"context"
	"errors"

	"ridehail/internal/domain"
	internalredis "ridehail/internal/redis"
	"ridehail/internal/repository"
)

// CaptainService handles captain availability and location.
type CaptainService struct {
	locationStore internalredis.LocationStoreInterface
	cacheStore    *internalredis.CacheStore
	captainRepo   repository.CaptainRepository
}

// NewCaptainService creates a new CaptainService.
func NewCaptainService(
	locationStore internalredis.LocationStoreInterface,
	cacheStore *internalredis.CacheStore,
	captainRepo repository.CaptainRepository,
) *CaptainService {
	return &CaptainService{
		locationStore: locationStore,
		cacheStore:    cacheStore,
		captainRepo:   captainRepo,
	}
}

// UpdateLocationRequest contains the parameters for updating a captain's
// location.
type UpdateLocationRequest struct {
	CaptainID string
	Lat       float64
	Lng       float64
}

// UpdateLocation records a captain's last-known position in the geo index
// and marks them ONLINE.
func (s *CaptainService) UpdateLocation(ctx context.Context, req UpdateLocationRequest) error {
	if req.CaptainID == "" {
		return ErrInvalidCaptainID
	}
	if !isValidLatitude(req.Lat) || !isValidLongitude(req.Lng) {
		return ErrInvalidLocation
	}

	if err := s.locationStore.UpdateLocation(ctx, req.CaptainID, req.Lat, req.Lng); err != nil {
		return err
	}

	err := s.captainRepo.UpdateStatus(ctx, req.CaptainID, domain.CaptainStatusOnline)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateCaptain(ctx, req.CaptainID)
	}

	return nil
}

// SetOffline takes a captain out of dispatch rotation.
func (s *CaptainService) SetOffline(ctx context.Context, captainID string) error {
	if captainID == "" {
		return ErrInvalidCaptainID
	}

	if err := s.captainRepo.UpdateStatus(ctx, captainID, domain.CaptainStatusOffline); err != nil {
		return err
	}

	if err := s.locationStore.RemoveLocation(ctx, captainID); err != nil {
		return err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateCaptain(ctx, captainID)
	}

	return nil
}
