package service

import (
	"context"
	"log"

	"ridehail/internal/domain"
	internalredis "ridehail/internal/redis"
	"ridehail/internal/repository"
)

const defaultSearchRadiusKm = 2.0

// DispatchService finds eligible captains near a point so the surrounding
// layer can surface a new ride to them.
type DispatchService struct {
	locationStore internalredis.LocationStoreInterface
	cacheStore    *internalredis.CacheStore
	captainRepo   repository.CaptainRepository
	radiusKm      float64
}

// NewDispatchService creates a new DispatchService. radiusKm <= 0 selects
// the default search radius.
func NewDispatchService(
	locationStore internalredis.LocationStoreInterface,
	cacheStore *internalredis.CacheStore,
	captainRepo repository.CaptainRepository,
	radiusKm float64,
) *DispatchService {
	if radiusKm <= 0 {
		radiusKm = defaultSearchRadiusKm
	}
	return &DispatchService{
		locationStore: locationStore,
		cacheStore:    cacheStore,
		captainRepo:   captainRepo,
		radiusKm:      radiusKm,
	}
}

// FindCaptainsNear returns the online captains whose last-known location is
// within radiusKm of the center, closest first. A failed search degrades to
// an empty result instead of propagating, so dispatch stays available when
// the location index is down.
func (s *DispatchService) FindCaptainsNear(ctx context.Context, lat, lng, radiusKm float64) []*domain.Captain {
	if !isValidLatitude(lat) || !isValidLongitude(lng) {
		return nil
	}
	if radiusKm <= 0 {
		radiusKm = s.radiusKm
	}

	nearby, err := s.locationStore.FindNearbyCaptains(ctx, lat, lng, radiusKm)
	if err != nil {
		log.Printf("dispatch: location search failed, degrading to empty: %v", err)
		return nil
	}

	ids := make([]string, len(nearby))
	for i, loc := range nearby {
		ids[i] = loc.CaptainID
	}
	cached := s.cachedCaptains(ctx, ids)

	captains := make([]*domain.Captain, 0, len(nearby))
	for _, loc := range nearby {
		captain, ok := s.resolveCaptain(ctx, loc.CaptainID, cached)
		if !ok {
			continue
		}
		if captain.Status != domain.CaptainStatusOnline {
			continue
		}
		captains = append(captains, captain)
	}

	return captains
}

// cachedCaptains batch-fetches captain records from the cache; a cache
// failure is treated as a full miss.
func (s *DispatchService) cachedCaptains(ctx context.Context, ids []string) map[string]*internalredis.CachedCaptain {
	if s.cacheStore == nil {
		return nil
	}
	cached, _, err := s.cacheStore.GetCaptainsBatch(ctx, ids)
	if err != nil {
		return nil
	}
	return cached
}

// resolveCaptain returns the captain record from cache or the repository,
// refreshing the cache on a miss.
func (s *DispatchService) resolveCaptain(ctx context.Context, id string, cached map[string]*internalredis.CachedCaptain) (*domain.Captain, bool) {
	if c, ok := cached[id]; ok {
		return &domain.Captain{
			ID:           c.ID,
			Name:         c.Name,
			Phone:        c.Phone,
			VehicleClass: domain.VehicleClass(c.VehicleClass),
			Status:       domain.CaptainStatus(c.Status),
		}, true
	}

	captain, err := s.captainRepo.GetByID(ctx, id)
	if err != nil {
		// Includes ErrNotFound: a stale geo entry without a captain row.
		return nil, false
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetCaptain(ctx, &internalredis.CachedCaptain{
			ID:           captain.ID,
			Name:         captain.Name,
			Phone:        captain.Phone,
			VehicleClass: string(captain.VehicleClass),
			Status:       string(captain.Status),
		})
	}

	return captain, true
}

func isValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func isValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}
