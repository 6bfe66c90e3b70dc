package tests

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"ridehail/internal/domain"
	internalredis "ridehail/internal/redis"
	"ridehail/internal/repository"
	"ridehail/internal/service"
)

// Ensure mocks satisfy the interfaces they stand in for.
var (
	_ repository.RideRepository            = (*MockRideRepository)(nil)
	_ repository.CaptainRepository         = (*MockCaptainRepository)(nil)
	_ service.RouteProvider                = (*MockRouteProvider)(nil)
	_ service.Gateway                      = (*MockGateway)(nil)
	_ internalredis.LocationStoreInterface = (*MockLocationStore)(nil)
)

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is an in-memory implementation of RideRepository with
// the same conditional-update semantics as the PostgreSQL implementation.
type MockRideRepository struct {
	mu    sync.Mutex
	rides map[string]*domain.Ride

	// Counters for verification
	CreateCallCount          int32
	AcceptCallCount          int32
	CompletePaymentCallCount int32

	// Error injection
	CreateError error
	GetError    error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{
		rides: make(map[string]*domain.Ride),
	}
}

// AddRide adds a ride to the mock repository.
func (m *MockRideRepository) AddRide(ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *ride
	m.rides[ride.ID] = &copy
}

// GetRide returns the stored ride for test assertions.
func (m *MockRideRepository) GetRide(id string) *domain.Ride {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ride, ok := m.rides[id]; ok {
		copy := *ride
		return &copy
	}
	return nil
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *ride
	m.rides[ride.ID] = &copy
	return nil
}

func (m *MockRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *ride
	return &copy, nil
}

func (m *MockRideRepository) GetByCaptainAndStatus(ctx context.Context, captainID string, status domain.RideStatus) ([]*domain.Ride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Ride
	for _, ride := range m.rides {
		if ride.CaptainID == captainID && ride.Status == status {
			copy := *ride
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockRideRepository) Accept(ctx context.Context, id, captainID string) error {
	atomic.AddInt32(&m.AcceptCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[id]
	if !ok {
		return repository.ErrNotFound
	}
	if ride.Status != domain.RideStatusRequested || ride.CaptainID != "" {
		return repository.ErrStaleState
	}
	ride.Status = domain.RideStatusAccepted
	ride.CaptainID = captainID
	return nil
}

func (m *MockRideRepository) UpdateStatus(ctx context.Context, id string, from, to domain.RideStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[id]
	if !ok {
		return repository.ErrNotFound
	}
	if ride.Status != from {
		return repository.ErrStaleState
	}
	ride.Status = to
	return nil
}

func (m *MockRideRepository) MarkOrderPending(ctx context.Context, id, orderRef string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[id]
	if !ok {
		return repository.ErrNotFound
	}
	if ride.Status != domain.RideStatusCompleted || ride.PaymentStatus != domain.PaymentStatusNone {
		return repository.ErrStaleState
	}
	ride.OrderRef = orderRef
	ride.PaymentStatus = domain.PaymentStatusPending
	return nil
}

func (m *MockRideRepository) CompletePayment(ctx context.Context, id, paymentRef string, paidAt time.Time) error {
	atomic.AddInt32(&m.CompletePaymentCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[id]
	if !ok {
		return repository.ErrNotFound
	}
	if ride.PaymentStatus != domain.PaymentStatusPending {
		return repository.ErrStaleState
	}
	ride.PaymentRef = paymentRef
	ride.PaymentStatus = domain.PaymentStatusCompleted
	ride.PaymentDate = paidAt
	return nil
}

// ──────────────────────────────────────────────
// MOCK CAPTAIN REPOSITORY
// ──────────────────────────────────────────────

// MockCaptainRepository is an in-memory implementation of CaptainRepository.
type MockCaptainRepository struct {
	mu       sync.Mutex
	captains map[string]*domain.Captain

	// Counters for verification
	AddEarningsCallCount int32

	// Error injection
	AddEarningsError error
}

// NewMockCaptainRepository creates a new mock captain repository.
func NewMockCaptainRepository() *MockCaptainRepository {
	return &MockCaptainRepository{
		captains: make(map[string]*domain.Captain),
	}
}

// AddCaptain adds a captain to the mock repository.
func (m *MockCaptainRepository) AddCaptain(captain *domain.Captain) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *captain
	m.captains[captain.ID] = &copy
}

// Earnings returns the captain's current balance for test assertions.
func (m *MockCaptainRepository) Earnings(id string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if captain, ok := m.captains[id]; ok {
		return captain.Earnings
	}
	return 0
}

func (m *MockCaptainRepository) Create(ctx context.Context, captain *domain.Captain) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *captain
	m.captains[captain.ID] = &copy
	return nil
}

func (m *MockCaptainRepository) GetByID(ctx context.Context, id string) (*domain.Captain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	captain, ok := m.captains[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *captain
	return &copy, nil
}

func (m *MockCaptainRepository) GetByPhone(ctx context.Context, phone string) (*domain.Captain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, captain := range m.captains {
		if captain.Phone == phone {
			copy := *captain
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockCaptainRepository) GetAll(ctx context.Context) ([]*domain.Captain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.Captain, 0, len(m.captains))
	for _, captain := range m.captains {
		copy := *captain
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockCaptainRepository) UpdateStatus(ctx context.Context, id string, status domain.CaptainStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	captain, ok := m.captains[id]
	if !ok {
		return repository.ErrNotFound
	}
	captain.Status = status
	return nil
}

func (m *MockCaptainRepository) AddEarnings(ctx context.Context, id string, amount int64) error {
	atomic.AddInt32(&m.AddEarningsCallCount, 1)
	if m.AddEarningsError != nil {
		return m.AddEarningsError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	captain, ok := m.captains[id]
	if !ok {
		return repository.ErrNotFound
	}
	captain.Earnings += amount
	return nil
}

// ──────────────────────────────────────────────
// MOCK ROUTE PROVIDER
// ──────────────────────────────────────────────

// MockRouteProvider is a RouteProvider returning a fixed route.
type MockRouteProvider struct {
	Route service.Route
	Err   error
}

func (m *MockRouteProvider) DistanceTime(ctx context.Context, origin, destination string) (service.Route, error) {
	if m.Err != nil {
		return service.Route{}, m.Err
	}
	return m.Route, nil
}

// ──────────────────────────────────────────────
// MOCK PAYMENT GATEWAY
// ──────────────────────────────────────────────

// MockGateway is a Gateway minting predictable order references.
type MockGateway struct {
	OrderRef string
	Err      error

	CreateOrderCallCount int32
}

func (m *MockGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (string, error) {
	atomic.AddInt32(&m.CreateOrderCallCount, 1)
	if m.Err != nil {
		return "", m.Err
	}
	if m.OrderRef != "" {
		return m.OrderRef, nil
	}
	return "order_test", nil
}

// ──────────────────────────────────────────────
// MOCK LOCATION STORE
// ──────────────────────────────────────────────

// MockLocationStore keeps captain positions in memory and answers radius
// queries with a great-circle distance check.
type MockLocationStore struct {
	mu        sync.Mutex
	locations map[string][2]float64 // captainID -> lat, lng

	// Error injection
	FindError error
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{
		locations: make(map[string][2]float64),
	}
}

func (m *MockLocationStore) UpdateLocation(ctx context.Context, captainID string, lat, lng float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[captainID] = [2]float64{lat, lng}
	return nil
}

func (m *MockLocationStore) FindNearbyCaptains(ctx context.Context, lat, lng, radiusKm float64) ([]internalredis.CaptainLocation, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []internalredis.CaptainLocation
	for id, loc := range m.locations {
		dist := haversineKm(lat, lng, loc[0], loc[1])
		if dist <= radiusKm {
			result = append(result, internalredis.CaptainLocation{
				CaptainID:  id,
				Lat:        loc[0],
				Lng:        loc[1],
				DistanceKm: dist,
			})
		}
	}
	return result, nil
}

func (m *MockLocationStore) RemoveLocation(ctx context.Context, captainID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locations, captainID)
	return nil
}

// haversineKm computes the great-circle distance between two points using
// Earth's mean radius of 6371 km.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0

	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
