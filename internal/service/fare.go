package service

import (
	"context"
	"math"

	"ridehail/internal/domain"
)

// ClassRates holds the fare coefficients for one vehicle class.
type ClassRates struct {
	Base      float64
	PerKm     float64
	PerMinute float64
	Minimum   int64
}

// FareConfig maps each vehicle class to its rates.
type FareConfig map[domain.VehicleClass]ClassRates

// DefaultFareConfig returns the standard rate card.
func DefaultFareConfig() FareConfig {
	return FareConfig{
		domain.VehicleClassAuto: {Base: 30, PerKm: 10, PerMinute: 2.0, Minimum: 50},
		domain.VehicleClassCar:  {Base: 50, PerKm: 15, PerMinute: 3.0, Minimum: 80},
		domain.VehicleClassMoto: {Base: 20, PerKm: 8, PerMinute: 1.5, Minimum: 40},
	}
}

// Route is a distance/duration quote between two addresses.
type Route struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// RouteProvider answers distance/duration quotes for address pairs.
type RouteProvider interface {
	DistanceTime(ctx context.Context, origin, destination string) (Route, error)
}

// FareQuote is the per-class fare estimate for one route.
type FareQuote struct {
	Fares       map[domain.VehicleClass]int64
	DistanceKm  float64
	DurationMin float64
}

// FareService computes per-class fares from route quotes.
type FareService struct {
	routes RouteProvider
	rates  FareConfig
}

// NewFareService creates a new FareService.
func NewFareService(routes RouteProvider, rates FareConfig) *FareService {
	return &FareService{routes: routes, rates: rates}
}

// Estimate resolves the route between pickup and destination and quotes a
// fare for every vehicle class.
func (s *FareService) Estimate(ctx context.Context, pickup, destination string) (*FareQuote, error) {
	if pickup == "" || destination == "" {
		return nil, ErrInvalidAddress
	}

	route, err := s.routes.DistanceTime(ctx, pickup, destination)
	if err != nil {
		return nil, err
	}

	return s.Quote(route)
}

// Quote computes the per-class fares for an already-resolved route:
// round(base + km*perKm + min*perMinute), floored at the class minimum.
func (s *FareService) Quote(route Route) (*FareQuote, error) {
	if route.DistanceMeters <= 0 || route.DurationSeconds <= 0 {
		return nil, ErrInvalidQuote
	}

	distanceKm := route.DistanceMeters / 1000
	durationMin := route.DurationSeconds / 60

	fares := make(map[domain.VehicleClass]int64, len(s.rates))
	for class, r := range s.rates {
		fare := int64(math.Round(r.Base + distanceKm*r.PerKm + durationMin*r.PerMinute))
		if fare < r.Minimum {
			fare = r.Minimum
		}
		fares[class] = fare
	}

	return &FareQuote{
		Fares:       fares,
		DistanceKm:  distanceKm,
		DurationMin: durationMin,
	}, nil
}
