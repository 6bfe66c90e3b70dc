package tests

import (
	"context"
	"errors"
	"testing"

	"ridehail/internal/domain"
	"ridehail/internal/service"
)

func TestFareQuoteRateCard(t *testing.T) {
	svc := service.NewFareService(&MockRouteProvider{}, service.DefaultFareConfig())

	tests := []struct {
		name     string
		route    service.Route
		class    domain.VehicleClass
		expected int64
	}{
		{
			name:     "car 5km 10min",
			route:    service.Route{DistanceMeters: 5000, DurationSeconds: 600},
			class:    domain.VehicleClassCar,
			expected: 155, // 50 + 5*15 + 10*3
		},
		{
			name:     "auto 5km 10min",
			route:    service.Route{DistanceMeters: 5000, DurationSeconds: 600},
			class:    domain.VehicleClassAuto,
			expected: 100, // 30 + 5*10 + 10*2
		},
		{
			name:     "moto short hop hits class minimum",
			route:    service.Route{DistanceMeters: 1000, DurationSeconds: 60},
			class:    domain.VehicleClassMoto,
			expected: 40, // 20 + 8 + 1.5 = 29.5 -> floored at 40
		},
		{
			name:     "auto fractional fare rounds half up",
			route:    service.Route{DistanceMeters: 2150, DurationSeconds: 300},
			class:    domain.VehicleClassAuto,
			expected: 62, // 30 + 21.5 + 10 = 61.5 -> 62
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := svc.Quote(tt.route)
			if err != nil {
				t.Fatalf("Quote() error = %v", err)
			}
			if got := quote.Fares[tt.class]; got != tt.expected {
				t.Errorf("fare for %s = %d, want %d", tt.class, got, tt.expected)
			}
		})
	}
}

func TestFareQuoteCoversAllClasses(t *testing.T) {
	svc := service.NewFareService(&MockRouteProvider{}, service.DefaultFareConfig())

	quote, err := svc.Quote(service.Route{DistanceMeters: 3000, DurationSeconds: 420})
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}

	for _, class := range []domain.VehicleClass{domain.VehicleClassAuto, domain.VehicleClassCar, domain.VehicleClassMoto} {
		if _, ok := quote.Fares[class]; !ok {
			t.Errorf("quote missing class %s", class)
		}
	}
	if quote.DistanceKm != 3.0 {
		t.Errorf("DistanceKm = %v, want 3.0", quote.DistanceKm)
	}
	if quote.DurationMin != 7.0 {
		t.Errorf("DurationMin = %v, want 7.0", quote.DurationMin)
	}
}

func TestFareQuoteRejectsNonPositiveRoute(t *testing.T) {
	svc := service.NewFareService(&MockRouteProvider{}, service.DefaultFareConfig())

	for _, route := range []service.Route{
		{DistanceMeters: 0, DurationSeconds: 600},
		{DistanceMeters: 5000, DurationSeconds: 0},
		{DistanceMeters: -100, DurationSeconds: -60},
	} {
		if _, err := svc.Quote(route); !errors.Is(err, service.ErrInvalidQuote) {
			t.Errorf("Quote(%+v) error = %v, want ErrInvalidQuote", route, err)
		}
	}
}

func TestFareEstimateValidatesAddresses(t *testing.T) {
	svc := service.NewFareService(&MockRouteProvider{
		Route: service.Route{DistanceMeters: 5000, DurationSeconds: 600},
	}, service.DefaultFareConfig())

	if _, err := svc.Estimate(context.Background(), "", "Airport"); !errors.Is(err, service.ErrInvalidAddress) {
		t.Errorf("empty pickup: error = %v, want ErrInvalidAddress", err)
	}
	if _, err := svc.Estimate(context.Background(), "Station", ""); !errors.Is(err, service.ErrInvalidAddress) {
		t.Errorf("empty destination: error = %v, want ErrInvalidAddress", err)
	}
}

func TestFareEstimatePropagatesRouteErrors(t *testing.T) {
	svc := service.NewFareService(&MockRouteProvider{
		Err: service.ErrLocationNotFound,
	}, service.DefaultFareConfig())

	_, err := svc.Estimate(context.Background(), "Nowhere", "Airport")
	if !errors.Is(err, service.ErrLocationNotFound) {
		t.Errorf("Estimate() error = %v, want ErrLocationNotFound", err)
	}
}
