package tests

import (
	"context"
	"errors"
	"testing"

	"ridehail/internal/domain"
	"ridehail/internal/service"
)

func TestFindCaptainsNearRadius(t *testing.T) {
	locationStore := NewMockLocationStore()
	captainRepo := NewMockCaptainRepository()
	ctx := context.Background()

	// Connaught Place, Delhi.
	const centerLat, centerLng = 28.6315, 77.2167

	captainRepo.AddCaptain(onlineCaptain("near"))
	captainRepo.AddCaptain(onlineCaptain("far"))
	_ = locationStore.UpdateLocation(ctx, "near", 28.6350, 77.2200) // ~0.5 km out
	_ = locationStore.UpdateLocation(ctx, "far", 28.7041, 77.1025)  // ~14 km out

	svc := service.NewDispatchService(locationStore, nil, captainRepo, 2.0)

	captains := svc.FindCaptainsNear(ctx, centerLat, centerLng, 2.0)
	if len(captains) != 1 {
		t.Fatalf("got %d captains, want 1", len(captains))
	}
	if captains[0].ID != "near" {
		t.Errorf("captain = %q, want near", captains[0].ID)
	}

	// Widening the radius brings the far captain in.
	captains = svc.FindCaptainsNear(ctx, centerLat, centerLng, 20.0)
	if len(captains) != 2 {
		t.Errorf("got %d captains at 20km, want 2", len(captains))
	}
}

func TestFindCaptainsNearFiltersOffline(t *testing.T) {
	locationStore := NewMockLocationStore()
	captainRepo := NewMockCaptainRepository()
	ctx := context.Background()

	online := onlineCaptain("online")
	offline := onlineCaptain("offline")
	offline.Status = domain.CaptainStatusOffline
	busy := onlineCaptain("busy")
	busy.Status = domain.CaptainStatusOnRide

	captainRepo.AddCaptain(online)
	captainRepo.AddCaptain(offline)
	captainRepo.AddCaptain(busy)
	for _, id := range []string{"online", "offline", "busy"} {
		_ = locationStore.UpdateLocation(ctx, id, 28.6315, 77.2167)
	}

	svc := service.NewDispatchService(locationStore, nil, captainRepo, 2.0)

	captains := svc.FindCaptainsNear(ctx, 28.6315, 77.2167, 2.0)
	if len(captains) != 1 {
		t.Fatalf("got %d captains, want 1", len(captains))
	}
	if captains[0].ID != "online" {
		t.Errorf("captain = %q, want online", captains[0].ID)
	}
}

func TestFindCaptainsNearSkipsStaleGeoEntries(t *testing.T) {
	locationStore := NewMockLocationStore()
	captainRepo := NewMockCaptainRepository()
	ctx := context.Background()

	// Geo entry without a captain row behind it.
	_ = locationStore.UpdateLocation(ctx, "ghost", 28.6315, 77.2167)

	svc := service.NewDispatchService(locationStore, nil, captainRepo, 2.0)

	captains := svc.FindCaptainsNear(ctx, 28.6315, 77.2167, 2.0)
	if len(captains) != 0 {
		t.Errorf("got %d captains, want 0", len(captains))
	}
}

func TestFindCaptainsNearDegradesOnStoreError(t *testing.T) {
	locationStore := NewMockLocationStore()
	locationStore.FindError = errors.New("connection refused")
	captainRepo := NewMockCaptainRepository()

	svc := service.NewDispatchService(locationStore, nil, captainRepo, 2.0)

	captains := svc.FindCaptainsNear(context.Background(), 28.6315, 77.2167, 2.0)
	if len(captains) != 0 {
		t.Errorf("got %d captains, want empty result on store failure", len(captains))
	}
}

func TestFindCaptainsNearRejectsBadCoordinates(t *testing.T) {
	locationStore := NewMockLocationStore()
	svc := service.NewDispatchService(locationStore, nil, NewMockCaptainRepository(), 2.0)
	ctx := context.Background()

	for _, pt := range [][2]float64{{91, 77}, {-91, 77}, {28, 181}, {28, -181}} {
		if got := svc.FindCaptainsNear(ctx, pt[0], pt[1], 2.0); got != nil {
			t.Errorf("FindCaptainsNear(%v, %v) = %d captains, want nil", pt[0], pt[1], len(got))
		}
	}
}

func TestFindCaptainsNearDefaultRadius(t *testing.T) {
	locationStore := NewMockLocationStore()
	captainRepo := NewMockCaptainRepository()
	ctx := context.Background()

	captainRepo.AddCaptain(onlineCaptain("near"))
	_ = locationStore.UpdateLocation(ctx, "near", 28.6315, 77.2167)

	// Zero radius falls back to the configured default.
	svc := service.NewDispatchService(locationStore, nil, captainRepo, 2.0)
	captains := svc.FindCaptainsNear(ctx, 28.6315, 77.2167, 0)
	if len(captains) != 1 {
		t.Errorf("got %d captains with default radius, want 1", len(captains))
	}
}
