package tests

import (
	"context"
	"errors"
	"testing"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
	"ridehail/internal/service"
)

func TestUpdateLocationMarksOnline(t *testing.T) {
	locationStore := NewMockLocationStore()
	captainRepo := NewMockCaptainRepository()
	offline := onlineCaptain("captain-1")
	offline.Status = domain.CaptainStatusOffline
	captainRepo.AddCaptain(offline)
	svc := service.NewCaptainService(locationStore, nil, captainRepo)
	ctx := context.Background()

	err := svc.UpdateLocation(ctx, service.UpdateLocationRequest{
		CaptainID: "captain-1",
		Lat:       28.6315,
		Lng:       77.2167,
	})
	if err != nil {
		t.Fatalf("UpdateLocation() error = %v", err)
	}

	captain, _ := captainRepo.GetByID(ctx, "captain-1")
	if captain.Status != domain.CaptainStatusOnline {
		t.Errorf("status = %s, want ONLINE", captain.Status)
	}

	nearby, err := locationStore.FindNearbyCaptains(ctx, 28.6315, 77.2167, 1.0)
	if err != nil {
		t.Fatalf("FindNearbyCaptains() error = %v", err)
	}
	if len(nearby) != 1 || nearby[0].CaptainID != "captain-1" {
		t.Errorf("captain missing from geo index after location update")
	}
}

func TestUpdateLocationValidation(t *testing.T) {
	svc := service.NewCaptainService(NewMockLocationStore(), nil, NewMockCaptainRepository())
	ctx := context.Background()

	err := svc.UpdateLocation(ctx, service.UpdateLocationRequest{Lat: 28, Lng: 77})
	if !errors.Is(err, service.ErrInvalidCaptainID) {
		t.Errorf("missing captain: error = %v, want ErrInvalidCaptainID", err)
	}

	err = svc.UpdateLocation(ctx, service.UpdateLocationRequest{CaptainID: "c1", Lat: 95, Lng: 77})
	if !errors.Is(err, service.ErrInvalidLocation) {
		t.Errorf("bad latitude: error = %v, want ErrInvalidLocation", err)
	}
}

func TestSetOfflineRemovesFromGeoIndex(t *testing.T) {
	locationStore := NewMockLocationStore()
	captainRepo := NewMockCaptainRepository()
	captainRepo.AddCaptain(onlineCaptain("captain-1"))
	svc := service.NewCaptainService(locationStore, nil, captainRepo)
	ctx := context.Background()

	if err := svc.UpdateLocation(ctx, service.UpdateLocationRequest{
		CaptainID: "captain-1", Lat: 28.6315, Lng: 77.2167,
	}); err != nil {
		t.Fatalf("UpdateLocation() error = %v", err)
	}

	if err := svc.SetOffline(ctx, "captain-1"); err != nil {
		t.Fatalf("SetOffline() error = %v", err)
	}

	captain, _ := captainRepo.GetByID(ctx, "captain-1")
	if captain.Status != domain.CaptainStatusOffline {
		t.Errorf("status = %s, want OFFLINE", captain.Status)
	}

	nearby, err := locationStore.FindNearbyCaptains(ctx, 28.6315, 77.2167, 1.0)
	if err != nil {
		t.Fatalf("FindNearbyCaptains() error = %v", err)
	}
	if len(nearby) != 0 {
		t.Errorf("captain still indexed after going offline")
	}
}

func TestSetOfflineUnknownCaptain(t *testing.T) {
	svc := service.NewCaptainService(NewMockLocationStore(), nil, NewMockCaptainRepository())

	if err := svc.SetOffline(context.Background(), "ghost"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("SetOffline() error = %v, want ErrNotFound", err)
	}
}
