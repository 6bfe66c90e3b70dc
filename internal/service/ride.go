package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// RideService owns the ride entity and its lifecycle:
// REQUESTED -> ACCEPTED -> ONGOING -> COMPLETED.
type RideService struct {
	rideRepo            repository.RideRepository
	captainRepo         repository.CaptainRepository
	fareService         *FareService
	otpIssuer           *OtpIssuer
	notificationService *NotificationService
}

// NewRideService creates a new RideService.
func NewRideService(
	rideRepo repository.RideRepository,
	captainRepo repository.CaptainRepository,
	fareService *FareService,
	otpIssuer *OtpIssuer,
	notificationService *NotificationService,
) *RideService {
	return &RideService{
		rideRepo:            rideRepo,
		captainRepo:         captainRepo,
		fareService:         fareService,
		otpIssuer:           otpIssuer,
		notificationService: notificationService,
	}
}

// CreateRideRequest contains the parameters for requesting a ride.
type CreateRideRequest struct {
	RiderID      string
	Pickup       string
	Destination  string
	VehicleClass domain.VehicleClass
}

// CreateRideResponse contains the created ride and the one-time pickup
// code. OTP is the only place the plaintext code ever appears; the ride
// itself stores a salted hash.
type CreateRideResponse struct {
	Ride *domain.Ride
	OTP  string
}

// CreateRide quotes the fare, issues the pickup OTP and persists a
// REQUESTED ride. The fare is fixed here, before dispatch, and never
// renegotiated.
func (s *RideService) CreateRide(ctx context.Context, req CreateRideRequest) (*CreateRideResponse, error) {
	if req.RiderID == "" {
		return nil, ErrInvalidRiderID
	}
	if req.Pickup == "" || req.Destination == "" {
		return nil, ErrInvalidAddress
	}
	if !domain.ValidVehicleClass(req.VehicleClass) {
		return nil, ErrInvalidVehicleClass
	}

	quote, err := s.fareService.Estimate(ctx, req.Pickup, req.Destination)
	if err != nil {
		return nil, err
	}

	otp, err := s.otpIssuer.Generate()
	if err != nil {
		return nil, err
	}

	otpHash, err := HashOtp(otp)
	if err != nil {
		return nil, err
	}

	ride := &domain.Ride{
		ID:            uuid.New().String(),
		RiderID:       req.RiderID,
		Pickup:        req.Pickup,
		Destination:   req.Destination,
		VehicleClass:  req.VehicleClass,
		Fare:          quote.Fares[req.VehicleClass],
		DistanceKm:    quote.DistanceKm,
		DurationMin:   quote.DurationMin,
		OTPHash:       otpHash,
		Status:        domain.RideStatusRequested,
		PaymentStatus: domain.PaymentStatusNone,
		CreatedAt:     time.Now(),
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	return &CreateRideResponse{Ride: ride, OTP: otp}, nil
}

// AcceptRide binds a captain to a REQUESTED ride. The repository performs
// the compare-and-set, so concurrent accepts on the same ride resolve to
// exactly one winner; all others get ErrAlreadyAccepted.
func (s *RideService) AcceptRide(ctx context.Context, rideID, captainID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if captainID == "" {
		return nil, ErrInvalidCaptainID
	}

	if _, err := s.captainRepo.GetByID(ctx, captainID); err != nil {
		return nil, err
	}

	if err := s.rideRepo.Accept(ctx, rideID, captainID); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, s.classifyAcceptConflict(ctx, rideID)
		}
		return nil, err
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	// Captain is busy until the ride completes.
	if err := s.captainRepo.UpdateStatus(ctx, captainID, domain.CaptainStatusOnRide); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyRideAccepted(ctx, ride)
	}

	return ride, nil
}

// classifyAcceptConflict distinguishes a lost accept race from an
// out-of-order call.
func (s *RideService) classifyAcceptConflict(ctx context.Context, rideID string) error {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return err
	}
	if ride.CaptainID != "" {
		return ErrAlreadyAccepted
	}
	return ErrInvalidTransition
}

// StartRide transitions an ACCEPTED ride to ONGOING after the bound
// captain supplies the rider's OTP. A wrong code leaves the ride ACCEPTED.
func (s *RideService) StartRide(ctx context.Context, rideID, otp, captainID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if captainID == "" {
		return nil, ErrInvalidCaptainID
	}
	if otp == "" {
		return nil, ErrInvalidOtp
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if ride.Status != domain.RideStatusAccepted {
		return nil, ErrInvalidTransition
	}
	if ride.CaptainID != captainID {
		return nil, ErrNotAuthorized
	}
	if !CompareOtp(ride.OTPHash, otp) {
		return nil, ErrInvalidOtp
	}

	if err := s.rideRepo.UpdateStatus(ctx, rideID, domain.RideStatusAccepted, domain.RideStatusOngoing); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}
	ride.Status = domain.RideStatusOngoing

	if s.notificationService != nil {
		_ = s.notificationService.NotifyRideStarted(ctx, ride)
	}

	return ride, nil
}

// EndRide transitions an ONGOING ride to COMPLETED. Payment and earnings
// settlement are the payment service's responsibility, driven by the
// caller as a follow-up.
func (s *RideService) EndRide(ctx context.Context, rideID, captainID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if captainID == "" {
		return nil, ErrInvalidCaptainID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if ride.Status != domain.RideStatusOngoing {
		return nil, ErrInvalidTransition
	}
	if ride.CaptainID != captainID {
		return nil, ErrNotAuthorized
	}

	if err := s.rideRepo.UpdateStatus(ctx, rideID, domain.RideStatusOngoing, domain.RideStatusCompleted); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}
	ride.Status = domain.RideStatusCompleted

	if err := s.captainRepo.UpdateStatus(ctx, captainID, domain.CaptainStatusOnline); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyRideEnded(ctx, ride)
	}

	return ride, nil
}

// GetRide retrieves a ride by ID.
func (s *RideService) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	return s.rideRepo.GetByID(ctx, rideID)
}

// GetByCaptainAndStatus retrieves a captain's rides in the given status.
func (s *RideService) GetByCaptainAndStatus(ctx context.Context, captainID string, status domain.RideStatus) ([]*domain.Ride, error) {
	if captainID == "" {
		return nil, ErrInvalidCaptainID
	}
	return s.rideRepo.GetByCaptainAndStatus(ctx, captainID, status)
}
