package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// PaymentService creates gateway orders for completed rides, verifies the
// gateway's payment proof, and settles captain earnings exactly once.
type PaymentService struct {
	rideRepo    repository.RideRepository
	captainRepo repository.CaptainRepository
	gateway     Gateway
	secret      []byte
	keyID       string
	currency    string
}

// NewPaymentService creates a new PaymentService. secret is the gateway
// key secret shared for signature verification; keyID is the public key
// handed to the client checkout.
func NewPaymentService(
	rideRepo repository.RideRepository,
	captainRepo repository.CaptainRepository,
	gateway Gateway,
	keyID, secret, currency string,
) *PaymentService {
	return &PaymentService{
		rideRepo:    rideRepo,
		captainRepo: captainRepo,
		gateway:     gateway,
		secret:      []byte(secret),
		keyID:       keyID,
		currency:    currency,
	}
}

// PaymentOrder is the payload the client needs to drive the gateway
// checkout. Amount is in minor units (paise).
type PaymentOrder struct {
	OrderRef string
	Amount   int64
	Currency string
	KeyID    string
}

// CreateOrder mints a gateway order for a COMPLETED ride and marks its
// payment PENDING. Repeated calls before verification return the existing
// order instead of minting a duplicate at the gateway.
func (s *PaymentService) CreateOrder(ctx context.Context, rideID string, amount int64) (*PaymentOrder, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	switch ride.PaymentStatus {
	case domain.PaymentStatusCompleted:
		return nil, ErrAlreadySettled
	case domain.PaymentStatusPending:
		if ride.OrderRef != "" {
			return s.existingOrder(ride), nil
		}
	}

	if ride.Status != domain.RideStatusCompleted {
		return nil, ErrRideNotCompleted
	}

	receipt := fmt.Sprintf("ride_%s_%d", rideID, time.Now().Unix())
	orderRef, err := s.gateway.CreateOrder(ctx, amount*100, s.currency, receipt)
	if err != nil {
		if errors.Is(err, ErrGatewayFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailure, err)
	}

	if err := s.rideRepo.MarkOrderPending(ctx, rideID, orderRef); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			// A concurrent caller got there first; fall back to its order.
			current, err := s.rideRepo.GetByID(ctx, rideID)
			if err != nil {
				return nil, err
			}
			if current.PaymentStatus == domain.PaymentStatusCompleted {
				return nil, ErrAlreadySettled
			}
			if current.OrderRef != "" {
				return s.existingOrder(current), nil
			}
			return nil, ErrRideNotCompleted
		}
		return nil, err
	}

	return &PaymentOrder{
		OrderRef: orderRef,
		Amount:   amount * 100,
		Currency: s.currency,
		KeyID:    s.keyID,
	}, nil
}

func (s *PaymentService) existingOrder(ride *domain.Ride) *PaymentOrder {
	return &PaymentOrder{
		OrderRef: ride.OrderRef,
		Amount:   ride.Fare * 100,
		Currency: s.currency,
		KeyID:    s.keyID,
	}
}

// VerifyRequest contains the proof the gateway delivered out-of-band.
type VerifyRequest struct {
	RideID    string
	PaymentID string
	OrderID   string
	Signature string
}

// Verify checks the gateway's HMAC proof for the ride's pending order. On
// success it marks the payment COMPLETED and credits the bound captain's
// earnings by the ride fare, exactly once: the conditional payment update
// gates the earnings increment, so re-invocations and concurrent verifies
// settle at most one credit.
func (s *PaymentService) Verify(ctx context.Context, req VerifyRequest) (*domain.Ride, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if req.PaymentID == "" || req.OrderID == "" || req.Signature == "" {
		return nil, ErrInvalidSignature
	}

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	if ride.PaymentStatus == domain.PaymentStatusCompleted {
		return nil, ErrAlreadySettled
	}
	if ride.OrderRef == "" || ride.OrderRef != req.OrderID {
		return nil, ErrInvalidSignature
	}

	if !s.signatureValid(req.OrderID, req.PaymentID, req.Signature) {
		return nil, ErrInvalidSignature
	}

	paidAt := time.Now()
	if err := s.rideRepo.CompletePayment(ctx, req.RideID, req.PaymentID, paidAt); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, ErrAlreadySettled
		}
		return nil, err
	}

	if ride.CaptainID != "" {
		if err := s.captainRepo.AddEarnings(ctx, ride.CaptainID, ride.Fare); err != nil {
			return nil, err
		}
	}

	ride.PaymentRef = req.PaymentID
	ride.PaymentStatus = domain.PaymentStatusCompleted
	ride.PaymentDate = paidAt

	return ride, nil
}

// signatureValid recomputes the HMAC-SHA256 over "orderID|paymentID" and
// compares it to the supplied signature in constant time.
func (s *PaymentService) signatureValid(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
