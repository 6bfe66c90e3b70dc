package tests

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	"ridehail/internal/domain"
	"ridehail/internal/service"
)

const testSecret = "test_secret"

func newPaymentService(rideRepo *MockRideRepository, captainRepo *MockCaptainRepository, gateway *MockGateway) *service.PaymentService {
	return service.NewPaymentService(rideRepo, captainRepo, gateway, "rzp_test_key", testSecret, "INR")
}

func sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func completedRide(id, captainID string, fare int64) *domain.Ride {
	return &domain.Ride{
		ID:            id,
		RiderID:       "rider-1",
		CaptainID:     captainID,
		Status:        domain.RideStatusCompleted,
		PaymentStatus: domain.PaymentStatusNone,
		Fare:          fare,
	}
}

func TestCreateOrder(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(completedRide("ride-1", "captain-1", 155))
	gateway := &MockGateway{OrderRef: "order_abc"}
	svc := newPaymentService(rideRepo, NewMockCaptainRepository(), gateway)

	order, err := svc.CreateOrder(context.Background(), "ride-1", 155)
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	if order.OrderRef != "order_abc" {
		t.Errorf("order ref = %q, want order_abc", order.OrderRef)
	}
	if order.Amount != 15500 {
		t.Errorf("amount = %d paise, want 15500", order.Amount)
	}
	if order.Currency != "INR" {
		t.Errorf("currency = %q, want INR", order.Currency)
	}

	ride := rideRepo.GetRide("ride-1")
	if ride.PaymentStatus != domain.PaymentStatusPending {
		t.Errorf("payment status = %s, want PENDING", ride.PaymentStatus)
	}
	if ride.OrderRef != "order_abc" {
		t.Errorf("stored order ref = %q, want order_abc", ride.OrderRef)
	}
}

func TestCreateOrderRequiresCompletedRide(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(&domain.Ride{
		ID:            "ride-1",
		Status:        domain.RideStatusOngoing,
		PaymentStatus: domain.PaymentStatusNone,
		Fare:          100,
	})
	gateway := &MockGateway{}
	svc := newPaymentService(rideRepo, NewMockCaptainRepository(), gateway)

	_, err := svc.CreateOrder(context.Background(), "ride-1", 100)
	if !errors.Is(err, service.ErrRideNotCompleted) {
		t.Errorf("CreateOrder() error = %v, want ErrRideNotCompleted", err)
	}
	if gateway.CreateOrderCallCount != 0 {
		t.Errorf("gateway called %d times for an unfinished ride", gateway.CreateOrderCallCount)
	}
}

func TestCreateOrderIdempotent(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(completedRide("ride-1", "captain-1", 155))
	gateway := &MockGateway{OrderRef: "order_abc"}
	svc := newPaymentService(rideRepo, NewMockCaptainRepository(), gateway)
	ctx := context.Background()

	first, err := svc.CreateOrder(ctx, "ride-1", 155)
	if err != nil {
		t.Fatalf("first CreateOrder() error = %v", err)
	}
	second, err := svc.CreateOrder(ctx, "ride-1", 155)
	if err != nil {
		t.Fatalf("second CreateOrder() error = %v", err)
	}

	if second.OrderRef != first.OrderRef {
		t.Errorf("second order ref = %q, want %q", second.OrderRef, first.OrderRef)
	}
	if gateway.CreateOrderCallCount != 1 {
		t.Errorf("gateway called %d times, want 1", gateway.CreateOrderCallCount)
	}
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(completedRide("ride-1", "captain-1", 155))
	gateway := &MockGateway{Err: errors.New("connection refused")}
	svc := newPaymentService(rideRepo, NewMockCaptainRepository(), gateway)

	_, err := svc.CreateOrder(context.Background(), "ride-1", 155)
	if !errors.Is(err, service.ErrGatewayFailure) {
		t.Errorf("CreateOrder() error = %v, want ErrGatewayFailure", err)
	}

	// The ride must stay ready for a retry.
	ride := rideRepo.GetRide("ride-1")
	if ride.PaymentStatus != domain.PaymentStatusNone {
		t.Errorf("payment status after gateway failure = %s, want NONE", ride.PaymentStatus)
	}
}

func TestVerifyCreditsCaptainOnce(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(completedRide("ride-1", "captain-1", 155))
	captainRepo := NewMockCaptainRepository()
	captainRepo.AddCaptain(onlineCaptain("captain-1"))
	gateway := &MockGateway{OrderRef: "order_abc"}
	svc := newPaymentService(rideRepo, captainRepo, gateway)
	ctx := context.Background()

	if _, err := svc.CreateOrder(ctx, "ride-1", 155); err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	ride, err := svc.Verify(ctx, service.VerifyRequest{
		RideID:    "ride-1",
		PaymentID: "pay_123",
		OrderID:   "order_abc",
		Signature: sign("order_abc", "pay_123"),
	})
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if ride.PaymentStatus != domain.PaymentStatusCompleted {
		t.Errorf("payment status = %s, want COMPLETED", ride.PaymentStatus)
	}
	if ride.PaymentRef != "pay_123" {
		t.Errorf("payment ref = %q, want pay_123", ride.PaymentRef)
	}
	if got := captainRepo.Earnings("captain-1"); got != 155 {
		t.Errorf("captain earnings = %d, want 155", got)
	}

	// Replaying the same proof must not settle or credit again.
	_, err = svc.Verify(ctx, service.VerifyRequest{
		RideID:    "ride-1",
		PaymentID: "pay_123",
		OrderID:   "order_abc",
		Signature: sign("order_abc", "pay_123"),
	})
	if !errors.Is(err, service.ErrAlreadySettled) {
		t.Errorf("replayed Verify() error = %v, want ErrAlreadySettled", err)
	}
	if got := captainRepo.Earnings("captain-1"); got != 155 {
		t.Errorf("captain earnings after replay = %d, want 155", got)
	}
	if captainRepo.AddEarningsCallCount != 1 {
		t.Errorf("AddEarnings called %d times, want 1", captainRepo.AddEarningsCallCount)
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(completedRide("ride-1", "captain-1", 155))
	captainRepo := NewMockCaptainRepository()
	captainRepo.AddCaptain(onlineCaptain("captain-1"))
	gateway := &MockGateway{OrderRef: "order_abc"}
	svc := newPaymentService(rideRepo, captainRepo, gateway)
	ctx := context.Background()

	if _, err := svc.CreateOrder(ctx, "ride-1", 155); err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	tests := []struct {
		name string
		req  service.VerifyRequest
	}{
		{
			name: "forged signature",
			req: service.VerifyRequest{
				RideID: "ride-1", PaymentID: "pay_123", OrderID: "order_abc",
				Signature: "deadbeef",
			},
		},
		{
			name: "signature over a different payment",
			req: service.VerifyRequest{
				RideID: "ride-1", PaymentID: "pay_123", OrderID: "order_abc",
				Signature: sign("order_abc", "pay_999"),
			},
		},
		{
			name: "order id does not match the ride's order",
			req: service.VerifyRequest{
				RideID: "ride-1", PaymentID: "pay_123", OrderID: "order_other",
				Signature: sign("order_other", "pay_123"),
			},
		},
		{
			name: "missing fields",
			req:  service.VerifyRequest{RideID: "ride-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Verify(ctx, tt.req); !errors.Is(err, service.ErrInvalidSignature) {
				t.Errorf("Verify() error = %v, want ErrInvalidSignature", err)
			}
		})
	}

	ride := rideRepo.GetRide("ride-1")
	if ride.PaymentStatus != domain.PaymentStatusPending {
		t.Errorf("payment status = %s, want PENDING after rejected proofs", ride.PaymentStatus)
	}
	if got := captainRepo.Earnings("captain-1"); got != 0 {
		t.Errorf("captain earnings = %d, want 0", got)
	}
}

func TestVerifyWithoutOrder(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(completedRide("ride-1", "captain-1", 155))
	svc := newPaymentService(rideRepo, NewMockCaptainRepository(), &MockGateway{})

	_, err := svc.Verify(context.Background(), service.VerifyRequest{
		RideID:    "ride-1",
		PaymentID: "pay_123",
		OrderID:   "order_abc",
		Signature: sign("order_abc", "pay_123"),
	})
	if !errors.Is(err, service.ErrInvalidSignature) {
		t.Errorf("Verify() before CreateOrder: error = %v, want ErrInvalidSignature", err)
	}
}

func TestConcurrentVerifySettlesOnce(t *testing.T) {
	const attempts = 10

	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(completedRide("ride-1", "captain-1", 200))
	captainRepo := NewMockCaptainRepository()
	captainRepo.AddCaptain(onlineCaptain("captain-1"))
	gateway := &MockGateway{OrderRef: "order_abc"}
	svc := newPaymentService(rideRepo, captainRepo, gateway)
	ctx := context.Background()

	if _, err := svc.CreateOrder(ctx, "ride-1", 200); err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}

	req := service.VerifyRequest{
		RideID:    "ride-1",
		PaymentID: "pay_123",
		OrderID:   "order_abc",
		Signature: sign("order_abc", "pay_123"),
	}

	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Verify(ctx, req)
		}(i)
	}
	wg.Wait()

	var settled int
	for i, err := range errs {
		switch {
		case err == nil:
			settled++
		case errors.Is(err, service.ErrAlreadySettled):
		default:
			t.Errorf("attempt %d: unexpected error %v", i, err)
		}
	}

	if settled != 1 {
		t.Errorf("settled %d times, want exactly 1", settled)
	}
	if got := captainRepo.Earnings("captain-1"); got != 200 {
		t.Errorf("captain earnings = %d, want 200", got)
	}
}
