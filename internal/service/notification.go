package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"ridehail/internal/domain"
)

// EventType names a ride lifecycle event consumed by rider and captain
// clients over the surrounding transport.
type EventType string

const (
	EventRideAccepted EventType = "ride-accepted"
	EventRideStarted  EventType = "ride-started"
	EventRideEnded    EventType = "ride-ended"
)

// Event is a domain event emitted by the ride lifecycle. Delivery
// guarantees are the transport's concern, not the core's.
type Event struct {
	Type        EventType
	RecipientID string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService emits lifecycle events.
type NotificationService struct {
	// A real deployment would hold the push transport here (FCM client,
	// websocket hub). The stub logs the event envelope instead.
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyRideAccepted tells the rider their ride was accepted. The ride
// payload deliberately omits the OTP hash; the secret never travels to
// the captain side.
func (s *NotificationService) NotifyRideAccepted(ctx context.Context, ride *domain.Ride) error {
	return s.send(ctx, Event{
		Type:        EventRideAccepted,
		RecipientID: ride.RiderID,
		Data: map[string]interface{}{
			"ride_id":    ride.ID,
			"captain_id": ride.CaptainID,
			"fare":       ride.Fare,
			"pickup":     ride.Pickup,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyRideStarted tells the rider the trip is underway.
func (s *NotificationService) NotifyRideStarted(ctx context.Context, ride *domain.Ride) error {
	return s.send(ctx, Event{
		Type:        EventRideStarted,
		RecipientID: ride.RiderID,
		Data: map[string]interface{}{
			"ride_id":     ride.ID,
			"destination": ride.Destination,
		},
		CreatedAt: time.Now(),
	})
}

// NotifyRideEnded tells the rider the trip is over and payment is due.
func (s *NotificationService) NotifyRideEnded(ctx context.Context, ride *domain.Ride) error {
	return s.send(ctx, Event{
		Type:        EventRideEnded,
		RecipientID: ride.RiderID,
		Data: map[string]interface{}{
			"ride_id": ride.ID,
			"fare":    ride.Fare,
		},
		CreatedAt: time.Now(),
	})
}

// send hands the event to the transport.
func (s *NotificationService) send(ctx context.Context, event Event) error {
	log.Printf("[EVENT] type=%s recipient=%s data=%s",
		event.Type, event.RecipientID, fmt.Sprint(event.Data))
	return nil
}
