package service

import "errors"

var (
	// ErrInvalidQuote is returned when a distance/duration quote is missing
	// or non-positive.
	ErrInvalidQuote = errors.New("invalid distance or duration quote")

	// ErrRouteUnavailable is returned when the route collaborator cannot
	// answer for the given pickup and destination.
	ErrRouteUnavailable = errors.New("route unavailable")

	// ErrLocationNotFound is returned when one or both addresses cannot be
	// resolved by the route collaborator.
	ErrLocationNotFound = errors.New("location not found")

	// ErrInvalidTransition is returned when a lifecycle operation is
	// attempted from the wrong ride state.
	ErrInvalidTransition = errors.New("invalid ride state transition")

	// ErrNotAuthorized is returned when a captain acts on a ride bound to
	// a different captain.
	ErrNotAuthorized = errors.New("captain not bound to this ride")

	// ErrAlreadyAccepted is returned when a captain tries to accept a ride
	// another captain already won.
	ErrAlreadyAccepted = errors.New("ride already accepted")

	// ErrInvalidOtp is returned when the supplied OTP does not match the
	// ride's stored secret.
	ErrInvalidOtp = errors.New("invalid otp")

	// ErrInvalidSignature is returned when a payment signature fails
	// verification.
	ErrInvalidSignature = errors.New("invalid payment signature")

	// ErrAlreadySettled is returned when verification is re-invoked after
	// the ride's payment has already been settled.
	ErrAlreadySettled = errors.New("payment already settled")

	// ErrOrderPending is returned when an order is requested for a ride
	// that already has a pending gateway order.
	ErrOrderPending = errors.New("payment order already pending")

	// ErrGatewayFailure is returned when the payment gateway collaborator
	// fails unexpectedly.
	ErrGatewayFailure = errors.New("payment gateway failure")

	// ErrRideNotCompleted is returned when payment is initiated for a ride
	// that has not completed.
	ErrRideNotCompleted = errors.New("ride not completed")

	// ErrInvalidRiderID is returned when rider ID is empty.
	ErrInvalidRiderID = errors.New("invalid rider id")

	// ErrInvalidRideID is returned when ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidCaptainID is returned when captain ID is empty.
	ErrInvalidCaptainID = errors.New("invalid captain id")

	// ErrInvalidAddress is returned when pickup or destination is empty.
	ErrInvalidAddress = errors.New("pickup and destination are required")

	// ErrInvalidVehicleClass is returned when the vehicle class is unknown.
	ErrInvalidVehicleClass = errors.New("invalid vehicle class")

	// ErrInvalidLocation is returned when location coordinates are invalid.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidAmount is returned when a payment amount is not positive
	// or does not match the ride's fare.
	ErrInvalidAmount = errors.New("invalid payment amount")
)
