package domain

import "time"

// RideStatus represents the current status of a ride. Transitions are
// strictly REQUESTED -> ACCEPTED -> ONGOING -> COMPLETED; no stage is
// skipped and no transition reverses.
type RideStatus string

const (
	RideStatusRequested RideStatus = "REQUESTED"
	RideStatusAccepted  RideStatus = "ACCEPTED"
	RideStatusOngoing   RideStatus = "ONGOING"
	RideStatusCompleted RideStatus = "COMPLETED"
)

// PaymentStatus represents the settlement state of a ride's payment.
type PaymentStatus string

const (
	PaymentStatusNone      PaymentStatus = "NONE"
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
)

// VehicleClass represents the class of vehicle a ride is quoted for.
type VehicleClass string

const (
	VehicleClassAuto VehicleClass = "auto"
	VehicleClassCar  VehicleClass = "car"
	VehicleClassMoto VehicleClass = "moto"
)

// ValidVehicleClass reports whether class is a known vehicle class.
func ValidVehicleClass(class VehicleClass) bool {
	switch class {
	case VehicleClassAuto, VehicleClassCar, VehicleClassMoto:
		return true
	}
	return false
}

// Ride represents a ride from request through settlement.
// Fare, distance, duration and the OTP hash are fixed at creation;
// CaptainID is bound exactly once, at acceptance.
type Ride struct {
	ID           string
	RiderID      string
	CaptainID    string // empty until accepted, then immutable
	Pickup       string // opaque address; geocoding is a collaborator concern
	Destination  string
	VehicleClass VehicleClass
	Fare         int64 // contract price, fixed before dispatch
	DistanceKm   float64
	DurationMin  float64
	OTPHash      string // salted hash; plaintext is revealed to the rider once

	Status        RideStatus
	PaymentStatus PaymentStatus

	OrderRef    string // gateway order reference, set when payment is initiated
	PaymentRef  string // gateway payment reference, set on verification
	PaymentDate time.Time

	CreatedAt time.Time
}
