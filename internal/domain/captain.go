package domain

// CaptainStatus represents the availability of a captain.
type CaptainStatus string

const (
	CaptainStatusOnline  CaptainStatus = "ONLINE"
	CaptainStatusOffline CaptainStatus = "OFFLINE"
	CaptainStatusOnRide  CaptainStatus = "ON_RIDE"
)

// Captain represents a mobile worker fulfilling rides.
// Earnings is a monotonically increasing ledger, credited exactly once
// per settled ride via an atomic increment in the storage layer.
type Captain struct {
	ID           string
	Name         string
	Phone        string
	VehicleClass VehicleClass
	VehiclePlate string
	Status       CaptainStatus
	Earnings     int64
}
