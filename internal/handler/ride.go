package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ridehail/internal/domain"
	"ridehail/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
	fareService *service.FareService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService, fareService *service.FareService) *RideHandler {
	return &RideHandler{
		rideService: rideService,
		fareService: fareService,
	}
}

// RideResponse is the HTTP representation of a ride. The OTP hash never
// leaves the service; the plaintext code appears only in the creation
// response for the rider.
type RideResponse struct {
	ID            string  `json:"id"`
	RiderID       string  `json:"rider_id"`
	CaptainID     string  `json:"captain_id,omitempty"`
	Pickup        string  `json:"pickup"`
	Destination   string  `json:"destination"`
	VehicleClass  string  `json:"vehicle_class"`
	Fare          int64   `json:"fare"`
	DistanceKm    float64 `json:"distance_km"`
	DurationMin   float64 `json:"duration_min"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	OrderRef      string  `json:"order_ref,omitempty"`
	PaymentRef    string  `json:"payment_ref,omitempty"`
	PaymentDate   string  `json:"payment_date,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func toRideResponse(ride *domain.Ride) RideResponse {
	resp := RideResponse{
		ID:            ride.ID,
		RiderID:       ride.RiderID,
		CaptainID:     ride.CaptainID,
		Pickup:        ride.Pickup,
		Destination:   ride.Destination,
		VehicleClass:  string(ride.VehicleClass),
		Fare:          ride.Fare,
		DistanceKm:    ride.DistanceKm,
		DurationMin:   ride.DurationMin,
		Status:        string(ride.Status),
		PaymentStatus: string(ride.PaymentStatus),
		OrderRef:      ride.OrderRef,
		PaymentRef:    ride.PaymentRef,
		CreatedAt:     ride.CreatedAt.Format(time.RFC3339),
	}
	if !ride.PaymentDate.IsZero() {
		resp.PaymentDate = ride.PaymentDate.Format(time.RFC3339)
	}
	return resp
}

// FareQuoteResponse is the HTTP response for a fare quote.
type FareQuoteResponse struct {
	Fares       map[string]int64 `json:"fares"`
	DistanceKm  float64          `json:"distance_km"`
	DurationMin float64          `json:"duration_min"`
}

// QuoteFare handles GET /v1/rides/fare
func (h *RideHandler) QuoteFare(c *gin.Context) {
	pickup := c.Query("pickup")
	destination := c.Query("destination")

	quote, err := h.fareService.Estimate(c.Request.Context(), pickup, destination)
	if err != nil {
		respondError(c, err)
		return
	}

	fares := make(map[string]int64, len(quote.Fares))
	for class, fare := range quote.Fares {
		fares[string(class)] = fare
	}

	respondJSON(c, http.StatusOK, FareQuoteResponse{
		Fares:       fares,
		DistanceKm:  quote.DistanceKm,
		DurationMin: quote.DurationMin,
	})
}

// CreateRideRequest is the HTTP request body for creating a ride.
type CreateRideRequest struct {
	RiderID      string `json:"rider_id"`
	Pickup       string `json:"pickup"`
	Destination  string `json:"destination"`
	VehicleClass string `json:"vehicle_class"`
}

// CreateRideResponse is the HTTP response for creating a ride. OTP is
// shown to the rider exactly once, here.
type CreateRideResponse struct {
	Ride RideResponse `json:"ride"`
	OTP  string       `json:"otp"`
}

// CreateRide handles POST /v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.rideService.CreateRide(c.Request.Context(), service.CreateRideRequest{
		RiderID:      req.RiderID,
		Pickup:       req.Pickup,
		Destination:  req.Destination,
		VehicleClass: domain.VehicleClass(req.VehicleClass),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, CreateRideResponse{
		Ride: toRideResponse(result.Ride),
		OTP:  result.OTP,
	})
}

// AcceptRideRequest is the HTTP request body for accepting a ride.
type AcceptRideRequest struct {
	CaptainID string `json:"captain_id"`
}

// AcceptRide handles POST /v1/rides/:id/accept
func (h *RideHandler) AcceptRide(c *gin.Context) {
	var req AcceptRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.rideService.AcceptRide(c.Request.Context(), c.Param("id"), req.CaptainID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// StartRideRequest is the HTTP request body for starting a ride.
type StartRideRequest struct {
	CaptainID string `json:"captain_id"`
	OTP       string `json:"otp"`
}

// StartRide handles POST /v1/rides/:id/start
func (h *RideHandler) StartRide(c *gin.Context) {
	var req StartRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.rideService.StartRide(c.Request.Context(), c.Param("id"), req.OTP, req.CaptainID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// EndRideRequest is the HTTP request body for ending a ride.
type EndRideRequest struct {
	CaptainID string `json:"captain_id"`
}

// EndRide handles POST /v1/rides/:id/end
func (h *RideHandler) EndRide(c *gin.Context) {
	var req EndRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.rideService.EndRide(c.Request.Context(), c.Param("id"), req.CaptainID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}
