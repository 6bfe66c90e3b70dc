package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
	"ridehail/internal/service"
)

// CaptainHandler handles HTTP requests for captains.
type CaptainHandler struct {
	captainService  *service.CaptainService
	dispatchService *service.DispatchService
	rideService     *service.RideService
	captainRepo     repository.CaptainRepository
}

// NewCaptainHandler creates a new CaptainHandler.
func NewCaptainHandler(
	captainService *service.CaptainService,
	dispatchService *service.DispatchService,
	rideService *service.RideService,
	captainRepo repository.CaptainRepository,
) *CaptainHandler {
	return &CaptainHandler{
		captainService:  captainService,
		dispatchService: dispatchService,
		rideService:     rideService,
		captainRepo:     captainRepo,
	}
}

// RegisterCaptainRequest is the HTTP request body for registering a captain.
type RegisterCaptainRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	VehicleClass string `json:"vehicle_class"`
	VehiclePlate string `json:"vehicle_plate"`
}

// CaptainResponse is the HTTP representation of a captain.
type CaptainResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	VehicleClass string `json:"vehicle_class"`
	VehiclePlate string `json:"vehicle_plate,omitempty"`
	Status       string `json:"status"`
	Earnings     int64  `json:"earnings"`
}

func toCaptainResponse(captain *domain.Captain) CaptainResponse {
	return CaptainResponse{
		ID:           captain.ID,
		Name:         captain.Name,
		Phone:        captain.Phone,
		VehicleClass: string(captain.VehicleClass),
		VehiclePlate: captain.VehiclePlate,
		Status:       string(captain.Status),
		Earnings:     captain.Earnings,
	}
}

// Register handles POST /v1/captains/register
func (h *CaptainHandler) Register(c *gin.Context) {
	var req RegisterCaptainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" || req.Phone == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name and phone are required"})
		return
	}
	if !domain.ValidVehicleClass(domain.VehicleClass(req.VehicleClass)) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: service.ErrInvalidVehicleClass.Error()})
		return
	}

	if _, err := h.captainRepo.GetByPhone(c.Request.Context(), req.Phone); err == nil {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "phone already registered"})
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		respondError(c, err)
		return
	}

	captain := &domain.Captain{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Phone:        req.Phone,
		VehicleClass: domain.VehicleClass(req.VehicleClass),
		VehiclePlate: req.VehiclePlate,
		Status:       domain.CaptainStatusOffline,
	}

	if err := h.captainRepo.Create(c.Request.Context(), captain); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toCaptainResponse(captain))
}

// GetAll handles GET /v1/captains
func (h *CaptainHandler) GetAll(c *gin.Context) {
	captains, err := h.captainRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]CaptainResponse, 0, len(captains))
	for _, captain := range captains {
		resp = append(resp, toCaptainResponse(captain))
	}
	respondJSON(c, http.StatusOK, resp)
}

// UpdateLocationRequest is the HTTP request body for a location update.
type UpdateLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UpdateLocation handles POST /v1/captains/:id/location
func (h *CaptainHandler) UpdateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.captainService.UpdateLocation(c.Request.Context(), service.UpdateLocationRequest{
		CaptainID: c.Param("id"),
		Lat:       req.Lat,
		Lng:       req.Lng,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": "ok"})
}

// SetOffline handles POST /v1/captains/:id/offline
func (h *CaptainHandler) SetOffline(c *gin.Context) {
	if err := h.captainService.SetOffline(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"status": "ok"})
}

// Nearby handles GET /v1/captains/nearby?lat=..&lng=..&radius_km=..
func (h *CaptainHandler) Nearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid lat"})
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid lng"})
		return
	}
	radiusKm, _ := strconv.ParseFloat(c.DefaultQuery("radius_km", "0"), 64)

	captains := h.dispatchService.FindCaptainsNear(c.Request.Context(), lat, lng, radiusKm)

	resp := make([]CaptainResponse, 0, len(captains))
	for _, captain := range captains {
		resp = append(resp, toCaptainResponse(captain))
	}
	respondJSON(c, http.StatusOK, resp)
}

// Rides handles GET /v1/captains/:id/rides?status=COMPLETED
func (h *CaptainHandler) Rides(c *gin.Context) {
	status := domain.RideStatus(c.DefaultQuery("status", string(domain.RideStatusCompleted)))

	rides, err := h.rideService.GetByCaptainAndStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]RideResponse, 0, len(rides))
	for _, ride := range rides {
		resp = append(resp, toRideResponse(ride))
	}
	respondJSON(c, http.StatusOK, resp)
}
