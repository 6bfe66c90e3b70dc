package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ridehail/internal/domain"
	"ridehail/internal/repository"
)

// RiderHandler handles HTTP requests for riders.
type RiderHandler struct {
	riderRepo repository.RiderRepository
}

// NewRiderHandler creates a new RiderHandler.
func NewRiderHandler(riderRepo repository.RiderRepository) *RiderHandler {
	return &RiderHandler{riderRepo: riderRepo}
}

// RegisterRiderRequest is the HTTP request body for registering a rider.
type RegisterRiderRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// RiderResponse is the HTTP representation of a rider.
type RiderResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"created_at"`
}

// Register handles POST /v1/riders/register
func (h *RiderHandler) Register(c *gin.Context) {
	var req RegisterRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" || req.Phone == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name and phone are required"})
		return
	}

	rider := &domain.Rider{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Phone:     req.Phone,
		CreatedAt: time.Now(),
	}

	if err := h.riderRepo.Create(c.Request.Context(), rider); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, RiderResponse{
		ID:        rider.ID,
		Name:      rider.Name,
		Phone:     rider.Phone,
		CreatedAt: rider.CreatedAt.Format(time.RFC3339),
	})
}

// Get handles GET /v1/riders/:id
func (h *RiderHandler) Get(c *gin.Context) {
	rider, err := h.riderRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, RiderResponse{
		ID:        rider.ID,
		Name:      rider.Name,
		Phone:     rider.Phone,
		CreatedAt: rider.CreatedAt.Format(time.RFC3339),
	})
}

// GetAll handles GET /v1/riders
func (h *RiderHandler) GetAll(c *gin.Context) {
	riders, err := h.riderRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]RiderResponse, 0, len(riders))
	for _, rider := range riders {
		resp = append(resp, RiderResponse{
			ID:        rider.ID,
			Name:      rider.Name,
			Phone:     rider.Phone,
			CreatedAt: rider.CreatedAt.Format(time.RFC3339),
		})
	}
	respondJSON(c, http.StatusOK, resp)
}
