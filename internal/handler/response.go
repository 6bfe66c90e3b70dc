package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridehail/internal/repository"
	"ridehail/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
// Validation-shaped errors get 400 so clients retry with fixed input;
// domain-state errors get 409 so clients re-read and contest.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidRiderID),
		errors.Is(err, service.ErrInvalidRideID),
		errors.Is(err, service.ErrInvalidCaptainID),
		errors.Is(err, service.ErrInvalidAddress),
		errors.Is(err, service.ErrInvalidVehicleClass),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidQuote),
		errors.Is(err, service.ErrLocationNotFound):
		return http.StatusBadRequest

	// Credential-shaped rejections
	case errors.Is(err, service.ErrInvalidOtp),
		errors.Is(err, service.ErrInvalidSignature):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotAuthorized):
		return http.StatusForbidden

	// Domain-state conflicts
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAlreadyAccepted),
		errors.Is(err, service.ErrAlreadySettled),
		errors.Is(err, service.ErrOrderPending),
		errors.Is(err, service.ErrRideNotCompleted):
		return http.StatusConflict

	// Collaborator failures
	case errors.Is(err, service.ErrRouteUnavailable),
		errors.Is(err, service.ErrGatewayFailure):
		return http.StatusBadGateway

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
