package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridehail/internal/service"
)

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateOrderRequest is the HTTP request body for creating a payment order.
type CreateOrderRequest struct {
	RideID string `json:"ride_id"`
	Amount int64  `json:"amount"`
}

// CreateOrderResponse is the HTTP response for creating a payment order.
// Amount is in minor currency units for the gateway checkout.
type CreateOrderResponse struct {
	OrderRef string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Key      string `json:"key"`
}

// CreateOrder handles POST /v1/payments/order
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.paymentService.CreateOrder(c.Request.Context(), req.RideID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, CreateOrderResponse{
		OrderRef: order.OrderRef,
		Amount:   order.Amount,
		Currency: order.Currency,
		Key:      order.KeyID,
	})
}

// VerifyPaymentRequest is the HTTP request body for verifying a payment.
// The payment id, order id and signature are delivered by the gateway
// to the client after checkout.
type VerifyPaymentRequest struct {
	RideID    string `json:"ride_id"`
	PaymentID string `json:"razorpay_payment_id"`
	OrderID   string `json:"razorpay_order_id"`
	Signature string `json:"razorpay_signature"`
}

// VerifyPaymentResponse is the HTTP response for a verified payment.
type VerifyPaymentResponse struct {
	Success       bool   `json:"success"`
	RideID        string `json:"ride_id"`
	PaymentStatus string `json:"payment_status"`
}

// VerifyPayment handles POST /v1/payments/verify
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.paymentService.Verify(c.Request.Context(), service.VerifyRequest{
		RideID:    req.RideID,
		PaymentID: req.PaymentID,
		OrderID:   req.OrderID,
		Signature: req.Signature,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, VerifyPaymentResponse{
		Success:       true,
		RideID:        ride.ID,
		PaymentStatus: string(ride.PaymentStatus),
	})
}
