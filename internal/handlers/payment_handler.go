package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scholarsource/scholarsource-backend/internal/models"
	"github.com/scholarsource/scholarsource-backend/internal/services"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateCheckoutSession handles POST /payments/checkout
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.paymentService.InitiateCheckout(c.Request.Context(), principal, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyPayment handles POST /payments/verify
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req models.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.paymentService.VerifyPayment(c.Request.Context(), req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RecordFailure handles POST /payments/failure. Unauthenticated: the
// frontend fires it from the checkout cancel page, where no session exists.
func (h *PaymentHandler) RecordFailure(c *gin.Context) {
	var req models.PaymentFailureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := h.paymentService.RecordFailure(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, application)
}
