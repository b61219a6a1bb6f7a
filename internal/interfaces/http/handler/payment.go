package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/society/backend/internal/application/billing"
)

// PaymentHandler serves a resident's own dues and payment history
type PaymentHandler struct {
	BaseHandler
	paymentService *billing.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *billing.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.GET("/dues", h.GetDues)
		payments.GET("/history", h.GetHistory)
	}
}

// GetDues returns the caller's outstanding balance
func (h *PaymentHandler) GetDues(c *gin.Context) {
	residentID, err := h.getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	dues, err := h.paymentService.GetDues(c.Request.Context(), residentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dues)
}

// GetHistory returns the caller's full payment record
func (h *PaymentHandler) GetHistory(c *gin.Context) {
	residentID, err := h.getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	history, err := h.paymentService.GetPaymentHistory(c.Request.Context(), residentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}
