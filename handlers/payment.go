package handlers

import (
	"net/http"

	"salonbook/models"
	"salonbook/services/booking"

	"github.com/gin-gonic/gin"
)

// PaymentHandler serves the pre-booking payment step.
type PaymentHandler struct {
	Service booking.BookingService
}

func NewPaymentHandler(svc booking.BookingService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// Quote returns the server-side price for the chosen services.
func (h *PaymentHandler) Quote(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	quote, err := h.Service.QuoteBooking(c.Request.Context(), req.SalonID, req.Services)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// CreateIntent opens a payment intent for the quoted total.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req models.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	intent, err := h.Service.CreatePaymentIntent(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, intent)
}
