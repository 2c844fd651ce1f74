package handlers

import (
	"net/http"
	"strconv"

	"salonbook/middleware"
	"salonbook/models"
	"salonbook/services/booking"
	"salonbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func actorOrAbort(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "Insufficient authorization", "")
	}
	return actor, ok
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var body createBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	req, err := body.toRequest()
	if err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("booking created", zap.String("bookingId", b.ID))
	c.JSON(http.StatusCreated, b)
}

// ListBookings handles GET /api/bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var filter models.BookingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}
	var page models.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		badRequest(c, err)
		return
	}

	list, err := h.Service.ListBookings(c.Request.Context(), actor, filter, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetBooking handles GET /api/bookings/:id. expand=true adds the customer
// and salon summaries.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	expand, _ := strconv.ParseBool(c.Query("expand"))

	details, err := h.Service.GetBooking(c.Request.Context(), actor, c.Param("id"), expand)
	if err != nil {
		respondError(c, err)
		return
	}
	if !expand {
		c.JSON(http.StatusOK, details.Booking)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	b, err := h.Service.CancelBooking(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	b, err := h.Service.CompleteBooking(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
