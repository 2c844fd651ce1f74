package handlers

import (
	"net/http"

	"salonbook/services/booking"
	"salonbook/services/salon"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Bookings booking.BookingService
	Salons   salon.SalonService
}

func NewAdminHandler(bs booking.BookingService, ss salon.SalonService) *AdminHandler {
	return &AdminHandler{Bookings: bs, Salons: ss}
}

// UpdateBookingHandler patches allow-listed booking fields.
func (ah *AdminHandler) UpdateBookingHandler(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		badRequest(c, err)
		return
	}
	b, err := ah.Bookings.UpdateBookingDetails(c.Request.Context(), actor, c.Param("id"), fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// SoftDeleteBookingHandler hides a booking from customers and salon owners.
func (ah *AdminHandler) SoftDeleteBookingHandler(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	b, err := ah.Bookings.SoftDeleteBooking(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (ah *AdminHandler) PurgeBookingHandler(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	if err := ah.Bookings.PurgeBooking(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetSalonApprovalHandler toggles whether a salon is visible and bookable.
func (ah *AdminHandler) SetSalonApprovalHandler(c *gin.Context) {
	var body approvalBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	s, err := ah.Salons.SetApproval(c.Request.Context(), c.Param("id"), *body.Approved)
	if err != nil {
		respondError(c, err)
		return
	}
	zap.L().Info("salon approval changed", zap.String("salonId", s.ID), zap.Bool("approved", s.Approved))
	c.JSON(http.StatusOK, s)
}
