package handlers

import (
	"salonbook/models"

	"github.com/jinzhu/copier"
)

// createBookingBody is decoded leniently; field checks and their order
// belong to the booking service.
type createBookingBody struct {
	CustomerName  string        `json:"customerName"`
	PhoneNumber   string        `json:"phoneNumber"`
	Email         string        `json:"email"`
	Services      []serviceBody `json:"services"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	UserID        string        `json:"userId"`
	SalonID       string        `json:"salonId"`
	OTP           string        `json:"otp"`
	TransactionID string        `json:"transactionId"`
}

type serviceBody struct {
	ServiceName  string   `json:"serviceName"`
	ServicePrice *float64 `json:"servicePrice"`
}

func (b createBookingBody) toRequest() (models.CreateBookingRequest, error) {
	var req models.CreateBookingRequest
	if err := copier.Copy(&req, &b); err != nil {
		return req, err
	}
	// a missing list and an empty one fail validation differently
	if b.Services == nil {
		req.Services = nil
	}
	return req, nil
}

type catalogueBody struct {
	Services []catalogueEntryBody `json:"services" binding:"required,dive"`
}

type catalogueEntryBody struct {
	Name       string   `json:"name" binding:"required"`
	Price      float64  `json:"price" binding:"gte=0"`
	OfferPrice *float64 `json:"offerPrice" binding:"omitempty,gte=0"`
}

func (b catalogueBody) toServices() ([]models.SalonService, error) {
	services := make([]models.SalonService, 0, len(b.Services))
	if err := copier.Copy(&services, &b.Services); err != nil {
		return nil, err
	}
	return services, nil
}

type approvalBody struct {
	Approved *bool `json:"approved" binding:"required"`
}
