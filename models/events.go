package models

import "time"

type BookingEventType string

const (
	EventBookingCreated   BookingEventType = "booking.created"
	EventBookingCanceled  BookingEventType = "booking.canceled"
	EventBookingCompleted BookingEventType = "booking.completed"
	EventBookingDeleted   BookingEventType = "booking.deleted"
)

// BookingEvent is published for the mailer and other downstream consumers.
type BookingEvent struct {
	Type         BookingEventType `json:"type"`
	BookingID    string           `json:"bookingId"`
	UserID       string           `json:"userId"`
	SalonID      string           `json:"salonId"`
	CustomerName string           `json:"customerName"`
	Email        string           `json:"email"`
	Date         string           `json:"date"`
	Time         string           `json:"time"`
	TotalPrice   float64          `json:"totalPrice"`
	ActorID      string           `json:"actorId,omitempty"`
	OccurredAt   time.Time        `json:"occurredAt"`
}

func NewBookingEvent(t BookingEventType, b *Booking, actorID string, at time.Time) BookingEvent {
	return BookingEvent{
		Type:         t,
		BookingID:    b.ID,
		UserID:       b.UserID,
		SalonID:      b.SalonID,
		CustomerName: b.CustomerName,
		Email:        b.Email,
		Date:         b.Date,
		Time:         b.Time,
		TotalPrice:   b.TotalPrice,
		ActorID:      actorID,
		OccurredAt:   at,
	}
}
