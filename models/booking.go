package models

import (
	"encoding/json"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusCompleted BookingStatus = "completed"
	StatusCanceled  BookingStatus = "canceled"
)

// validTransitions is the booking state machine. Terminal states map to nothing.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusCompleted, StatusCanceled},
	StatusCompleted: {},
	StatusCanceled:  {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// ServiceLine is a snapshot of one salon service at booking time.
type ServiceLine struct {
	ServiceName  string  `bson:"serviceName" json:"serviceName"`
	ServicePrice float64 `bson:"servicePrice" json:"servicePrice"`
}

// Booking is a single customer appointment at a salon.
type Booking struct {
	ID            string        `bson:"id" json:"id"`
	CustomerName  string        `bson:"customerName" json:"customerName"`
	PhoneNumber   string        `bson:"phoneNumber" json:"phoneNumber"`
	Email         string        `bson:"email" json:"email"`
	Services      []ServiceLine `bson:"services" json:"services"`
	TotalPrice    float64       `bson:"totalPrice" json:"totalPrice"`
	Date          string        `bson:"date" json:"date"` // YYYY-MM-DD
	Time          string        `bson:"time" json:"time"` // H:MM AM/PM
	StartsAt      time.Time     `bson:"startsAt" json:"startsAt"`
	OTP           string        `bson:"otp,omitempty" json:"otp,omitempty"`
	UserID        string        `bson:"userId" json:"userId"`
	SalonID       string        `bson:"salonId" json:"salonId"`
	Status        BookingStatus `bson:"status" json:"status"`
	IsDeleted     bool          `bson:"isDeleted" json:"isDeleted"`
	TransactionID string        `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaymentStatus PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`

	CanceledBy  string     `bson:"canceledBy,omitempty" json:"canceledBy,omitempty"`
	CanceledAt  *time.Time `bson:"canceledAt,omitempty" json:"canceledAt,omitempty"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

func (b *Booking) IsCanceled() bool  { return b.Status == StatusCanceled }
func (b *Booking) IsCompleted() bool { return b.Status == StatusCompleted }

// MarshalJSON adds the isCanceled/isCompleted views derived from Status.
func (b Booking) MarshalJSON() ([]byte, error) {
	type alias Booking
	return json.Marshal(struct {
		alias
		IsCanceled  bool `json:"isCanceled"`
		IsCompleted bool `json:"isCompleted"`
	}{
		alias:       alias(b),
		IsCanceled:  b.Status == StatusCanceled,
		IsCompleted: b.Status == StatusCompleted,
	})
}

// BookingDetails is a booking with its customer and salon resolved.
type BookingDetails struct {
	Booking *Booking      `json:"booking"`
	User    *UserSummary  `json:"user,omitempty"`
	Salon   *SalonSummary `json:"salon,omitempty"`
}

// CreateBookingRequest carries the customer-supplied booking fields.
type CreateBookingRequest struct {
	CustomerName  string             `json:"customerName"`
	PhoneNumber   string             `json:"phoneNumber"`
	Email         string             `json:"email"`
	Services      []RequestedService `json:"services"`
	Date          string             `json:"date"`
	Time          string             `json:"time"`
	UserID        string             `json:"userId"`
	SalonID       string             `json:"salonId"`
	OTP           string             `json:"otp,omitempty"`
	TransactionID string             `json:"transactionId,omitempty"`
}

// RequestedService names a salon service. A client-side price is accepted
// for validation only; the stored price comes from the salon catalogue.
type RequestedService struct {
	ServiceName  string   `json:"serviceName"`
	ServicePrice *float64 `json:"servicePrice,omitempty"`
}
