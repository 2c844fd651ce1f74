package bookingRepo

import (
	"context"
	"errors"

	"salonbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrNotFound is returned when no booking has the requested id.
	ErrNotFound = errors.New("booking not found")
	// ErrStatusConflict is returned when a conditional transition matched no
	// document because the stored status differs from the expected one.
	ErrStatusConflict = errors.New("booking status changed")
	// ErrDuplicate is returned when the id or transaction id is already used.
	ErrDuplicate = errors.New("booking already exists")
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID, including soft-deleted ones.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// List returns one page of bookings matching filter and the total match count.
	List(ctx context.Context, filter models.BookingFilter, page models.Page) ([]models.Booking, int64, error)
	// Iterate streams every booking matching filter to fn, stopping at the first error.
	Iterate(ctx context.Context, filter models.BookingFilter, fn func(*models.Booking) error) error
	// Transition moves a live booking from one status to another atomically.
	Transition(ctx context.Context, id string, from, to models.BookingStatus, set bson.M) (*models.Booking, error)
	// SetDeleted flips the soft-delete flag.
	SetDeleted(ctx context.Context, id string, deleted bool) (*models.Booking, error)
	// UpdateFields patches the given fields and returns the updated document.
	UpdateFields(ctx context.Context, id string, fields bson.M) (*models.Booking, error)
	// Delete removes a booking permanently.
	Delete(ctx context.Context, id string) error
}
