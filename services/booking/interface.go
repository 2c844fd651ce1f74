package booking

import (
	"context"
	"time"

	bookingRepo "salonbook/database/repository/booking"
	"salonbook/models"
	"salonbook/services/events"
	"salonbook/services/payment"
	"salonbook/services/tasks"
	"salonbook/utils"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// BookingService owns the booking lifecycle: creation, the pending to
// completed/canceled transitions, listing and admin maintenance.
type BookingService interface {
	CreateBooking(ctx context.Context, actor models.Actor, req models.CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, actor models.Actor, bookingID string, expand bool) (*models.BookingDetails, error)
	ListBookings(ctx context.Context, actor models.Actor, filter models.BookingFilter, page models.Page) (*models.BookingList, error)
	CancelBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)
	CompleteBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)
	SoftDeleteBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error)
	PurgeBooking(ctx context.Context, actor models.Actor, bookingID string) error
	UpdateBookingDetails(ctx context.Context, actor models.Actor, bookingID string, fields map[string]any) (*models.Booking, error)
	QuoteBooking(ctx context.Context, salonID string, serviceNames []string) (*models.Quote, error)
	CreatePaymentIntent(ctx context.Context, actor models.Actor, req models.QuoteRequest) (*models.PaymentIntent, error)
	RescheduleReminders(ctx context.Context) (int, error)
}

// SalonDirectory is the part of the salon service bookings depend on.
type SalonDirectory interface {
	GetSalon(ctx context.Context, id string) (*models.Salon, error)
	OwnedSalonIDs(ctx context.Context, ownerID string) ([]string, error)
}

// UserDirectory resolves booking customers.
type UserDirectory interface {
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

// Config wires a DefaultBookingService. Repo, Salons and Users are required.
type Config struct {
	Repo      bookingRepo.BookingRepository
	Salons    SalonDirectory
	Users     UserDirectory
	Payments  payment.PaymentService
	Events    events.EventPublisher
	Reminders tasks.ReminderScheduler
	Clock     utils.Clock
	Logger    *zap.Logger

	Location           *time.Location
	CancellationWindow time.Duration
	ReminderLead       time.Duration
	// RequirePayment rejects bookings without a confirmed transaction.
	RequirePayment bool
}

var _ BookingService = (*DefaultBookingService)(nil)

// DefaultBookingService is the production implementation of BookingService.
type DefaultBookingService struct {
	repo      bookingRepo.BookingRepository
	salons    SalonDirectory
	users     UserDirectory
	payments  payment.PaymentService
	events    events.EventPublisher
	reminders tasks.ReminderScheduler
	clock     utils.Clock
	logger    *zap.Logger

	loc            *time.Location
	window         time.Duration
	reminderLead   time.Duration
	requirePayment bool
}

const (
	defaultCancellationWindow = 4 * time.Hour
	defaultReminderLead       = 24 * time.Hour
)

func NewBookingService(cfg Config) (*DefaultBookingService, error) {
	if cfg.Repo == nil || cfg.Salons == nil || cfg.Users == nil {
		return nil, errors.New("booking: repository, salon and user directories are required")
	}
	s := &DefaultBookingService{
		repo:           cfg.Repo,
		salons:         cfg.Salons,
		users:          cfg.Users,
		payments:       cfg.Payments,
		events:         cfg.Events,
		reminders:      cfg.Reminders,
		clock:          cfg.Clock,
		logger:         cfg.Logger,
		loc:            cfg.Location,
		window:         cfg.CancellationWindow,
		reminderLead:   cfg.ReminderLead,
		requirePayment: cfg.RequirePayment,
	}
	if s.reminders == nil {
		s.reminders = tasks.NoopReminderScheduler{}
	}
	if s.clock == nil {
		s.clock = utils.NewRealClock()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.window <= 0 {
		s.window = defaultCancellationWindow
	}
	if s.reminderLead <= 0 {
		s.reminderLead = defaultReminderLead
	}
	return s, nil
}

func (s *DefaultBookingService) now() time.Time {
	return s.clock.Now().In(s.loc)
}
