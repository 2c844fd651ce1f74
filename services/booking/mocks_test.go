package booking

import (
	"context"
	"sync"
	"time"

	"salonbook/models"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filter models.BookingFilter, page models.Page) ([]models.Booking, int64, error) {
	args := m.Called(ctx, filter, page)
	items, _ := args.Get(0).([]models.Booking)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepo) Iterate(ctx context.Context, filter models.BookingFilter, fn func(*models.Booking) error) error {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]models.Booking)
	for i := range items {
		if err := fn(&items[i]); err != nil {
			return err
		}
	}
	return args.Error(1)
}

func (m *mockRepo) Transition(ctx context.Context, id string, from, to models.BookingStatus, set bson.M) (*models.Booking, error) {
	args := m.Called(ctx, id, from, to, set)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockRepo) SetDeleted(ctx context.Context, id string, deleted bool) (*models.Booking, error) {
	args := m.Called(ctx, id, deleted)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockRepo) UpdateFields(ctx context.Context, id string, fields bson.M) (*models.Booking, error) {
	args := m.Called(ctx, id, fields)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockSalons struct {
	mock.Mock
}

func (m *mockSalons) GetSalon(ctx context.Context, id string) (*models.Salon, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*models.Salon)
	return s, args.Error(1)
}

func (m *mockSalons) OwnedSalonIDs(ctx context.Context, ownerID string) ([]string, error) {
	args := m.Called(ctx, ownerID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type mockPayments struct {
	mock.Mock
}

func (m *mockPayments) CreateIntent(ctx context.Context, amount float64, metadata map[string]string) (*models.PaymentIntent, error) {
	args := m.Called(ctx, amount, metadata)
	pi, _ := args.Get(0).(*models.PaymentIntent)
	return pi, args.Error(1)
}

func (m *mockPayments) Confirm(ctx context.Context, transactionID string) (*models.PaymentConfirmation, error) {
	args := m.Called(ctx, transactionID)
	c, _ := args.Get(0).(*models.PaymentConfirmation)
	return c, args.Error(1)
}

func (m *mockPayments) Currency() string { return "usd" }

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.BookingEvent
	err    error
}

func (p *recordingPublisher) PublishBookingEvent(_ context.Context, e models.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []models.BookingEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.BookingEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type recordingReminders struct {
	mu        sync.Mutex
	scheduled map[string]time.Time
	canceled  []string
	err       error
}

func newRecordingReminders() *recordingReminders {
	return &recordingReminders{scheduled: map[string]time.Time{}}
}

func (r *recordingReminders) Schedule(_ context.Context, b *models.Booking, fireAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.scheduled[b.ID] = fireAt
	return nil
}

func (r *recordingReminders) Cancel(_ context.Context, bookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.canceled = append(r.canceled, bookingID)
	return nil
}
