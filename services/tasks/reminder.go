package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"salonbook/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSendReminder = "reminder:send"
	ReminderQueue    = "default"
)

// ReminderTaskID is deterministic so a booking never has two reminders and
// the pending one can be removed on cancel.
func ReminderTaskID(bookingID string) string {
	return "reminder:" + bookingID
}

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(ReminderTaskID(payload.BookingID)),
		asynq.Queue(ReminderQueue),
		asynq.MaxRetry(3),
	}

	return task, opts, nil
}

// ReminderScheduler plans and withdraws appointment reminders.
type ReminderScheduler interface {
	Schedule(ctx context.Context, booking *models.Booking, fireAt time.Time) error
	Cancel(ctx context.Context, bookingID string) error
}

type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type taskDeleter interface {
	DeleteTask(queue, id string) error
}

// AsynqReminderScheduler stores reminders in the asynq Redis queue.
type AsynqReminderScheduler struct {
	client    taskEnqueuer
	inspector taskDeleter
}

func NewAsynqReminderScheduler(client *asynq.Client, inspector *asynq.Inspector) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{client: client, inspector: inspector}
}

func (s *AsynqReminderScheduler) Schedule(ctx context.Context, b *models.Booking, fireAt time.Time) error {
	payload := models.ReminderPayload{
		BookingID: b.ID,
		UserID:    b.UserID,
		Title:     "Upcoming appointment",
		Body:      fmt.Sprintf("Reminder: your appointment is on %s at %s.", b.Date, b.Time),
		FireDate:  fireAt.Format(time.RFC3339),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("Schedule: failed to build reminder task: %w", err)
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("Schedule: failed to enqueue reminder for %s: %w", b.ID, err)
	}
	return nil
}

func (s *AsynqReminderScheduler) Cancel(_ context.Context, bookingID string) error {
	err := s.inspector.DeleteTask(ReminderQueue, ReminderTaskID(bookingID))
	if err == nil || errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil
	}
	return fmt.Errorf("Cancel: failed to delete reminder for %s: %w", bookingID, err)
}

// NoopReminderScheduler is used when reminders are disabled.
type NoopReminderScheduler struct{}

func (NoopReminderScheduler) Schedule(context.Context, *models.Booking, time.Time) error { return nil }
func (NoopReminderScheduler) Cancel(context.Context, string) error { return nil }
