package booking

import (
	"context"

	"salonbook/models"

	"go.uber.org/zap"
)

// publish emits a lifecycle event. Failures are logged and never surface to
// the caller; the booking write has already happened.
func (s *DefaultBookingService) publish(ctx context.Context, t models.BookingEventType, b *models.Booking, actorID string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishBookingEvent(ctx, models.NewBookingEvent(t, b, actorID, s.clock.Now().UTC())); err != nil {
		s.logger.Warn("failed to publish booking event",
			zap.String("type", string(t)),
			zap.String("bookingId", b.ID),
			zap.Error(err),
		)
	}
}

// scheduleReminder queues the pre-appointment push when its fire time is
// still ahead.
func (s *DefaultBookingService) scheduleReminder(ctx context.Context, b *models.Booking) {
	fireAt := b.StartsAt.Add(-s.reminderLead)
	if !fireAt.After(s.clock.Now()) {
		return
	}
	if err := s.reminders.Schedule(ctx, b, fireAt); err != nil {
		s.logger.Warn("failed to schedule reminder", zap.String("bookingId", b.ID), zap.Error(err))
	}
}

func (s *DefaultBookingService) cancelReminder(ctx context.Context, bookingID string) {
	if err := s.reminders.Cancel(ctx, bookingID); err != nil {
		s.logger.Warn("failed to remove reminder", zap.String("bookingId", bookingID), zap.Error(err))
	}
}

// RescheduleReminders re-queues reminders for every upcoming pending
// booking. It runs at startup so a wiped queue recovers; task ids make it
// idempotent.
func (s *DefaultBookingService) RescheduleReminders(ctx context.Context) (int, error) {
	filter := models.BookingFilter{
		Range:  models.RangeUpcoming,
		Status: models.FilterActive,
		Today:  s.now().Format(dateLayout),
	}
	count := 0
	err := s.repo.Iterate(ctx, filter, func(b *models.Booking) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.scheduleReminder(ctx, b)
		count++
		return nil
	})
	if err != nil {
		return count, newDependencyError("booking store", err)
	}
	return count, nil
}
