package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "salonbook/database/repository/booking"
	"salonbook/models"
	"salonbook/utils"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// CancelBooking moves a pending booking to canceled when the appointment is
// at least the cancellation window away. The window applies to every role.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	b, err := s.cancelBooking(ctx, actor, bookingID)
	utils.RecordBookingOperation("cancel", resultLabel(err))
	return b, err
}

func (s *DefaultBookingService) cancelBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	b, err := s.loadLive(ctx, bookingID, false)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(ctx, actor, b); err != nil {
		return nil, err
	}
	if b.Status != models.StatusPending {
		return nil, newConflictError(CodeInvalidTransition, fmt.Sprintf("booking is already %s", b.Status))
	}

	now := s.clock.Now()
	if until := s.startsAt(b).Sub(now); until < s.window {
		return nil, &BookingError{
			Kind:    KindCancellationWindow,
			Code:    CodeCancellationWindow,
			Message: fmt.Sprintf("bookings can only be canceled at least %g hours before the appointment", s.window.Hours()),
		}
	}

	canceledAt := now.UTC()
	updated, err := s.transition(ctx, b.ID, models.StatusCanceled, bson.M{
		"canceledBy": actor.UserID,
		"canceledAt": canceledAt,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking canceled", zap.String("bookingId", b.ID), zap.String("by", actor.UserID))
	s.publish(ctx, models.EventBookingCanceled, updated, actor.UserID)
	s.cancelReminder(ctx, b.ID)
	return updated, nil
}

// CompleteBooking marks a pending booking as done. Only the salon side can
// complete and there is no time restriction.
func (s *DefaultBookingService) CompleteBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	b, err := s.completeBooking(ctx, actor, bookingID)
	utils.RecordBookingOperation("complete", resultLabel(err))
	return b, err
}

func (s *DefaultBookingService) completeBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	b, err := s.loadLive(ctx, bookingID, false)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeSalonSide(ctx, actor, b); err != nil {
		return nil, err
	}
	if b.Status != models.StatusPending {
		return nil, newConflictError(CodeInvalidTransition, fmt.Sprintf("booking is already %s", b.Status))
	}

	updated, err := s.transition(ctx, b.ID, models.StatusCompleted, bson.M{"completedAt": s.clock.Now().UTC()})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking completed", zap.String("bookingId", b.ID), zap.String("by", actor.UserID))
	s.publish(ctx, models.EventBookingCompleted, updated, actor.UserID)
	s.cancelReminder(ctx, b.ID)
	return updated, nil
}

// transition performs the conditional pending -> to write.
func (s *DefaultBookingService) transition(ctx context.Context, id string, to models.BookingStatus, set bson.M) (*models.Booking, error) {
	updated, err := s.repo.Transition(ctx, id, models.StatusPending, to, set)
	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, bookingRepo.ErrStatusConflict):
		return nil, newConflictError(CodeConcurrentUpdate, "booking was changed by another request")
	case errors.Is(err, bookingRepo.ErrNotFound):
		return nil, newNotFoundError(CodeBookingNotFound, "booking not found")
	default:
		return nil, newDependencyError("booking store", err)
	}
}

// startsAt prefers the stored instant and falls back to the date and
// clock strings for records written without it.
func (s *DefaultBookingService) startsAt(b *models.Booking) time.Time {
	if !b.StartsAt.IsZero() {
		return b.StartsAt
	}
	t, ok := AppointmentTime(b.Date, b.Time, s.loc)
	if !ok {
		return time.Time{}
	}
	return t
}
