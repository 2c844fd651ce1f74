package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"

	bookingRepo "salonbook/database/repository/booking"
	"salonbook/models"
	"salonbook/utils"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// editableFields maps request keys to their validator. Status, prices,
// owners and the schedule are not reachable through the generic update.
var editableFields = map[string]func(string) error{
	"customerName": func(v string) error {
		if len([]rune(v)) < minNameRunes {
			return newValidationError(CodeInvalidName, "customerName", "customerName must be at least 2 characters")
		}
		return nil
	},
	"phoneNumber": func(v string) error {
		if !isValidPhone(v) {
			return newValidationError(CodeInvalidPhone, "phoneNumber", "phone number must be 10 to 15 digits")
		}
		return nil
	},
	"email": func(v string) error {
		if !isValidEmail(v) {
			return newValidationError(CodeInvalidEmail, "email", "email address is invalid")
		}
		return nil
	},
	"otp": func(v string) error {
		if len([]rune(v)) > maxOTPLength {
			return newValidationError(CodeInvalidOTP, "otp", "otp must be at most 6 characters")
		}
		return nil
	},
}

// UpdateBookingDetails patches contact details on behalf of an admin.
func (s *DefaultBookingService) UpdateBookingDetails(ctx context.Context, actor models.Actor, bookingID string, fields map[string]any) (*models.Booking, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, newValidationError(CodeMissingField, "", "no fields to update")
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	set := bson.M{}
	for _, key := range keys {
		check, ok := editableFields[key]
		if !ok {
			return nil, newValidationError(CodeFieldNotEditable, key, fmt.Sprintf("%s cannot be updated", key))
		}
		raw, ok := fields[key].(string)
		if !ok {
			return nil, newValidationError(CodeFieldNotEditable, key, fmt.Sprintf("%s must be a string", key))
		}
		value := strings.TrimSpace(raw)
		if value == "" && key != "otp" {
			return nil, newValidationError(CodeMissingField, key, key+" cannot be empty")
		}
		if err := check(value); err != nil {
			return nil, err
		}
		set[key] = value
	}

	if _, err := s.loadLive(ctx, bookingID, true); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateFields(ctx, bookingID, set)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, newNotFoundError(CodeBookingNotFound, "booking not found")
		}
		return nil, newDependencyError("booking store", err)
	}
	s.logger.Info("booking details updated", zap.String("bookingId", bookingID), zap.Strings("fields", keys))
	return updated, nil
}

// SoftDeleteBooking hides a booking from everyone but admins, whatever its
// status.
func (s *DefaultBookingService) SoftDeleteBooking(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	b, err := s.softDelete(ctx, actor, bookingID)
	utils.RecordBookingOperation("soft_delete", resultLabel(err))
	return b, err
}

func (s *DefaultBookingService) softDelete(ctx context.Context, actor models.Actor, bookingID string) (*models.Booking, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := s.loadLive(ctx, bookingID, true); err != nil {
		return nil, err
	}
	updated, err := s.repo.SetDeleted(ctx, bookingID, true)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, newNotFoundError(CodeBookingNotFound, "booking not found")
		}
		return nil, newDependencyError("booking store", err)
	}

	s.logger.Info("booking soft-deleted", zap.String("bookingId", bookingID), zap.String("by", actor.UserID))
	s.publish(ctx, models.EventBookingDeleted, updated, actor.UserID)
	s.cancelReminder(ctx, bookingID)
	return updated, nil
}

// PurgeBooking removes a booking permanently.
func (s *DefaultBookingService) PurgeBooking(ctx context.Context, actor models.Actor, bookingID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return newNotFoundError(CodeBookingNotFound, "booking not found")
		}
		return newDependencyError("booking store", err)
	}
	s.logger.Warn("booking purged", zap.String("bookingId", bookingID), zap.String("by", actor.UserID))
	s.cancelReminder(ctx, bookingID)
	utils.RecordBookingOperation("purge", "ok")
	return nil
}
