package booking

import (
	"context"
	"slices"

	bookingRepo "salonbook/database/repository/booking"
	"salonbook/models"

	"github.com/cockroachdb/errors"
)

// loadLive fetches a booking and hides soft-deleted ones unless
// includeDeleted is set.
func (s *DefaultBookingService) loadLive(ctx context.Context, bookingID string, includeDeleted bool) (*models.Booking, error) {
	if bookingID == "" {
		return nil, newValidationError(CodeMissingField, "id", "booking id is required")
	}
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, newNotFoundError(CodeBookingNotFound, "booking not found")
		}
		return nil, newDependencyError("booking store", err)
	}
	if b.IsDeleted && !includeDeleted {
		return nil, newNotFoundError(CodeBookingNotFound, "booking not found")
	}
	return b, nil
}

// ownsSalon reports whether a salon owner runs the booking's salon.
func (s *DefaultBookingService) ownsSalon(ctx context.Context, actor models.Actor, salonID string) (bool, error) {
	if actor.Role != models.RoleSalonOwner {
		return false, nil
	}
	ids, err := s.salons.OwnedSalonIDs(ctx, actor.UserID)
	if err != nil {
		return false, newDependencyError("salon directory", err)
	}
	return slices.Contains(ids, salonID), nil
}

// authorizeView allows the customer, the salon's owner and admins.
func (s *DefaultBookingService) authorizeView(ctx context.Context, actor models.Actor, b *models.Booking) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.Role == models.RoleCustomer && actor.UserID == b.UserID {
		return nil
	}
	owns, err := s.ownsSalon(ctx, actor, b.SalonID)
	if err != nil {
		return err
	}
	if owns {
		return nil
	}
	return newForbiddenError("not allowed to access this booking")
}

// authorizeSalonSide allows the salon's owner and admins.
func (s *DefaultBookingService) authorizeSalonSide(ctx context.Context, actor models.Actor, b *models.Booking) error {
	if actor.IsAdmin() {
		return nil
	}
	owns, err := s.ownsSalon(ctx, actor, b.SalonID)
	if err != nil {
		return err
	}
	if !owns {
		return newForbiddenError("only the salon owner can do this")
	}
	return nil
}

func requireAdmin(actor models.Actor) error {
	if !actor.IsAdmin() {
		return newForbiddenError("admin access required")
	}
	return nil
}
