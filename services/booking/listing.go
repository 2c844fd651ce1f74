package booking

import (
	"context"

	"salonbook/models"
)

// ListBookings returns one page of bookings. The scope is forced by role:
// customers see their own bookings, salon owners those of salons they own.
// Only admins may include soft-deleted bookings.
func (s *DefaultBookingService) ListBookings(ctx context.Context, actor models.Actor, filter models.BookingFilter, page models.Page) (*models.BookingList, error) {
	switch filter.Range {
	case models.RangeAny, models.RangeUpcoming, models.RangePast:
	default:
		return nil, newValidationError(CodeInvalidFilter, "when", "when must be upcoming or past")
	}
	switch filter.Status {
	case models.FilterAnyStatus, models.FilterActive, models.FilterCompleted, models.FilterCanceled:
	default:
		return nil, newValidationError(CodeInvalidFilter, "status", "status must be active, completed or canceled")
	}

	filter.Today = s.now().Format(dateLayout)
	filter.SalonIDs = nil

	switch actor.Role {
	case models.RoleAdmin:
	case models.RoleSalonOwner:
		ids, err := s.salons.OwnedSalonIDs(ctx, actor.UserID)
		if err != nil {
			return nil, newDependencyError("salon directory", err)
		}
		if ids == nil {
			ids = []string{}
		}
		filter.SalonIDs = ids
		filter.IncludeDeleted = false
	case models.RoleCustomer:
		filter.UserID = actor.UserID
		filter.IncludeDeleted = false
	default:
		return nil, newForbiddenError("unknown role")
	}

	page = page.Normalize()
	items, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, newDependencyError("booking store", err)
	}
	if items == nil {
		items = []models.Booking{}
	}
	return &models.BookingList{Items: items, Total: total, Page: page.Page, PageSize: page.PageSize}, nil
}

// GetBooking reads a single booking. With expand set the customer and salon
// are resolved into summaries; lookup failures there leave the field empty.
func (s *DefaultBookingService) GetBooking(ctx context.Context, actor models.Actor, bookingID string, expand bool) (*models.BookingDetails, error) {
	b, err := s.loadLive(ctx, bookingID, actor.IsAdmin())
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(ctx, actor, b); err != nil {
		return nil, err
	}

	details := &models.BookingDetails{Booking: b}
	if !expand {
		return details, nil
	}
	if u, err := s.users.GetUserByID(ctx, b.UserID); err == nil {
		details.User = u.Summary()
	}
	if salon, err := s.salons.GetSalon(ctx, b.SalonID); err == nil {
		details.Salon = salon.Summary()
	}
	return details, nil
}
