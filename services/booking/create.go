package booking

import (
	"context"
	"strings"

	bookingRepo "salonbook/database/repository/booking"
	userRepo "salonbook/database/repository/user"
	"salonbook/models"
	"salonbook/services/payment"
	"salonbook/utils"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking validates the request, resolves the customer and salon,
// snapshots catalogue prices and stores the booking as pending.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, actor models.Actor, req models.CreateBookingRequest) (*models.Booking, error) {
	b, err := s.createBooking(ctx, actor, req)
	utils.RecordBookingOperation("create", resultLabel(err))
	return b, err
}

func (s *DefaultBookingService) createBooking(ctx context.Context, actor models.Actor, req models.CreateBookingRequest) (*models.Booking, error) {
	now := s.now()
	v, err := validateCreate(req, now, s.loc)
	if err != nil {
		return nil, err
	}
	req = v.req

	if !actor.IsAdmin() && actor.UserID != req.UserID {
		return nil, newForbiddenError("bookings can only be made for your own account")
	}

	if _, err := s.users.GetUserByID(ctx, req.UserID); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, newNotFoundError(CodeUserNotFound, "user not found")
		}
		return nil, newDependencyError("user directory", err)
	}

	salon, err := s.loadBookableSalon(ctx, req.SalonID)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(req.Services))
	for i, svc := range req.Services {
		names[i] = svc.ServiceName
	}
	lines, total, err := priceServices(salon, names)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := s.checkPayment(ctx, req.TransactionID, total)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:            uuid.NewString(),
		CustomerName:  req.CustomerName,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		Services:      lines,
		TotalPrice:    total,
		Date:          v.day,
		Time:          req.Time,
		StartsAt:      v.startsAt.UTC(),
		OTP:           req.OTP,
		UserID:        req.UserID,
		SalonID:       salon.ID,
		Status:        models.StatusPending,
		TransactionID: req.TransactionID,
		PaymentStatus: paymentStatus,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicate) {
			return nil, newConflictError(CodeDuplicate, "a booking already uses this transaction")
		}
		return nil, newDependencyError("booking store", err)
	}

	s.logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("salonId", booking.SalonID),
		zap.String("userId", booking.UserID),
		zap.Float64("total", booking.TotalPrice),
	)
	s.publish(ctx, models.EventBookingCreated, booking, actor.UserID)
	s.scheduleReminder(ctx, booking)
	return booking, nil
}

// checkPayment confirms a prepaid transaction covers the server-side total.
func (s *DefaultBookingService) checkPayment(ctx context.Context, transactionID string, total float64) (models.PaymentStatus, error) {
	if transactionID == "" {
		if s.requirePayment {
			return "", newValidationError(CodePaymentRequired, "transactionId", "a confirmed payment is required")
		}
		return models.PaymentUnpaid, nil
	}
	if s.payments == nil {
		return "", newDependencyError("payment gateway", errors.New("payments are not configured"))
	}

	conf, err := s.payments.Confirm(ctx, transactionID)
	if err != nil {
		if errors.Is(err, payment.ErrUnknownTransaction) {
			return "", newValidationError(CodePaymentNotConfirmed, "transactionId", "payment transaction not found")
		}
		return "", newDependencyError("payment gateway", err)
	}
	if !conf.Succeeded {
		return "", newValidationError(CodePaymentNotConfirmed, "transactionId", "payment has not succeeded")
	}
	if !strings.EqualFold(conf.Currency, s.payments.Currency()) {
		return "", newValidationError(CodePaymentNotConfirmed, "transactionId", "payment currency does not match")
	}
	if conf.AmountMinor < payment.ToMinorUnits(total) {
		return "", newValidationError(CodePaymentNotConfirmed, "transactionId", "payment does not cover the booking total")
	}
	return models.PaymentPaid, nil
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if be, ok := AsBookingError(err); ok {
		return string(be.Kind)
	}
	return "error"
}
