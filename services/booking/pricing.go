package booking

import (
	"context"
	"math"
	"strings"

	salonRepo "salonbook/database/repository/salon"
	"salonbook/models"

	"github.com/cockroachdb/errors"
)

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// loadBookableSalon returns the salon when it exists and is approved.
func (s *DefaultBookingService) loadBookableSalon(ctx context.Context, salonID string) (*models.Salon, error) {
	salon, err := s.salons.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrNotFound) {
			return nil, newNotFoundError(CodeSalonNotFound, "salon not found")
		}
		return nil, newDependencyError("salon directory", err)
	}
	if !salon.Approved {
		return nil, newNotFoundError(CodeSalonNotFound, "salon not found")
	}
	return salon, nil
}

// priceServices snapshots each requested service from the live catalogue.
// Client-supplied prices never reach the stored booking.
func priceServices(salon *models.Salon, names []string) ([]models.ServiceLine, float64, error) {
	lines := make([]models.ServiceLine, 0, len(names))
	var total float64
	for _, name := range names {
		offered, ok := salon.FindService(name)
		if !ok {
			return nil, 0, newValidationError(CodeInvalidService, "services",
				"service "+strings.TrimSpace(name)+" is not offered by this salon")
		}
		price := roundCents(offered.EffectivePrice())
		lines = append(lines, models.ServiceLine{ServiceName: offered.Name, ServicePrice: price})
		total += price
	}
	return lines, roundCents(total), nil
}

// QuoteBooking prices a set of services for the payment step.
func (s *DefaultBookingService) QuoteBooking(ctx context.Context, salonID string, serviceNames []string) (*models.Quote, error) {
	if len(serviceNames) == 0 {
		return nil, newValidationError(CodeInvalidService, "services", "at least one service is required")
	}
	salon, err := s.loadBookableSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	lines, total, err := priceServices(salon, serviceNames)
	if err != nil {
		return nil, err
	}
	quote := &models.Quote{SalonID: salon.ID, Services: lines, Total: total}
	if s.payments != nil {
		quote.Currency = s.payments.Currency()
	}
	return quote, nil
}

// CreatePaymentIntent opens a gateway intent for the server-side quote. The
// returned transaction id is later passed to CreateBooking.
func (s *DefaultBookingService) CreatePaymentIntent(ctx context.Context, actor models.Actor, req models.QuoteRequest) (*models.PaymentIntent, error) {
	if s.payments == nil {
		return nil, newDependencyError("payment gateway", errors.New("payments are not configured"))
	}
	quote, err := s.QuoteBooking(ctx, req.SalonID, req.Services)
	if err != nil {
		return nil, err
	}
	intent, err := s.payments.CreateIntent(ctx, quote.Total, map[string]string{
		"salonId": quote.SalonID,
		"userId":  actor.UserID,
	})
	if err != nil {
		return nil, newDependencyError("payment gateway", err)
	}
	return intent, nil
}
