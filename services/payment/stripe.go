package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"salonbook/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// intentAPI is the slice of the Stripe PaymentIntents API we use.
type intentAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type stripeIntents struct{}

func (stripeIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.New(params)
}

func (stripeIntents) Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.Get(id, params)
}

// StripePaymentService implements PaymentService with Stripe PaymentIntents.
type StripePaymentService struct {
	intents  intentAPI
	currency string
	logger   *zap.Logger
}

// NewStripePaymentService sets the global Stripe key and returns the service.
func NewStripePaymentService(key, currency string, logger *zap.Logger) *StripePaymentService {
	stripe.Key = key
	return newStripePaymentService(stripeIntents{}, currency, logger)
}

func newStripePaymentService(api intentAPI, currency string, logger *zap.Logger) *StripePaymentService {
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StripePaymentService{intents: api, currency: strings.ToLower(currency), logger: logger}
}

func (s *StripePaymentService) Currency() string {
	return s.currency
}

// ToMinorUnits converts a decimal amount into the smallest currency unit.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateIntent opens a PaymentIntent for amount. The returned transaction id
// is later attached to the booking.
func (s *StripePaymentService) CreateIntent(ctx context.Context, amount float64, metadata map[string]string) (*models.PaymentIntent, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("CreateIntent: amount must be positive, got %.2f", amount)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(ToMinorUnits(amount)),
		Currency: stripe.String(s.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := s.intents.New(params)
	if err != nil {
		s.logger.Error("stripe payment intent creation failed", zap.Error(err))
		return nil, fmt.Errorf("CreateIntent: %w: %v", ErrGatewayUnavailable, err)
	}

	return &models.PaymentIntent{
		TransactionID: pi.ID,
		ClientSecret:  pi.ClientSecret,
		Amount:        amount,
		Currency:      s.currency,
	}, nil
}

// Confirm looks the transaction up on Stripe and reports whether it succeeded.
func (s *StripePaymentService) Confirm(ctx context.Context, transactionID string) (*models.PaymentConfirmation, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := s.intents.Get(transactionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, fmt.Errorf("Confirm %s: %w", transactionID, ErrUnknownTransaction)
		}
		s.logger.Error("stripe payment intent lookup failed", zap.String("transactionId", transactionID), zap.Error(err))
		return nil, fmt.Errorf("Confirm %s: %w: %v", transactionID, ErrGatewayUnavailable, err)
	}

	return &models.PaymentConfirmation{
		TransactionID: pi.ID,
		Succeeded:     pi.Status == stripe.PaymentIntentStatusSucceeded,
		AmountMinor:   pi.AmountReceived,
		Currency:      string(pi.Currency),
	}, nil
}
