package payment

import (
	"context"
	"errors"

	"salonbook/models"
)

var (
	// ErrGatewayUnavailable marks failures talking to the payment provider.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	// ErrUnknownTransaction is returned for a transaction id the gateway does not know.
	ErrUnknownTransaction = errors.New("unknown transaction")
)

// PaymentService is the payment collaborator. It creates intents for a
// server-computed amount and confirms finished transactions; it never
// stores cards or moves money itself.
type PaymentService interface {
	CreateIntent(ctx context.Context, amount float64, metadata map[string]string) (*models.PaymentIntent, error)
	Confirm(ctx context.Context, transactionID string) (*models.PaymentConfirmation, error)
	Currency() string
}
