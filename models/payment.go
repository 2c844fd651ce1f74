package models

// QuoteRequest asks for the server-side price of a set of services.
type QuoteRequest struct {
	SalonID  string   `json:"salonId" binding:"required"`
	Services []string `json:"services" binding:"required,min=1"`
}

type Quote struct {
	SalonID  string        `json:"salonId"`
	Services []ServiceLine `json:"services"`
	Total    float64       `json:"total"`
	Currency string        `json:"currency"`
}

// PaymentIntent is what the client needs to finish payment before booking.
type PaymentIntent struct {
	TransactionID string  `json:"transactionId"`
	ClientSecret  string  `json:"clientSecret"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

// PaymentConfirmation is the collaborator's view of a finished transaction.
type PaymentConfirmation struct {
	TransactionID string
	Succeeded     bool
	AmountMinor   int64
	Currency      string
}
