package handlers

import "net/http"

// HandlerBundle groups all endpoint handlers for route registration.
type HandlerBundle struct {
	Booking *BookingHandler
	Salon   *SalonHandler
	Payment *PaymentHandler
	Admin   *AdminHandler

	// QueueMonitor serves the asynq dashboard; nil disables it.
	QueueMonitor http.Handler
}
