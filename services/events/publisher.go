package events

import (
	"context"
	"encoding/json"
	"fmt"

	"salonbook/models"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
)

// EventPublisher emits booking lifecycle events for downstream consumers
// such as the mailer.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event models.BookingEvent) error
	Close() error
}

// WatermillPublisher publishes JSON-encoded events on a single topic.
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
	logger    *zap.Logger
}

func NewWatermillPublisher(pub message.Publisher, topic string, logger *zap.Logger) *WatermillPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WatermillPublisher{publisher: pub, topic: topic, logger: logger}
}

// NewPublisherFromURL connects to AMQP when amqpURL is set and otherwise
// falls back to an in-process channel, which drops events nobody listens to.
func NewPublisherFromURL(amqpURL string, logger *zap.Logger) (message.Publisher, error) {
	wmLogger := NewZapLoggerAdapter(logger)
	if amqpURL == "" {
		logger.Info("AMQP_URL not set; booking events stay in-process")
		return gochannel.NewGoChannel(gochannel.Config{}, wmLogger), nil
	}

	cfg := amqp.NewDurablePubSubConfig(amqpURL, amqp.GenerateQueueNameTopicNameWithSuffix("salonbook"))
	pub, err := amqp.NewPublisher(cfg, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("events: failed to create amqp publisher: %w", err)
	}
	return pub, nil
}

func (p *WatermillPublisher) PublishBookingEvent(ctx context.Context, event models.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: failed to encode %s: %w", event.Type, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("type", string(event.Type))
	msg.Metadata.Set("bookingId", event.BookingID)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("events: failed to publish %s: %w", event.Type, err)
	}
	p.logger.Debug("booking event published",
		zap.String("type", string(event.Type)),
		zap.String("bookingId", event.BookingID),
	)
	return nil
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}
