package notification

import (
	"context"
	"errors"
	"fmt"

	"salonbook/services/user"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// ErrNoDeviceToken is returned when the user has not registered a device.
var ErrNoDeviceToken = errors.New("user has no FCM token")

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// MessageSender is satisfied by *messaging.Client.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// logSender stands in for FCM when no credentials are configured.
type logSender struct {
	logger *zap.Logger
}

func (s logSender) Send(_ context.Context, msg *messaging.Message) (string, error) {
	title := ""
	if msg.Notification != nil {
		title = msg.Notification.Title
	}
	s.logger.Info("push notification (FCM disabled)", zap.String("title", title), zap.Any("data", msg.Data))
	return "logged", nil
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	user   user.UserService
	sender MessageSender
	logger *zap.Logger
}

// NewDefaultNotificationService wires the user directory and FCM client.
// A nil sender logs notifications instead of sending them.
func NewDefaultNotificationService(userSvc user.UserService, sender MessageSender, logger *zap.Logger) (*DefaultNotificationService, error) {
	if userSvc == nil {
		return nil, fmt.Errorf("notification service initialization error: user service is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if sender == nil {
		sender = logSender{logger: logger}
	}
	return &DefaultNotificationService{user: userSvc, sender: sender, logger: logger}, nil
}

// SendUserPushNotification looks up a user's FCM token and sends a push.
func (s *DefaultNotificationService) SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	u, err := s.user.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: could not find user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return fmt.Errorf("SendUserPushNotification: user %s: %w", userID, ErrNoDeviceToken)
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	response, err := s.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: failed to send FCM message: %w", err)
	}
	s.logger.Debug("push sent", zap.String("userId", userID), zap.String("messageId", response))
	return nil
}
