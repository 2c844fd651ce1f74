package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bookingRepo "salonbook/database/repository/booking"
	"salonbook/models"
	"salonbook/services/notification"
	"salonbook/services/tasks"
	"salonbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingReader is what the worker needs to re-check a booking before
// reminding its customer.
type BookingReader interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
}

// ReminderWorker consumes reminder tasks from the asynq queue.
type ReminderWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

// NewReminderWorker builds the asynq server and registers the reminder handler.
func NewReminderWorker(redisOpts asynq.RedisClientOpt, bookings BookingReader, notifSvc notification.NotificationService, logger *zap.Logger) *ReminderWorker {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				tasks.ReminderQueue: 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(bookings, notifSvc, logger))

	return &ReminderWorker{srv: srv, mux: mux, logger: logger}
}

// Start runs the worker in the background, retrying start-up with backoff.
func (w *ReminderWorker) Start() {
	go func() {
		w.logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			w.logger.Warn("reminder worker failed to start",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err),
			)
			if attempts == maxAttempts {
				w.logger.Error("reminder worker gave up; reminders will not be delivered")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

// Shutdown stops pulling tasks and waits for in-flight handlers.
func (w *ReminderWorker) Shutdown() {
	w.srv.Shutdown()
}

func handleReminderTask(bookings BookingReader, notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.ReminderDeliveries.WithLabelValues("invalid").Inc()
			return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
		}

		b, err := bookings.GetByID(ctx, p.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrNotFound) {
				utils.ReminderDeliveries.WithLabelValues("skipped").Inc()
				return nil
			}
			return err
		}
		if b.IsDeleted || b.Status != models.StatusPending {
			logger.Debug("skipping reminder", zap.String("bookingId", b.ID), zap.String("status", string(b.Status)))
			utils.ReminderDeliveries.WithLabelValues("skipped").Inc()
			return nil
		}

		data := map[string]string{
			"bookingId": p.BookingID,
			"fireDate":  p.FireDate,
			"title":     p.Title,
			"body":      p.Body,
		}
		err = notifSvc.SendUserPushNotification(ctx, b.UserID, p.Title, p.Body, data)
		if errors.Is(err, notification.ErrNoDeviceToken) {
			utils.ReminderDeliveries.WithLabelValues("no_device").Inc()
			return nil
		}
		if err != nil {
			logger.Warn("failed to send reminder", zap.String("bookingId", b.ID), zap.Error(err))
			utils.ReminderDeliveries.WithLabelValues("failed").Inc()
			return err
		}
		utils.ReminderDeliveries.WithLabelValues("sent").Inc()
		return nil
	}
}
