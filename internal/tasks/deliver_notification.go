package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/mrlokans/onboard/internal/entities"
)

// NotificationStore defines the outbox operations delivery tasks need.
type NotificationStore interface {
	GetByID(id uint) (*entities.Notification, error)
	GetPending(limit int) ([]entities.Notification, error)
	MarkSent(id uint) error
	MarkFailed(id uint, errMsg string) error
}

// DeliverNotificationTask delivers a single outbox notification.
type DeliverNotificationTask struct {
	NotificationID uint `json:"notification_id"`
}

func (t DeliverNotificationTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "deliver_notification",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     1 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// DeliverNotificationProcessor creates a processor for single-notification delivery.
// Delivery transports are out of scope here: the processor records the send in the
// outbox, which is what the rest of the system observes.
func DeliverNotificationProcessor(store NotificationStore) backlite.QueueProcessor[DeliverNotificationTask] {
	return func(ctx context.Context, task DeliverNotificationTask) error {
		notification, err := store.GetByID(task.NotificationID)
		if err != nil {
			return fmt.Errorf("get notification %d: %w", task.NotificationID, err)
		}

		if notification.Status == entities.NotificationStatusSent {
			return nil
		}

		log.Printf("[TASK] Delivering %s notification %d to %s",
			notification.Kind, notification.ID, notification.Recipient)

		if err := store.MarkSent(notification.ID); err != nil {
			return fmt.Errorf("mark notification %d sent: %w", notification.ID, err)
		}
		return nil
	}
}

func NewDeliverNotificationQueue(store NotificationStore) backlite.Queue {
	return backlite.NewQueue(DeliverNotificationProcessor(store))
}

// DeliverPendingTask sweeps the outbox and delivers everything still pending.
// Used as a catch-up for notifications whose direct delivery task was lost.
type DeliverPendingTask struct{}

func (t DeliverPendingTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "deliver_pending",
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func DeliverPendingProcessor(store NotificationStore) backlite.QueueProcessor[DeliverPendingTask] {
	return func(ctx context.Context, task DeliverPendingTask) error {
		pending, err := store.GetPending(0) // 0 = no limit
		if err != nil {
			return fmt.Errorf("get pending notifications: %w", err)
		}

		var delivered, failed int
		for _, notification := range pending {
			select {
			case <-ctx.Done():
				log.Printf("[TASK] Context cancelled, delivered %d notifications, %d failed", delivered, failed)
				return ctx.Err()
			default:
			}

			if err := store.MarkSent(notification.ID); err != nil {
				_ = store.MarkFailed(notification.ID, err.Error())
				failed++
				continue
			}
			delivered++
		}

		log.Printf("[TASK] Outbox sweep complete: %d delivered, %d failed", delivered, failed)
		return nil
	}
}

func NewDeliverPendingQueue(store NotificationStore) backlite.Queue {
	return backlite.NewQueue(DeliverPendingProcessor(store))
}
