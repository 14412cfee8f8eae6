package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/onboard/internal/entities"
)

type fakeNotificationStore struct {
	notifications map[uint]*entities.Notification
	markSentErr   error
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{notifications: make(map[uint]*entities.Notification)}
}

func (s *fakeNotificationStore) add(id uint, status entities.NotificationStatus) {
	s.notifications[id] = &entities.Notification{
		UserID:    id,
		Kind:      entities.NotificationWelcome,
		Recipient: "user@example.com",
		Status:    status,
	}
	s.notifications[id].ID = id
}

func (s *fakeNotificationStore) GetByID(id uint) (*entities.Notification, error) {
	notification, ok := s.notifications[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return notification, nil
}

func (s *fakeNotificationStore) GetPending(limit int) ([]entities.Notification, error) {
	var pending []entities.Notification
	for _, notification := range s.notifications {
		if notification.Status == entities.NotificationStatusPending {
			pending = append(pending, *notification)
		}
		if limit > 0 && len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (s *fakeNotificationStore) MarkSent(id uint) error {
	if s.markSentErr != nil {
		return s.markSentErr
	}
	now := time.Now()
	s.notifications[id].Status = entities.NotificationStatusSent
	s.notifications[id].SentAt = &now
	return nil
}

func (s *fakeNotificationStore) MarkFailed(id uint, errMsg string) error {
	s.notifications[id].Status = entities.NotificationStatusFailed
	s.notifications[id].ErrorMsg = errMsg
	return nil
}

func TestDeliverNotificationProcessor(t *testing.T) {
	t.Run("marks a pending notification sent", func(t *testing.T) {
		store := newFakeNotificationStore()
		store.add(1, entities.NotificationStatusPending)
		processor := DeliverNotificationProcessor(store)

		err := processor(context.Background(), DeliverNotificationTask{NotificationID: 1})

		require.NoError(t, err)
		assert.Equal(t, entities.NotificationStatusSent, store.notifications[1].Status)
		assert.NotNil(t, store.notifications[1].SentAt)
	})

	t.Run("already sent notification is a no-op", func(t *testing.T) {
		store := newFakeNotificationStore()
		store.add(1, entities.NotificationStatusSent)
		store.markSentErr = errors.New("should not be called")
		processor := DeliverNotificationProcessor(store)

		err := processor(context.Background(), DeliverNotificationTask{NotificationID: 1})

		require.NoError(t, err)
	})

	t.Run("missing notification fails so the queue retries", func(t *testing.T) {
		store := newFakeNotificationStore()
		processor := DeliverNotificationProcessor(store)

		err := processor(context.Background(), DeliverNotificationTask{NotificationID: 42})

		assert.Error(t, err)
	})
}

func TestDeliverPendingProcessor(t *testing.T) {
	t.Run("drains all pending notifications", func(t *testing.T) {
		store := newFakeNotificationStore()
		store.add(1, entities.NotificationStatusPending)
		store.add(2, entities.NotificationStatusPending)
		store.add(3, entities.NotificationStatusSent)
		processor := DeliverPendingProcessor(store)

		err := processor(context.Background(), DeliverPendingTask{})

		require.NoError(t, err)
		assert.Equal(t, entities.NotificationStatusSent, store.notifications[1].Status)
		assert.Equal(t, entities.NotificationStatusSent, store.notifications[2].Status)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		store := newFakeNotificationStore()
		store.add(1, entities.NotificationStatusPending)
		processor := DeliverPendingProcessor(store)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := processor(ctx, DeliverPendingTask{})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, entities.NotificationStatusPending, store.notifications[1].Status)
	})
}
