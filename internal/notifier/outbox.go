package notifier

import (
	"fmt"

	"github.com/mrlokans/onboard/internal/entities"
)

// Outbox persists notifications for later delivery.
type Outbox interface {
	Enqueue(notification *entities.Notification) error
}

// OutboxNotifier satisfies the registration.Notifier capability by
// writing a welcome notification to the outbox. Actual delivery happens
// asynchronously in the task queue, so registration never waits on a
// transport.
type OutboxNotifier struct {
	outbox Outbox
}

// NewOutboxNotifier creates a notifier backed by the given outbox.
func NewOutboxNotifier(outbox Outbox) *OutboxNotifier {
	return &OutboxNotifier{outbox: outbox}
}

// Notify enqueues the welcome notification for a freshly registered user.
func (n *OutboxNotifier) Notify(user *entities.User) error {
	notification := &entities.Notification{
		UserID:    user.ID,
		Kind:      entities.NotificationWelcome,
		Recipient: user.Email,
		Subject:   "Welcome to Onboard",
		Body:      fmt.Sprintf("Hi %s, your account is ready.", user.Username),
		Status:    entities.NotificationStatusPending,
	}

	if err := n.outbox.Enqueue(notification); err != nil {
		return fmt.Errorf("failed to enqueue welcome notification: %w", err)
	}
	return nil
}
