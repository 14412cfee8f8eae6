package outbox

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/onboard/internal/entities"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Repository handles the notification outbox table.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new outbox repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Enqueue persists a pending notification.
func (r *Repository) Enqueue(notification *entities.Notification) error {
	if notification.Status == "" {
		notification.Status = entities.NotificationStatusPending
	}
	if err := r.db.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	return nil
}

// GetByID retrieves a notification by ID.
func (r *Repository) GetByID(id uint) (*entities.Notification, error) {
	var notification entities.Notification
	err := r.db.First(&notification, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

// GetPending returns pending notifications, oldest first.
// A limit of 0 returns all pending rows.
func (r *Repository) GetPending(limit int) ([]entities.Notification, error) {
	var notifications []entities.Notification
	query := r.db.Where("status = ?", entities.NotificationStatusPending).Order("created_at ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending notifications: %w", err)
	}
	return notifications, nil
}

// MarkSent transitions a notification to sent and stamps the send time.
func (r *Repository) MarkSent(id uint) error {
	now := time.Now()
	result := r.db.Model(&entities.Notification{}).Where("id = ?", id).Updates(map[string]any{
		"status":    entities.NotificationStatusSent,
		"sent_at":   now,
		"error_msg": "",
	})
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification sent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkFailed records a delivery failure.
func (r *Repository) MarkFailed(id uint, errMsg string) error {
	if len(errMsg) > 500 {
		errMsg = errMsg[:497] + "..."
	}
	result := r.db.Model(&entities.Notification{}).Where("id = ?", id).Updates(map[string]any{
		"status":    entities.NotificationStatusFailed,
		"error_msg": errMsg,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
