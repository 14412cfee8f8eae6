package audit

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/onboard/internal/entities"
)

// Repository handles audit event persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new audit repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent persists a single audit event.
func (r *Repository) LogEvent(event *entities.AuditEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("failed to log audit event: %w", err)
	}
	return nil
}

// GetEvents retrieves paginated audit events, newest first.
func (r *Repository) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	var total int64
	if err := r.db.Model(&entities.AuditEvent{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []entities.AuditEvent
	err := r.db.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// GetEventsByType retrieves audit events filtered by type, newest first.
func (r *Repository) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	query := r.db.Model(&entities.AuditEvent{}).Where("event_type = ?", eventType)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []entities.AuditEvent
	err := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// DeleteOldEvents removes events created before the cutoff.
// Returns the number of deleted rows.
func (r *Repository) DeleteOldEvents(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&entities.AuditEvent{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old audit events: %w", result.Error)
	}
	return result.RowsAffected, nil
}
