package entities

import (
	"time"

	"gorm.io/gorm"
)

type UserStatus string

const (
	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:100" json:"username"`
	Email        string         `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string         `gorm:"size:100" json:"-"`
	Status       UserStatus     `gorm:"size:20;default:pending" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type NotificationKind string

const (
	NotificationWelcome NotificationKind = "welcome"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// Notification is an outbox row. Rows are written during registration and
// delivered later by the background task queue.
type Notification struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	UserID    uint               `gorm:"index" json:"user_id"`
	Kind      NotificationKind   `gorm:"size:50" json:"kind"`
	Recipient string             `gorm:"size:255" json:"recipient"`
	Subject   string             `gorm:"size:255" json:"subject"`
	Body      string             `gorm:"size:2048" json:"body"`
	Status    NotificationStatus `gorm:"index;size:20;default:pending" json:"status"`
	ErrorMsg  string             `gorm:"size:500" json:"error_msg,omitempty"`
	SentAt    *time.Time         `json:"sent_at,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

type AuditEventType string

const (
	AuditEventRegistration AuditEventType = "registration"
	AuditEventExport       AuditEventType = "export"
	AuditEventNotification AuditEventType = "notification"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action      string         `gorm:"index;size:100" json:"action"`
	Description string         `gorm:"size:1024" json:"description,omitempty"`
	EntityType  string         `gorm:"size:50" json:"entity_type,omitempty"`
	EntityID    *uint          `json:"entity_id,omitempty"`
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}
