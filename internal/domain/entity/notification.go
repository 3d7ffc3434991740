package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType categorizes an in-app notification
type NotificationType string

const (
	NotificationTypeConsultation NotificationType = "CONSULTATION"
	NotificationTypePrescription NotificationType = "PRESCRIPTION"
	NotificationTypeOrder        NotificationType = "ORDER"
	NotificationTypeSystem       NotificationType = "SYSTEM"
)

// Notification is a best-effort, fire-and-forget in-app record. The read
// flag is its only mutable state.
type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Title     string           `gorm:"type:varchar(120);not null" json:"title"`
	Body      string           `gorm:"type:text;not null" json:"body"`
	Read      bool             `gorm:"not null;default:false;index" json:"read"`
	CreatedAt time.Time        `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
