package repository

import (
	"github.com/incorgnihealth/api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *entity.Notification) error
	FindByUserID(db *gorm.DB, userID uuid.UUID, limit, offset int) ([]entity.Notification, int64, error)
	CountUnread(db *gorm.DB, userID uuid.UUID) (int64, error)
	// MarkRead flips the read flag only if the notification belongs to the
	// user. Returns affected rows: 0 means not found or not owned.
	MarkRead(db *gorm.DB, id, userID uuid.UUID) (int64, error)
	MarkAllRead(db *gorm.DB, userID uuid.UUID) error
}
