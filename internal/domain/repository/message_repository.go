package repository

import (
	"github.com/incorgnihealth/api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(db *gorm.DB, message *entity.Message) error
	FindByConsultationID(db *gorm.DB, consultationID uuid.UUID) ([]entity.Message, error)
	CountByConsultationID(db *gorm.DB, consultationID uuid.UUID) (int64, error)
}
