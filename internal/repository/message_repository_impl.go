package repository

import (
	"github.com/incorgnihealth/api/internal/domain/entity"
	domainRepo "github.com/incorgnihealth/api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type messageRepository struct{}

func NewMessageRepository() domainRepo.MessageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(db *gorm.DB, message *entity.Message) error {
	return db.Create(message).Error
}

func (r *messageRepository) FindByConsultationID(db *gorm.DB, consultationID uuid.UUID) ([]entity.Message, error) {
	var messages []entity.Message
	err := db.
		Where("consultation_id = ?", consultationID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) CountByConsultationID(db *gorm.DB, consultationID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Message{}).
		Where("consultation_id = ?", consultationID).
		Count(&count).Error
	return count, err
}
