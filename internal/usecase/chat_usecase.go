package usecase

import (
	"context"

	"github.com/incorgnihealth/api/internal/converter"
	"github.com/incorgnihealth/api/internal/delivery/dto"
	"github.com/incorgnihealth/api/internal/domain/entity"
	"github.com/incorgnihealth/api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ChatUsecase persists chat traffic arriving over the realtime relay. The
// write happens before the broadcast so a message a peer saw is always on
// disk.
type ChatUsecase interface {
	SaveMessage(ctx context.Context, consultationID, senderID uuid.UUID, content string) (*dto.MessageResponse, error)
}

type chatUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	messageRepo      repository.MessageRepository
	consultationRepo repository.ConsultationRepository
}

func NewChatUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	messageRepo repository.MessageRepository,
	consultationRepo repository.ConsultationRepository,
) ChatUsecase {
	return &chatUsecase{
		db:               db,
		log:              log,
		messageRepo:      messageRepo,
		consultationRepo: consultationRepo,
	}
}

func (u *chatUsecase) SaveMessage(ctx context.Context, consultationID, senderID uuid.UUID, content string) (*dto.MessageResponse, error) {
	consultation, err := u.consultationRepo.FindByID(u.db.WithContext(ctx), consultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", consultationID, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}
	if !consultation.IsParticipant(senderID) {
		return nil, ErrNotParticipant
	}

	message := &entity.Message{
		ConsultationID: consultationID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := u.messageRepo.Create(u.db.WithContext(ctx), message); err != nil {
		u.log.Warnf("Failed to persist chat message for consultation %s: %+v", consultationID, err)
		return nil, err
	}

	return converter.MessageToResponse(message), nil
}
