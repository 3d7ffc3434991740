package usecase

import (
	"context"
	"errors"

	"github.com/incorgnihealth/api/internal/converter"
	"github.com/incorgnihealth/api/internal/delivery/dto"
	"github.com/incorgnihealth/api/internal/delivery/http/middleware"
	"github.com/incorgnihealth/api/internal/domain/repository"
	"github.com/incorgnihealth/api/pkg/pagination"
	"github.com/incorgnihealth/api/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationUsecase interface {
	List(ctx context.Context, params pagination.Params) (*dto.NotificationListResponse, *response.Meta, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context) error
}

type notificationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotificationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
) NotificationUsecase {
	return &notificationUsecase{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
	}
}

func (u *notificationUsecase) List(ctx context.Context, params pagination.Params) (*dto.NotificationListResponse, *response.Meta, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, nil, errors.New("user not found in context")
	}

	db := u.db.WithContext(ctx)

	notifications, total, err := u.notificationRepo.FindByUserID(db, userID, params.Limit, params.Offset())
	if err != nil {
		u.log.Warnf("Failed to list notifications for %s: %+v", userID, err)
		return nil, nil, err
	}

	unread, err := u.notificationRepo.CountUnread(db, userID)
	if err != nil {
		u.log.Warnf("Failed to count unread notifications for %s: %+v", userID, err)
		return nil, nil, err
	}

	return &dto.NotificationListResponse{
		Notifications: converter.NotificationsToResponses(notifications),
		UnreadCount:   unread,
	}, response.NewMeta(params.Page, params.Limit, total), nil
}

// MarkRead is scoped to the owner inside the update itself, so marking
// someone else's notification reads as not found.
func (u *notificationUsecase) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	affected, err := u.notificationRepo.MarkRead(u.db.WithContext(ctx), notificationID, userID)
	if err != nil {
		u.log.Warnf("Failed to mark notification %s read: %+v", notificationID, err)
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	if err := u.notificationRepo.MarkAllRead(u.db.WithContext(ctx), userID); err != nil {
		u.log.Warnf("Failed to mark all notifications read for %s: %+v", userID, err)
		return err
	}
	return nil
}
