package service

import (
	"context"

	"github.com/incorgnihealth/api/internal/domain/entity"
	"github.com/incorgnihealth/api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Notifier records best-effort in-app notifications. A lost notification is
// never a caller-visible failure: both methods log and swallow storage
// errors so the lifecycle transition that triggered them cannot be rolled
// back by a notification outage.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, notifType entity.NotificationType, title, body string)
	// NotifyRole fans out one notification per user with the given role.
	// At-most-once, best-effort; no recipient is guaranteed to see it.
	NotifyRole(ctx context.Context, role entity.Role, onlineOnly bool, notifType entity.NotificationType, title, body string)
}

type notifier struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

func NewNotifier(
	db *gorm.DB,
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
) Notifier {
	return &notifier{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

func (n *notifier) Notify(ctx context.Context, userID uuid.UUID, notifType entity.NotificationType, title, body string) {
	notification := &entity.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
	}

	if err := n.notificationRepo.Create(n.db.WithContext(ctx), notification); err != nil {
		n.log.Warnf("Failed to create notification for user %s (non-fatal): %+v", userID, err)
	}
}

func (n *notifier) NotifyRole(ctx context.Context, role entity.Role, onlineOnly bool, notifType entity.NotificationType, title, body string) {
	ids, err := n.userRepo.FindIDsByRole(n.db.WithContext(ctx), role, onlineOnly)
	if err != nil {
		n.log.Warnf("Failed to resolve %s recipients (non-fatal): %+v", role, err)
		return
	}

	for _, id := range ids {
		n.Notify(ctx, id, notifType, title, body)
	}
}
