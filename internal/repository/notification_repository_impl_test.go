package repository

import (
	"testing"

	"github.com/incorgnihealth/api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationMarkRead(t *testing.T) {
	db := testDB(t)
	repo := NewNotificationRepository()

	owner := createUser(t, db, entity.RolePatient)
	stranger := createUser(t, db, entity.RolePatient)

	notification := &entity.Notification{
		UserID: owner.ID,
		Type:   entity.NotificationTypeOrder,
		Title:  "Order ready",
		Body:   "Order #ORD-1234 is ready for pickup!",
	}
	require.NoError(t, repo.Create(db, notification))

	// Someone else's mark is a miss, not a mutation.
	affected, err := repo.MarkRead(db, notification.ID, stranger.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	unread, err := repo.CountUnread(db, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	affected, err = repo.MarkRead(db, notification.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	unread, err = repo.CountUnread(db, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}

func TestNotificationMarkAllRead(t *testing.T) {
	db := testDB(t)
	repo := NewNotificationRepository()

	owner := createUser(t, db, entity.RoleRider)
	other := createUser(t, db, entity.RoleRider)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(db, &entity.Notification{
			UserID: owner.ID,
			Type:   entity.NotificationTypeSystem,
			Title:  "Ping",
			Body:   "Hello",
		}))
	}
	require.NoError(t, repo.Create(db, &entity.Notification{
		UserID: other.ID,
		Type:   entity.NotificationTypeSystem,
		Title:  "Ping",
		Body:   "Hello",
	}))

	require.NoError(t, repo.MarkAllRead(db, owner.ID))

	unread, err := repo.CountUnread(db, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	otherUnread, err := repo.CountUnread(db, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), otherUnread)
}
