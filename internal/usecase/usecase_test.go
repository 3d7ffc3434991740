package usecase

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/incorgnihealth/api/internal/delivery/http/middleware"
	"github.com/incorgnihealth/api/internal/domain/entity"
	"github.com/incorgnihealth/api/internal/repository"
	"github.com/incorgnihealth/api/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Usecase tests run against real repositories and an in-memory database so
// they exercise the same conditional updates production runs on.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Consultation{},
		&entity.Message{},
		&entity.Prescription{},
		&entity.Order{},
		&entity.Notification{},
		&entity.Transaction{},
	))

	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type testEnv struct {
	db       *gorm.DB
	log      *logrus.Logger
	notifier service.Notifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	log := testLogger()
	return &testEnv{db: db, log: log, notifier: testNotifier(db, log)}
}

func testNotifier(db *gorm.DB, log *logrus.Logger) service.Notifier {
	return service.NewNotifier(db, log, repository.NewNotificationRepository(), repository.NewUserRepository())
}

func createUser(t *testing.T, db *gorm.DB, role entity.Role) *entity.User {
	t.Helper()

	suffix := uuid.NewString()[:8]
	user := &entity.User{
		PublicID: fmt.Sprintf("#GH-%s-LAG", suffix),
		Role:     role,
		DataHash: "hash-" + suffix,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func authedCtx(userID uuid.UUID, role entity.Role) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, middleware.RoleKey, role)
	return ctx
}

func countNotifications(t *testing.T, db *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&entity.Notification{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}
