package repository

import (
	"fmt"
	"testing"

	"github.com/incorgnihealth/api/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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
