package repository

import (
	"testing"

	"github.com/incorgnihealth/api/internal/domain/entity"
	domainRepo "github.com/incorgnihealth/api/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebitWallet(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository()

	user := createUser(t, db, entity.RolePatient)
	require.NoError(t, repo.UpdateFields(db, user.ID, map[string]interface{}{
		"wallet_balance": decimal.NewFromInt(100),
	}))

	t.Run("debit within balance succeeds", func(t *testing.T) {
		affected, err := repo.DebitWallet(db, user.ID, decimal.NewFromInt(60))
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		got, err := repo.FindByID(db, user.ID)
		require.NoError(t, err)
		assert.True(t, got.WalletBalance.Equal(decimal.NewFromInt(40)))
	})

	t.Run("debit beyond balance affects nothing", func(t *testing.T) {
		affected, err := repo.DebitWallet(db, user.ID, decimal.NewFromInt(50))
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)

		got, err := repo.FindByID(db, user.ID)
		require.NoError(t, err)
		assert.True(t, got.WalletBalance.Equal(decimal.NewFromInt(40)))
	})
}

func TestCreditWallet(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository()

	user := createUser(t, db, entity.RoleDoctor)
	require.NoError(t, repo.CreditWallet(db, user.ID, decimal.NewFromFloat(47.50)))

	got, err := repo.FindByID(db, user.ID)
	require.NoError(t, err)
	assert.True(t, got.WalletBalance.Equal(decimal.NewFromFloat(47.50)))
}

func TestFindIDsByRole(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository()

	online := createUser(t, db, entity.RoleDoctor)
	require.NoError(t, repo.UpdateFields(db, online.ID, map[string]interface{}{"is_online": true}))
	offline := createUser(t, db, entity.RoleDoctor)
	createUser(t, db, entity.RolePatient)

	all, err := repo.FindIDsByRole(db, entity.RoleDoctor, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlineOnly, err := repo.FindIDsByRole(db, entity.RoleDoctor, true)
	require.NoError(t, err)
	require.Len(t, onlineOnly, 1)
	assert.Equal(t, online.ID, onlineOnly[0])
	assert.NotEqual(t, offline.ID, onlineOnly[0])
}

func TestFindByDataHash(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository()

	user := createUser(t, db, entity.RolePatient)

	got, err := repo.FindByDataHash(db, user.DataHash)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)

	missing, err := repo.FindByDataHash(db, "no-such-hash")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindByPublicID(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository()

	user := createUser(t, db, entity.RolePatient)

	got, err := repo.FindByPublicID(db, user.PublicID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)

	missing, err := repo.FindByPublicID(db, "#GH-0000-LAG")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserList(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository()

	createUser(t, db, entity.RolePatient)
	doctor := createUser(t, db, entity.RoleDoctor)

	role := entity.RoleDoctor
	users, total, err := repo.List(db, domainRepo.UserFilter{Role: &role}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, doctor.ID, users[0].ID)
}
