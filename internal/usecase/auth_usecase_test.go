package usecase

import (
	"testing"

	"github.com/incorgnihealth/api/internal/domain/entity"
	domainRepo "github.com/incorgnihealth/api/internal/domain/repository"
	"github.com/incorgnihealth/api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// collidingUserRepo makes the first n inserts fail with a duplicate-key
// error, simulating a concurrent signup landing the same Ghost ID.
type collidingUserRepo struct {
	domainRepo.UserRepository
	collisions int
}

func (r *collidingUserRepo) Create(db *gorm.DB, user *entity.User) error {
	if r.collisions > 0 {
		r.collisions--
		return gorm.ErrDuplicatedKey
	}
	return r.UserRepository.Create(db, user)
}

func TestCreateWithFreshGhostIDRetriesOnCollision(t *testing.T) {
	env := newTestEnv(t)
	repo := &collidingUserRepo{UserRepository: repository.NewUserRepository(), collisions: 2}

	user := &entity.User{Role: entity.RolePatient, DataHash: "hash-collision"}
	require.NoError(t, createWithFreshGhostID(env.db, repo, user))
	assert.Regexp(t, `^#GH-\d{4}-LAG$`, user.PublicID)

	stored, err := repo.FindByDataHash(env.db, "hash-collision")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, user.PublicID, stored.PublicID)
}

func TestCreateWithFreshGhostIDGivesUpEventually(t *testing.T) {
	env := newTestEnv(t)
	repo := &collidingUserRepo{UserRepository: repository.NewUserRepository(), collisions: ghostIDAttempts + 1}

	user := &entity.User{Role: entity.RolePatient, DataHash: "hash-exhausted"}
	err := createWithFreshGhostID(env.db, repo, user)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	stored, findErr := repo.FindByDataHash(env.db, "hash-exhausted")
	require.NoError(t, findErr)
	assert.Nil(t, stored)
}

func TestCreateWithFreshGhostIDStopsOnOtherErrors(t *testing.T) {
	env := newTestEnv(t)
	repo := repository.NewUserRepository()

	// A non-duplicate failure surfaces immediately instead of burning
	// retries. Simulated with a closed transaction.
	tx := env.db.Begin()
	require.NoError(t, tx.Rollback().Error)

	user := &entity.User{Role: entity.RolePatient, DataHash: "hash-broken"}
	assert.Error(t, createWithFreshGhostID(tx, repo, user))
}
