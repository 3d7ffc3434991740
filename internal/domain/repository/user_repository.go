package repository

import (
	"github.com/incorgnihealth/api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UserFilter struct {
	Role   *entity.Role
	Search string
}

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByPublicID(db *gorm.DB, publicID string) (*entity.User, error)
	FindByDataHash(db *gorm.DB, dataHash string) (*entity.User, error)
	FindByRefreshTokenHash(db *gorm.DB, tokenHash string) (*entity.User, error)
	FindIDsByRole(db *gorm.DB, role entity.Role, onlineOnly bool) ([]uuid.UUID, error)
	Update(db *gorm.DB, user *entity.User) error
	UpdateFields(db *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	// DebitWallet decrements the balance only if it covers the amount.
	// Returns affected rows: 0 means insufficient balance.
	DebitWallet(db *gorm.DB, id uuid.UUID, amount decimal.Decimal) (int64, error)
	CreditWallet(db *gorm.DB, id uuid.UUID, amount decimal.Decimal) error
	CountByRole(db *gorm.DB, role *entity.Role) (int64, error)
	List(db *gorm.DB, filter UserFilter, limit, offset int) ([]entity.User, int64, error)
}
