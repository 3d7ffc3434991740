package repository

import (
	"errors"

	"github.com/incorgnihealth/api/internal/domain/entity"
	domainRepo "github.com/incorgnihealth/api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	return db.Create(user).Error
}

func (r *userRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByPublicID(db *gorm.DB, publicID string) (*entity.User, error) {
	var user entity.User
	err := db.Where("public_id = ?", publicID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByDataHash(db *gorm.DB, dataHash string) (*entity.User, error) {
	var user entity.User
	err := db.Where("data_hash = ?", dataHash).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByRefreshTokenHash(db *gorm.DB, tokenHash string) (*entity.User, error) {
	var user entity.User
	err := db.Where("refresh_token_hash = ?", tokenHash).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindIDsByRole(db *gorm.DB, role entity.Role, onlineOnly bool) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := db.Model(&entity.User{}).Where("role = ?", role)
	if onlineOnly {
		query = query.Where("is_online = ?", true)
	}
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *userRepository) Update(db *gorm.DB, user *entity.User) error {
	return db.Save(user).Error
}

func (r *userRepository) UpdateFields(db *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	return db.Model(&entity.User{}).Where("id = ?", id).Updates(fields).Error
}

// DebitWallet decrements the balance with the sufficiency check folded into
// the WHERE clause, so a racing debit cannot overdraw the wallet.
func (r *userRepository) DebitWallet(db *gorm.DB, id uuid.UUID, amount decimal.Decimal) (int64, error) {
	result := db.Model(&entity.User{}).
		Where("id = ? AND wallet_balance >= ?", id, amount).
		Update("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
	return result.RowsAffected, result.Error
}

func (r *userRepository) CreditWallet(db *gorm.DB, id uuid.UUID, amount decimal.Decimal) error {
	return db.Model(&entity.User{}).
		Where("id = ?", id).
		Update("wallet_balance", gorm.Expr("wallet_balance + ?", amount)).Error
}

func (r *userRepository) CountByRole(db *gorm.DB, role *entity.Role) (int64, error) {
	var count int64
	query := db.Model(&entity.User{})
	if role != nil {
		query = query.Where("role = ?", *role)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *userRepository) List(db *gorm.DB, filter domainRepo.UserFilter, limit, offset int) ([]entity.User, int64, error) {
	query := db.Model(&entity.User{})
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.Search != "" {
		query = query.Where("public_id LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
