package repository

import (
	"github.com/incorgnihealth/api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(db *gorm.DB, transaction *entity.Transaction) error
	FindByPayerID(db *gorm.DB, payerID uuid.UUID, limit, offset int) ([]entity.Transaction, int64, error)
	SumNetAmountByPayee(db *gorm.DB, payeeID uuid.UUID) (decimal.Decimal, error)
	SumPlatformFees(db *gorm.DB) (decimal.Decimal, error)
}
