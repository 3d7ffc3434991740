package repository

import (
	"github.com/incorgnihealth/api/internal/domain/entity"
	domainRepo "github.com/incorgnihealth/api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type transactionRepository struct{}

func NewTransactionRepository() domainRepo.TransactionRepository {
	return &transactionRepository{}
}

func (r *transactionRepository) Create(db *gorm.DB, transaction *entity.Transaction) error {
	return db.Create(transaction).Error
}

func (r *transactionRepository) FindByPayerID(db *gorm.DB, payerID uuid.UUID, limit, offset int) ([]entity.Transaction, int64, error) {
	query := db.Model(&entity.Transaction{}).Where("payer_id = ?", payerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []entity.Transaction
	err := query.
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

func (r *transactionRepository) SumNetAmountByPayee(db *gorm.DB, payeeID uuid.UUID) (decimal.Decimal, error) {
	return r.sum(db.Model(&entity.Transaction{}).Where("payee_id = ?", payeeID), "net_amount")
}

func (r *transactionRepository) SumPlatformFees(db *gorm.DB) (decimal.Decimal, error) {
	return r.sum(db.Model(&entity.Transaction{}), "platform_fee")
}

func (r *transactionRepository) sum(query *gorm.DB, column string) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := query.Select("SUM(" + column + ")").Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
