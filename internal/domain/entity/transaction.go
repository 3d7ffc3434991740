package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType classifies what a wallet payment was for
type TransactionType string

const (
	TransactionTypeConsultation TransactionType = "CONSULTATION"
	TransactionTypeMedication   TransactionType = "MEDICATION"
)

// TransactionStatus is the outcome recorded on the ledger row
type TransactionStatus string

const (
	TransactionStatusSuccess TransactionStatus = "SUCCESS"
	TransactionStatusFailed  TransactionStatus = "FAILED"
)

// Transaction records one wallet movement. Rows are immutable after creation
// and are always written in the same database transaction as the balance
// debit/credit they describe.
type Transaction struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	PayerID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"payer_id"`
	PayeeID     *uuid.UUID        `gorm:"type:uuid;index" json:"payee_id"`
	Amount      decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"amount"`
	PlatformFee decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"platform_fee"`
	NetAmount   decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"net_amount"`
	Type        TransactionType   `gorm:"type:varchar(20);not null" json:"type"`
	Status      TransactionStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt   time.Time         `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
