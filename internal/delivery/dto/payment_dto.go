package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type PayRequest struct {
	Amount  float64 `json:"amount" validate:"required,gt=0"`
	Type    string  `json:"type" validate:"required,oneof=CONSULTATION MEDICATION"`
	PayeeID *string `json:"payee_id" validate:"omitempty,uuid"`
}

// Response DTOs

type TransactionResponse struct {
	ID          uuid.UUID  `json:"id"`
	PayerID     uuid.UUID  `json:"payer_id"`
	PayeeID     *uuid.UUID `json:"payee_id"`
	Amount      string     `json:"amount"`
	PlatformFee string     `json:"platform_fee"`
	NetAmount   string     `json:"net_amount"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}
