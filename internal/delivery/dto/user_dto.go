package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type UpdateProfileRequest struct {
	Nickname *string `json:"nickname" validate:"omitempty,max=30"`
	Avatar   *string `json:"avatar" validate:"omitempty,max=10"`
	Age      *int    `json:"age" validate:"omitempty,gte=1,lte=150"`
	Sex      *string `json:"sex" validate:"omitempty,oneof=Male Female Other"`
}

type AvailabilityRequest struct {
	IsOnline       *bool   `json:"is_online" validate:"required"`
	Specialization *string `json:"specialization" validate:"omitempty,max=100"`
}

// Response DTOs

type UserResponse struct {
	ID             uuid.UUID       `json:"id"`
	PublicID       string          `json:"public_id"`
	Role           string          `json:"role"`
	Nickname       string          `json:"nickname,omitempty"`
	Avatar         string          `json:"avatar,omitempty"`
	Age            *int            `json:"age,omitempty"`
	Sex            string          `json:"sex,omitempty"`
	IsOnline       bool            `json:"is_online"`
	Specialization string          `json:"specialization,omitempty"`
	WalletBalance  decimal.Decimal `json:"wallet_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

// UserSummary is the anonymized shape embedded in consultations and orders.
type UserSummary struct {
	ID             uuid.UUID `json:"id"`
	PublicID       string    `json:"public_id"`
	Nickname       string    `json:"nickname,omitempty"`
	Avatar         string    `json:"avatar,omitempty"`
	Age            *int      `json:"age,omitempty"`
	Sex            string    `json:"sex,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
}
