package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Role represents a user role in the system
type Role string

const (
	RolePatient    Role = "PATIENT"
	RoleDoctor     Role = "DOCTOR"
	RolePharmacist Role = "PHARMACIST"
	RoleRider      Role = "RIDER"
	RoleAdmin      Role = "ADMIN"
)

// User represents an anonymized platform actor. Users are identified
// externally by PublicID (the "Ghost ID"); the only linkage to a real-world
// identity is DataHash, a one-way SHA-256 of the phone number.
type User struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PublicID         string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"public_id"`
	Role             Role            `gorm:"type:varchar(20);not null;index" json:"role"`
	DataHash         string          `gorm:"type:varchar(64);index;not null" json:"-"`
	RefreshTokenHash string          `gorm:"type:varchar(64)" json:"-"`
	Nickname         string          `gorm:"type:varchar(30)" json:"nickname,omitempty"`
	Avatar           string          `gorm:"type:varchar(10)" json:"avatar,omitempty"`
	Age              *int            `json:"age,omitempty"`
	Sex              string          `gorm:"type:varchar(10)" json:"sex,omitempty"`
	IsOnline         bool            `gorm:"not null;default:false;index" json:"is_online"`
	Specialization   string          `gorm:"type:varchar(100)" json:"specialization,omitempty"`
	WalletBalance    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"wallet_balance"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
