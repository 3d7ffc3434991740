package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus represents the fulfillment stage of an order
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusProcessing     OrderStatus = "PROCESSING"
	OrderStatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	OrderStatusPickedUp       OrderStatus = "PICKED_UP"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
)

// orderSequence is the only legal progression. No skips, no rollbacks.
var orderSequence = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusReadyForPickup,
	OrderStatusPickedUp,
	OrderStatusDelivered,
}

// NextStatus returns the successor of s in the fulfillment sequence,
// or false if s is terminal or unknown.
func NextStatus(s OrderStatus) (OrderStatus, bool) {
	for i, st := range orderSequence {
		if st == s && i+1 < len(orderSequence) {
			return orderSequence[i+1], true
		}
	}
	return "", false
}

// CanTransition reports whether from→to is a single legal step.
func CanTransition(from, to OrderStatus) bool {
	next, ok := NextStatus(from)
	return ok && next == to
}

// Order represents physical fulfillment of a prescription. PharmacyID and
// RiderID are each set exactly once by the first actor to claim that stage;
// the repository enforces this with conditional updates. SecureCode is a
// 4-digit handover secret compared verbatim at delivery.
type Order struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PublicOrderID  string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"public_order_id"`
	PrescriptionID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"prescription_id"`
	PatientID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"patient_id"`
	PharmacyID     *uuid.UUID     `gorm:"type:uuid;index" json:"pharmacy_id"`
	RiderID        *uuid.UUID     `gorm:"type:uuid;index" json:"rider_id"`
	SecureCode     string         `gorm:"type:varchar(8);not null" json:"-"`
	Status         OrderStatus    `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Patient      *User         `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Prescription *Prescription `gorm:"foreignKey:PrescriptionID" json:"prescription,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// HandledBy reports whether the pharmacy owns this order.
func (o *Order) HandledBy(pharmacyID uuid.UUID) bool {
	return o.PharmacyID != nil && *o.PharmacyID == pharmacyID
}

// CarriedBy reports whether the rider owns this delivery.
func (o *Order) CarriedBy(riderID uuid.UUID) bool {
	return o.RiderID != nil && *o.RiderID == riderID
}
