package repository

import (
	"github.com/incorgnihealth/api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository persists orders. Every lifecycle transition is a single
// conditional UPDATE whose WHERE clause encodes the precondition; the
// returned affected-row count is the arbiter of races (0 = precondition no
// longer holds, caller maps that to a conflict).
type OrderRepository interface {
	Create(db *gorm.DB, order *entity.Order) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Order, error)
	// Accept: PENDING → PROCESSING, sets pharmacy_id.
	Accept(db *gorm.DB, id, pharmacyID uuid.UUID) (int64, error)
	// MarkReady: PROCESSING → READY_FOR_PICKUP, only for the owning pharmacy.
	MarkReady(db *gorm.DB, id, pharmacyID uuid.UUID) (int64, error)
	// Pickup: READY_FOR_PICKUP → PICKED_UP, sets rider_id.
	Pickup(db *gorm.DB, id, riderID uuid.UUID) (int64, error)
	// Deliver: PICKED_UP → DELIVERED, only for the owning rider. The secure
	// code is checked by the caller before this is issued.
	Deliver(db *gorm.DB, id, riderID uuid.UUID) (int64, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, limit, offset int) ([]entity.Order, int64, error)
	FindByStatus(db *gorm.DB, status *entity.OrderStatus) ([]entity.Order, error)
	FindByPharmacyID(db *gorm.DB, pharmacyID uuid.UUID) ([]entity.Order, error)
	FindAvailableForPickup(db *gorm.DB) ([]entity.Order, error)
	FindByRiderID(db *gorm.DB, riderID uuid.UUID) ([]entity.Order, error)
	Count(db *gorm.DB) (int64, error)
	List(db *gorm.DB, status *entity.OrderStatus, limit, offset int) ([]entity.Order, int64, error)
}
