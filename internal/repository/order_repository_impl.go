package repository

import (
	"errors"

	"github.com/incorgnihealth/api/internal/domain/entity"
	domainRepo "github.com/incorgnihealth/api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRepository struct{}

func NewOrderRepository() domainRepo.OrderRepository {
	return &orderRepository{}
}

func (r *orderRepository) Create(db *gorm.DB, order *entity.Order) error {
	return db.Create(order).Error
}

func (r *orderRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := db.Preload("Prescription").Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Accept atomically claims a pending order for the pharmacy. The status
// precondition is part of the WHERE clause: the first UPDATE to land wins,
// every later one affects zero rows.
func (r *orderRepository) Accept(db *gorm.DB, id, pharmacyID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Order{}).
		Where("id = ? AND status = ?", id, entity.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":      entity.OrderStatusProcessing,
			"pharmacy_id": pharmacyID,
		})
	return result.RowsAffected, result.Error
}

func (r *orderRepository) MarkReady(db *gorm.DB, id, pharmacyID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Order{}).
		Where("id = ? AND status = ? AND pharmacy_id = ?", id, entity.OrderStatusProcessing, pharmacyID).
		Update("status", entity.OrderStatusReadyForPickup)
	return result.RowsAffected, result.Error
}

func (r *orderRepository) Pickup(db *gorm.DB, id, riderID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Order{}).
		Where("id = ? AND status = ? AND rider_id IS NULL", id, entity.OrderStatusReadyForPickup).
		Updates(map[string]interface{}{
			"status":   entity.OrderStatusPickedUp,
			"rider_id": riderID,
		})
	return result.RowsAffected, result.Error
}

func (r *orderRepository) Deliver(db *gorm.DB, id, riderID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Order{}).
		Where("id = ? AND status = ? AND rider_id = ?", id, entity.OrderStatusPickedUp, riderID).
		Update("status", entity.OrderStatusDelivered)
	return result.RowsAffected, result.Error
}

func (r *orderRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, limit, offset int) ([]entity.Order, int64, error) {
	query := db.Model(&entity.Order{}).Where("patient_id = ?", patientID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []entity.Order
	err := query.
		Preload("Prescription").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) FindByStatus(db *gorm.DB, status *entity.OrderStatus) ([]entity.Order, error) {
	query := db.Preload("Prescription").Preload("Patient")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var orders []entity.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByPharmacyID(db *gorm.DB, pharmacyID uuid.UUID) ([]entity.Order, error) {
	var orders []entity.Order
	err := db.
		Preload("Prescription").
		Preload("Patient").
		Where("pharmacy_id = ?", pharmacyID).
		Order("updated_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindAvailableForPickup(db *gorm.DB) ([]entity.Order, error) {
	var orders []entity.Order
	err := db.
		Preload("Prescription").
		Preload("Patient").
		Where("status = ? AND rider_id IS NULL", entity.OrderStatusReadyForPickup).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByRiderID(db *gorm.DB, riderID uuid.UUID) ([]entity.Order, error) {
	var orders []entity.Order
	err := db.
		Preload("Prescription").
		Preload("Patient").
		Where("rider_id = ?", riderID).
		Order("updated_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Order{}).Count(&count).Error
	return count, err
}

func (r *orderRepository) List(db *gorm.DB, status *entity.OrderStatus, limit, offset int) ([]entity.Order, int64, error) {
	query := db.Model(&entity.Order{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []entity.Order
	err := query.
		Preload("Prescription").
		Preload("Patient").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
