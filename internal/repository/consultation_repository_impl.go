package repository

import (
	"errors"

	"github.com/incorgnihealth/api/internal/domain/entity"
	domainRepo "github.com/incorgnihealth/api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type consultationRepository struct{}

func NewConsultationRepository() domainRepo.ConsultationRepository {
	return &consultationRepository{}
}

func (r *consultationRepository) Create(db *gorm.DB, consultation *entity.Consultation) error {
	return db.Create(consultation).Error
}

func (r *consultationRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error) {
	var consultation entity.Consultation
	err := db.Where("id = ?", id).First(&consultation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &consultation, nil
}

func (r *consultationRepository) FindByIDWithDetails(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error) {
	var consultation entity.Consultation
	err := db.
		Preload("Patient").
		Preload("Doctor").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.created_at ASC")
		}).
		Preload("Prescriptions").
		Where("id = ?", id).
		First(&consultation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &consultation, nil
}

// Claim atomically assigns the doctor: the compare-and-swap on doctor_id
// lives in the WHERE clause, so the database is the sole arbiter of racing
// claims. Re-claiming by the already-assigned doctor is a no-op success.
func (r *consultationRepository) Claim(db *gorm.DB, id, doctorID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Consultation{}).
		Where("id = ? AND (doctor_id IS NULL OR doctor_id = ?)", id, doctorID).
		Updates(map[string]interface{}{
			"doctor_id": doctorID,
			"status":    entity.ConsultationStatusActive,
		})
	return result.RowsAffected, result.Error
}

// Close completes a consultation regardless of its current status; closing a
// never-claimed PENDING consultation abandons the request.
func (r *consultationRepository) Close(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Consultation{}).
		Where("id = ?", id).
		Update("status", entity.ConsultationStatusCompleted)
	return result.RowsAffected, result.Error
}

func (r *consultationRepository) FindQueueForDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := db.
		Preload("Patient").
		Where("(status = ? AND doctor_id IS NULL) OR (status = ? AND doctor_id = ?)",
			entity.ConsultationStatusPending, entity.ConsultationStatusActive, doctorID).
		Order("created_at ASC").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, limit, offset int) ([]entity.Consultation, int64, error) {
	return r.findByParticipant(db, "patient_id", patientID, limit, offset)
}

func (r *consultationRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, limit, offset int) ([]entity.Consultation, int64, error) {
	return r.findByParticipant(db, "doctor_id", doctorID, limit, offset)
}

func (r *consultationRepository) findByParticipant(db *gorm.DB, column string, userID uuid.UUID, limit, offset int) ([]entity.Consultation, int64, error) {
	query := db.Model(&entity.Consultation{}).Where(column+" = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var consultations []entity.Consultation
	err := query.
		Preload("Patient").
		Preload("Doctor").
		Order("updated_at DESC").
		Limit(limit).Offset(offset).
		Find(&consultations).Error
	if err != nil {
		return nil, 0, err
	}
	return consultations, total, nil
}

func (r *consultationRepository) CountByDoctorAndStatus(db *gorm.DB, doctorID uuid.UUID, status entity.ConsultationStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.Consultation{}).
		Where("doctor_id = ? AND status = ?", doctorID, status).
		Count(&count).Error
	return count, err
}

func (r *consultationRepository) CountByStatus(db *gorm.DB, status *entity.ConsultationStatus) (int64, error) {
	var count int64
	query := db.Model(&entity.Consultation{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *consultationRepository) List(db *gorm.DB, status *entity.ConsultationStatus, limit, offset int) ([]entity.Consultation, int64, error) {
	query := db.Model(&entity.Consultation{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var consultations []entity.Consultation
	err := query.
		Preload("Patient").
		Preload("Doctor").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&consultations).Error
	if err != nil {
		return nil, 0, err
	}
	return consultations, total, nil
}
