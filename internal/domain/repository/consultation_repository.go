package repository

import (
	"github.com/incorgnihealth/api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsultationRepository interface {
	Create(db *gorm.DB, consultation *entity.Consultation) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error)
	// FindByIDWithDetails preloads patient, doctor, messages (append order)
	// and prescriptions.
	FindByIDWithDetails(db *gorm.DB, id uuid.UUID) (*entity.Consultation, error)
	// Claim atomically assigns the doctor and activates the consultation.
	// The WHERE clause accepts an unclaimed consultation or an idempotent
	// re-claim by the same doctor. Returns affected rows: 0 means the
	// consultation is claimed by someone else (or gone).
	Claim(db *gorm.DB, id, doctorID uuid.UUID) (int64, error)
	Close(db *gorm.DB, id uuid.UUID) (int64, error)
	// FindQueueForDoctor returns unclaimed pending consultations plus the
	// doctor's own active ones, oldest first.
	FindQueueForDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.Consultation, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, limit, offset int) ([]entity.Consultation, int64, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, limit, offset int) ([]entity.Consultation, int64, error)
	CountByDoctorAndStatus(db *gorm.DB, doctorID uuid.UUID, status entity.ConsultationStatus) (int64, error)
	CountByStatus(db *gorm.DB, status *entity.ConsultationStatus) (int64, error)
	List(db *gorm.DB, status *entity.ConsultationStatus, limit, offset int) ([]entity.Consultation, int64, error)
}
