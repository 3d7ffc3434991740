package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConsultationStatus represents the status of a consultation
type ConsultationStatus string

const (
	ConsultationStatusPending   ConsultationStatus = "PENDING"
	ConsultationStatusActive    ConsultationStatus = "ACTIVE"
	ConsultationStatusCompleted ConsultationStatus = "COMPLETED"
)

// Consultation represents one patient-initiated care session. DoctorID stays
// null until the first doctor claims it; the claim is arbitrated by a
// conditional update in the repository, never by a read-then-write pair.
type Consultation struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID uuid.UUID          `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  *uuid.UUID         `gorm:"type:uuid;index" json:"doctor_id"`
	Status    ConsultationStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	CreatedAt time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Patient       *User          `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor        *User          `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Messages      []Message      `gorm:"foreignKey:ConsultationID" json:"messages,omitempty"`
	Prescriptions []Prescription `gorm:"foreignKey:ConsultationID" json:"prescriptions,omitempty"`
}

func (Consultation) TableName() string {
	return "consultations"
}

func (c *Consultation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// IsParticipant reports whether the user is the patient or the assigned doctor.
func (c *Consultation) IsParticipant(userID uuid.UUID) bool {
	if c.PatientID == userID {
		return true
	}
	return c.DoctorID != nil && *c.DoctorID == userID
}

// ClaimedBy reports whether the consultation is already assigned to the doctor.
func (c *Consultation) ClaimedBy(doctorID uuid.UUID) bool {
	return c.DoctorID != nil && *c.DoctorID == doctorID
}

// OtherParticipant returns the counterpart of the given participant, if any.
func (c *Consultation) OtherParticipant(userID uuid.UUID) *uuid.UUID {
	if c.PatientID == userID {
		return c.DoctorID
	}
	patientID := c.PatientID
	return &patientID
}
