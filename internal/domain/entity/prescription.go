package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Medication is a single entry on a prescription.
type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions"`
}

// MedicationList is stored as a JSONB column.
type MedicationList []Medication

func (m MedicationList) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *MedicationList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	case nil:
		*m = nil
		return nil
	default:
		return errors.New("unsupported type for MedicationList")
	}
}

// Prescription is created once by the doctor during an active consultation
// and is immutable thereafter. Each prescription spawns exactly one order.
type Prescription struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ConsultationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"consultation_id"`
	Medications    MedicationList `gorm:"type:jsonb;not null" json:"medications"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

func (p *Prescription) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
