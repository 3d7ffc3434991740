package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type PrescribeRequest struct {
	ConsultationID string `json:"consultation_id" validate:"required,uuid"`
	Medication     string `json:"medication" validate:"required,min=2,max=200"`
	Dosage         string `json:"dosage" validate:"required,min=1,max=100"`
	Instructions   string `json:"instructions" validate:"omitempty,max=500"`
}

type AnalyzeRequest struct {
	Symptoms string `json:"symptoms" validate:"required,min=3,max=2000"`
}

// Response DTOs

type MedicationResponse struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions"`
}

type PrescriptionResponse struct {
	ID             uuid.UUID            `json:"id"`
	ConsultationID uuid.UUID            `json:"consultation_id"`
	Medications    []MedicationResponse `json:"medications"`
	CreatedAt      time.Time            `json:"created_at"`
}

// PrescribeResponse bundles the prescription with the order it spawned.
type PrescribeResponse struct {
	Prescription *PrescriptionResponse `json:"prescription"`
	Order        *OrderResponse        `json:"order"`
}
