package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type DeliverRequest struct {
	SecureCode string `json:"secure_code" validate:"required,len=4,numeric"`
}

// Response DTOs

type OrderResponse struct {
	ID             uuid.UUID             `json:"id"`
	PublicOrderID  string                `json:"public_order_id"`
	PrescriptionID uuid.UUID             `json:"prescription_id"`
	PatientID      uuid.UUID             `json:"patient_id"`
	PharmacyID     *uuid.UUID            `json:"pharmacy_id"`
	RiderID        *uuid.UUID            `json:"rider_id"`
	Status         string                `json:"status"`
	// SecureCode is only populated on patient-facing responses; the patient
	// hands it to the rider at the door.
	SecureCode   string                `json:"secure_code,omitempty"`
	Patient      *UserSummary          `json:"patient,omitempty"`
	Prescription *PrescriptionResponse `json:"prescription,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}
