package dto

import (
	"time"

	"github.com/google/uuid"
)

type ConsultationResponse struct {
	ID            uuid.UUID              `json:"id"`
	PatientID     uuid.UUID              `json:"patient_id"`
	DoctorID      *uuid.UUID             `json:"doctor_id"`
	Status        string                 `json:"status"`
	Patient       *UserSummary           `json:"patient,omitempty"`
	Doctor        *UserSummary           `json:"doctor,omitempty"`
	Messages      []MessageResponse      `json:"messages,omitempty"`
	Prescriptions []PrescriptionResponse `json:"prescriptions,omitempty"`
	MessageCount  *int64                 `json:"message_count,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

type MessageResponse struct {
	ID             uuid.UUID `json:"id"`
	ConsultationID uuid.UUID `json:"consultation_id"`
	SenderID       uuid.UUID `json:"sender_id"`
	Content        string    `json:"content"`
	IsSystem       bool      `json:"is_system"`
	CreatedAt      time.Time `json:"created_at"`
}

type DoctorStatsResponse struct {
	Completed     int64  `json:"completed"`
	Active        int64  `json:"active"`
	TotalEarnings string `json:"total_earnings"`
}
