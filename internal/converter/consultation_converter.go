package converter

import (
	"github.com/incorgnihealth/api/internal/delivery/dto"
	"github.com/incorgnihealth/api/internal/domain/entity"
)

// ConsultationToResponse converts a Consultation entity, including whatever
// relationships were preloaded.
func ConsultationToResponse(consultation *entity.Consultation) *dto.ConsultationResponse {
	if consultation == nil {
		return nil
	}

	response := &dto.ConsultationResponse{
		ID:        consultation.ID,
		PatientID: consultation.PatientID,
		DoctorID:  consultation.DoctorID,
		Status:    string(consultation.Status),
		Patient:   UserToSummary(consultation.Patient),
		Doctor:    UserToSummary(consultation.Doctor),
		CreatedAt: consultation.CreatedAt,
		UpdatedAt: consultation.UpdatedAt,
	}

	if consultation.Messages != nil {
		response.Messages = MessagesToResponses(consultation.Messages)
	}
	if consultation.Prescriptions != nil {
		response.Prescriptions = PrescriptionsToResponses(consultation.Prescriptions)
	}

	return response
}

func ConsultationsToResponses(consultations []entity.Consultation) []dto.ConsultationResponse {
	responses := make([]dto.ConsultationResponse, len(consultations))
	for i, consultation := range consultations {
		resp := ConsultationToResponse(&consultation)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

func MessageToResponse(message *entity.Message) *dto.MessageResponse {
	if message == nil {
		return nil
	}

	return &dto.MessageResponse{
		ID:             message.ID,
		ConsultationID: message.ConsultationID,
		SenderID:       message.SenderID,
		Content:        message.Content,
		IsSystem:       message.IsSystem,
		CreatedAt:      message.CreatedAt,
	}
}

func MessagesToResponses(messages []entity.Message) []dto.MessageResponse {
	responses := make([]dto.MessageResponse, len(messages))
	for i, message := range messages {
		resp := MessageToResponse(&message)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
