package converter

import (
	"github.com/incorgnihealth/api/internal/delivery/dto"
	"github.com/incorgnihealth/api/internal/domain/entity"
)

// OrderToResponse converts an Order entity. includeSecret controls whether
// the handover code is exposed; only patient-facing responses carry it.
func OrderToResponse(order *entity.Order, includeSecret bool) *dto.OrderResponse {
	if order == nil {
		return nil
	}

	response := &dto.OrderResponse{
		ID:             order.ID,
		PublicOrderID:  order.PublicOrderID,
		PrescriptionID: order.PrescriptionID,
		PatientID:      order.PatientID,
		PharmacyID:     order.PharmacyID,
		RiderID:        order.RiderID,
		Status:         string(order.Status),
		Patient:        UserToSummary(order.Patient),
		Prescription:   PrescriptionToResponse(order.Prescription),
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}

	if includeSecret {
		response.SecureCode = order.SecureCode
	}

	return response
}

func OrdersToResponses(orders []entity.Order, includeSecret bool) []dto.OrderResponse {
	responses := make([]dto.OrderResponse, len(orders))
	for i, order := range orders {
		resp := OrderToResponse(&order, includeSecret)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	medications := make([]dto.MedicationResponse, len(prescription.Medications))
	for i, m := range prescription.Medications {
		medications[i] = dto.MedicationResponse{
			Name:         m.Name,
			Dosage:       m.Dosage,
			Instructions: m.Instructions,
		}
	}

	return &dto.PrescriptionResponse{
		ID:             prescription.ID,
		ConsultationID: prescription.ConsultationID,
		Medications:    medications,
		CreatedAt:      prescription.CreatedAt,
	}
}

func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i, prescription := range prescriptions {
		resp := PrescriptionToResponse(&prescription)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
