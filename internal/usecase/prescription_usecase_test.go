package usecase

import (
	"testing"

	"github.com/incorgnihealth/api/internal/delivery/dto"
	"github.com/incorgnihealth/api/internal/domain/entity"
	"github.com/incorgnihealth/api/internal/repository"
	"github.com/incorgnihealth/api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBroadcaster struct {
	rooms  []string
	events []string
}

func (b *recordingBroadcaster) BroadcastToRoom(roomID string, event string, payload interface{}) {
	b.rooms = append(b.rooms, roomID)
	b.events = append(b.events, event)
}

func newPrescriptionUsecase(t *testing.T) (PrescriptionUsecase, *recordingBroadcaster, *testEnv) {
	t.Helper()

	env := newTestEnv(t)
	broadcaster := &recordingBroadcaster{}
	uc := NewPrescriptionUsecase(
		env.db,
		env.log,
		repository.NewPrescriptionRepository(),
		repository.NewOrderRepository(),
		repository.NewMessageRepository(),
		repository.NewConsultationRepository(),
		env.notifier,
		service.NewTriageService(),
		broadcaster,
	)
	return uc, broadcaster, env
}

func activeConsultation(t *testing.T, env *testEnv, patient, doctor *entity.User) *entity.Consultation {
	t.Helper()

	consultation := &entity.Consultation{
		PatientID: patient.ID,
		DoctorID:  &doctor.ID,
		Status:    entity.ConsultationStatusActive,
	}
	require.NoError(t, env.db.Create(consultation).Error)
	return consultation
}

func TestPrescribeCreatesOrderAndSystemMessage(t *testing.T) {
	uc, broadcaster, env := newPrescriptionUsecase(t)

	patient := createUser(t, env.db, entity.RolePatient)
	doctor := createUser(t, env.db, entity.RoleDoctor)
	pharmacy := createUser(t, env.db, entity.RolePharmacist)
	consultation := activeConsultation(t, env, patient, doctor)

	got, err := uc.Prescribe(authedCtx(doctor.ID, entity.RoleDoctor), &dto.PrescribeRequest{
		ConsultationID: consultation.ID.String(),
		Medication:     "Amoxicillin",
		Dosage:         "250mg",
		Instructions:   "Three times daily for 7 days",
	})
	require.NoError(t, err)

	require.NotNil(t, got.Prescription)
	require.Len(t, got.Prescription.Medications, 1)
	assert.Equal(t, "Amoxicillin", got.Prescription.Medications[0].Name)

	require.NotNil(t, got.Order)
	assert.Equal(t, string(entity.OrderStatusPending), got.Order.Status)
	assert.NotEmpty(t, got.Order.PublicOrderID)
	assert.Nil(t, got.Order.PharmacyID)

	// The stored order carries a 4-digit handover code, but the response to
	// the doctor does not.
	assert.Empty(t, got.Order.SecureCode)
	var stored entity.Order
	require.NoError(t, env.db.First(&stored, "prescription_id = ?", got.Prescription.ID).Error)
	assert.Len(t, stored.SecureCode, 4)

	// A system message landed in the chat and was pushed to the room.
	var message entity.Message
	require.NoError(t, env.db.First(&message, "consultation_id = ?", consultation.ID).Error)
	assert.True(t, message.IsSystem)
	assert.Contains(t, message.Content, "Amoxicillin")
	require.Len(t, broadcaster.rooms, 1)
	assert.Equal(t, consultation.ID.String(), broadcaster.rooms[0])
	assert.Equal(t, "receive_message", broadcaster.events[0])

	// Patient and pharmacist both got a heads-up.
	assert.Equal(t, int64(1), countNotifications(t, env.db, patient.ID))
	assert.Equal(t, int64(1), countNotifications(t, env.db, pharmacy.ID))
}

func TestPrescribeRequiresAssignedDoctor(t *testing.T) {
	uc, _, env := newPrescriptionUsecase(t)

	patient := createUser(t, env.db, entity.RolePatient)
	doctor := createUser(t, env.db, entity.RoleDoctor)
	other := createUser(t, env.db, entity.RoleDoctor)
	consultation := activeConsultation(t, env, patient, doctor)

	_, err := uc.Prescribe(authedCtx(other.ID, entity.RoleDoctor), &dto.PrescribeRequest{
		ConsultationID: consultation.ID.String(),
		Medication:     "Ibuprofen",
		Dosage:         "400mg",
	})
	assert.ErrorIs(t, err, ErrNotAssignedDoctor)

	var count int64
	require.NoError(t, env.db.Model(&entity.Prescription{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestPrescribeRequiresActiveConsultation(t *testing.T) {
	uc, _, env := newPrescriptionUsecase(t)

	patient := createUser(t, env.db, entity.RolePatient)
	doctor := createUser(t, env.db, entity.RoleDoctor)

	consultation := activeConsultation(t, env, patient, doctor)
	require.NoError(t, env.db.Model(consultation).
		Update("status", entity.ConsultationStatusCompleted).Error)

	_, err := uc.Prescribe(authedCtx(doctor.ID, entity.RoleDoctor), &dto.PrescribeRequest{
		ConsultationID: consultation.ID.String(),
		Medication:     "Ibuprofen",
		Dosage:         "400mg",
	})
	assert.ErrorIs(t, err, ErrConsultationNotActive)
}

func TestPrescribeUnknownConsultation(t *testing.T) {
	uc, _, env := newPrescriptionUsecase(t)

	doctor := createUser(t, env.db, entity.RoleDoctor)

	_, err := uc.Prescribe(authedCtx(doctor.ID, entity.RoleDoctor), &dto.PrescribeRequest{
		ConsultationID: "not-a-uuid",
		Medication:     "Ibuprofen",
		Dosage:         "400mg",
	})
	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

func TestAnalyze(t *testing.T) {
	uc, _, env := newPrescriptionUsecase(t)

	doctor := createUser(t, env.db, entity.RoleDoctor)

	result, err := uc.Analyze(authedCtx(doctor.ID, entity.RoleDoctor), &dto.AnalyzeRequest{
		Symptoms: "Pounding headache since this morning",
	})
	require.NoError(t, err)
	assert.Contains(t, result.Diagnosis, "headache")
	assert.NotEmpty(t, result.Suggestions)
}
