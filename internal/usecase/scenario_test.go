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

// TestConsultationToDeliveryLifecycle walks one prescription from the first
// patient request to the handover at the door, with every actor hitting the
// same database the way concurrent API calls would.
func TestConsultationToDeliveryLifecycle(t *testing.T) {
	env := newTestEnv(t)

	consultations := NewConsultationUsecase(env.db, env.log, repository.NewConsultationRepository(), env.notifier)
	prescriptions := NewPrescriptionUsecase(
		env.db,
		env.log,
		repository.NewPrescriptionRepository(),
		repository.NewOrderRepository(),
		repository.NewMessageRepository(),
		repository.NewConsultationRepository(),
		env.notifier,
		service.NewTriageService(),
		&recordingBroadcaster{},
	)
	orders := NewOrderUsecase(env.db, env.log, repository.NewOrderRepository(), env.notifier)

	patient := createUser(t, env.db, entity.RolePatient)
	doctorA := createUser(t, env.db, entity.RoleDoctor)
	doctorB := createUser(t, env.db, entity.RoleDoctor)
	pharmacy := createUser(t, env.db, entity.RolePharmacist)
	rider := createUser(t, env.db, entity.RoleRider)

	// Patient opens a consultation; the first doctor to claim it wins and
	// the runner-up gets a conflict.
	started, err := consultations.Start(authedCtx(patient.ID, entity.RolePatient))
	require.NoError(t, err)

	claimed, err := consultations.Claim(authedCtx(doctorA.ID, entity.RoleDoctor), started.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ConsultationStatusActive), claimed.Status)

	_, err = consultations.Claim(authedCtx(doctorB.ID, entity.RoleDoctor), started.ID)
	assert.ErrorIs(t, err, ErrConsultationClaimed)

	// The assigned doctor prescribes, which spawns a pending order.
	prescribed, err := prescriptions.Prescribe(authedCtx(doctorA.ID, entity.RoleDoctor), &dto.PrescribeRequest{
		ConsultationID: started.ID.String(),
		Medication:     "Amoxicillin",
		Dosage:         "250mg",
		Instructions:   "Three times daily for 7 days",
	})
	require.NoError(t, err)
	orderID := prescribed.Order.ID
	assert.Equal(t, string(entity.OrderStatusPending), prescribed.Order.Status)

	// Pharmacy takes the order and prepares it.
	accepted, err := orders.Accept(authedCtx(pharmacy.ID, entity.RolePharmacist), orderID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderStatusProcessing), accepted.Status)

	ready, err := orders.MarkReady(authedCtx(pharmacy.ID, entity.RolePharmacist), orderID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderStatusReadyForPickup), ready.Status)

	// Rider grabs the delivery.
	picked, err := orders.Pickup(authedCtx(rider.ID, entity.RoleRider), orderID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderStatusPickedUp), picked.Status)

	// A wrong handover code changes nothing.
	var stored entity.Order
	require.NoError(t, env.db.First(&stored, "id = ?", orderID).Error)
	wrongCode := "0000"
	if stored.SecureCode == wrongCode {
		wrongCode = "9999"
	}
	_, err = orders.Deliver(authedCtx(rider.ID, entity.RoleRider), orderID, &dto.DeliverRequest{SecureCode: wrongCode})
	assert.ErrorIs(t, err, ErrWrongSecureCode)

	require.NoError(t, env.db.First(&stored, "id = ?", orderID).Error)
	assert.Equal(t, entity.OrderStatusPickedUp, stored.Status)

	// The real code completes the order.
	delivered, err := orders.Deliver(authedCtx(rider.ID, entity.RoleRider), orderID, &dto.DeliverRequest{SecureCode: stored.SecureCode})
	require.NoError(t, err)
	assert.Equal(t, string(entity.OrderStatusDelivered), delivered.Status)

	// The patient heard about the claim, the prescription, and each of the
	// four order stages.
	assert.Equal(t, int64(6), countNotifications(t, env.db, patient.ID))
}
