package repository

import (
	"testing"

	"github.com/incorgnihealth/api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createOrder(t *testing.T, db *gorm.DB, patientID uuid.UUID, status entity.OrderStatus) *entity.Order {
	t.Helper()

	prescription := &entity.Prescription{
		ConsultationID: uuid.New(),
		Medications: entity.MedicationList{
			{Name: "Paracetamol", Dosage: "500mg", Instructions: "Twice daily"},
		},
	}
	require.NoError(t, db.Create(prescription).Error)

	order := &entity.Order{
		PublicOrderID:  "#ORD-" + uuid.NewString()[:4],
		PrescriptionID: prescription.ID,
		PatientID:      patientID,
		SecureCode:     "1234",
		Status:         status,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestOrderAccept(t *testing.T) {
	db := testDB(t)
	repo := NewOrderRepository()

	patient := createUser(t, db, entity.RolePatient)
	pharmacyA := createUser(t, db, entity.RolePharmacist)
	pharmacyB := createUser(t, db, entity.RolePharmacist)

	order := createOrder(t, db, patient.ID, entity.OrderStatusPending)

	affected, err := repo.Accept(db, order.ID, pharmacyA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// The losing pharmacy sees zero rows and the winner keeps the order.
	affected, err = repo.Accept(db, order.ID, pharmacyB.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	got, err := repo.FindByID(db, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProcessing, got.Status)
	require.NotNil(t, got.PharmacyID)
	assert.Equal(t, pharmacyA.ID, *got.PharmacyID)
}

func TestOrderMarkReadyRequiresOwningPharmacy(t *testing.T) {
	db := testDB(t)
	repo := NewOrderRepository()

	patient := createUser(t, db, entity.RolePatient)
	pharmacy := createUser(t, db, entity.RolePharmacist)
	other := createUser(t, db, entity.RolePharmacist)

	order := createOrder(t, db, patient.ID, entity.OrderStatusPending)

	affected, err := repo.Accept(db, order.ID, pharmacy.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	affected, err = repo.MarkReady(db, order.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	affected, err = repo.MarkReady(db, order.ID, pharmacy.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := repo.FindByID(db, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReadyForPickup, got.Status)
}

func TestOrderPickupRace(t *testing.T) {
	db := testDB(t)
	repo := NewOrderRepository()

	patient := createUser(t, db, entity.RolePatient)
	riderA := createUser(t, db, entity.RoleRider)
	riderB := createUser(t, db, entity.RoleRider)

	order := createOrder(t, db, patient.ID, entity.OrderStatusReadyForPickup)

	affected, err := repo.Pickup(db, order.ID, riderA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Pickup(db, order.ID, riderB.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	got, err := repo.FindByID(db, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPickedUp, got.Status)
	require.NotNil(t, got.RiderID)
	assert.Equal(t, riderA.ID, *got.RiderID)
}

func TestOrderDeliverRequiresOwningRider(t *testing.T) {
	db := testDB(t)
	repo := NewOrderRepository()

	patient := createUser(t, db, entity.RolePatient)
	rider := createUser(t, db, entity.RoleRider)
	other := createUser(t, db, entity.RoleRider)

	order := createOrder(t, db, patient.ID, entity.OrderStatusReadyForPickup)

	affected, err := repo.Pickup(db, order.ID, rider.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	affected, err = repo.Deliver(db, order.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	affected, err = repo.Deliver(db, order.ID, rider.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := repo.FindByID(db, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, got.Status)
}

func TestOrderNoStageSkipping(t *testing.T) {
	db := testDB(t)
	repo := NewOrderRepository()

	patient := createUser(t, db, entity.RolePatient)
	pharmacy := createUser(t, db, entity.RolePharmacist)
	rider := createUser(t, db, entity.RoleRider)

	order := createOrder(t, db, patient.ID, entity.OrderStatusPending)

	// A pending order cannot be picked up or delivered.
	affected, err := repo.Pickup(db, order.ID, rider.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	affected, err = repo.Deliver(db, order.ID, rider.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	// A delivered order is terminal.
	require.NoError(t, db.Model(order).Updates(map[string]interface{}{
		"status":      entity.OrderStatusDelivered,
		"pharmacy_id": pharmacy.ID,
		"rider_id":    rider.ID,
	}).Error)

	affected, err = repo.Accept(db, order.ID, pharmacy.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestOrderFindAvailableForPickup(t *testing.T) {
	db := testDB(t)
	repo := NewOrderRepository()

	patient := createUser(t, db, entity.RolePatient)
	rider := createUser(t, db, entity.RoleRider)

	ready := createOrder(t, db, patient.ID, entity.OrderStatusReadyForPickup)
	createOrder(t, db, patient.ID, entity.OrderStatusPending)

	taken := createOrder(t, db, patient.ID, entity.OrderStatusReadyForPickup)
	affected, err := repo.Pickup(db, taken.ID, rider.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	available, err := repo.FindAvailableForPickup(db)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, ready.ID, available[0].ID)
}
