package usecase

import (
	"testing"

	"github.com/incorgnihealth/api/internal/delivery/dto"
	"github.com/incorgnihealth/api/internal/domain/entity"
	"github.com/incorgnihealth/api/internal/repository"
	"github.com/incorgnihealth/api/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserUsecase(t *testing.T) (UserUsecase, *testEnv) {
	t.Helper()

	env := newTestEnv(t)
	uc := NewUserUsecase(env.db, env.log, repository.NewUserRepository(),
		repository.NewConsultationRepository(), repository.NewOrderRepository())
	return uc, env
}

func TestGetProfile(t *testing.T) {
	uc, env := newUserUsecase(t)

	user := createUser(t, env.db, entity.RolePatient)

	got, err := uc.GetProfile(authedCtx(user.ID, entity.RolePatient))
	require.NoError(t, err)
	assert.Equal(t, user.PublicID, got.PublicID)
	assert.Equal(t, string(entity.RolePatient), got.Role)
}

func TestUpdateProfilePatchesOnlySentFields(t *testing.T) {
	uc, env := newUserUsecase(t)

	user := createUser(t, env.db, entity.RolePatient)
	require.NoError(t, env.db.Model(user).Update("nickname", "BlueFox").Error)

	avatar := "🦊"
	age := 34
	got, err := uc.UpdateProfile(authedCtx(user.ID, entity.RolePatient), &dto.UpdateProfileRequest{
		Avatar: &avatar,
		Age:    &age,
	})
	require.NoError(t, err)

	// Unsent fields keep their value.
	assert.Equal(t, "BlueFox", got.Nickname)
	assert.Equal(t, "🦊", got.Avatar)
	require.NotNil(t, got.Age)
	assert.Equal(t, 34, *got.Age)
}

func TestMyConsultationsByRole(t *testing.T) {
	uc, env := newUserUsecase(t)

	patient := createUser(t, env.db, entity.RolePatient)
	doctor := createUser(t, env.db, entity.RoleDoctor)

	consultation := &entity.Consultation{
		PatientID: patient.ID,
		DoctorID:  &doctor.ID,
		Status:    entity.ConsultationStatusActive,
	}
	require.NoError(t, env.db.Create(consultation).Error)

	// Another patient's consultation must not leak in.
	other := createUser(t, env.db, entity.RolePatient)
	require.NoError(t, env.db.Create(&entity.Consultation{
		PatientID: other.ID,
		Status:    entity.ConsultationStatusPending,
	}).Error)

	params := pagination.Params{Page: 1, Limit: 10}

	asPatient, meta, err := uc.MyConsultations(authedCtx(patient.ID, entity.RolePatient), params)
	require.NoError(t, err)
	require.Len(t, asPatient, 1)
	assert.Equal(t, consultation.ID, asPatient[0].ID)
	assert.Equal(t, int64(1), meta.Total)

	asDoctor, _, err := uc.MyConsultations(authedCtx(doctor.ID, entity.RoleDoctor), params)
	require.NoError(t, err)
	require.Len(t, asDoctor, 1)
	assert.Equal(t, consultation.ID, asDoctor[0].ID)
}

func TestMyOrdersIncludeSecureCode(t *testing.T) {
	uc, env := newUserUsecase(t)

	patient := createUser(t, env.db, entity.RolePatient)
	seedOrder(t, env.db, patient.ID, entity.OrderStatusPending)

	orders, meta, err := uc.MyOrders(authedCtx(patient.ID, entity.RolePatient),
		pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(1), meta.Total)

	// The patient is the one party who gets the handover code.
	assert.Equal(t, "1234", orders[0].SecureCode)
}
