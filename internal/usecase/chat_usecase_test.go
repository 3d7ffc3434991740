package usecase

import (
	"context"
	"testing"

	"github.com/incorgnihealth/api/internal/domain/entity"
	"github.com/incorgnihealth/api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatUsecase(t *testing.T) (ChatUsecase, *testEnv) {
	t.Helper()

	env := newTestEnv(t)
	uc := NewChatUsecase(env.db, env.log,
		repository.NewMessageRepository(), repository.NewConsultationRepository())
	return uc, env
}

func TestSaveMessage(t *testing.T) {
	uc, env := newChatUsecase(t)

	patient := createUser(t, env.db, entity.RolePatient)
	doctor := createUser(t, env.db, entity.RoleDoctor)
	consultation := activeConsultation(t, env, patient, doctor)

	got, err := uc.SaveMessage(context.Background(), consultation.ID, patient.ID, "hello doctor")
	require.NoError(t, err)
	assert.Equal(t, consultation.ID, got.ConsultationID)
	assert.Equal(t, patient.ID, got.SenderID)
	assert.Equal(t, "hello doctor", got.Content)
	assert.False(t, got.IsSystem)

	var count int64
	require.NoError(t, env.db.Model(&entity.Message{}).
		Where("consultation_id = ?", consultation.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSaveMessageRejectsOutsiders(t *testing.T) {
	uc, env := newChatUsecase(t)

	patient := createUser(t, env.db, entity.RolePatient)
	doctor := createUser(t, env.db, entity.RoleDoctor)
	stranger := createUser(t, env.db, entity.RolePatient)
	consultation := activeConsultation(t, env, patient, doctor)

	_, err := uc.SaveMessage(context.Background(), consultation.ID, stranger.ID, "let me in")
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = uc.SaveMessage(context.Background(), uuid.New(), patient.ID, "anyone there")
	assert.ErrorIs(t, err, ErrConsultationNotFound)
}
