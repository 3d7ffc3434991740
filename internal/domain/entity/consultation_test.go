package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsultationParticipants(t *testing.T) {
	patientID := uuid.New()
	doctorID := uuid.New()

	c := &Consultation{PatientID: patientID}

	assert.True(t, c.IsParticipant(patientID))
	assert.False(t, c.IsParticipant(doctorID))
	assert.False(t, c.ClaimedBy(doctorID))

	// An unclaimed consultation has no counterpart for the patient.
	assert.Nil(t, c.OtherParticipant(patientID))

	c.DoctorID = &doctorID
	assert.True(t, c.IsParticipant(doctorID))
	assert.True(t, c.ClaimedBy(doctorID))
	assert.False(t, c.ClaimedBy(uuid.New()))

	other := c.OtherParticipant(patientID)
	require.NotNil(t, other)
	assert.Equal(t, doctorID, *other)

	other = c.OtherParticipant(doctorID)
	require.NotNil(t, other)
	assert.Equal(t, patientID, *other)
}
