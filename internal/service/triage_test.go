package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriageAnalyze(t *testing.T) {
	s := NewTriageService()

	tests := []struct {
		symptoms  string
		diagnosis string
	}{
		{"I have a pounding HEADACHE since yesterday", "Tension-type headache / potential migraine"},
		{"running a high temperature and chills", "Possible viral infection"},
		{"sore throat and dry cough", "Upper respiratory tract infection"},
		{"stomach cramps, feel like I might vomit", "Gastroenteritis / food poisoning"},
		{"itchy rash on both arms", "Possible allergic reaction / dermatitis"},
		{"constant stress and panic attacks", "Anxiety disorder symptoms"},
	}

	for _, tt := range tests {
		got := s.Analyze(tt.symptoms)
		assert.Equal(t, tt.diagnosis, got.Diagnosis, "symptoms: %s", tt.symptoms)
		assert.Greater(t, got.Confidence, 0.5)
		assert.NotEmpty(t, got.Suggestions)
	}
}

func TestTriageAnalyzeDefault(t *testing.T) {
	s := NewTriageService()

	got := s.Analyze("my left elbow clicks when I wave")
	assert.Equal(t, "General consultation recommended", got.Diagnosis)
	assert.Equal(t, 0.5, got.Confidence)
	assert.NotEmpty(t, got.Suggestions)
}
