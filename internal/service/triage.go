package service

import "strings"

// TriageResult is the outcome of the rule-based symptom analyzer.
type TriageResult struct {
	Diagnosis   string   `json:"diagnosis"`
	Confidence  float64  `json:"confidence"`
	Suggestions []string `json:"suggestions"`
}

type triageRule struct {
	keywords []string
	result   TriageResult
}

// Keyword rules, checked in order; first match wins. Placeholder for a real
// clinical model.
var triageRules = []triageRule{
	{
		keywords: []string{"headache", "migraine"},
		result: TriageResult{
			Diagnosis:   "Tension-type headache / potential migraine",
			Confidence:  0.72,
			Suggestions: []string{"Ibuprofen 400mg", "Rest in dark room", "Check blood pressure"},
		},
	},
	{
		keywords: []string{"fever", "temperature"},
		result: TriageResult{
			Diagnosis:   "Possible viral infection",
			Confidence:  0.68,
			Suggestions: []string{"Paracetamol 500mg", "Hydration", "Monitor temperature"},
		},
	},
	{
		keywords: []string{"cough", "throat"},
		result: TriageResult{
			Diagnosis:   "Upper respiratory tract infection",
			Confidence:  0.65,
			Suggestions: []string{"Throat lozenges", "Warm fluids", "Amoxicillin if bacterial"},
		},
	},
	{
		keywords: []string{"stomach", "nausea", "vomit"},
		result: TriageResult{
			Diagnosis:   "Gastroenteritis / food poisoning",
			Confidence:  0.61,
			Suggestions: []string{"ORS solution", "Bland diet", "Metoclopramide if severe"},
		},
	},
	{
		keywords: []string{"itch", "rash", "skin"},
		result: TriageResult{
			Diagnosis:   "Possible allergic reaction / dermatitis",
			Confidence:  0.58,
			Suggestions: []string{"Antihistamine", "Hydrocortisone cream", "Identify allergen"},
		},
	},
	{
		keywords: []string{"anxiety", "panic", "stress"},
		result: TriageResult{
			Diagnosis:   "Anxiety disorder symptoms",
			Confidence:  0.64,
			Suggestions: []string{"Deep breathing exercises", "Consider CBT referral", "Short-term anxiolytic"},
		},
	},
}

// TriageService maps free-text symptoms to a coarse diagnosis.
type TriageService struct{}

func NewTriageService() *TriageService {
	return &TriageService{}
}

func (s *TriageService) Analyze(symptoms string) TriageResult {
	lower := strings.ToLower(symptoms)

	for _, rule := range triageRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.result
			}
		}
	}

	return TriageResult{
		Diagnosis:   "General consultation recommended",
		Confidence:  0.5,
		Suggestions: []string{"Consult a specialist", "Run blood work"},
	}
}
