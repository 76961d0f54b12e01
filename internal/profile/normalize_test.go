package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janani-ai/janani-server/internal/domain"
)

func TestNormalizeCondition(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected domain.ConditionTag
		ok       bool
	}{
		{"Canonical tag passes through", "hypertension", domain.ConditionHypertension, true},
		{"Bengali hypertension", "উচ্চ রক্তচাপ ধরা পড়েছে", domain.ConditionHypertension, true},
		{"English free-form BP", "History of High Blood Pressure", domain.ConditionHypertension, true},
		{"Bengali diabetes", "ডায়াবেটিস আছে", domain.ConditionGestationalDiabetes, true},
		{"Canonical diabetes tag", "gestational_diabetes", domain.ConditionGestationalDiabetes, true},
		{"British anaemia spelling", "Anaemia (mild)", domain.ConditionAnemia, true},
		{"Bengali anemia", "রক্তস্বল্পতা", domain.ConditionAnemia, true},
		{"Premature delivery", "premature delivery 2022", domain.ConditionPretermLaborHistory, true},
		{"Unrecognized", "asthma", "", false},
		{"Empty", "", "", false},
		{"Whitespace only", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, ok := NormalizeCondition(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, tag)
		})
	}
}

func TestNormalizeHistory(t *testing.T) {
	tags, unmatched := NormalizeHistory([]string{
		"উচ্চ রক্তচাপ",
		"high bp", // duplicate of hypertension
		"ডায়াবেটিস",
		"migraine",
		"",
	})

	assert.Equal(t, []domain.ConditionTag{
		domain.ConditionHypertension,
		domain.ConditionGestationalDiabetes,
	}, tags)
	assert.Equal(t, []string{"migraine"}, unmatched)
}

func TestNormalizeHistoryEmpty(t *testing.T) {
	tags, unmatched := NormalizeHistory(nil)
	assert.Empty(t, tags)
	assert.Empty(t, unmatched)
}
