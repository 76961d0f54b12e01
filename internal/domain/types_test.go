package domain

import (
	"testing"
)

func TestRiskLevelConstants(t *testing.T) {
	tests := []struct {
		name     string
		value    RiskLevel
		expected string
	}{
		{"Low", RiskLow, "low"},
		{"Moderate", RiskModerate, "moderate"},
		{"High", RiskHigh, "high"},
		{"Critical", RiskCritical, "critical"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.value) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, string(tt.value))
			}
			if !tt.value.IsValid() {
				t.Errorf("Expected %s to be valid", tt.expected)
			}
		})
	}
}

func TestRiskLevelOrdering(t *testing.T) {
	ordered := []RiskLevel{RiskLow, RiskModerate, RiskHigh, RiskCritical}
	for i := 1; i < len(ordered); i++ {
		if !ordered[i].Exceeds(ordered[i-1]) {
			t.Errorf("Expected %s to exceed %s", ordered[i], ordered[i-1])
		}
		if ordered[i-1].Exceeds(ordered[i]) {
			t.Errorf("Did not expect %s to exceed %s", ordered[i-1], ordered[i])
		}
	}

	if RiskHigh.Exceeds(RiskHigh) {
		t.Error("A level must not exceed itself")
	}

	// Unknown levels rank below every valid level.
	unknown := RiskLevel("extreme")
	if unknown.IsValid() {
		t.Error("Expected unknown risk level to be invalid")
	}
	if unknown.Exceeds(RiskLow) {
		t.Error("Unknown level must not exceed LOW")
	}
}

func TestRiskLevelLogFields(t *testing.T) {
	fields := RiskCritical.LogFields()
	if fields["risk_level"] != "critical" {
		t.Errorf("Expected risk_level critical, got %v", fields["risk_level"])
	}
	if fields["requires_escalation"] != true {
		t.Error("Expected critical to require escalation")
	}

	fields = RiskLow.LogFields()
	if fields["requires_escalation"] != false {
		t.Error("Expected low to not require escalation")
	}
}

func TestParseRiskLevel(t *testing.T) {
	r, err := ParseRiskLevel("high")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if r != RiskHigh {
		t.Errorf("Expected high, got %s", r)
	}

	if _, err := ParseRiskLevel("HIGH"); err == nil {
		t.Error("Expected error for uppercase input")
	}
	if _, err := ParseRiskLevel(""); err == nil {
		t.Error("Expected error for empty input")
	}
}

func TestSymptomSeverityConstants(t *testing.T) {
	tests := []struct {
		name     string
		value    SymptomSeverity
		expected string
	}{
		{"Mild", SeverityMild, "mild"},
		{"Moderate", SeverityModerate, "moderate"},
		{"Severe", SeveritySevere, "severe"},
		{"Emergency", SeverityEmergency, "emergency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.value) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, string(tt.value))
			}
			if !tt.value.IsValid() {
				t.Errorf("Expected %s to be valid", tt.expected)
			}
		})
	}

	if SymptomSeverity("fatal").IsValid() {
		t.Error("Expected unknown severity to be invalid")
	}
}

func TestSeverityRanking(t *testing.T) {
	if SeverityMild.Rank() >= SeverityModerate.Rank() {
		t.Error("mild must rank below moderate")
	}
	if SeveritySevere.Rank() >= SeverityEmergency.Rank() {
		t.Error("severe must rank below emergency")
	}
	if SymptomSeverity("").Rank() != -1 {
		t.Error("empty severity must rank -1")
	}
}

func TestRedFlagValidity(t *testing.T) {
	valid := []RedFlagType{
		RedFlagHemorrhage, RedFlagPreeclampsia, RedFlagEclampsia,
		RedFlagFetalDistress, RedFlagInfection, RedFlagRuptureOfMembranes,
		RedFlagConvulsions, RedFlagPretermLabor,
	}
	for _, rf := range valid {
		if !rf.IsValid() {
			t.Errorf("Expected %s to be valid", rf)
		}
	}

	if RedFlagNone.IsValid() {
		t.Error("RedFlagNone must not be a valid wire category")
	}
}

func TestTriageTierConstants(t *testing.T) {
	tests := []struct {
		name     string
		value    TriageTier
		expected string
	}{
		{"Emergency", TierEmergency, "emergency"},
		{"Urgent", TierUrgent, "urgent"},
		{"Soon", TierSoon, "soon"},
		{"Routine", TierRoutine, "routine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.value) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, string(tt.value))
			}
			if !tt.value.IsValid() {
				t.Errorf("Expected %s to be valid", tt.expected)
			}
		})
	}
}

func TestDialectConstants(t *testing.T) {
	tests := []struct {
		name     string
		value    Dialect
		expected string
	}{
		{"Standard", DialectStandard, "standard_bangla"},
		{"Sylheti", DialectSylheti, "sylheti"},
		{"Chittagonian", DialectChittagonian, "chittagonian"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.value) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, string(tt.value))
			}
			if !tt.value.IsValid() {
				t.Errorf("Expected %s to be valid", tt.expected)
			}
		})
	}

	if Dialect("noakhali").IsValid() {
		t.Error("noakhali is a transform target, not a detected dialect")
	}
}
