// Package domain contains core business entities and types for maternal-health
// symptom triage. The triage protocol follows the WHO danger-sign lists for
// pregnancy and the clinical escalation rules used by the Janani assistant.
package domain

import (
	"errors"
	"fmt"
)

// RiskLevel represents the triage risk assessment for a symptom report.
// Levels form a total order (LOW < MODERATE < HIGH < CRITICAL) used by the
// history elevation pass, which may only raise a level, never lower it.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// SymptomSeverity represents the severity assigned to a detected symptom.
type SymptomSeverity string

const (
	SeverityMild      SymptomSeverity = "mild"
	SeverityModerate  SymptomSeverity = "moderate"
	SeveritySevere    SymptomSeverity = "severe"
	SeverityEmergency SymptomSeverity = "emergency"
)

// RedFlagType represents a clinical danger category linked to one or more
// symptoms. Red flags drive emergency routing and protocol selection.
type RedFlagType string

const (
	RedFlagHemorrhage         RedFlagType = "hemorrhage"
	RedFlagPreeclampsia       RedFlagType = "preeclampsia"
	RedFlagEclampsia          RedFlagType = "eclampsia"
	RedFlagFetalDistress      RedFlagType = "fetal_distress"
	RedFlagInfection          RedFlagType = "infection"
	RedFlagRuptureOfMembranes RedFlagType = "rupture_of_membranes"
	RedFlagConvulsions        RedFlagType = "convulsions"
	RedFlagPretermLabor       RedFlagType = "preterm_labor"

	// RedFlagNone marks symptoms that carry no danger category.
	RedFlagNone RedFlagType = ""
)

// SymptomID is the stable identifier of one detectable clinical symptom.
type SymptomID string

const (
	SymptomSevereHeadache      SymptomID = "severe_headache"
	SymptomBleeding            SymptomID = "bleeding"
	SymptomHighFever           SymptomID = "high_fever"
	SymptomNausea              SymptomID = "nausea"
	SymptomSevereAbdominalPain SymptomID = "severe_abdominal_pain"
	SymptomVisionProblems      SymptomID = "vision_problems"
	SymptomConvulsions         SymptomID = "convulsions"
	SymptomWaterBreaking       SymptomID = "water_breaking"
	SymptomReducedMovement     SymptomID = "reduced_movement"
	SymptomSwelling            SymptomID = "swelling"
	SymptomFatigue             SymptomID = "fatigue"
	SymptomBackPain            SymptomID = "back_pain"
	SymptomConstipation        SymptomID = "constipation"
	SymptomLegCramps           SymptomID = "leg_cramps"
	SymptomBreathlessness      SymptomID = "breathlessness"

	// Referenced by decision and history rules but not yet in the keyword
	// lexicon; they only match when an upstream caller reports them directly.
	SymptomContractionsPreterm SymptomID = "contractions_preterm"
	SymptomBurningUrination    SymptomID = "burning_urination"
)

// TriageTier is one priority band of the decision table. Tiers are evaluated
// in strict order; the first tier with a matching rule wins.
type TriageTier string

const (
	TierEmergency TriageTier = "emergency"
	TierUrgent    TriageTier = "urgent"
	TierSoon      TriageTier = "soon"
	TierRoutine   TriageTier = "routine"
)

// Dialect labels the regional Bengali variant detected in the input text.
// The label widens keyword matching context only; no translation happens.
type Dialect string

const (
	DialectStandard     Dialect = "standard_bangla"
	DialectSylheti      Dialect = "sylheti"
	DialectChittagonian Dialect = "chittagonian"
)

// ConditionTag is a normalized pre-existing condition from the patient
// history. Free-form history strings are normalized into these tags at the
// profile ingestion boundary; the decision engine compares tags exactly.
type ConditionTag string

const (
	ConditionHypertension        ConditionTag = "hypertension"
	ConditionGestationalDiabetes ConditionTag = "gestational_diabetes"
	ConditionAnemia              ConditionTag = "anemia"
	ConditionPretermLaborHistory ConditionTag = "preterm_labor_history"
)

// Validation errors for triage data integrity
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidRiskLevel = errors.New("invalid risk level")
	ErrInvalidSeverity  = errors.New("invalid symptom severity")
	ErrInvalidTier      = errors.New("invalid triage tier")
	ErrInvalidDialect   = errors.New("invalid dialect")
)

var riskRanks = map[RiskLevel]int{
	RiskLow:      0,
	RiskModerate: 1,
	RiskHigh:     2,
	RiskCritical: 3,
}

// Rank returns the position of the risk level in the total order.
// Unknown levels rank below LOW so they can never win an elevation compare.
func (r RiskLevel) Rank() int {
	rank, ok := riskRanks[r]
	if !ok {
		return -1
	}
	return rank
}

// Exceeds reports whether r is strictly higher than other in the total order.
func (r RiskLevel) Exceeds(other RiskLevel) bool {
	return r.Rank() > other.Rank()
}

// IsValid validates the risk level.
func (r RiskLevel) IsValid() bool {
	_, ok := riskRanks[r]
	return ok
}

// String returns the string representation of the risk level.
func (r RiskLevel) String() string {
	return string(r)
}

// LogFields returns structured logging fields for audit trails.
func (r RiskLevel) LogFields() map[string]any {
	return map[string]any{
		"risk_level":          string(r),
		"risk_rank":           r.Rank(),
		"requires_escalation": r == RiskCritical,
	}
}

var severityRanks = map[SymptomSeverity]int{
	SeverityMild:      0,
	SeverityModerate:  1,
	SeveritySevere:    2,
	SeverityEmergency: 3,
}

// Rank returns the position of the severity in its total order.
func (s SymptomSeverity) Rank() int {
	rank, ok := severityRanks[s]
	if !ok {
		return -1
	}
	return rank
}

// IsValid validates the symptom severity.
func (s SymptomSeverity) IsValid() bool {
	_, ok := severityRanks[s]
	return ok
}

// String returns the string representation of the severity.
func (s SymptomSeverity) String() string {
	return string(s)
}

// IsValid validates the red flag category. RedFlagNone is not a valid
// category on the wire; it only marks the absence of one in the lexicon.
func (rf RedFlagType) IsValid() bool {
	switch rf {
	case RedFlagHemorrhage, RedFlagPreeclampsia, RedFlagEclampsia,
		RedFlagFetalDistress, RedFlagInfection, RedFlagRuptureOfMembranes,
		RedFlagConvulsions, RedFlagPretermLabor:
		return true
	default:
		return false
	}
}

// String returns the string representation of the red flag.
func (rf RedFlagType) String() string {
	return string(rf)
}

// IsValid validates the triage tier.
func (t TriageTier) IsValid() bool {
	switch t {
	case TierEmergency, TierUrgent, TierSoon, TierRoutine:
		return true
	default:
		return false
	}
}

// String returns the string representation of the tier.
func (t TriageTier) String() string {
	return string(t)
}

// IsValid validates the dialect label.
func (d Dialect) IsValid() bool {
	switch d {
	case DialectStandard, DialectSylheti, DialectChittagonian:
		return true
	default:
		return false
	}
}

// String returns the string representation of the dialect.
func (d Dialect) String() string {
	return string(d)
}

// String returns the string representation of the symptom identifier.
func (s SymptomID) String() string {
	return string(s)
}

// String returns the string representation of the condition tag.
func (c ConditionTag) String() string {
	return string(c)
}

// IsCanonical reports whether the tag is one of the normalized conditions
// the history rules key on.
func (c ConditionTag) IsCanonical() bool {
	switch c {
	case ConditionHypertension, ConditionGestationalDiabetes,
		ConditionAnemia, ConditionPretermLaborHistory:
		return true
	default:
		return false
	}
}

// ParseRiskLevel converts a stored string back into a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, error) {
	r := RiskLevel(s)
	if !r.IsValid() {
		return "", fmt.Errorf("parse risk level %q: %w", s, ErrInvalidRiskLevel)
	}
	return r, nil
}
