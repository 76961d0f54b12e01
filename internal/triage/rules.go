package triage

import (
	"github.com/janani-ai/janani-server/internal/domain"
)

// Triage actions returned by decision rules.
const (
	ActionImmediateHospital = "immediate_hospital"
	ActionUrgentCare        = "urgent_care"
	ActionSeeDoctorToday    = "see_doctor_today"
	ActionSelfCare          = "self_care"
	ActionSeeDoctor         = "see_doctor"
)

// Triage timeframes attached to decision tiers.
const (
	TimeframeImmediate   = "immediate"
	TimeframeWithin1Hour = "within_1_hour"
	TimeframeWithin24Hrs = "within_24_hours"
	TimeframeRoutine     = "routine"
)

// DecisionRule is one admission criterion inside a priority tier. All listed
// symptoms must be present for the rule to match.
type DecisionRule struct {
	Symptoms []domain.SymptomID

	// WeekUpperBound, when > 0, disqualifies the rule once the current
	// gestational week reaches the bound. Used to restrict rules to
	// preterm cases; at or past the bound the rule simply does not fire.
	WeekUpperBound int

	// RequiredHistory, when non-empty, demands at least one of these
	// condition tags in the patient history.
	RequiredHistory []domain.ConditionTag

	Action string
}

// DecisionTier is one priority band. Tiers are evaluated in declaration
// order and the first tier with a matching rule wins.
type DecisionTier struct {
	Tier      domain.TriageTier
	Rules     []DecisionRule
	RiskLevel domain.RiskLevel
	Timeframe string
}

// HistoryRule elevates the triage risk level when a symptom co-occurs with a
// known pre-existing condition. Elevation is a floor: it never lowers an
// already-higher level.
type HistoryRule struct {
	Condition     domain.ConditionTag
	Elevates      []domain.SymptomID
	ElevatedFloor domain.RiskLevel
	Concern       string
}

// RuleSet is the immutable decision configuration injected into the tree.
type RuleSet struct {
	Tiers        []DecisionTier
	HistoryRules []HistoryRule
}

// DefaultRuleSet returns the production decision rules, following the WHO
// clinical escalation protocol for pregnancy danger signs.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		Tiers: []DecisionTier{
			{
				Tier:      domain.TierEmergency,
				RiskLevel: domain.RiskCritical,
				Timeframe: TimeframeImmediate,
				Rules: []DecisionRule{
					{Symptoms: []domain.SymptomID{domain.SymptomBleeding}, Action: ActionImmediateHospital},
					{Symptoms: []domain.SymptomID{domain.SymptomConvulsions}, Action: ActionImmediateHospital},
					{Symptoms: []domain.SymptomID{domain.SymptomVisionProblems, domain.SymptomSevereHeadache}, Action: ActionImmediateHospital},
					{Symptoms: []domain.SymptomID{domain.SymptomWaterBreaking}, WeekUpperBound: 37, Action: ActionImmediateHospital},
					{Symptoms: []domain.SymptomID{domain.SymptomReducedMovement}, Action: ActionImmediateHospital},
					{Symptoms: []domain.SymptomID{domain.SymptomSevereAbdominalPain, domain.SymptomBleeding}, Action: ActionImmediateHospital},
				},
			},
			{
				Tier:      domain.TierUrgent,
				RiskLevel: domain.RiskHigh,
				Timeframe: TimeframeWithin1Hour,
				Rules: []DecisionRule{
					{Symptoms: []domain.SymptomID{domain.SymptomSevereHeadache}, RequiredHistory: []domain.ConditionTag{domain.ConditionHypertension}, Action: ActionUrgentCare},
					{Symptoms: []domain.SymptomID{domain.SymptomHighFever}, Action: ActionUrgentCare},
					{Symptoms: []domain.SymptomID{domain.SymptomContractionsPreterm}, WeekUpperBound: 37, Action: ActionUrgentCare},
					{Symptoms: []domain.SymptomID{domain.SymptomSwelling}, Action: ActionUrgentCare},
					{Symptoms: []domain.SymptomID{domain.SymptomSevereAbdominalPain}, Action: ActionUrgentCare},
				},
			},
			{
				Tier:      domain.TierSoon,
				RiskLevel: domain.RiskModerate,
				Timeframe: TimeframeWithin24Hrs,
				Rules: []DecisionRule{
					{Symptoms: []domain.SymptomID{domain.SymptomBurningUrination}, Action: ActionSeeDoctorToday},
					{Symptoms: []domain.SymptomID{domain.SymptomSwelling}, Action: ActionSeeDoctorToday},
					{Symptoms: []domain.SymptomID{domain.SymptomHighFever}, Action: ActionSeeDoctorToday},
					{Symptoms: []domain.SymptomID{domain.SymptomBreathlessness}, Action: ActionSeeDoctorToday},
				},
			},
			{
				Tier:      domain.TierRoutine,
				RiskLevel: domain.RiskLow,
				Timeframe: TimeframeRoutine,
				Rules: []DecisionRule{
					{Symptoms: []domain.SymptomID{domain.SymptomNausea}, Action: ActionSelfCare},
					{Symptoms: []domain.SymptomID{domain.SymptomFatigue}, Action: ActionSelfCare},
					{Symptoms: []domain.SymptomID{domain.SymptomBackPain}, Action: ActionSelfCare},
					{Symptoms: []domain.SymptomID{domain.SymptomConstipation}, Action: ActionSelfCare},
					{Symptoms: []domain.SymptomID{domain.SymptomLegCramps}, Action: ActionSelfCare},
				},
			},
		},
		HistoryRules: []HistoryRule{
			{
				Condition:     domain.ConditionHypertension,
				Elevates:      []domain.SymptomID{domain.SymptomSevereHeadache, domain.SymptomSwelling, domain.SymptomVisionProblems},
				ElevatedFloor: domain.RiskCritical,
				Concern:       "প্রি-এক্লাম্পসিয়া/এক্লাম্পসিয়ার ঝুঁকি",
			},
			{
				Condition:     domain.ConditionGestationalDiabetes,
				Elevates:      []domain.SymptomID{domain.SymptomFatigue, domain.SymptomNausea, domain.SymptomBreathlessness},
				ElevatedFloor: domain.RiskHigh,
				Concern:       "ডায়াবেটিস জটিলতার ঝুঁকি",
			},
			{
				Condition:     domain.ConditionAnemia,
				Elevates:      []domain.SymptomID{domain.SymptomFatigue, domain.SymptomBreathlessness},
				ElevatedFloor: domain.RiskModerate,
				Concern:       "রক্তস্বল্পতা বাড়তে পারে",
			},
			{
				Condition:     domain.ConditionPretermLaborHistory,
				Elevates:      []domain.SymptomID{domain.SymptomContractionsPreterm, domain.SymptomBackPain},
				ElevatedFloor: domain.RiskHigh,
				Concern:       "আবার প্রিম্যাচিউর প্রসবের ঝুঁকি",
			},
		},
	}
}
