package domain

import (
	"time"
)

// MaternalRiskProfile is the per-patient record the triage engine cross
// references. It is owned by the profile store; the triage core only reads it.
type MaternalRiskProfile struct {
	UserID string `json:"user_id" validate:"required"`
	Name   string `json:"name,omitempty"`
	Age    int    `json:"age,omitempty"`

	// Pregnancy details
	CurrentWeek      int  `json:"current_week"`
	IsFirstPregnancy bool `json:"is_first_pregnancy"`

	// Pre-existing conditions and prior complications, normalized to
	// ConditionTag values at ingestion. Free-form source strings are kept
	// alongside for clinician review.
	ExistingConditions    []ConditionTag `json:"existing_conditions"`
	PreviousComplications []ConditionTag `json:"previous_complications"`
	RawHistoryNotes       []string       `json:"raw_history_notes,omitempty"`

	// Emergency support
	BloodGroup            string `json:"blood_group,omitempty"`
	EmergencyContactName  string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `json:"emergency_contact_phone,omitempty"`
	OverallRiskLevel      string `json:"overall_risk_level,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HistoryTags returns the combined condition tags the decision engine
// cross-references: existing conditions plus previous complications.
func (p *MaternalRiskProfile) HistoryTags() []ConditionTag {
	if p == nil {
		return nil
	}
	tags := make([]ConditionTag, 0, len(p.ExistingConditions)+len(p.PreviousComplications))
	tags = append(tags, p.ExistingConditions...)
	tags = append(tags, p.PreviousComplications...)
	return tags
}

// DetectedSymptom is one symptom hit from the keyword scan, carrying the
// severity after modifier escalation.
type DetectedSymptom struct {
	ID       SymptomID       `json:"symptom_id"`
	Severity SymptomSeverity `json:"severity"`
}

// TriageDecision is the raw outcome of the decision-tree walk, before the
// orchestrator turns it into a patient-facing TriageResult.
type TriageDecision struct {
	RiskLevel            RiskLevel     `json:"risk_level"`
	RedFlags             []RedFlagType `json:"red_flags"`
	Timeframe            string        `json:"timeframe"`
	Action               string        `json:"action"`
	ElevatedDueToHistory bool          `json:"elevated_due_to_history"`
	HistoryConcern       string        `json:"history_concern,omitempty"`
}

// TriageResult is the complete outcome of one symptom report. One call, one
// result; nothing in the triage core persists it.
type TriageResult struct {
	UserID    string    `json:"user_id"`
	RiskLevel RiskLevel `json:"risk_level"`

	DetectedRedFlags      []RedFlagType `json:"detected_red_flags"`
	PrimaryConcern        string        `json:"primary_concern"`
	PrimaryConcernBengali string        `json:"primary_concern_bengali"`

	// Actions
	ImmediateAction        string `json:"immediate_action"`
	ImmediateActionBengali string `json:"immediate_action_bengali"`
	ShouldTriggerEmergency bool   `json:"should_trigger_emergency"`
	RecommendedTimeframe   string `json:"recommended_timeframe"`

	// Advice
	HomeCareAdvice      []string `json:"home_care_advice"`
	WarningSignsToWatch []string `json:"warning_signs_to_watch"`

	// For the emergency bridge
	EmergencyContactNeeded bool `json:"emergency_contact_needed"`
	HospitalReferralNeeded bool `json:"hospital_referral_needed"`
	AmbulanceNeeded        bool `json:"ambulance_needed"`

	// Voice-first output
	ResponseAudioText string  `json:"response_audio_text"`
	ConfidenceScore   float64 `json:"confidence_score"`

	Dialect   Dialect   `json:"dialect"`
	CreatedAt time.Time `json:"created_at"`
}

// EmergencyBridgeRequest activates the emergency bridge after a CRITICAL
// triage outcome.
type EmergencyBridgeRequest struct {
	UserID            string               `json:"user_id" validate:"required"`
	TriggerSource     string               `json:"trigger_source"` // "voice_triage", "manual", "auto_detection"
	DetectedEmergency string               `json:"detected_emergency"`
	RedFlags          []RedFlagType        `json:"red_flags"`
	PatientLocation   *GeoPoint            `json:"patient_location,omitempty"`
	PatientPhone      string               `json:"patient_phone,omitempty"`
	PatientProfile    *MaternalRiskProfile `json:"patient_profile,omitempty"`
}

// EmergencyBridgeResponse carries the step-by-step guidance returned when the
// bridge activates.
type EmergencyBridgeResponse struct {
	BridgeID string `json:"bridge_id"`
	Status   string `json:"status"` // "activated", "failed"

	ImmediateStepsBengali []string `json:"immediate_steps_bengali"`
	DoNotDoBengali        []string `json:"do_not_do_bengali"`

	EmergencyNumber    string  `json:"emergency_number"`
	NearestHospital    string  `json:"nearest_hospital,omitempty"`
	HospitalPhone      string  `json:"hospital_phone,omitempty"`
	HospitalDistanceKM float64 `json:"hospital_distance_km,omitempty"`

	ARGuidanceAvailable bool   `json:"ar_guidance_available"`
	ARGuidanceType      string `json:"ar_guidance_type,omitempty"`

	VoiceGuidanceText   string `json:"voice_guidance_text"`
	AmbulanceDispatched bool   `json:"ambulance_dispatched"`

	EstimatedResponseTime string      `json:"estimated_response_time,omitempty"`
	NearestVolunteers     []Volunteer `json:"nearest_volunteers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Volunteer is one entry of the community responder directory.
type Volunteer struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone,omitempty"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Role      string  `json:"role,omitempty"`
}

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Hospital is one entry of the referral directory.
type Hospital struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	NameEnglish  string  `json:"name_en,omitempty"`
	Address      string  `json:"address,omitempty"`
	Latitude     float64 `json:"lat"`
	Longitude    float64 `json:"lng"`
	Phone        string  `json:"phone,omitempty"`
	HasMaternity bool    `json:"has_maternity"`
	Type         string  `json:"type,omitempty"` // "government", "private"
}

// TriageRecord is the persisted trace of one triage call, kept for the
// patient timeline and clinician review.
type TriageRecord struct {
	ID               int64         `json:"id,omitempty"`
	UserID           string        `json:"user_id"`
	InputText        string        `json:"input_text"`
	Dialect          Dialect       `json:"dialect"`
	RiskLevel        RiskLevel     `json:"risk_level"`
	RedFlags         []RedFlagType `json:"red_flags"`
	PrimaryConcern   string        `json:"primary_concern"`
	Action           string        `json:"action"`
	Timeframe        string        `json:"timeframe"`
	EmergencyBridged bool          `json:"emergency_bridged"`
	ConfidenceScore  float64       `json:"confidence_score"`
	CreatedAt        time.Time     `json:"created_at"`
}
