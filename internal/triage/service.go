package triage

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/janani-ai/janani-server/internal/domain"
)

// Service is the voice-first triage entry point. It detects the dialect,
// scans for symptoms, applies the decision tree with the patient history,
// and assembles the patient-facing result including the voice script.
type Service struct {
	logger      *logrus.Logger
	tree        *DecisionTree
	transformer *NoakhaliTransformer
	config      domain.TriageConfig
}

// NewService creates a triage service over the given tables.
func NewService(logger *logrus.Logger, lexicon *Lexicon, rules *RuleSet, config domain.TriageConfig) *Service {
	if config.DefaultGestationalWeek <= 0 {
		config.DefaultGestationalWeek = 20
	}
	return &Service{
		logger:      logger,
		tree:        NewDecisionTree(logger, lexicon, rules),
		transformer: NewNoakhaliTransformer(),
		config:      config,
	}
}

// NewDefaultService creates a triage service with the production tables.
func NewDefaultService(logger *logrus.Logger, config domain.TriageConfig) *Service {
	return NewService(logger, DefaultLexicon(), DefaultRuleSet(), config)
}

// ProcessSymptomReport runs the full triage pipeline for one report. It
// never fails: unusable input degrades to a LOW-risk clarification result
// and a missing profile falls back to no history and the default week.
func (s *Service) ProcessSymptomReport(ctx context.Context, userID, inputText string, profile *domain.MaternalRiskProfile, includeHistory bool) *domain.TriageResult {
	dialect := DetectDialect(inputText)

	detected := s.tree.DetectSymptoms(inputText)

	s.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"dialect":  dialect.String(),
		"symptoms": len(detected),
	}).Info("Processing symptom report")

	if len(detected) == 0 {
		return s.clarificationResult(userID, dialect)
	}

	currentWeek := s.config.DefaultGestationalWeek
	var historyTags []domain.ConditionTag
	if profile != nil {
		if profile.CurrentWeek > 0 {
			currentWeek = profile.CurrentWeek
		}
		if includeHistory {
			historyTags = profile.HistoryTags()
		}
	}

	decision := s.tree.Apply(detected, historyTags, currentWeek)

	result := s.buildResult(userID, detected, decision, dialect)

	s.logger.WithFields(logrus.Fields{
		"user_id":           userID,
		"risk_level":        result.RiskLevel.String(),
		"trigger_emergency": result.ShouldTriggerEmergency,
		"red_flags":         len(result.DetectedRedFlags),
	}).Info("Triage complete")

	return result
}

func (s *Service) clarificationResult(userID string, dialect domain.Dialect) *domain.TriageResult {
	return &domain.TriageResult{
		UserID:                 userID,
		RiskLevel:              domain.RiskLow,
		DetectedRedFlags:       []domain.RedFlagType{},
		PrimaryConcern:         "কোনো নির্দিষ্ট লক্ষণ বোঝা যায়নি",
		PrimaryConcernBengali:  "কোনো নির্দিষ্ট লক্ষণ বোঝা যায়নি",
		ImmediateAction:        "Please describe your symptoms more clearly",
		ImmediateActionBengali: "অনুগ্রহ করে আপনার সমস্যাটি আরেকটু বিস্তারিত বলুন। যেমন: কোথায় ব্যথা, কতক্ষণ ধরে, কতটা কষ্ট হচ্ছে।",
		ShouldTriggerEmergency: false,
		RecommendedTimeframe:   TimeframeRoutine,
		HomeCareAdvice:         []string{},
		WarningSignsToWatch:    []string{},
		ResponseAudioText:      clarificationAudioText,
		ConfidenceScore:        0.3,
		Dialect:                dialect,
		CreatedAt:              time.Now().UTC(),
	}
}

func (s *Service) buildResult(userID string, detected []domain.DetectedSymptom, decision domain.TriageDecision, dialect domain.Dialect) *domain.TriageResult {
	primarySymptom := detected[0].ID

	concern, ok := primaryConcerns[primarySymptom]
	if !ok {
		concern = fallbackConcern
	}

	action, ok := immediateActions[decision.RiskLevel]
	if !ok {
		action = immediateActions[domain.RiskLow]
	}

	homeCare := adviceFor(primarySymptom, decision.RiskLevel)
	signs := append([]string{}, warningSigns...)

	audioText := voiceResponse(concern.Bengali, action.Bengali, decision.RiskLevel, decision.HistoryConcern)

	concernBengali := concern.Bengali
	actionBengali := action.Bengali
	if s.config.DialectTransformEnabled {
		concernBengali = s.transformer.Transform(concernBengali)
		actionBengali = s.transformer.Transform(actionBengali)
		audioText = s.transformer.Transform(audioText)
		for i := range homeCare {
			homeCare[i] = s.transformer.Transform(homeCare[i])
		}
		for i := range signs {
			signs[i] = s.transformer.Transform(signs[i])
		}
	}

	shouldEmergency := decision.RiskLevel == domain.RiskCritical

	ambulanceNeeded := false
	if shouldEmergency {
		for _, flag := range decision.RedFlags {
			if flag == domain.RedFlagHemorrhage || flag == domain.RedFlagEclampsia || flag == domain.RedFlagConvulsions {
				ambulanceNeeded = true
				break
			}
		}
	}

	return &domain.TriageResult{
		UserID:                 userID,
		RiskLevel:              decision.RiskLevel,
		DetectedRedFlags:       decision.RedFlags,
		PrimaryConcern:         concern.English,
		PrimaryConcernBengali:  concernBengali,
		ImmediateAction:        action.English,
		ImmediateActionBengali: actionBengali,
		ShouldTriggerEmergency: shouldEmergency,
		RecommendedTimeframe:   decision.Timeframe,
		HomeCareAdvice:         homeCare,
		WarningSignsToWatch:    signs,
		EmergencyContactNeeded: shouldEmergency,
		HospitalReferralNeeded: decision.RiskLevel == domain.RiskCritical || decision.RiskLevel == domain.RiskHigh,
		AmbulanceNeeded:        ambulanceNeeded,
		ResponseAudioText:      audioText,
		ConfidenceScore:        0.9,
		Dialect:                dialect,
		CreatedAt:              time.Now().UTC(),
	}
}
