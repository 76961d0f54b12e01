package triage

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/janani-ai/janani-server/internal/domain"
)

// DecisionTree evaluates symptom reports against the keyword lexicon and the
// ordered decision rules. All tables are injected at construction and never
// mutated afterwards, so a single tree serves concurrent requests without
// locking.
type DecisionTree struct {
	logger  *logrus.Logger
	lexicon *Lexicon
	rules   *RuleSet
}

// NewDecisionTree creates a decision tree over the given tables.
func NewDecisionTree(logger *logrus.Logger, lexicon *Lexicon, rules *RuleSet) *DecisionTree {
	return &DecisionTree{
		logger:  logger,
		lexicon: lexicon,
		rules:   rules,
	}
}

// DetectSymptoms scans the input for symptom keywords across all dialect
// lists and returns at most one hit per symptom. Symptoms that opt into the
// severity check are escalated when a modifier phrase appears anywhere in
// the input: "severe" modifiers force SEVERE, "continuous" modifiers raise
// to SEVERE unless the base severity is already EMERGENCY.
func (t *DecisionTree) DetectSymptoms(text string) []domain.DetectedSymptom {
	textLower := strings.ToLower(text)

	var detected []domain.DetectedSymptom
	for _, entry := range t.lexicon.Symptoms {
		if !t.matchesEntry(&entry, textLower) {
			continue
		}

		severity := entry.BaseSeverity
		if entry.NeedsSeverityCheck {
			severity = t.escalateSeverity(severity, textLower)
		}

		detected = append(detected, domain.DetectedSymptom{
			ID:       entry.ID,
			Severity: severity,
		})
	}

	return detected
}

func (t *DecisionTree) matchesEntry(entry *SymptomEntry, textLower string) bool {
	for _, dialect := range []domain.Dialect{domain.DialectStandard, domain.DialectSylheti, domain.DialectChittagonian} {
		for _, keyword := range entry.Keywords[dialect] {
			if strings.Contains(textLower, strings.ToLower(keyword)) {
				return true
			}
		}
	}
	return false
}

func (t *DecisionTree) escalateSeverity(severity domain.SymptomSeverity, textLower string) domain.SymptomSeverity {
	for _, mod := range t.lexicon.SevereModifiers {
		if strings.Contains(textLower, mod) {
			severity = domain.SeveritySevere
			break
		}
	}
	for _, mod := range t.lexicon.ContinuousModifiers {
		if strings.Contains(textLower, mod) {
			if severity != domain.SeverityEmergency {
				severity = domain.SeveritySevere
			}
			break
		}
	}
	return severity
}

// Apply walks the decision tiers in priority order and returns the triage
// decision for the detected symptoms. The first tier with a matching rule
// determines risk level, timeframe, and action; red flags are collected from
// ALL detected symptoms, not just those the matched rule required. The
// history elevation pass then runs unconditionally and may only raise the
// risk level; when several history rules apply, the highest floor wins.
func (t *DecisionTree) Apply(detected []domain.DetectedSymptom, historyTags []domain.ConditionTag, currentWeek int) domain.TriageDecision {
	symptomIDs := make(map[domain.SymptomID]bool, len(detected))
	for _, s := range detected {
		symptomIDs[s.ID] = true
	}

	decision := domain.TriageDecision{
		RiskLevel: domain.RiskLow,
		RedFlags:  []domain.RedFlagType{},
		Timeframe: TimeframeRoutine,
		Action:    ActionSelfCare,
	}

	for _, tier := range t.rules.Tiers {
		for _, rule := range tier.Rules {
			if !t.ruleMatches(&rule, symptomIDs, historyTags, currentWeek) {
				continue
			}

			decision.RiskLevel = tier.RiskLevel
			decision.Timeframe = tier.Timeframe
			decision.Action = rule.Action
			decision.RedFlags = t.collectRedFlags(detected)

			t.logger.WithFields(logrus.Fields{
				"tier":      tier.Tier.String(),
				"action":    rule.Action,
				"red_flags": len(decision.RedFlags),
			}).Debug("Decision rule matched")
			break
		}

		if decision.RiskLevel != domain.RiskLow {
			break
		}
	}

	t.applyHistoryElevation(&decision, symptomIDs, historyTags)

	return decision
}

func (t *DecisionTree) ruleMatches(rule *DecisionRule, symptomIDs map[domain.SymptomID]bool, historyTags []domain.ConditionTag, currentWeek int) bool {
	for _, required := range rule.Symptoms {
		if !symptomIDs[required] {
			return false
		}
	}

	if rule.WeekUpperBound > 0 && currentWeek >= rule.WeekUpperBound {
		return false
	}

	if len(rule.RequiredHistory) > 0 {
		found := false
		for _, required := range rule.RequiredHistory {
			for _, tag := range historyTags {
				if tag == required {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func (t *DecisionTree) collectRedFlags(detected []domain.DetectedSymptom) []domain.RedFlagType {
	flags := []domain.RedFlagType{}
	seen := make(map[domain.RedFlagType]bool)
	for _, s := range detected {
		flag := t.lexicon.RedFlagFor(s.ID)
		if flag == domain.RedFlagNone || seen[flag] {
			continue
		}
		seen[flag] = true
		flags = append(flags, flag)
	}
	return flags
}

func (t *DecisionTree) applyHistoryElevation(decision *domain.TriageDecision, symptomIDs map[domain.SymptomID]bool, historyTags []domain.ConditionTag) {
	tagSet := make(map[domain.ConditionTag]bool, len(historyTags))
	for _, tag := range historyTags {
		tagSet[tag] = true
	}

	for _, rule := range t.rules.HistoryRules {
		if !tagSet[rule.Condition] {
			continue
		}

		applies := false
		for _, id := range rule.Elevates {
			if symptomIDs[id] {
				applies = true
				break
			}
		}
		if !applies {
			continue
		}

		if rule.ElevatedFloor.Exceeds(decision.RiskLevel) {
			decision.RiskLevel = rule.ElevatedFloor
			decision.ElevatedDueToHistory = true
			decision.HistoryConcern = rule.Concern

			t.logger.WithFields(logrus.Fields{
				"condition":  rule.Condition.String(),
				"risk_level": rule.ElevatedFloor.String(),
			}).Debug("Risk level elevated by patient history")
		}
	}
}
