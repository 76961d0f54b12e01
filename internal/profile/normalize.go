// Package profile persists maternal risk profiles and normalizes free-form
// medical history into the canonical condition tags the decision engine
// compares against. Fuzzy matching lives here, at the ingestion boundary,
// never inside the triage core.
package profile

import (
	"strings"

	"github.com/janani-ai/janani-server/internal/domain"
)

// conditionAliases maps lowercase substrings found in free-form history
// notes (Bengali and English, as produced by document extraction or manual
// entry) to canonical condition tags.
var conditionAliases = []struct {
	substrings []string
	tag        domain.ConditionTag
}{
	{
		substrings: []string{"hypertension", "high blood pressure", "high bp", "উচ্চ রক্তচাপ", "রক্তচাপ বেশি", "প্রেসার বেশি", "হাই প্রেসার"},
		tag:        domain.ConditionHypertension,
	},
	{
		substrings: []string{"gestational diabetes", "diabetes", "ডায়াবেটিস", "সুগার", "blood sugar"},
		tag:        domain.ConditionGestationalDiabetes,
	},
	{
		substrings: []string{"anemia", "anaemia", "রক্তস্বল্পতা", "রক্ত কম", "low hemoglobin", "হিমোগ্লোবিন কম"},
		tag:        domain.ConditionAnemia,
	},
	{
		substrings: []string{"preterm labor", "preterm labour", "premature", "preterm", "সময়ের আগে প্রসব", "প্রিম্যাচিউর"},
		tag:        domain.ConditionPretermLaborHistory,
	},
}

// NormalizeCondition maps one free-form history string to a canonical
// condition tag. An exact tag value passes through unchanged. Unrecognized
// strings return false; the caller keeps them as raw notes.
func NormalizeCondition(raw string) (domain.ConditionTag, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	if tag := domain.ConditionTag(trimmed); tag.IsCanonical() {
		return tag, true
	}

	lower := strings.ToLower(trimmed)
	for _, alias := range conditionAliases {
		for _, sub := range alias.substrings {
			if strings.Contains(lower, sub) {
				return alias.tag, true
			}
		}
	}

	return "", false
}

// NormalizeHistory maps a list of free-form history strings to deduplicated
// canonical tags plus the leftover strings that matched nothing.
func NormalizeHistory(raw []string) (tags []domain.ConditionTag, unmatched []string) {
	seen := make(map[domain.ConditionTag]bool)
	for _, entry := range raw {
		tag, ok := NormalizeCondition(entry)
		if !ok {
			if strings.TrimSpace(entry) != "" {
				unmatched = append(unmatched, entry)
			}
			continue
		}
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags, unmatched
}
