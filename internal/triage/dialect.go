package triage

import (
	"regexp"
	"strings"

	"github.com/janani-ai/janani-server/internal/domain"
)

// Marker phrases that identify regional Bengali variants in transcripts.
// Sylheti markers are checked before Chittagonian.
var (
	sylhetiMarkers      = []string{"ফাইটা", "অইছে", "কইতাছে", "খাইছে", "যাইতাছে"}
	chittagonianMarkers = []string{"গই", "ইতা", "হোই", "কিয়া"}
)

// DetectDialect classifies the regional variant of the input text. The label
// is informational; keyword matching always scans all dialect lists.
func DetectDialect(text string) domain.Dialect {
	for _, marker := range sylhetiMarkers {
		if strings.Contains(text, marker) {
			return domain.DialectSylheti
		}
	}
	for _, marker := range chittagonianMarkers {
		if strings.Contains(text, marker) {
			return domain.DialectChittagonian
		}
	}
	return domain.DialectStandard
}

// NoakhaliTransformer rewrites Standard Bengali output text into the
// Noakhali regional variant using phonological shift rules plus a word-level
// lexicon override. It is kept behind a configuration flag and off by
// default; the voice pipeline currently expects Standard Bengali.
type NoakhaliTransformer struct {
	lexicon    map[string]string
	stripPunct *regexp.Regexp
}

// Word-initial consonant shifts: প/স/শ soften to হ, ক hardens to খ,
// aspirated ভ flattens to ব.
var initialShifts = [][2]string{
	{"প", "হ"},
	{"স", "হ"},
	{"শ", "হ"},
	{"ক", "খ"},
	{"ভ", "ব"},
}

// NewNoakhaliTransformer builds the transformer with its word lexicon.
func NewNoakhaliTransformer() *NoakhaliTransformer {
	return &NoakhaliTransformer{
		lexicon: map[string]string{
			"ছেলে":     "হোলা",
			"মেয়ে":     "মাইয়া",
			"মেয়েকে":   "মাইয়ারে",
			"কেন":      "কীয়া",
			"সব":       "বেগগুন",
			"টাকা":     "টেঁয়া",
			"সে":       "হেতে",
			"তাদের":    "হেগো",
			"গতকাল":    "গাইল্লা",
			"আগামীকাল": "কাইল্লা",
			"পানি":     "হানি",
			"ফুল":      "হুল",
			"ভাল":      "বালা",
			"ভালো":     "বালা",
			"খারাপ":    "হারাফ",
			"রক্ত":     "লু",
			"ব্যথা":    "বেথা",
			"ব্যাথা":   "বেথা",
			"ডাক্তার":  "ডাক্তর",
			"হাসপাতাল": "হাসাতাল",
			"ঔষধ":      "অসুদ",
			"শুনুন":    "হুনেন",
			"বলুন":     "কইওন",
			"করুন":     "করেন",
			"আছেন":     "আছোস",
			"যাবে":     "যাইবো",
			"হবে":      "অইবো",
			"খাবেন":    "খাইবেন",
			"নিবেন":    "লইবেন",
			"দিন":      "দেওন",
			"কি":       "কিতা",
			"আমার":     "আঁঁর",
			"আপনার":    "আন্নের",
			"তার":      "হেঁঁঁর",
			"এখানে":    "ইয়ানো",
			"বসুন":     "বইসেন",
			"ভয়":       "ডর",
			"পাবেন":    "হাইয়েন",
		},
		// Bengali vowel signs are combining marks, so \p{M} must survive
		// the strip or words like হাসপাতাল lose their matras.
		stripPunct: regexp.MustCompile(`[^\p{L}\p{M}\p{N}\s]`),
	}
}

// Transform applies phonological shifts, suffix morphology, and lexicon
// overrides, in that order. Lexicon entries are matched against the original
// word form so they override the shifted output.
func (n *NoakhaliTransformer) Transform(text string) string {
	original := strings.Fields(text)

	text = strings.ReplaceAll(text, "ছেন", "সেন")
	text = strings.ReplaceAll(text, "চ্ছ", "চ্চ")

	words := strings.Fields(text)
	for i, word := range words {
		words[i] = shiftWord(word)
	}

	// Lexicon overrides keyed on the pre-shift word forms.
	for i := range words {
		if i >= len(original) {
			break
		}
		cleaned := n.stripPunct.ReplaceAllString(original[i], "")
		if replacement, ok := n.lexicon[cleaned]; ok {
			words[i] = strings.Replace(original[i], cleaned, replacement, 1)
		}
	}
	text = strings.Join(words, " ")

	// Objective -ke becomes -re.
	text = strings.ReplaceAll(text, "কে", "রে")

	return text
}

func shiftWord(word string) string {
	for _, shift := range initialShifts {
		if strings.HasPrefix(word, shift[0]) {
			word = shift[1] + strings.TrimPrefix(word, shift[0])
			break
		}
	}

	word = strings.ReplaceAll(word, "চ", "স")
	word = strings.ReplaceAll(word, "ছ", "স")

	// Suffix morphology: locative -te, continuous -chhi, future -bo.
	switch {
	case strings.HasSuffix(word, "তে"):
		word = strings.TrimSuffix(word, "তে") + "ত"
	case strings.HasSuffix(word, "ছি"):
		word = strings.TrimSuffix(word, "ছি") + "ইয়ের"
	case strings.HasSuffix(word, "বো"):
		word = strings.TrimSuffix(word, "বো") + "উম"
	}

	return word
}
