// Package triage implements the deterministic maternal-health decision tree:
// Bengali keyword detection over voice transcripts, ordered decision rules,
// and history cross-referencing, assembled into patient-facing results.
package triage

import (
	"github.com/janani-ai/janani-server/internal/domain"
)

// SymptomEntry defines how one symptom is detected and what it implies.
// Keywords cover Standard Bengali plus Sylheti and Chittagonian variants and
// romanized spellings used when patients type instead of speak.
type SymptomEntry struct {
	ID       domain.SymptomID
	Keywords map[domain.Dialect][]string

	// Severity assigned on a bare keyword hit, before modifier escalation.
	BaseSeverity domain.SymptomSeverity

	// RedFlag links the symptom to a clinical danger category.
	// RedFlagNone for comfort symptoms.
	RedFlag domain.RedFlagType

	// NeedsSeverityCheck enables the modifier scan for this symptom.
	NeedsSeverityCheck bool
}

// Lexicon is the immutable keyword and modifier table set. Built once at
// startup and injected into the decision tree; safe for concurrent reads.
type Lexicon struct {
	Symptoms []SymptomEntry

	// Modifier phrases that escalate severity when found anywhere in the
	// input alongside a symptom that opts into the check.
	SevereModifiers     []string
	ContinuousModifiers []string
	SuddenModifiers     []string
}

// Entry returns the lexicon entry for a symptom id, or nil when the symptom
// is rule-only and has no keywords.
func (l *Lexicon) Entry(id domain.SymptomID) *SymptomEntry {
	for i := range l.Symptoms {
		if l.Symptoms[i].ID == id {
			return &l.Symptoms[i]
		}
	}
	return nil
}

// RedFlagFor returns the danger category linked to a symptom id.
func (l *Lexicon) RedFlagFor(id domain.SymptomID) domain.RedFlagType {
	if e := l.Entry(id); e != nil {
		return e.RedFlag
	}
	return domain.RedFlagNone
}

// DefaultLexicon returns the production keyword tables. Keyword lists follow
// the WHO danger-sign vocabulary as spoken in Bangladesh, with regional
// variants collected from field transcripts.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Symptoms: []SymptomEntry{
			{
				ID: domain.SymptomSevereHeadache,
				Keywords: map[domain.Dialect][]string{
					domain.DialectStandard:     {"মাথাব্যথা", "মাথা ব্যথা", "প্রচণ্ড মাথাব্যথা", "তীব্র মাথাব্যথা", "মাথা ধরা", "মাথা টিপটিপ", "matha", "headache", "matha betha", "matha batha"},
					domain.DialectSylheti:      {"মাডা ব্যথা", "মাডা বিষ"},
					domain.DialectChittagonian: {"মাথা ধরছে", "মাথায় যন্ত্রণা"},
				},
				BaseSeverity:       domain.SeveritySevere,
				RedFlag:            domain.RedFlagPreeclampsia,
				NeedsSeverityCheck: true,
			},
			{
				ID: domain.SymptomBleeding,
				Keywords: map[domain.Dialect][]string{
					domain.DialectStandard:     {"রক্তপাত", "রক্তস্রাব", "ব্লিডিং", "রক্ত পড়া", "রক্ত যাওয়া", "রক্ত আসা", "bleeding", "rokto", "blood", "spotting"},
					domain.DialectSylheti:      {"রক্ত ফইরা যাওয়া", "রক্ত পরতাছে"},
					domain.DialectChittagonian: {"রক্ত পইরতাছে", "রক্ত যাইতাছে"},
				},
				BaseSeverity: domain.SeverityEmergency,
				RedFlag:      domain.RedFlagHemorrhage,
			},
			{
				ID: domain.SymptomHighFever,
				Keywords: map[domain.Dialect][]string{
					domain.DialectStandard:     {"জ্বর", "তীব্র জ্বর", "বেশি জ্বর", "গায়ে জ্বর", "শরীর গরম", "jor", "fever", "gorom", "temperature"},
					domain.DialectSylheti:      {"জুর", "গা গরম"},
					domain.DialectChittagonian: {"জ্বর আছে"},
				},
				BaseSeverity: domain.SeverityModerate,
				RedFlag:      domain.RedFlagInfection,
			},
			{
				ID: domain.SymptomNausea,
				Keywords: map[domain.Dialect][]string{
					domain.DialectStandard:     {"বমি", "বমি ভাব", "বমি বমি লাগা", "গা গুলানো", "bomi", "vomiting", "nausea"},
					domain.DialectSylheti:      {"বমি লাগে", "গা ঘুলায়"},
					domain.DialectChittagonian: {"বমি বমি"},
				},
				BaseSeverity: domain.SeverityMild,
				RedFlag:      domain.RedFlagNone,
			},
			{
				ID: domain.SymptomSevereAbdominalPain,
				Keywords: map[domain.Dialect][]string{
					domain.DialectStandard:     {"পেটব্যথা", "পেটে ব্যথা", "তীব্র পেটব্যথা", "প্রচণ্ড পেটে ব্যথা", "পেট মোচড়ানো", "pet betha", "stomach pain", "abdomen pain"},
					domain.DialectSylheti:      {"পেডে ব্যথা", "পেড বিষ"},
					domain.DialectChittagonian: {"পেডে যন্ত্রণা"},
				},
				BaseSeverity:       domain.SeveritySevere,
				RedFlag:            domain.RedFlagHemorrhage,
				NeedsSeverityCheck: true,
			},
			{
				ID: domain.SymptomVisionProblems,
				Keywords: map[domain.Dialect][]string{
					domain.DialectStandard:     {"চোখে ঝাপসা", "ঝাপসা দেখা", "চোখে আলো দেখা", "চোখে তারা দেখা", "চোখে অন্ধকার", "chokhe jhapsha", "blurred vision"},
					domain.DialectSylheti:      {"চউখে দেহা যায় না", "ঝাপসা লাগে"},
					domain.DialectChittagonian: {"চোক্কুত দেখা যায় না"},
				},
				BaseSeverity: domain.SeverityEmergency,
				RedFlag:      domain.RedFlagPreeclampsia,
			},
			{
				ID: domain.SymptomConvulsions,
				Keywords: map[domain.Dialect][]string{
					domain.DialectStandard:     {"খিঁচুনি", "ফিট", "হাত পা কাঁপা", "অজ্ঞান", "khichuni", "convulsion", "seizure", "fit"},
					domain.DialectSylheti:      {"খিচুনি", "বেহুশ"},
					domain.DialectChittagonian: {"খিচানি", "অজ্ঞান"},
				},
				BaseSeverity: domain.SeverityEmergency,
				RedFlag:      domain.RedFlagEclampsia,
			},
			{
				ID: domain.SymptomWaterBreaking,
				Keywords: map[domain.Dialect][]string{
					domain.DialectStandard:     {"পানি ভাঙা", "পানি ছুটে গেছে", "জল ভাঙা", "পানি আসছে", "pani bhanga", "water break"},
					domain.DialectSylheti:      {"পানি ফাইটা গেছে"},
					domain.DialectChittagonian: {"পানি যাইতাছে"},
				},
				BaseSeverity: domain.SeverityEmergency,
				RedFlag:      domain.RedFlagRuptureOfMembranes,
			},
			{
				ID: domain.SymptomReducedMovement,
				Keywords: map[domain.Dialect][]string{
					domain.DialectStandard:     {"বাচ্চা নড়ছে না", "বাচ্চার নড়াচড়া কম", "বাচ্চা নাড়ে না", "বাচ্চা নড়াচড়া বন্ধ", "baby not moving", "movement kom", "norachora kom"},
					domain.DialectSylheti:      {"বাচ্চা নারতাছে না"},
					domain.DialectChittagonian: {"বাচ্চা নারে না"},
				},
				BaseSeverity: domain.SeverityEmergency,
				RedFlag:      domain.RedFlagFetalDistress,
			},
			{
				ID: domain.SymptomSwelling,
				Keywords: map[domain.Dialect][]string{
					domain.DialectStandard:     {"পা ফোলা", "মুখ ফোলা", "হাত ফোলা", "ফুলে গেছে", "পানি জমা", "pa fula", "swelling", "edema"},
					domain.DialectSylheti:      {"পা ফুইলা গেছে"},
					domain.DialectChittagonian: {"ফুলে গেছে"},
				},
				BaseSeverity: domain.SeverityModerate,
				RedFlag:      domain.RedFlagPreeclampsia,
			},
			{
				ID: domain.SymptomFatigue,
				Keywords: map[domain.Dialect][]string{
					domain.DialectStandard:     {"ক্লান্ত", "দুর্বল", "শক্তি নেই", "অবসাদ", "weak", "durbol", "klanto"},
					domain.DialectSylheti:      {"ট্যারা লাগে", "ক্লান্ত"},
					domain.DialectChittagonian: {"শক্তি নাই"},
				},
				BaseSeverity: domain.SeverityMild,
				RedFlag:      domain.RedFlagNone,
			},
			{
				ID: domain.SymptomBackPain,
				Keywords: map[domain.Dialect][]string{
					domain.DialectStandard:     {"পিঠে ব্যথা", "কোমরে ব্যথা", "পিঠ ব্যথা", "merudondo", "back pain", "pith betha", "komor betha"},
					domain.DialectSylheti:      {"পিঠে বিষ", "কোমরে ব্যথা"},
					domain.DialectChittagonian: {"পিঠে যন্ত্রণা"},
				},
				BaseSeverity: domain.SeverityMild,
				RedFlag:      domain.RedFlagNone,
			},
			{
				ID: domain.SymptomConstipation,
				Keywords: map[domain.Dialect][]string{
					domain.DialectStandard:     {"কোষ্ঠকাঠিন্য", "পেট পরিষ্কার হয় না", "পায়খানা হয় না", "kosh", "constipation", "paykhana kosh"},
					domain.DialectSylheti:      {"পেট পরিষ্কার অয় না"},
					domain.DialectChittagonian: {"পায়খানা হয় না"},
				},
				BaseSeverity: domain.SeverityMild,
				RedFlag:      domain.RedFlagNone,
			},
			{
				ID: domain.SymptomLegCramps,
				Keywords: map[domain.Dialect][]string{
					domain.DialectStandard:     {"পায়ে টান", "পা কামড়ানো", "পায়ে ব্যথা", "pa betha", "leg cramp"},
					domain.DialectSylheti:      {"পায়ে টান ধরে"},
					domain.DialectChittagonian: {"পায়ে কামড়"},
				},
				BaseSeverity: domain.SeverityMild,
				RedFlag:      domain.RedFlagNone,
			},
			{
				ID: domain.SymptomBreathlessness,
				Keywords: map[domain.Dialect][]string{
					domain.DialectStandard:     {"শ্বাসকষ্ট", "শ্বাস নিতে কষ্ট", "দম বন্ধ লাগা", "shashkoshto", "breathing trouble"},
					domain.DialectSylheti:      {"দম আইনা কষ্ট", "শ্বাস অয় না"},
					domain.DialectChittagonian: {"দম পাই না"},
				},
				BaseSeverity:       domain.SeverityModerate,
				RedFlag:            domain.RedFlagNone,
				NeedsSeverityCheck: true,
			},
		},
		SevereModifiers:     []string{"প্রচণ্ড", "তীব্র", "খুব বেশি", "অনেক", "সহ্য হচ্ছে না", "অসহ্য"},
		ContinuousModifiers: []string{"সারাক্ষণ", "থামছে না", "ক্রমাগত", "বারবার"},
		SuddenModifiers:     []string{"হঠাৎ", "আচমকা", "হুট করে"},
	}
}
