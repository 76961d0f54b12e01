package triage

import (
	"fmt"

	"github.com/janani-ai/janani-server/internal/domain"
)

// clarificationAudioText is spoken when no symptom keyword matched.
const clarificationAudioText = "আপনার সমস্যাটি আমি ঠিকমতো বুঝতে পারিনি। একটু বিস্তারিত বলবেন?"

// empowermentClose ends every voice response.
const empowermentClose = "আমরা একসাথে সঠিক পদক্ষেপ নিচ্ছি।"

type concernText struct {
	English string
	Bengali string
}

// primaryConcerns maps the first detected symptom to the headline concern.
var primaryConcerns = map[domain.SymptomID]concernText{
	domain.SymptomBleeding:            {"Vaginal bleeding", "যোনি থেকে রক্তপাত"},
	domain.SymptomSevereHeadache:      {"Severe headache", "তীব্র মাথাব্যথা"},
	domain.SymptomVisionProblems:      {"Vision problems", "চোখে সমস্যা"},
	domain.SymptomConvulsions:         {"Convulsions", "খিঁচুনি"},
	domain.SymptomSevereAbdominalPain: {"Severe abdominal pain", "তীব্র পেটব্যথা"},
	domain.SymptomWaterBreaking:       {"Water breaking", "পানি ভাঙা"},
	domain.SymptomReducedMovement:     {"Reduced fetal movement", "বাচ্চার নড়াচড়া কম"},
	domain.SymptomContractionsPreterm: {"Preterm contractions", "সময়ের আগে সংকোচন"},
	domain.SymptomHighFever:           {"High fever", "জ্বর"},
	domain.SymptomBurningUrination:    {"Urinary infection", "প্রস্রাবে সমস্যা"},
	domain.SymptomSwelling:            {"Swelling", "ফুলে যাওয়া"},
}

var fallbackConcern = concernText{"Health concern", "স্বাস্থ্য সমস্যা"}

type actionText struct {
	English string
	Bengali string
}

// immediateActions maps the final risk level to the patient-facing action.
var immediateActions = map[domain.RiskLevel]actionText{
	domain.RiskCritical: {
		English: "Go to hospital immediately or call 999",
		Bengali: "🚨 আপু, এখনই দেরি না করে হাসপাতালে পৌঁছে যান। খুব দরকার হলে 999 এ কল দিন।",
	},
	domain.RiskHigh: {
		English: "See a doctor within 1 hour",
		Bengali: "⚠️ আমাদের একটু সতর্ক হতে হবে। এক ঘণ্টার মধ্যে ডাক্তার দেখানোর চেষ্টা করুন।",
	},
	domain.RiskModerate: {
		English: "See a doctor today",
		Bengali: "আজকের দিনেই একবার আপনার ডাক্তারের সাথে কথা বলে নিন।",
	},
	domain.RiskLow: {
		English: "Self-care at home, routine checkup",
		Bengali: "চিন্তা করবেন না, বাসায় বিশ্রাম নিন। পরবর্তী চেকআপের সময় ডাক্তারকে এই কথা বলবেন।",
	},
}

// homeCareAdvice maps comfort symptoms to self-care steps in Bengali.
var homeCareAdvice = map[domain.SymptomID][]string{
	domain.SymptomNausea: {
		"অল্প অল্প করে খান",
		"শুকনো বিস্কুট বা টোস্ট খেয়ে দেখুন",
		"আদা চা বা লেবু পানি খেতে পারেন",
		"গন্ধযুক্ত খাবার এড়িয়ে চলুন",
	},
	domain.SymptomBackPain: {
		"বাম পাশে কাত হয়ে শুন",
		"গরম সেঁক দিন",
		"নরম জুতা পরুন",
		"ভারী জিনিস তুলবেন না",
	},
	domain.SymptomConstipation: {
		"বেশি করে পানি খান",
		"শাকসবজি ও ফল খান",
		"হালকা হাঁটাহাঁটি করুন",
		"ইসবগুল খেতে পারেন",
	},
	domain.SymptomLegCramps: {
		"পা স্ট্রেচ করুন",
		"হালকা ম্যাসাজ করুন",
		"কলা খান (পটাশিয়াম)",
		"ঘুমানোর আগে পা উঁচু করে রাখুন",
	},
	domain.SymptomFatigue: {
		"পর্যাপ্ত বিশ্রাম নিন",
		"দিনে একটু ঘুমান",
		"আয়রনযুক্ত খাবার খান",
		"হালকা হাঁটাহাঁটি করুন",
	},
}

var genericAdvice = []string{"বিশ্রাম নিন", "পানি খান"}

var highRiskAdvice = []string{"হাসপাতালে যাওয়ার আগে শান্ত থাকুন", "পরিবারকে জানান"}

// warningSigns is the fixed watch list given with every result.
var warningSigns = []string{
	"রক্তপাত হলে",
	"প্রচণ্ড মাথাব্যথা হলে",
	"চোখে ঝাপসা দেখলে",
	"বাচ্চার নড়াচড়া কমে গেলে",
}

func adviceFor(symptom domain.SymptomID, risk domain.RiskLevel) []string {
	if risk == domain.RiskCritical || risk == domain.RiskHigh {
		return append([]string{}, highRiskAdvice...)
	}
	if advice, ok := homeCareAdvice[symptom]; ok {
		return append([]string{}, advice...)
	}
	return append([]string{}, genericAdvice...)
}

// voiceResponse builds the spoken script in three phases: an empathetic
// validation keyed by risk level, an assessment body carrying the action
// (with the history concern appended on critical elevation), and a fixed
// empowerment close.
func voiceResponse(concernBengali, actionBengali string, risk domain.RiskLevel, historyConcern string) string {
	var intro, body string

	switch risk {
	case domain.RiskCritical:
		intro = fmt.Sprintf("আপু, আপনার %s এর কথা শুনে আমি চিন্তিত। শান্ত থাকুন, আমি আপনার সাথে আছি।", concernBengali)
		body = fmt.Sprintf("আপনাকে এখনই হাসপাতালে যেতে হবে। %s এটি আপনার ও সন্তানের নিরাপত্তার জন্য জরুরি।", actionBengali)
		if historyConcern != "" {
			body += fmt.Sprintf(" আপনার %s এর ইতিহাস থাকায় আমাদের আরও বেশি সতর্ক থাকতে হবে।", historyConcern)
		}
	case domain.RiskHigh:
		intro = fmt.Sprintf("আপু, আপনার %s এর বিষয়টা আমি বুঝতে পারছি। আমাদের এখনই এটা নিয়ে কাজ করতে হবে।", concernBengali)
		body = fmt.Sprintf("এই লক্ষণটি অবহেলা করা ঠিক হবে না। আপনার উচিত %s। এতে আমরা নিশ্চিত হতে পারব সব ঠিক আছে কি না।", actionBengali)
	case domain.RiskModerate:
		intro = fmt.Sprintf("আপু, আপনার %s নিয়ে একটু মন খারাপ হতে পারে, আমি বুঝতে পারছি। গর্ভাবস্থায় মাঝে মাঝে এমন হয়।", concernBengali)
		body = fmt.Sprintf("শরীর একটু খারাপ লাগা স্বাভাবিক। আপনি %s। এতে আপনি আরাম পাবেন।", actionBengali)
	default:
		intro = fmt.Sprintf("আপু, আপনার %s এর কথা শুনে বুঝলাম আপনার কষ্ট হচ্ছে। ভয় নেই, আমি শুনছি।", concernBengali)
		body = fmt.Sprintf("এটি একটি সাধারণ সমস্যা। %s বিশ্রাম নিলে ভালো লাগবে।", actionBengali)
	}

	return fmt.Sprintf("%s %s %s", intro, body, empowermentClose)
}
