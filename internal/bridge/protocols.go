// Package bridge connects a critical triage outcome to emergency guidance:
// red-flag-specific protocols in Bengali, nearest-hospital routing, volunteer
// lookup, and ambulance dispatch through the execution agent.
package bridge

import (
	"github.com/janani-ai/janani-server/internal/domain"
)

// Protocol is the emergency guidance for one danger category. Steps and
// prohibitions are patient-facing Bengali; the AR guidance tag selects a
// visual overlay in the companion app when one exists.
type Protocol struct {
	NameBengali    string
	Severity       string
	ImmediateSteps []string
	DoNot          []string
	ARGuidance     string
}

// Emergency contact numbers for Bangladesh.
const (
	NationalEmergencyNumber = "999"
	HealthHotlineNumber     = "16789"
	MaternalHotlineNumber   = "16263"
)

// emergencyProtocols maps each danger category to its guidance. Hemorrhage
// doubles as the fallback protocol when the request carries no red flags.
var emergencyProtocols = map[domain.RedFlagType]Protocol{
	domain.RedFlagHemorrhage: {
		NameBengali: "অতিরিক্ত রক্তপাত (Hemorrhage)",
		Severity:    "critical",
		ImmediateSteps: []string{
			"🚨 এখনই 999 কল করুন বা নিকটস্থ হাসপাতালে জান",
			"সোজা হয়ে শুয়ে পড়ুন এবং পা ২-৩টি বালিশ দিয়ে উঁচু করে রাখুন (Shock Position)",
			"তলপেটে জরায়ু মালিশ করুন যদি প্রসব পরবর্তী রক্তপাত হয়",
			"রক্তাক্ত প্যাড বা কাপড় গুনে রাখুন যা ডাক্তারকে দেখাতে হবে",
			"শরীরে গরম কাপড় বা কম্বল জড়িয়ে রাখুন",
			"পানি বা খাবার একদম খাবেন না",
		},
		DoNot: []string{
			"❌ হাঁটাচলা করবেন না",
			"❌ টয়লেটে যাওয়ার চেষ্টা করবেন না",
			"❌ কোনো ওষুধ (ব্যথানাশক) খাবেন না",
		},
		ARGuidance: "hemorrhage_first_aid",
	},
	domain.RedFlagEclampsia: {
		NameBengali: "খিঁচুনি/এক্লাম্পসিয়া",
		Severity:    "critical",
		ImmediateSteps: []string{
			"🚨 এখনই 999 কল করুন",
			"রোগীকে কাত করে শোয়ান (বাম দিকে)",
			"মাথার নিচে নরম কিছু দিন",
			"আঁটসাঁট কাপড় ঢিলা করুন",
			"মুখে কিছু দেবেন না",
		},
		DoNot: []string{
			"❌ জোর করে ধরবেন না",
			"❌ মুখে আঙুল বা চামচ দেবেন না",
			"❌ পানি বা ওষুধ খাওয়াবেন না",
		},
		ARGuidance: "eclampsia_position",
	},
	domain.RedFlagPreeclampsia: {
		NameBengali: "প্রি-এক্লাম্পসিয়া",
		Severity:    "critical",
		ImmediateSteps: []string{
			"🚨 এখনই হাসপাতালে যান",
			"বাম কাত হয়ে শুয়ে থাকুন",
			"অন্ধকার ও শান্ত ঘরে থাকুন",
			"রক্তচাপ মাপুন (যদি সম্ভব হয়)",
		},
		DoNot: []string{
			"❌ লবণ খাবেন না",
			"❌ একা যাবেন না",
			"❌ দেরি করবেন না",
		},
		ARGuidance: "bp_monitoring",
	},
	domain.RedFlagPretermLabor: {
		NameBengali: "সময়ের আগে প্রসব বেদনা",
		Severity:    "critical",
		ImmediateSteps: []string{
			"🚨 এখনই হাসপাতালে যান",
			"বাম কাত হয়ে শুয়ে পড়ুন",
			"প্রচুর পানি পান করুন",
			"সংকোচনের সময় ও বিরতি নোট করুন",
		},
		DoNot: []string{
			"❌ হাঁটাচলা করবেন না",
			"❌ বাথরুমে দীর্ঘ সময় থাকবেন না",
			"❌ ভারী কাজ করবেন না",
		},
		ARGuidance: "contraction_timing",
	},
	domain.RedFlagRuptureOfMembranes: {
		NameBengali: "পানি ভাঙা",
		Severity:    "critical",
		ImmediateSteps: []string{
			"🚨 এখনই হাসপাতালে যান",
			"শুয়ে পড়ুন",
			"প্যাড ব্যবহার করুন, পরিমাণ দেখুন",
			"পানির রং নোট করুন (স্বচ্ছ/সবুজ/হলুদ)",
			"সময় নোট করুন",
		},
		DoNot: []string{
			"❌ গোসল করবেন না",
			"❌ যৌন সম্পর্ক করবেন না",
			"❌ ট্যাম্পন ব্যবহার করবেন না",
		},
		ARGuidance: "rom_guidance",
	},
	domain.RedFlagFetalDistress: {
		NameBengali: "বাচ্চার নড়াচড়া কমে যাওয়া",
		Severity:    "critical",
		ImmediateSteps: []string{
			"🚨 এখনই হাসপাতালে যান",
			"বাম কাত হয়ে শুন",
			"ঠান্ডা পানি পান করুন",
			"১০টি নড়াচড়া গুনুন - ২ ঘণ্টায় ১০ না হলে জরুরি",
		},
		DoNot: []string{
			"❌ দেরি করবেন না",
			"❌ অপেক্ষা করবেন না 'আবার নড়বে'",
		},
		ARGuidance: "kick_count",
	},
	domain.RedFlagInfection: {
		NameBengali: "সংক্রমণ/জ্বর",
		Severity:    "high",
		ImmediateSteps: []string{
			"⚠️ আজকেই ডাক্তার দেখান",
			"জ্বর মাপুন ও নোট করুন",
			"প্রচুর পানি পান করুন",
			"প্যারাসিটামল খেতে পারেন (৫০০mg)",
		},
		DoNot: []string{
			"❌ অ্যাসপিরিন বা আইবুপ্রোফেন খাবেন না",
			"❌ মিসো/সাইটো খাবেন না",
		},
	},
}

// ProtocolFor returns the protocol for a danger category, falling back to
// the hemorrhage protocol for unknown or absent categories.
func ProtocolFor(flag domain.RedFlagType) Protocol {
	if p, ok := emergencyProtocols[flag]; ok {
		return p
	}
	return emergencyProtocols[domain.RedFlagHemorrhage]
}
