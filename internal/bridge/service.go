package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/janani-ai/janani-server/internal/domain"
)

// defaultHospitals seeds the directory when no hospitals file is configured.
var defaultHospitals = []domain.Hospital{
	{
		ID:           "hosp_default",
		Name:         "ঢাকা মেডিকেল কলেজ হাসপাতাল",
		NameEnglish:  "Dhaka Medical College Hospital",
		Address:      "Ramna, Dhaka",
		Latitude:     23.7258,
		Longitude:    90.3973,
		Phone:        "02-55165001",
		HasMaternity: true,
		Type:         "government",
	},
}

// Service activates the emergency bridge: selects the protocol for the
// primary red flag, routes to the nearest hospital, personalizes the steps
// from the patient profile, and requests ambulance dispatch when the danger
// category warrants one.
type Service struct {
	logger     *logrus.Logger
	config     domain.BridgeConfig
	hospitals  []domain.Hospital
	volunteers []domain.Volunteer
	dispatcher Dispatcher
}

// NewService creates the bridge service, loading the hospital and volunteer
// directories from the configured files. Missing or unreadable files fall
// back to the built-in directory so the bridge always has a referral target.
func NewService(logger *logrus.Logger, config domain.BridgeConfig, dispatcher Dispatcher) *Service {
	if config.EmergencyNumber == "" {
		config.EmergencyNumber = NationalEmergencyNumber
	}

	s := &Service{
		logger:     logger,
		config:     config,
		hospitals:  defaultHospitals,
		dispatcher: dispatcher,
	}

	if config.HospitalsFile != "" {
		var hospitals []domain.Hospital
		if err := loadJSONFile(config.HospitalsFile, &hospitals); err != nil {
			logger.WithError(err).WithField("file", config.HospitalsFile).Warn("Failed to load hospital directory, using default")
		} else if len(hospitals) > 0 {
			s.hospitals = hospitals
		}
	}

	if config.VolunteersFile != "" {
		var volunteers []domain.Volunteer
		if err := loadJSONFile(config.VolunteersFile, &volunteers); err != nil {
			logger.WithError(err).WithField("file", config.VolunteersFile).Warn("Failed to load volunteer directory")
		} else {
			s.volunteers = volunteers
		}
	}

	logger.WithFields(logrus.Fields{
		"hospitals":  len(s.hospitals),
		"volunteers": len(s.volunteers),
	}).Info("Emergency bridge initialized")

	return s
}

func loadJSONFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Activate runs the emergency bridge for one critical triage outcome.
func (s *Service) Activate(ctx context.Context, req *domain.EmergencyBridgeRequest) (*domain.EmergencyBridgeResponse, error) {
	if req == nil || req.UserID == "" {
		return nil, domain.NewValidationError("user_id", "user id is required", nil)
	}

	bridgeID := uuid.New().String()[:8]

	primary := domain.RedFlagHemorrhage
	if len(req.RedFlags) > 0 {
		primary = req.RedFlags[0]
	}
	protocol := ProtocolFor(primary)

	nearest := NearestHospitals(req.PatientLocation, s.hospitals, 1)
	hospital := RankedHospital{Hospital: s.hospitals[0]}
	if len(nearest) > 0 {
		hospital = nearest[0]
	}

	volunteers := NearestVolunteers(req.PatientLocation, s.volunteers, 2)

	steps := s.personalizeSteps(protocol.ImmediateSteps, req.PatientProfile)

	s.logger.WithFields(logrus.Fields{
		"bridge_id":  bridgeID,
		"user_id":    req.UserID,
		"red_flag":   primary.String(),
		"hospital":   hospital.NameEnglish,
		"volunteers": len(volunteers),
	}).Info("Emergency bridge activated")

	dispatched := false
	if s.dispatcher != nil && needsAmbulance(req.RedFlags) {
		if err := s.dispatcher.DispatchAmbulance(ctx, req, hospital); err != nil {
			// Dispatch failure must not block the guidance response.
			s.logger.WithError(err).WithField("bridge_id", bridgeID).Error("Ambulance dispatch failed")
		} else {
			dispatched = true
		}
	}

	resp := &domain.EmergencyBridgeResponse{
		BridgeID:              bridgeID,
		Status:                "activated",
		ImmediateStepsBengali: steps,
		DoNotDoBengali:        protocol.DoNot,
		EmergencyNumber:       s.config.EmergencyNumber,
		NearestHospital:       hospital.Name,
		HospitalPhone:         hospital.Phone,
		HospitalDistanceKM:    hospital.DistanceKM,
		ARGuidanceAvailable:   protocol.ARGuidance != "",
		ARGuidanceType:        protocol.ARGuidance,
		VoiceGuidanceText:     voiceGuidance(protocol.NameBengali, steps, hospital.Name),
		AmbulanceDispatched:   dispatched,
		EstimatedResponseTime: estimatedResponseTime(hospital.DistanceKM),
		NearestVolunteers:     volunteers,
		CreatedAt:             time.Now().UTC(),
	}

	return resp, nil
}

// personalizeSteps tailors the protocol steps with what the profile tells
// us: a third-trimester movement reminder, the blood group to announce at
// the hospital, and a leading urgency note for high-risk profiles.
func (s *Service) personalizeSteps(steps []string, profile *domain.MaternalRiskProfile) []string {
	personalized := append([]string{}, steps...)
	if profile == nil {
		return personalized
	}

	if profile.CurrentWeek > 28 {
		personalized = append(personalized, "🦶 বাচ্চার নড়াচড়া খেয়াল করুন")
	}

	if profile.BloodGroup != "" {
		personalized = append(personalized, fmt.Sprintf("🩸 আপনার ব্লাড গ্রুপ (%s) হাসপাতালে জানান", profile.BloodGroup))
	}

	if profile.OverallRiskLevel == "high" {
		personalized = append([]string{"⚠️ আপনার রিস্ক প্রোফাইল হাই, দ্রুত হাসপাতালে পৌঁছানো জরুরি"}, personalized...)
	}

	return personalized
}

func needsAmbulance(flags []domain.RedFlagType) bool {
	for _, f := range flags {
		if f == domain.RedFlagHemorrhage || f == domain.RedFlagEclampsia || f == domain.RedFlagConvulsions {
			return true
		}
	}
	return false
}

// voiceGuidance builds the calm-but-urgent spoken script: a validation
// intro, the first two protocol steps with icons stripped, the hospital
// routing line, and a reassuring close.
func voiceGuidance(emergencyName string, steps []string, hospitalName string) string {
	intro := fmt.Sprintf("আপু, শান্ত হোন। আপনার %s এর লক্ষণ দেখে মনে হচ্ছে আমাদের এখনই ব্যবস্থা নিতে হবে।", emergencyName)

	spoken := make([]string, 0, 2)
	for i, step := range steps {
		if i == 2 {
			break
		}
		step = strings.ReplaceAll(step, "🚨", "")
		step = strings.ReplaceAll(step, "❌", "")
		spoken = append(spoken, strings.TrimSpace(step))
	}
	stepsText := strings.Join(spoken, " ")

	hospitalInfo := ""
	if hospitalName != "" {
		hospitalInfo = fmt.Sprintf("নিকটস্থ %s হাসপাতালে পৌঁছানো এখন সবচেয়ে জরুরি। আমরা আগে থেকেই ডাক্তারদের জানিয়ে রাখছি।", hospitalName)
	}

	outro := "আমি আপনার পাশেই আছি। ভয় পাবেন না, সব ঠিক হয়ে যাবে ইনশাআল্লাহ।"

	return fmt.Sprintf("%s %s %s %s", intro, stepsText, hospitalInfo, outro)
}

func estimatedResponseTime(distanceKM float64) string {
	minutes := int(distanceKM * 2.5)
	if minutes < 10 {
		minutes = 10
	}
	return fmt.Sprintf("%d মিনিট", minutes)
}
