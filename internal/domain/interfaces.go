package domain

import (
	"context"
)

// Triager processes symptom reports into triage results. The implementation
// is pure in-memory computation and never returns an error; any input shape
// degrades to the LOW-risk clarification path.
type Triager interface {
	ProcessSymptomReport(ctx context.Context, userID, inputText string, profile *MaternalRiskProfile, includeHistory bool) *TriageResult
}

// EmergencyBridge connects a CRITICAL triage outcome to emergency guidance,
// hospital routing, and ambulance dispatch.
type EmergencyBridge interface {
	Activate(ctx context.Context, req *EmergencyBridgeRequest) (*EmergencyBridgeResponse, error)
}

// ProfileStore persists maternal risk profiles. History normalization happens
// on Save, so profiles coming out of the store carry canonical condition tags.
type ProfileStore interface {
	Save(ctx context.Context, profile *MaternalRiskProfile) error
	Get(ctx context.Context, userID string) (*MaternalRiskProfile, error)
	Delete(ctx context.Context, userID string) error
	Close() error
}

// TriageLog records completed triage calls for the patient timeline.
type TriageLog interface {
	Save(ctx context.Context, record *TriageRecord) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*TriageRecord, error)
	Count(ctx context.Context, userID string) (int64, error)
	Close() error
}

// ResultCache is an optional read-through cache for triage responses. Triage
// is deterministic over its inputs, so identical reports may be served from
// cache by the API layer.
type ResultCache interface {
	Get(ctx context.Context, key string) (*TriageResult, bool)
	Set(ctx context.Context, key string, result *TriageResult)
}

// ConfigManager exposes the loaded service configuration.
type ConfigManager interface {
	GetConfig() *Config
	GetServerConfig() *ServerConfig
	Validate() error
}
