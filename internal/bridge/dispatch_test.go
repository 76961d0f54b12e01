package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janani-ai/janani-server/internal/domain"
)

func newTestDispatcher(url string) *AgentDispatcher {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return NewAgentDispatcher(logger, domain.BridgeConfig{DispatchURL: url})
}

func TestDispatchAmbulance(t *testing.T) {
	var received dispatchTask
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	}))
	defer server.Close()

	d := newTestDispatcher(server.URL)

	err := d.DispatchAmbulance(context.Background(), &domain.EmergencyBridgeRequest{
		UserID:            "user-1",
		DetectedEmergency: "hemorrhage",
		PatientLocation:   &domain.GeoPoint{Latitude: 23.7, Longitude: 90.4},
		PatientPhone:      "01700000000",
	}, RankedHospital{Hospital: domain.Hospital{Name: "DMCH", Phone: "02-55165001"}})

	require.NoError(t, err)
	assert.Equal(t, "dispatch_ambulance", received.TaskType)
	assert.Equal(t, "user-1", received.Parameters["user_id"])
	assert.Equal(t, "DMCH", received.Parameters["destination"])
	assert.Equal(t, "01700000000", received.Parameters["patient_phone"])
}

func TestDispatchAmbulanceAgentError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": "no units available"})
	}))
	defer server.Close()

	d := newTestDispatcher(server.URL)

	err := d.DispatchAmbulance(context.Background(), &domain.EmergencyBridgeRequest{UserID: "user-2"}, RankedHospital{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no units available")
}

func TestDispatchAmbulanceBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	d := newTestDispatcher(server.URL)

	err := d.DispatchAmbulance(context.Background(), &domain.EmergencyBridgeRequest{UserID: "user-3"}, RankedHospital{})
	assert.Error(t, err)
}

func TestDispatchAmbulanceCircuitOpens(t *testing.T) {
	d := newTestDispatcher("http://127.0.0.1:1") // nothing listening

	req := &domain.EmergencyBridgeRequest{UserID: "user-4"}
	for i := 0; i < 3; i++ {
		assert.Error(t, d.DispatchAmbulance(context.Background(), req, RankedHospital{}))
	}

	// After three consecutive failures the breaker is open and rejects
	// immediately.
	err := d.DispatchAmbulance(context.Background(), req, RankedHospital{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
}

func TestDispatchAmbulanceNoURL(t *testing.T) {
	d := newTestDispatcher("")
	err := d.DispatchAmbulance(context.Background(), &domain.EmergencyBridgeRequest{UserID: "user-5"}, RankedHospital{})
	assert.Error(t, err)
}
