package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/janani-ai/janani-server/internal/domain"
)

// Dispatcher requests an ambulance through the execution agent.
type Dispatcher interface {
	DispatchAmbulance(ctx context.Context, req *domain.EmergencyBridgeRequest, hospital RankedHospital) error
}

// AgentDispatcher delegates dispatch tasks to the execution agent over HTTP.
// A circuit breaker shields the bridge from a down agent: once it opens,
// dispatch fails fast and the bridge response simply reports
// ambulance_dispatched=false.
type AgentDispatcher struct {
	logger     *logrus.Logger
	url        string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// dispatchTask is the execution agent's task envelope.
type dispatchTask struct {
	TaskType   string         `json:"task_type"`
	Parameters map[string]any `json:"parameters"`
}

type dispatchResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewAgentDispatcher creates a dispatcher for the configured agent URL.
func NewAgentDispatcher(logger *logrus.Logger, config domain.BridgeConfig) *AgentDispatcher {
	timeout := config.DispatchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	settings := gobreaker.Settings{
		Name:    "ambulance-dispatch",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Dispatch circuit breaker state changed")
		},
	}

	return &AgentDispatcher{
		logger:     logger,
		url:        config.DispatchURL,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    gobreaker.NewCircuitBreaker(settings),
	}
}

// DispatchAmbulance asks the execution agent to send an ambulance to the
// patient. The hospital argument tells the agent where the patient is headed.
func (d *AgentDispatcher) DispatchAmbulance(ctx context.Context, req *domain.EmergencyBridgeRequest, hospital RankedHospital) error {
	if d.url == "" {
		return fmt.Errorf("dispatch agent URL not configured")
	}

	params := map[string]any{
		"user_id":           req.UserID,
		"emergency":         req.DetectedEmergency,
		"destination":       hospital.Name,
		"destination_phone": hospital.Phone,
	}
	if req.PatientLocation != nil {
		params["latitude"] = req.PatientLocation.Latitude
		params["longitude"] = req.PatientLocation.Longitude
	}
	if req.PatientPhone != "" {
		params["patient_phone"] = req.PatientPhone
	}

	_, err := d.breaker.Execute(func() (interface{}, error) {
		return nil, d.post(ctx, dispatchTask{
			TaskType:   "dispatch_ambulance",
			Parameters: params,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to dispatch ambulance: %w", err)
	}

	d.logger.WithFields(logrus.Fields{
		"user_id":     req.UserID,
		"destination": hospital.Name,
	}).Info("Ambulance dispatch requested")

	return nil
}

func (d *AgentDispatcher) post(ctx context.Context, task dispatchTask) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode dispatch task: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create dispatch request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("dispatch agent unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("dispatch agent returned status %d: %s", resp.StatusCode, string(payload))
	}

	var result dispatchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode dispatch response: %w", err)
	}
	if result.Status == "error" {
		return fmt.Errorf("dispatch agent error: %s", result.Message)
	}

	return nil
}
