package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/janani-ai/janani-server/internal/cache"
	"github.com/janani-ai/janani-server/internal/domain"
	"github.com/janani-ai/janani-server/internal/history"
)

// TriageRequest is the POST /api/v1/triage payload. InputText is the voice
// transcript in Bengali; the pipeline upstream has already done ASR.
type TriageRequest struct {
	UserID         string           `json:"user_id" binding:"required"`
	InputText      string           `json:"input_text" binding:"required"`
	IncludeHistory bool             `json:"include_history"`
	ActivateBridge bool             `json:"activate_bridge"`
	Location       *domain.GeoPoint `json:"location,omitempty"`
	Phone          string           `json:"phone,omitempty"`
}

// TriageResponse bundles the triage result with the emergency bridge
// activation when one was triggered.
type TriageResponse struct {
	Result *domain.TriageResult            `json:"result"`
	Bridge *domain.EmergencyBridgeResponse `json:"bridge,omitempty"`
	Cached bool                            `json:"cached"`
}

// HistoryResponse is one page of a patient's triage timeline.
type HistoryResponse struct {
	Records []*domain.TriageRecord `json:"records"`
	Total   int64                  `json:"total"`
	Limit   int                    `json:"limit"`
	Offset  int                    `json:"offset"`
}

// handleTriage runs one symptom report through the decision engine.
func (s *Server) handleTriage(c *gin.Context) {
	var req TriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput,
			"user_id and input_text are required", err.Error())
		return
	}

	ctx := c.Request.Context()
	profile := s.loadProfile(c, req.UserID)

	// Bridge activation must run on every report, so requests that may
	// escalate bypass the cache entirely.
	cacheKey := ""
	if s.cache != nil && !req.ActivateBridge {
		cacheKey = cache.Key(req.UserID, req.InputText, profile)
		if cached, ok := s.cache.Get(ctx, cacheKey); ok {
			s.saveRecord(c, req.InputText, cached, false)
			c.JSON(http.StatusOK, TriageResponse{Result: cached, Cached: true})
			return
		}
	}

	result := s.triager.ProcessSymptomReport(ctx, req.UserID, req.InputText, profile, req.IncludeHistory)

	resp := TriageResponse{Result: result}
	if result.ShouldTriggerEmergency && req.ActivateBridge {
		resp.Bridge = s.activateBridge(c, &req, result, profile)
	}

	s.saveRecord(c, req.InputText, result, resp.Bridge != nil)

	// Emergency results are never cached; each one must re-run the bridge
	// decision.
	if cacheKey != "" && !result.ShouldTriggerEmergency {
		s.cache.Set(ctx, cacheKey, result)
	}

	c.JSON(http.StatusOK, resp)
}

// saveRecord appends to the triage timeline. Log failures never fail the
// triage call.
func (s *Server) saveRecord(c *gin.Context, inputText string, result *domain.TriageResult, bridged bool) {
	if s.log == nil {
		return
	}

	record := history.RecordFromResult(inputText, result, bridged)
	if err := s.log.Save(c.Request.Context(), record); err != nil {
		s.logger.WithError(err).WithField("user_id", result.UserID).Error("Failed to save triage record")
	}
}

// activateBridge converts a CRITICAL triage result into a bridge activation.
// Bridge failures degrade the response, they never fail the triage call.
func (s *Server) activateBridge(c *gin.Context, req *TriageRequest, result *domain.TriageResult, profile *domain.MaternalRiskProfile) *domain.EmergencyBridgeResponse {
	if s.bridge == nil {
		return nil
	}

	bridgeReq := &domain.EmergencyBridgeRequest{
		UserID:          req.UserID,
		TriggerSource:   "voice_triage",
		RedFlags:        result.DetectedRedFlags,
		PatientLocation: req.Location,
		PatientPhone:    req.Phone,
		PatientProfile:  profile,
	}
	if len(result.DetectedRedFlags) > 0 {
		bridgeReq.DetectedEmergency = string(result.DetectedRedFlags[0])
	}

	bridgeResp, err := s.bridge.Activate(c.Request.Context(), bridgeReq)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":   req.UserID,
			"red_flags": result.DetectedRedFlags,
		}).Error("Emergency bridge activation failed")
		return nil
	}

	return bridgeResp
}

// handleEmergencyBridge activates the emergency bridge directly, for manual
// triggers and auto-detection sources outside the triage flow.
func (s *Server) handleEmergencyBridge(c *gin.Context) {
	var req domain.EmergencyBridgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput,
			"invalid emergency bridge request", err.Error())
		return
	}
	if req.UserID == "" {
		s.abortError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput,
			"user_id is required", "")
		return
	}

	if req.PatientProfile == nil {
		req.PatientProfile = s.loadProfile(c, req.UserID)
	}

	resp, err := s.bridge.Activate(c.Request.Context(), &req)
	if err != nil {
		s.abortError(c, http.StatusInternalServerError, domain.ErrCodeDispatch,
			"emergency bridge activation failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// handleGetProfile returns a stored maternal risk profile.
func (s *Server) handleGetProfile(c *gin.Context) {
	userID := c.Param("user_id")

	profile, err := s.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.abortError(c, http.StatusNotFound, domain.ErrCodeNotFound,
				"profile not found", "")
			return
		}
		s.abortError(c, http.StatusInternalServerError, domain.ErrCodeDatabase,
			"failed to load profile", err.Error())
		return
	}

	c.JSON(http.StatusOK, profile)
}

// handlePutProfile creates or updates a maternal risk profile. Free-form
// history strings are normalized to canonical condition tags on save.
func (s *Server) handlePutProfile(c *gin.Context) {
	userID := c.Param("user_id")

	var profile domain.MaternalRiskProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		s.abortError(c, http.StatusBadRequest, domain.ErrCodeInvalidInput,
			"invalid profile payload", err.Error())
		return
	}
	profile.UserID = userID

	ctx := c.Request.Context()
	if err := s.profiles.Save(ctx, &profile); err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			s.abortError(c, http.StatusBadRequest, domain.ErrCodeValidation,
				validationErr.Message, validationErr.Field)
			return
		}
		s.abortError(c, http.StatusInternalServerError, domain.ErrCodeDatabase,
			"failed to save profile", err.Error())
		return
	}

	// Return the stored form so callers see the normalized history tags.
	saved, err := s.profiles.Get(ctx, userID)
	if err != nil {
		s.abortError(c, http.StatusInternalServerError, domain.ErrCodeDatabase,
			"failed to load saved profile", err.Error())
		return
	}

	c.JSON(http.StatusOK, saved)
}

// handleDeleteProfile removes a profile at the patient's request.
func (s *Server) handleDeleteProfile(c *gin.Context) {
	userID := c.Param("user_id")

	if err := s.profiles.Delete(c.Request.Context(), userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.abortError(c, http.StatusNotFound, domain.ErrCodeNotFound,
				"profile not found", "")
			return
		}
		s.abortError(c, http.StatusInternalServerError, domain.ErrCodeDatabase,
			"failed to delete profile", err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

// handleListHistory returns one page of the patient's triage timeline,
// newest first.
func (s *Server) handleListHistory(c *gin.Context) {
	userID := c.Param("user_id")

	limit := parseIntQuery(c, "limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := parseIntQuery(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	ctx := c.Request.Context()
	records, err := s.log.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		s.abortError(c, http.StatusInternalServerError, domain.ErrCodeDatabase,
			"failed to list triage history", err.Error())
		return
	}

	total, err := s.log.Count(ctx, userID)
	if err != nil {
		s.abortError(c, http.StatusInternalServerError, domain.ErrCodeDatabase,
			"failed to count triage history", err.Error())
		return
	}

	c.JSON(http.StatusOK, HistoryResponse{
		Records: records,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

// loadProfile fetches the profile if one exists. A missing profile is not an
// error; triage falls back to defaults.
func (s *Server) loadProfile(c *gin.Context, userID string) *domain.MaternalRiskProfile {
	if s.profiles == nil {
		return nil
	}

	profile, err := s.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.WithError(err).WithField("user_id", userID).Warn("Failed to load profile")
		}
		return nil
	}
	return profile
}

func (s *Server) abortError(c *gin.Context, status int, code, message, details string) {
	c.AbortWithStatusJSON(status, domain.NewAPIError(
		code, message, details, c.GetString("correlation_id"),
	))
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
