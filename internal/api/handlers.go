// internal/api/handlers.go
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"fundlink/internal/common/config"
	"fundlink/internal/common/errors"
	"fundlink/internal/common/logger"
	"fundlink/internal/common/metrics"
	"fundlink/internal/provider"
	"fundlink/internal/scoring/match"
	"fundlink/internal/storage"
)

// maxBodyBytes bounds request bodies; profiles and pitches are small.
const maxBodyBytes = 1 << 20

// Server holds the handler dependencies.
type Server struct {
	engine   *match.Engine
	gateway  *provider.Gateway
	profiles *storage.ProfileRepository
	cfg      *config.Config
	logger   logger.Logger
}

// NewServer creates the API server. profiles may be nil when Postgres is
// disabled; report requests then use only inline startup data.
func NewServer(engine *match.Engine, gateway *provider.Gateway, profiles *storage.ProfileRepository, cfg *config.Config, log logger.Logger) *Server {
	return &Server{
		engine:   engine,
		gateway:  gateway,
		profiles: profiles,
		cfg:      cfg,
		logger:   log,
	}
}

type matchRequest struct {
	Startup  match.StartupProfile  `json:"startup"`
	Investor match.InvestorProfile `json:"investor"`
	Options  match.Options         `json:"options"`
}

// HandleMatch scores startup/investor compatibility.
func (s *Server) HandleMatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if details := validateMatchRequest(body); details != nil {
		metrics.RequestsTotal.WithLabelValues("match", "invalid").Inc()
		writeValidationError(w, details)
		return
	}

	var req matchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	result := s.engine.Compute(req.Startup, req.Investor, req.Options)

	metrics.RequestsTotal.WithLabelValues("match", "ok").Inc()
	metrics.ScoringDuration.WithLabelValues("match").Observe(time.Since(start).Seconds())

	s.logger.Info("Match score computed", map[string]interface{}{
		"requestId":  RequestIDFromContext(r.Context()),
		"matchScore": result.MatchScore,
		"fitLevel":   result.FitLevel,
	})

	writeSuccess(w, result)
}

// HandleAnalyze runs a readiness assessment on a pitch.
func (s *Server) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if !json.Valid(body) {
		writeValidationError(w, []string{"Invalid pitch data format"})
		return
	}
	if containsSuspiciousContent(body) {
		metrics.RequestsTotal.WithLabelValues("analyze", "invalid").Inc()
		writeStandardError(w, errors.NewInvalidContentError("pitch contains markup or injection patterns"))
		return
	}

	var pitch struct {
		Description string `json:"description"`
	}
	_ = json.Unmarshal(body, &pitch)
	if utf8.RuneCountInString(pitch.Description) < 10 {
		s.logger.Warn("Pitch description too short for meaningful analysis", map[string]interface{}{
			"requestId": RequestIDFromContext(r.Context()),
		})
	}

	outcome := s.gateway.EvaluateReadiness(r.Context(), body)

	metrics.RequestsTotal.WithLabelValues("analyze", "ok").Inc()
	metrics.ScoringDuration.WithLabelValues("readiness").Observe(time.Since(start).Seconds())

	s.logger.Info("Readiness analysis complete", map[string]interface{}{
		"requestId": RequestIDFromContext(r.Context()),
		"provider":  outcome.Provider,
		"fallback":  outcome.Fallback,
	})

	if outcome.Fallback {
		writeFallbackSuccess(w, outcome.Data, outcome.Err)
		return
	}
	writeSuccess(w, outcome.Data)
}

type reportRequest struct {
	StartupID   string          `json:"startupId"`
	StartupData json.RawMessage `json:"startupData"`
}

// HandleReport generates a due-diligence report.
func (s *Server) HandleReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if req.StartupID == "" {
		metrics.RequestsTotal.WithLabelValues("report", "invalid").Inc()
		writeStandardError(w, errors.NewMissingFieldError("Startup ID"))
		return
	}

	startupData := req.StartupData
	if len(startupData) == 0 && s.profiles != nil {
		profile, err := s.profiles.GetStartupProfile(r.Context(), req.StartupID)
		if err == nil {
			startupData, _ = json.Marshal(profile)
		} else if stdErr, ok := err.(*errors.StandardError); ok && stdErr.Code == errors.ErrCodeProfileNotFound {
			s.logger.Debug("No stored profile for report", map[string]interface{}{
				"startupId": req.StartupID,
			})
		} else {
			s.logger.WithError(err).Warn("Profile lookup failed, generating report without stored data", map[string]interface{}{
				"startupId": req.StartupID,
				"retryable": errors.IsRetryable(err),
			})
		}
	}

	outcome := s.gateway.GenerateReport(r.Context(), req.StartupID, startupData)

	metrics.RequestsTotal.WithLabelValues("report", "ok").Inc()

	s.logger.Info("Report generated", map[string]interface{}{
		"requestId": RequestIDFromContext(r.Context()),
		"startupId": req.StartupID,
		"provider":  outcome.Provider,
		"fallback":  outcome.Fallback,
	})

	if outcome.Fallback {
		writeFallbackSuccess(w, outcome.Data, outcome.Err)
		return
	}
	writeSuccess(w, outcome.Data)
}

// HandleStatus reports provider configuration flags.
func (s *Server) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, s.gateway.Status())
}

// HandleHealth is the liveness endpoint.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": s.cfg.App.Name,
	})
}
