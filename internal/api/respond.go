// internal/api/respond.go
package api

import (
	"encoding/json"
	"net/http"

	"fundlink/internal/common/errors"
)

// successEnvelope wraps every 2xx payload. Fallback and Err surface only
// when an external provider failed and the demo algorithm answered instead.
type successEnvelope struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data"`
	Fallback bool        `json:"_fallback,omitempty"`
	Err      string      `json:"_error,omitempty"`
}

type errorEnvelope struct {
	Success    bool        `json:"success"`
	Error      string      `json:"error"`
	Message    string      `json:"message,omitempty"`
	Details    interface{} `json:"details,omitempty"`
	RetryAfter int         `json:"retryAfter,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, successEnvelope{Success: true, Data: data})
}

func writeFallbackSuccess(w http.ResponseWriter, data interface{}, errMsg string) {
	writeJSON(w, http.StatusOK, successEnvelope{
		Success:  true,
		Data:     data,
		Fallback: true,
		Err:      errMsg,
	})
}

func writeError(w http.ResponseWriter, status int, errLabel, message string) {
	writeJSON(w, status, errorEnvelope{Success: false, Error: errLabel, Message: message})
}

// writeStandardError maps a StandardError onto the wire envelope; the
// status comes from the error code, not the call site.
func writeStandardError(w http.ResponseWriter, stdErr *errors.StandardError) {
	env := errorEnvelope{Success: false, Error: stdErr.Message}
	if retryAfter, ok := stdErr.Metadata["retryAfter"].(int); ok {
		env.RetryAfter = retryAfter
	}
	writeJSON(w, errors.HTTPStatus(stdErr.Code), env)
}

func writeValidationError(w http.ResponseWriter, details interface{}) {
	stdErr := errors.NewValidationFailedError("request validation")
	writeJSON(w, errors.HTTPStatus(stdErr.Code), errorEnvelope{
		Success: false,
		Error:   stdErr.Message,
		Details: details,
	})
}

func writeRateLimited(w http.ResponseWriter, retryAfter int) {
	writeStandardError(w, errors.NewRateLimitExceededError(retryAfter))
}
