package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeValidationFailed, http.StatusBadRequest},
		{ErrCodeMissingField, http.StatusBadRequest},
		{ErrCodeInvalidContent, http.StatusBadRequest},
		{ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{ErrCodeProfileNotFound, http.StatusNotFound},
		{ErrCodeStorageFailed, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.code))
		})
	}
}

func TestConstructors(t *testing.T) {
	missing := NewMissingFieldError("Startup ID")
	assert.Equal(t, "Startup ID is required", missing.Message)
	assert.False(t, missing.Retryable)

	limited := NewRateLimitExceededError(42)
	assert.Equal(t, ErrCodeRateLimitExceeded, limited.Code)
	assert.Equal(t, 42, limited.Metadata["retryAfter"])

	timeout := NewProviderTimeoutError("openai")
	assert.Contains(t, timeout.Error(), "PROVIDER_TIMEOUT")
	assert.Contains(t, timeout.Message, "timeout")
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewStorageFailedError(fmt.Errorf("connection reset"))))
	assert.False(t, IsRetryable(NewProfileNotFoundError("startup-1")))
	assert.False(t, IsRetryable(fmt.Errorf("plain error")))
}
