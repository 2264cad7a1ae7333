package dashsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/metavr/dashauth/pkg/httpx"
)

// APIError is a failed call to the session API. The server writes these with
// WriteError and the client rebuilds them from the response.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`

	// Expired is set when the caller should start a new login.
	Expired bool `json:"expired"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// Is matches on status and message so callers can use errors.Is with the
// predefined values.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode && e.Message == t.Message
}

// WriteError writes e in the session API error shape.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteSessionFailure(w, e.StatusCode, e.Message, e.Expired)
}

var (
	ErrNoSession = &APIError{
		StatusCode: http.StatusUnauthorized,
		Message:    httpx.MessageNoSession,
		Expired:    true,
	}

	ErrSessionCheckFailed = &APIError{
		StatusCode: http.StatusInternalServerError,
		Message:    "Session check failed",
	}

	ErrHandshakeMissing = &APIError{
		StatusCode: http.StatusBadRequest,
		Message:    "Handshake token missing",
	}

	ErrHandshakeInvalid = &APIError{
		StatusCode: http.StatusBadRequest,
		Message:    "Invalid or expired handshake token",
	}

	ErrHandshakeConsumed = &APIError{
		StatusCode: http.StatusBadRequest,
		Message:    "Handshake token already consumed",
	}

	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Message:    "Invalid request body",
	}

	// ErrIssuanceDisabled is returned by a verify-only deployment for anything
	// that would mint a session.
	ErrIssuanceDisabled = &APIError{
		StatusCode: http.StatusConflict,
		Message:    "Session issuance is disabled on this deployment",
	}

	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Message:    "Internal server error",
	}
)

// parseErrorResponse understands both the session failure body and the
// generic {error, error_description} body used by the rate limiter.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var failure httpx.SessionFailure
	if err := json.Unmarshal(body, &failure); err == nil && failure.Message != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    failure.Message,
			Expired:    failure.Expired,
		}
	}

	var generic httpx.ErrorResponse
	if err := json.Unmarshal(body, &generic); err == nil && generic.Error != "" {
		msg := generic.ErrorDescription
		if msg == "" {
			msg = generic.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}
}
