package httpx

import (
	"encoding/json"
	"net/http"
)

// SessionFailure is the body of every 401/403 on the session API. Expired
// tells the dashboard to send the user back to login.
type SessionFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Expired bool   `json:"expired"`
}

// ErrorResponse is the generic error body for everything that is not a
// session failure.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON writes v as JSON with code. Responses never get cached since most
// of them carry identity.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSessionFailure writes a SessionFailure with code.
func WriteSessionFailure(w http.ResponseWriter, code int, message string, expired bool) {
	WriteJSON(w, code, SessionFailure{Success: false, Message: message, Expired: expired})
}

// WriteError writes an ErrorResponse with code.
func WriteError(w http.ResponseWriter, code int, errCode, description string) {
	WriteJSON(w, code, ErrorResponse{Error: errCode, ErrorDescription: description})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
