package dashsdk

import "github.com/metavr/dashauth/pkg/jwtx"

// SessionInfo is the public view of a session. RememberMe stays private to
// the token.
type SessionInfo struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Role      jwtx.Role `json:"role"`
	ExpiresAt int64     `json:"expiresAt"` // unix millis
}

// NewSessionInfo strips a SessionData down to its public fields.
func NewSessionInfo(data jwtx.SessionData) SessionInfo {
	return SessionInfo{
		UserID:    data.UserID,
		Email:     data.Email,
		Role:      data.Role,
		ExpiresAt: data.ExpiresAt,
	}
}

// SessionResponse is returned by GET /api/auth/session.
type SessionResponse struct {
	Success      bool         `json:"success"`
	Session      *SessionInfo `json:"session,omitempty"`
	ExpiringSoon bool         `json:"expiringSoon"`
}

// HandshakeRequest is the JSON body of POST /api/auth/handshake. The token may
// also arrive in the handshake cookie.
type HandshakeRequest struct {
	Token string `json:"token"`
}

// HandshakeResponse tells the dashboard where to send the user next.
type HandshakeResponse struct {
	Success    bool      `json:"success"`
	Message    string    `json:"message"`
	Role       jwtx.Role `json:"role"`
	RedirectTo string    `json:"redirectTo"`
}

// RefreshResponse is returned by POST /api/auth/session/refresh. Refreshed is
// false when the session still had enough time left.
type RefreshResponse struct {
	Success   bool        `json:"success"`
	Refreshed bool        `json:"refreshed"`
	Session   SessionInfo `json:"session"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SessionCheckResult is the outcome of CheckSession.
type SessionCheckResult struct {
	Valid   bool
	Expired bool
	Role    jwtx.Role
}

// HealthResponse is returned by /livez and /readyz. Checks is only set by
// /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency.
type HealthChecks struct {
	Database string `json:"database"`

	// Signer is "HS256" or "RS256 (verify-only)" when healthy.
	Signer string `json:"signer"`
}
