package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token lifetimes for the dashboard session cookie and the handshake bridge.
const (
	// SessionTTL is the cryptographic lifetime of a standard session token.
	SessionTTL = 12 * time.Hour

	// RememberMeTTL is the cryptographic lifetime of a remember-me session token.
	RememberMeTTL = 7 * 24 * time.Hour

	// DefaultHandshakeTTL is used when a caller does not pick a handshake lifetime.
	// A handshake only has to survive one redirect, so keep it short.
	DefaultHandshakeTTL = 60 * time.Second
)

// Role is the single role carried by a session. Only two exist today.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSupervisor
}

// SessionData is the identity stored inside a session token.
//
// ExpiresAt is milliseconds since the epoch and is checked separately from the
// token's own "exp" claim, so an issuer can shorten a session without touching
// the signing lifetime.
type SessionData struct {
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	ExpiresAt  int64  `json:"expiresAt"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}

// ExpiresAtTime returns ExpiresAt as a time.Time.
func (d SessionData) ExpiresAtTime() time.Time {
	return time.UnixMilli(d.ExpiresAt)
}

// HandshakeClaims is the reduced identity moved from the issuing backend into a
// dashboard session. ID ends up in the "jti" claim so a handshake can be
// consumed exactly once.
type HandshakeClaims struct {
	ID         string `json:"-"`
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}

// VerifiedHandshake is a handshake that passed verification, together with its
// decoded iat/exp.
type VerifiedHandshake struct {
	HandshakeClaims

	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionTokenClaims is the signed form of SessionData.
type SessionTokenClaims struct {
	SessionData
	jwt.RegisteredClaims
}

// HandshakeTokenClaims is the signed form of HandshakeClaims.
type HandshakeTokenClaims struct {
	HandshakeClaims
	jwt.RegisteredClaims
}

// NewSessionClaims builds session claims expiring ttl after now.
func NewSessionClaims(
	data SessionData,
	ttl time.Duration,
	issuer, audience string,
	now time.Time,
) SessionTokenClaims {
	return SessionTokenClaims{
		SessionData: data,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// NewHandshakeClaims builds handshake claims expiring ttl after now.
func NewHandshakeClaims(
	claims HandshakeClaims,
	ttl time.Duration,
	issuer, audience string,
	now time.Time,
) HandshakeTokenClaims {
	return HandshakeTokenClaims{
		HandshakeClaims: claims,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        claims.ID,
		},
	}
}
