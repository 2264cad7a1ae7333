package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates session and handshake tokens and hands back their claims
// if they are legit.
type Verifier interface {
	Alg() string
	VerifySession(token string) (SessionData, error)
	VerifyHandshake(token string) (VerifiedHandshake, error)
}

// VerifyOptions captures what every token must carry.
type VerifyOptions struct {
	// Issuer the token must have (claims.iss).
	Issuer string

	// SessionAudience is required in claims.aud of session tokens.
	SessionAudience string

	// HandshakeAudience is required in claims.aud of handshake tokens. Keeping
	// it distinct from SessionAudience stops a handshake being replayed as a
	// session cookie.
	HandshakeAudience string

	// Now is the clock used for exp/iat and the expiresAt check. Defaults to
	// time.Now.
	Now func() time.Time
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer         = errors.New("jwtx: issuer mismatch")
	ErrAudience       = errors.New("jwtx: audience mismatch")
	ErrExpired        = errors.New("jwtx: token expired")
	ErrNotYetValid    = errors.New("jwtx: token not yet valid")
	ErrSessionExpired = errors.New("jwtx: session expiresAt has passed")
	ErrInvalidClaim   = errors.New("jwtx: invalid claims")
)

// NewVerifier returns the verifier for mode. Only the mode's algorithm is
// ever accepted.
func NewVerifier(mode SigningMode, opts VerifyOptions) (Verifier, error) {
	switch m := mode.(type) {
	case Symmetric:
		return NewVerifierHS256(m.Secret, opts), nil
	case AsymmetricVerifyOnly:
		return NewVerifierRS256(m.PublicKey, opts), nil
	default:
		return nil, ErrConfiguration
	}
}

func (o VerifyOptions) withDefaults() VerifyOptions {
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// tokenVerifier holds what the HS256 and RS256 verifiers share; they only
// differ in method and key.
type tokenVerifier struct {
	method jwt.SigningMethod
	key    any
	opts   VerifyOptions
}

func (v *tokenVerifier) Alg() string { return v.method.Alg() }

// VerifySession checks signature, algorithm, iss, aud, exp and finally the
// embedded expiresAt.
func (v *tokenVerifier) VerifySession(token string) (SessionData, error) {
	var claims SessionTokenClaims
	if err := v.parse(token, v.opts.SessionAudience, &claims); err != nil {
		return SessionData{}, err
	}

	data := claims.SessionData
	if err := validateIdentity(data.UserID, data.Role); err != nil {
		return SessionData{}, err
	}

	// A missing expiresAt is treated the same as one in the past.
	if data.ExpiresAt == 0 || data.ExpiresAt < v.opts.Now().UnixMilli() {
		return SessionData{}, ErrSessionExpired
	}

	return data, nil
}

// VerifyHandshake applies the same discipline to the reduced handshake claims.
func (v *tokenVerifier) VerifyHandshake(token string) (VerifiedHandshake, error) {
	var claims HandshakeTokenClaims
	if err := v.parse(token, v.opts.HandshakeAudience, &claims); err != nil {
		return VerifiedHandshake{}, err
	}

	if err := validateIdentity(claims.UserID, claims.Role); err != nil {
		return VerifiedHandshake{}, err
	}
	if claims.IssuedAt == nil {
		return VerifiedHandshake{}, fmt.Errorf("%w: iat is required", ErrInvalidClaim)
	}

	hs := claims.HandshakeClaims
	hs.ID = claims.RegisteredClaims.ID

	return VerifiedHandshake{
		HandshakeClaims: hs,
		IssuedAt:        claims.IssuedAt.Time,
		ExpiresAt:       claims.RegisteredClaims.ExpiresAt.Time,
	}, nil
}

func (v *tokenVerifier) parse(token, audience string, claims jwt.Claims) error {
	parser := jwt.NewParser(
		jwt.WithIssuer(v.opts.Issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.opts.Now),
	)

	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		// Checked here rather than with WithValidMethods so an algorithm
		// confusion attempt is reported as such.
		if t.Method == nil || t.Method.Alg() != v.method.Alg() {
			return nil, ErrAlgMismatch
		}
		return v.key, nil
	})
	if err != nil {
		return classify(err)
	}
	if !parsed.Valid {
		return ErrInvalidClaim
	}
	return nil
}

func validateIdentity(userID string, role Role) error {
	if userID == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidClaim)
	}
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidClaim, role)
	}
	return nil
}

// classify folds the jwt library's errors into our sentinels while keeping the
// original message around for logs.
func classify(err error) error {
	var sentinel error
	switch {
	case errors.Is(err, ErrAlgMismatch):
		sentinel = ErrAlgMismatch
	case errors.Is(err, jwt.ErrTokenMalformed):
		sentinel = ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		sentinel = ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		sentinel = ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		sentinel = ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		sentinel = ErrIssuer
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		sentinel = ErrAudience
	default:
		sentinel = ErrInvalidClaim
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
