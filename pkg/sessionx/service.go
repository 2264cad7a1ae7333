// Package sessionx issues, verifies and carries dashboard sessions.
//
// Verification never fails loudly: every exported Verify/Get method returns nil
// for "treat as unauthenticated" and logs the reason at warn level. Genuine
// misconfiguration surfaces as ErrConfiguration from New or from the issuance
// methods in verify-only deployments.
package sessionx

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/metavr/dashauth/pkg/jwtx"
)

type (
	SessionData       = jwtx.SessionData
	HandshakeClaims   = jwtx.HandshakeClaims
	VerifiedHandshake = jwtx.VerifiedHandshake
	Role              = jwtx.Role
)

const (
	DefaultIssuer            = "metavr-backend"
	DefaultAudience          = "metavr-dashboard"
	DefaultHandshakeAudience = "metavr-handshake"

	// DefaultExpiringSoonThreshold is what callers pass to IsExpiringSoon when
	// they have no threshold of their own.
	DefaultExpiringSoonThreshold = time.Hour
)

var (
	ErrConfiguration    = jwtx.ErrConfiguration
	ErrIssuanceDisabled = jwtx.ErrIssuanceDisabled
)

// Token kinds passed to Observer.
const (
	KindSession   = "session"
	KindHandshake = "handshake"
)

// Observer is told about every rejected token, typically to feed a metric.
type Observer interface {
	VerificationFailed(kind, reason string)
}

// Config is read once at startup and never changes afterwards.
type Config struct {
	// Secret is required in every mode.
	Secret string

	// PublicKeyPEM switches the service to verify-only RS256 when set.
	PublicKeyPEM string

	Issuer            string
	Audience          string
	HandshakeAudience string

	// Production turns on the Secure cookie attribute.
	Production bool

	Logger   *slog.Logger
	Observer Observer
	Clock    func() time.Time
}

// Service is immutable after New and safe for concurrent use.
type Service struct {
	mode     jwtx.SigningMode
	signer   jwtx.Signer // nil in verify-only mode
	verifier jwtx.Verifier

	issuer            string
	audience          string
	handshakeAudience string
	production        bool

	logger   *slog.Logger
	observer Observer
	now      func() time.Time
}

// New resolves the signing mode and fails fast on anything that would leave
// the service unable to run safely.
func New(cfg Config) (*Service, error) {
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}
	if cfg.Audience == "" {
		cfg.Audience = DefaultAudience
	}
	if cfg.HandshakeAudience == "" {
		cfg.HandshakeAudience = DefaultHandshakeAudience
	}
	if cfg.HandshakeAudience == cfg.Audience {
		return nil, fmt.Errorf("%w: handshake audience must differ from session audience", ErrConfiguration)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	mode, err := jwtx.ResolveMode(cfg.Secret, cfg.PublicKeyPEM)
	if err != nil {
		return nil, err
	}

	verifier, err := jwtx.NewVerifier(mode, jwtx.VerifyOptions{
		Issuer:            cfg.Issuer,
		SessionAudience:   cfg.Audience,
		HandshakeAudience: cfg.HandshakeAudience,
		Now:               cfg.Clock,
	})
	if err != nil {
		return nil, err
	}

	s := &Service{
		mode:              mode,
		verifier:          verifier,
		issuer:            cfg.Issuer,
		audience:          cfg.Audience,
		handshakeAudience: cfg.HandshakeAudience,
		production:        cfg.Production,
		logger:            cfg.Logger,
		observer:          cfg.Observer,
		now:               cfg.Clock,
	}

	if mode.CanIssue() {
		if s.signer, err = jwtx.NewSigner(mode); err != nil {
			return nil, err
		}
	}

	s.logger.Info("session service ready",
		"alg", mode.Alg(),
		"can_issue", mode.CanIssue(),
		"issuer", cfg.Issuer,
		"audience", cfg.Audience,
	)
	return s, nil
}

// Mode reports the signing mode resolved at startup.
func (s *Service) Mode() jwtx.SigningMode { return s.mode }

// CanIssue is false in verify-only deployments.
func (s *Service) CanIssue() bool { return s.signer != nil }

// Now is the service clock.
func (s *Service) Now() time.Time { return s.now() }

// NewSessionData builds the session for a freshly authenticated user. The
// expiresAt lifetime matches the token that SetSessionCookie will mint.
func (s *Service) NewSessionData(userID, email string, role Role, rememberMe bool) SessionData {
	return SessionData{
		UserID:     userID,
		Email:      email,
		Role:       role,
		ExpiresAt:  s.now().Add(lifetime(rememberMe)).UnixMilli(),
		RememberMe: rememberMe,
	}
}

// CreateSessionToken signs data with the standard 12 hour lifetime.
func (s *Service) CreateSessionToken(data SessionData) (string, error) {
	return s.signSession(data, jwtx.SessionTTL)
}

// CreateRememberMeToken signs data with the 7 day remember-me lifetime.
func (s *Service) CreateRememberMeToken(data SessionData) (string, error) {
	return s.signSession(data, jwtx.RememberMeTTL)
}

// CreateHandshakeToken signs the reduced handshake claims. A ttl of zero or
// less means jwtx.DefaultHandshakeTTL.
func (s *Service) CreateHandshakeToken(claims HandshakeClaims, ttl time.Duration) (string, error) {
	if s.signer == nil {
		return "", ErrIssuanceDisabled
	}
	if ttl <= 0 {
		ttl = jwtx.DefaultHandshakeTTL
	}
	return s.signer.Sign(jwtx.NewHandshakeClaims(claims, ttl, s.issuer, s.handshakeAudience, s.now()))
}

func (s *Service) signSession(data SessionData, ttl time.Duration) (string, error) {
	if s.signer == nil {
		return "", ErrIssuanceDisabled
	}
	return s.signer.Sign(jwtx.NewSessionClaims(data, ttl, s.issuer, s.audience, s.now()))
}

// VerifySessionToken returns the session carried by token, or nil if the token
// should be treated as unauthenticated.
func (s *Service) VerifySessionToken(token string) *SessionData {
	return s.verifySessionLogged(s.logger, token)
}

// VerifyHandshakeToken returns the handshake carried by token, or nil.
func (s *Service) VerifyHandshakeToken(token string) *VerifiedHandshake {
	return s.verifyHandshakeLogged(s.logger, token)
}

func (s *Service) verifySessionLogged(logger *slog.Logger, token string) *SessionData {
	data, err := s.verifier.VerifySession(token)
	if err != nil {
		s.rejected(logger, KindSession, err)
		return nil
	}
	return &data
}

func (s *Service) verifyHandshakeLogged(logger *slog.Logger, token string) *VerifiedHandshake {
	hs, err := s.verifier.VerifyHandshake(token)
	if err != nil {
		s.rejected(logger, KindHandshake, err)
		return nil
	}
	return &hs
}

func (s *Service) rejected(logger *slog.Logger, kind string, err error) {
	reason := Reason(err)
	logger.Warn(kind+" verification failed", "reason", reason, "err", err)
	if s.observer != nil {
		s.observer.VerificationFailed(kind, reason)
	}
}

// IsExpiringSoon reports whether sess expires within threshold. A zero
// threshold only matches a session that has already run out.
func (s *Service) IsExpiringSoon(sess SessionData, threshold time.Duration) bool {
	return sess.ExpiresAt-s.now().UnixMilli() <= threshold.Milliseconds()
}

func lifetime(rememberMe bool) time.Duration {
	if rememberMe {
		return jwtx.RememberMeTTL
	}
	return jwtx.SessionTTL
}
