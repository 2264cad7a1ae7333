package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/metavr/dashauth/internal/dashauth/domain"
	"github.com/metavr/dashauth/internal/dashauth/store"
	"github.com/metavr/dashauth/pkg/cryptox"
	"github.com/metavr/dashauth/pkg/idx"
	"github.com/metavr/dashauth/pkg/jwtx"
	"github.com/metavr/dashauth/pkg/sessionx"
	"github.com/metavr/dashauth/pkg/slogx"
)

var (
	ErrHandshakeMissing  = errors.New("handshake token missing")
	ErrHandshakeInvalid  = errors.New("invalid or expired handshake token")
	ErrHandshakeConsumed = errors.New("handshake token already consumed")
	ErrInvalidRole       = errors.New("invalid role")
)

// HandshakeService hands a user over from the issuing backend to the dashboard.
// A handshake token is short lived and may be exchanged for a session once.
type HandshakeService struct {
	Sessions *sessionx.Service
	Store    store.Store
}

// Issue mints a handshake for the user. Every handshake gets a fresh ULID jti
// which the ledger uses to detect replays.
func (s *HandshakeService) Issue(
	ctx context.Context,
	userID, email string,
	role jwtx.Role,
	rememberMe bool,
	ttl time.Duration,
) (string, idx.ID, error) {
	log := slogx.FromContext(ctx)

	if !role.Valid() {
		log.Warn("refusing handshake for unknown role", slog.String("role", string(role)))
		return "", idx.Zero, ErrInvalidRole
	}

	id := idx.New()
	token, err := s.Sessions.CreateHandshakeToken(sessionx.HandshakeClaims{
		ID:         id.String(),
		UserID:     userID,
		Email:      email,
		Role:       role,
		RememberMe: rememberMe,
	}, ttl)
	if err != nil {
		log.Error("failed to sign handshake", slog.Any("error", err))
		return "", idx.Zero, err
	}

	log.Info("handshake issued",
		slog.String("handshake_id", id.String()),
		slog.String("user_id", userID),
	)
	return token, id, nil
}

// Exchange verifies token, marks it consumed and returns the session it
// stands for. The caller turns the result into a cookie.
//
// In verify-only deployments this fails with sessionx.ErrIssuanceDisabled
// before the handshake is consumed, so the token stays usable for the backend
// that can actually mint the session.
func (s *HandshakeService) Exchange(ctx context.Context, token string) (sessionx.SessionData, error) {
	log := slogx.FromContext(ctx)

	if token == "" {
		return sessionx.SessionData{}, ErrHandshakeMissing
	}
	if !s.Sessions.CanIssue() {
		return sessionx.SessionData{}, sessionx.ErrIssuanceDisabled
	}

	hs := s.Sessions.VerifyHandshakeToken(token)
	if hs == nil {
		return sessionx.SessionData{}, ErrHandshakeInvalid
	}

	err := s.Store.Handshakes().ConsumeHandshake(ctx, domain.ConsumedHandshake{
		Fingerprint: handshakeFingerprint(hs, token),
		UserID:      hs.UserID,
		ExpiresAt:   hs.ExpiresAt,
		ConsumedAt:  s.Sessions.Now(),
	})
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		log.Warn("handshake replayed",
			slog.String("handshake_id", hs.ID),
			slog.String("user_id", hs.UserID),
		)
		return sessionx.SessionData{}, ErrHandshakeConsumed
	case err != nil:
		log.Error("failed to record handshake", slog.Any("error", err))
		return sessionx.SessionData{}, err
	}

	log.Info("handshake exchanged",
		slog.String("handshake_id", hs.ID),
		slog.String("user_id", hs.UserID),
		slog.String("role", string(hs.Role)),
	)
	return s.Sessions.NewSessionData(hs.UserID, hs.Email, hs.Role, hs.RememberMe), nil
}

// handshakeFingerprint keys the ledger by jti. Tokens minted elsewhere without
// a jti fall back to the token itself.
func handshakeFingerprint(hs *sessionx.VerifiedHandshake, token string) string {
	if hs.ID != "" {
		return cryptox.FingerprintToken(hs.ID)
	}
	return cryptox.FingerprintToken(token)
}

// RedirectFor is where the dashboard sends a user after the exchange.
func RedirectFor(role jwtx.Role) string {
	if role == jwtx.RoleSupervisor {
		return "/supervisor/dashboard"
	}
	return "/admin/dashboard"
}
