package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/metavr/dashauth/pkg/sessionx"
	"github.com/metavr/dashauth/pkg/slogx"
)

// SessionService decides when a live session gets a new token.
type SessionService struct {
	Sessions *sessionx.Service

	// RefreshThreshold is how close to expiry a session must be before Refresh
	// replaces it. Zero or less means sessionx.DefaultExpiringSoonThreshold.
	RefreshThreshold time.Duration
}

// Refresh returns a brand new session for sess if it is expiring soon, keeping
// the remember-me choice. When the session still has time left it is returned
// unchanged with refreshed false.
func (s *SessionService) Refresh(ctx context.Context, sess sessionx.SessionData) (sessionx.SessionData, bool, error) {
	if !s.Sessions.CanIssue() {
		return sess, false, sessionx.ErrIssuanceDisabled
	}
	threshold := s.RefreshThreshold
	if threshold <= 0 {
		threshold = sessionx.DefaultExpiringSoonThreshold
	}
	if !s.Sessions.IsExpiringSoon(sess, threshold) {
		return sess, false, nil
	}

	next := s.Sessions.NewSessionData(sess.UserID, sess.Email, sess.Role, sess.RememberMe)

	slogx.FromContext(ctx).Info("session refreshed",
		slog.String("user_id", sess.UserID),
		slog.Time("old_expires_at", sess.ExpiresAtTime()),
		slog.Time("new_expires_at", next.ExpiresAtTime()),
	)
	return next, true, nil
}
