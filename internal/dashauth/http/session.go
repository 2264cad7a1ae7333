package http

import (
	"net/http"

	"github.com/metavr/dashauth/internal/dashauth/metrics"
	"github.com/metavr/dashauth/pkg/dashsdk"
	"github.com/metavr/dashauth/pkg/httpx"
	"github.com/metavr/dashauth/pkg/sessionx"
	"github.com/metavr/dashauth/pkg/slogx"
)

type SessionHandler struct {
	Sessions *sessionx.Service
	Metrics  *metrics.Metrics
}

// ServeHTTP reports the session carried by the request cookie.
//
//	@Summary		Check the current session
//	@Description	Verifies the session cookie. expiringSoon is set when less than an hour is left.
//	@Tags			Session
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	dashsdk.SessionResponse	"Valid session"
//	@Failure		401	{object}	dashsdk.APIError		"No valid session found"
//	@Failure		500	{object}	dashsdk.APIError		"Session check failed"
//	@Router			/api/auth/session [get].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			slogx.FromContext(r.Context()).Error("session check panicked", "panic", rec)
			h.Metrics.SessionChecked(metrics.ResultError)
			dashsdk.ErrSessionCheckFailed.WriteError(w)
		}
	}()

	sess := h.Sessions.GetSessionFromRequest(r)
	if sess == nil {
		h.Metrics.SessionChecked(metrics.ResultNone)
		dashsdk.ErrNoSession.WriteError(w)
		return
	}
	h.Metrics.SessionChecked(metrics.ResultValid)

	info := dashsdk.NewSessionInfo(*sess)
	httpx.WriteJSON(w, http.StatusOK, dashsdk.SessionResponse{
		Success:      true,
		Session:      &info,
		ExpiringSoon: h.Sessions.IsExpiringSoon(*sess, sessionx.DefaultExpiringSoonThreshold),
	})
}

// LogoutHandler godoc
//
//	@Summary		Log out
//	@Description	Clears the session cookie. Always succeeds, with or without a session.
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	dashsdk.MessageResponse
//	@Router			/api/auth/logout [post].
func LogoutHandler(sessions *sessionx.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess := sessions.GetSessionFromRequest(r); sess != nil {
			slogx.FromContext(r.Context()).Info("logout", "user_id", sess.UserID)
		}

		sessions.ClearSessionCookie(w)
		httpx.WriteJSON(w, http.StatusOK, dashsdk.MessageResponse{
			Success: true,
			Message: "Logged out",
		})
	}
}
