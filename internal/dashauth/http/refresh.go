package http

import (
	"errors"
	"net/http"

	"github.com/metavr/dashauth/internal/dashauth/metrics"
	"github.com/metavr/dashauth/internal/dashauth/service"
	"github.com/metavr/dashauth/pkg/dashsdk"
	"github.com/metavr/dashauth/pkg/httpx"
	"github.com/metavr/dashauth/pkg/sessionx"
	"github.com/metavr/dashauth/pkg/slogx"
)

type RefreshHandler struct {
	Sessions       *sessionx.Service
	SessionService *service.SessionService
	Metrics        *metrics.Metrics
}

// ServeHTTP re-issues the session cookie when it is about to expire.
//
//	@Summary		Refresh the session
//	@Description	Mints a brand new session token when the current one expires within the hour,
//	@Description	keeping the remember-me choice. Otherwise the session is returned unchanged.
//	@Tags			Session
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	dashsdk.RefreshResponse
//	@Failure		401	{object}	dashsdk.APIError	"No valid session found"
//	@Failure		409	{object}	dashsdk.APIError	"Verify-only deployment"
//	@Failure		429	{object}	httpx.ErrorResponse	"Rate limit exceeded"
//	@Router			/api/auth/session/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	sess, ok := sessionx.FromContext(ctx)
	if !ok {
		dashsdk.ErrNoSession.WriteError(w)
		return
	}

	next, refreshed, err := h.SessionService.Refresh(ctx, sess)
	if err != nil {
		if errors.Is(err, sessionx.ErrIssuanceDisabled) {
			h.Metrics.SessionRefreshed(metrics.ResultDisabled)
			dashsdk.ErrIssuanceDisabled.WriteError(w)
			return
		}
		log.Error("failed to refresh session", "err", err)
		h.Metrics.SessionRefreshed(metrics.ResultError)
		dashsdk.ErrServerError.WriteError(w)
		return
	}

	if refreshed {
		if err := h.Sessions.SetSessionCookie(w, next, next.RememberMe); err != nil {
			log.Error("failed to set refreshed session cookie", "err", err)
			h.Metrics.SessionRefreshed(metrics.ResultError)
			dashsdk.ErrServerError.WriteError(w)
			return
		}
	}

	if refreshed {
		h.Metrics.SessionRefreshed(metrics.ResultRefreshed)
	} else {
		h.Metrics.SessionRefreshed(metrics.ResultUnchanged)
	}

	httpx.WriteJSON(w, http.StatusOK, dashsdk.RefreshResponse{
		Success:   true,
		Refreshed: refreshed,
		Session:   dashsdk.NewSessionInfo(next),
	})
}
