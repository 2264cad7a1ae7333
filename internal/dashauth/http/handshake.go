package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/metavr/dashauth/internal/dashauth/metrics"
	"github.com/metavr/dashauth/internal/dashauth/service"
	"github.com/metavr/dashauth/pkg/dashsdk"
	"github.com/metavr/dashauth/pkg/httpx"
	"github.com/metavr/dashauth/pkg/sessionx"
	"github.com/metavr/dashauth/pkg/slogx"
)

const maxHandshakeBody = 8 << 10

type HandshakeHandler struct {
	Sessions         *sessionx.Service
	HandshakeService *service.HandshakeService
	Metrics          *metrics.Metrics
}

// ServeHTTP exchanges a handshake token for a session cookie.
//
//	@Summary		Exchange a handshake token
//	@Description	Accepts the token as JSON {"token": "..."} or from the "handshake" cookie.
//	@Description	Each handshake can be exchanged once. On success the session cookie is set
//	@Description	and the handshake cookie is cleared.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dashsdk.HandshakeRequest	false	"Handshake token"
//	@Success		200		{object}	dashsdk.HandshakeResponse
//	@Failure		400		{object}	dashsdk.APIError	"Missing, invalid, expired or consumed handshake"
//	@Failure		409		{object}	dashsdk.APIError	"Verify-only deployment"
//	@Failure		429		{object}	httpx.ErrorResponse	"Rate limit exceeded"
//	@Failure		500		{object}	dashsdk.APIError
//	@Router			/api/auth/handshake [post].
func (h *HandshakeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token, err := handshakeToken(w, r)
	if err != nil {
		log.Warn("unreadable handshake body", "err", err)
		h.Metrics.HandshakeExchanged(metrics.ResultInvalid)
		dashsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	sess, err := h.HandshakeService.Exchange(ctx, token)
	switch {
	case errors.Is(err, service.ErrHandshakeMissing):
		h.Metrics.HandshakeExchanged(metrics.ResultMissing)
		dashsdk.ErrHandshakeMissing.WriteError(w)
		return
	case errors.Is(err, service.ErrHandshakeInvalid):
		h.Metrics.HandshakeExchanged(metrics.ResultInvalid)
		h.Sessions.ClearHandshakeCookie(w)
		dashsdk.ErrHandshakeInvalid.WriteError(w)
		return
	case errors.Is(err, service.ErrHandshakeConsumed):
		h.Metrics.HandshakeExchanged(metrics.ResultConsumed)
		dashsdk.ErrHandshakeConsumed.WriteError(w)
		return
	case errors.Is(err, sessionx.ErrIssuanceDisabled):
		h.Metrics.HandshakeExchanged(metrics.ResultDisabled)
		dashsdk.ErrIssuanceDisabled.WriteError(w)
		return
	case err != nil:
		log.Error("handshake exchange failed", "err", err)
		h.Metrics.HandshakeExchanged(metrics.ResultError)
		dashsdk.ErrServerError.WriteError(w)
		return
	}

	if err := h.Sessions.SetSessionCookie(w, sess, sess.RememberMe); err != nil {
		log.Error("failed to set session cookie", "err", err)
		h.Metrics.HandshakeExchanged(metrics.ResultError)
		dashsdk.ErrServerError.WriteError(w)
		return
	}
	h.Sessions.ClearHandshakeCookie(w)
	h.Metrics.HandshakeExchanged(metrics.ResultCreated)

	httpx.WriteJSON(w, http.StatusOK, dashsdk.HandshakeResponse{
		Success:    true,
		Message:    "Session created",
		Role:       sess.Role,
		RedirectTo: service.RedirectFor(sess.Role),
	})
}

// handshakeToken prefers a JSON body and falls back to the handshake cookie.
func handshakeToken(w http.ResponseWriter, r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req dashsdk.HandshakeRequest
		err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxHandshakeBody)).Decode(&req)
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if req.Token != "" {
			return strings.TrimSpace(req.Token), nil
		}
	}

	if c, err := r.Cookie(sessionx.HandshakeCookieName); err == nil {
		return c.Value, nil
	}
	return "", nil
}
