package httpx

import (
	"net/http"

	"github.com/metavr/dashauth/pkg/sessionx"
)

// SessionReader is satisfied by *sessionx.Service.
type SessionReader interface {
	GetSessionFromRequest(r *http.Request) *sessionx.SessionData
}

// MessageNoSession is returned when a request carries no usable session.
const MessageNoSession = "No valid session found"

// RequireSession turns a nil session into a 401 and otherwise puts the
// verified session into the request context.
func RequireSession(sessions SessionReader) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessions.GetSessionFromRequest(r)
			if sess == nil {
				WriteSessionFailure(w, http.StatusUnauthorized, MessageNoSession, true)
				return
			}

			ctx := sessionx.ContextWithSession(r.Context(), *sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
