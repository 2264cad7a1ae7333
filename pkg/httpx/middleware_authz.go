package httpx

import (
	"net/http"
	"slices"

	"github.com/metavr/dashauth/pkg/jwtx"
	"github.com/metavr/dashauth/pkg/sessionx"
	"github.com/metavr/dashauth/pkg/slogx"
)

// RequireRole lets the request through only if the session put in place by
// RequireSession holds one of roles. It must run after RequireSession.
func RequireRole(roles ...jwtx.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := sessionx.FromContext(r.Context())
			if !ok {
				WriteSessionFailure(w, http.StatusUnauthorized, MessageNoSession, true)
				return
			}

			if !slices.Contains(roles, sess.Role) {
				slogx.FromContext(r.Context()).Warn("role denied",
					"user_id", sess.UserID,
					"role", sess.Role,
					"required", roles,
				)
				WriteSessionFailure(w, http.StatusForbidden, "Insufficient permissions", false)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
