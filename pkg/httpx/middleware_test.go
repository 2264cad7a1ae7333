package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/metavr/dashauth/pkg/httpx"
	"github.com/metavr/dashauth/pkg/jwtx"
	"github.com/metavr/dashauth/pkg/sessionx"
	"github.com/stretchr/testify/require"
)

// stubSessions returns a fixed session for every request.
type stubSessions struct {
	sess *sessionx.SessionData
}

func (s stubSessions) GetSessionFromRequest(*http.Request) *sessionx.SessionData { return s.sess }

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler(), mark("a"), mark("b"), mark("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestRequireSession(t *testing.T) {
	t.Run("no session is 401", func(t *testing.T) {
		h := httpx.RequireSession(stubSessions{})(okHandler())
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body httpx.SessionFailure
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.False(t, body.Success)
		require.True(t, body.Expired)
		require.Equal(t, httpx.MessageNoSession, body.Message)
	})

	t.Run("session lands in context", func(t *testing.T) {
		want := sessionx.SessionData{UserID: "u1", Email: "a@b.com", Role: jwtx.RoleAdmin}

		var got sessionx.SessionData
		h := httpx.RequireSession(stubSessions{sess: &want})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = sessionx.FromContext(r.Context())
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, want, got)
	})
}

func TestRequireRole(t *testing.T) {
	supervisor := &sessionx.SessionData{UserID: "u2", Role: jwtx.RoleSupervisor}
	admin := &sessionx.SessionData{UserID: "u1", Role: jwtx.RoleAdmin}

	tests := []struct {
		name  string
		sess  *sessionx.SessionData
		roles []jwtx.Role
		want  int
	}{
		{"admin allowed", admin, []jwtx.Role{jwtx.RoleAdmin}, http.StatusOK},
		{"supervisor denied", supervisor, []jwtx.Role{jwtx.RoleAdmin}, http.StatusForbidden},
		{"any of", supervisor, []jwtx.Role{jwtx.RoleAdmin, jwtx.RoleSupervisor}, http.StatusOK},
		{"no session", nil, []jwtx.Role{jwtx.RoleAdmin}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := httpx.Chain(okHandler(),
				httpx.RequireSession(stubSessions{sess: tt.sess}),
				httpx.RequireRole(tt.roles...),
			)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
			require.Equal(t, tt.want, rec.Code)
		})
	}

	t.Run("without RequireSession", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.RequireRole(jwtx.RoleAdmin)(okHandler()).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteJSON(rec, http.StatusCreated, map[string]string{"a": "b"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.Equal(t, "no-cache", rec.Header().Get("Pragma"))
	require.Equal(t, `{"a":"b"}`, strings.TrimSpace(rec.Body.String()))
}
