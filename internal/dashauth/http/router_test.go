package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	dashhttp "github.com/metavr/dashauth/internal/dashauth/http"
	"github.com/metavr/dashauth/internal/dashauth/metrics"
	"github.com/metavr/dashauth/internal/dashauth/service"
	"github.com/metavr/dashauth/internal/dashauth/store/drivers/sqlite"
	"github.com/metavr/dashauth/pkg/cryptox"
	"github.com/metavr/dashauth/pkg/dashsdk"
	"github.com/metavr/dashauth/pkg/httpx"
	"github.com/metavr/dashauth/pkg/jwtx"
	"github.com/metavr/dashauth/pkg/sessionx"
	"github.com/metavr/dashauth/pkg/slogx"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type env struct {
	clock      *clock
	sessions   *sessionx.Service
	handshakes *service.HandshakeService
	client     *dashsdk.SDKClient
	url        string
}

func roomyLimits() httpx.RateLimits {
	roomy := httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
	return httpx.RateLimits{Strict: roomy, Moderate: roomy, Public: roomy}
}

func newEnv(t *testing.T, limits httpx.RateLimits, mutate ...func(*sessionx.Config)) *env {
	t.Helper()

	c := &clock{now: time.Now().UTC().Truncate(time.Second)}
	m := metrics.New()
	cfg := sessionx.Config{
		Secret:   "router-test-secret",
		Logger:   slogx.Discard(),
		Observer: m,
		Clock:    c.Now,
	}
	for _, m := range mutate {
		m(&cfg)
	}
	sessions, err := sessionx.New(cfg)
	require.NoError(t, err)

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	handshakes := &service.HandshakeService{Sessions: sessions, Store: st}

	router := dashhttp.NewRouter(sessions, st, limits, "test", slogx.Discard())
	router.HandshakeService = handshakes
	router.SessionService = &service.SessionService{Sessions: sessions}
	router.Metrics = m
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &env{
		clock:      c,
		sessions:   sessions,
		handshakes: handshakes,
		client:     dashsdk.NewSDKClient(srv.URL),
		url:        srv.URL,
	}
}

func (e *env) handshake(t *testing.T, role jwtx.Role, rememberMe bool) string {
	t.Helper()
	token, _, err := e.handshakes.Issue(context.Background(), "u1", "a@b.com", role, rememberMe, 0)
	require.NoError(t, err)
	return token
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, roomyLimits())

	require.Equal(t, dashsdk.SessionCheckResult{Expired: true}, e.client.CheckSession(ctx))

	hs, err := e.client.ExchangeHandshake(ctx, e.handshake(t, jwtx.RoleSupervisor, false))
	require.NoError(t, err)
	require.True(t, hs.Success)
	require.Equal(t, "Session created", hs.Message)
	require.Equal(t, jwtx.RoleSupervisor, hs.Role)
	require.Equal(t, "/supervisor/dashboard", hs.RedirectTo)

	require.Equal(t, dashsdk.SessionCheckResult{Valid: true, Role: jwtx.RoleSupervisor}, e.client.CheckSession(ctx))

	sess, err := e.client.GetSession(ctx)
	require.NoError(t, err)
	require.Equal(t, "u1", sess.Session.UserID)
	require.Equal(t, "a@b.com", sess.Session.Email)
	require.Equal(t, e.clock.Now().Add(jwtx.SessionTTL).UnixMilli(), sess.Session.ExpiresAt)
	require.False(t, sess.ExpiringSoon)

	require.NoError(t, e.client.Logout(ctx))
	require.Equal(t, dashsdk.SessionCheckResult{Expired: true}, e.client.CheckSession(ctx))
}

func TestHandshakeErrors(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, roomyLimits())

	_, err := e.client.ExchangeHandshake(ctx, "")
	require.ErrorIs(t, err, dashsdk.ErrHandshakeMissing)

	_, err = e.client.ExchangeHandshake(ctx, "garbage")
	require.ErrorIs(t, err, dashsdk.ErrHandshakeInvalid)

	token := e.handshake(t, jwtx.RoleAdmin, false)
	_, err = e.client.ExchangeHandshake(ctx, token)
	require.NoError(t, err)

	// A second browser replaying the same handshake.
	_, err = dashsdk.NewSDKClient(e.url).ExchangeHandshake(ctx, token)
	require.ErrorIs(t, err, dashsdk.ErrHandshakeConsumed)
}

func TestHandshakeFromCookie(t *testing.T) {
	e := newEnv(t, roomyLimits())

	req, err := http.NewRequest(http.MethodPost, e.url+"/api/auth/handshake", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: sessionx.HandshakeCookieName, Value: e.handshake(t, jwtx.RoleAdmin, true)})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookies := map[string]*http.Cookie{}
	for _, c := range resp.Cookies() {
		cookies[c.Name] = c
	}
	require.Contains(t, cookies, sessionx.CookieName)
	require.Equal(t, int(jwtx.RememberMeTTL.Seconds()), cookies[sessionx.CookieName].MaxAge)
	require.Contains(t, cookies, sessionx.HandshakeCookieName)
	require.Less(t, cookies[sessionx.HandshakeCookieName].MaxAge, 0)
}

func TestInvalidHandshakeClearsCookie(t *testing.T) {
	e := newEnv(t, roomyLimits())

	req, err := http.NewRequest(http.MethodPost, e.url+"/api/auth/handshake", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: sessionx.HandshakeCookieName, Value: "expired-or-forged"})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == sessionx.HandshakeCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	require.True(t, cleared)
}

func TestHandshakeBadBody(t *testing.T) {
	e := newEnv(t, roomyLimits())

	resp, err := http.Post(e.url+"/api/auth/handshake", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExpiringSoonAndRefresh(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, roomyLimits())

	_, err := e.client.ExchangeHandshake(ctx, e.handshake(t, jwtx.RoleAdmin, false))
	require.NoError(t, err)

	refreshed, err := e.client.Refresh(ctx)
	require.NoError(t, err)
	require.False(t, refreshed.Refreshed)

	e.clock.Advance(jwtx.SessionTTL - 30*time.Minute)

	sess, err := e.client.GetSession(ctx)
	require.NoError(t, err)
	require.True(t, sess.ExpiringSoon)
	oldExpiry := sess.Session.ExpiresAt

	refreshed, err = e.client.Refresh(ctx)
	require.NoError(t, err)
	require.True(t, refreshed.Refreshed)
	require.Greater(t, refreshed.Session.ExpiresAt, oldExpiry)

	sess, err = e.client.GetSession(ctx)
	require.NoError(t, err)
	require.Equal(t, refreshed.Session.ExpiresAt, sess.Session.ExpiresAt)
	require.False(t, sess.ExpiringSoon)
}

func TestRefreshRequiresSession(t *testing.T) {
	e := newEnv(t, roomyLimits())
	_, err := e.client.Refresh(context.Background())
	require.ErrorIs(t, err, dashsdk.ErrNoSession)
}

func TestVerifyOnlyDeployment(t *testing.T) {
	ctx := context.Background()

	pair, err := cryptox.GenerateRSAKeyPair(cryptox.MinRSABits)
	require.NoError(t, err)
	e := newEnv(t, roomyLimits(), func(c *sessionx.Config) { c.PublicKeyPEM = string(pair.PublicPEM) })

	_, err = e.client.ExchangeHandshake(ctx, "anything")
	require.ErrorIs(t, err, dashsdk.ErrIssuanceDisabled)

	health, err := e.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "RS256 (verify-only)", health.Checks.Signer)
}

func TestHealth(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, roomyLimits())

	live, err := e.client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)
	require.Nil(t, live.Checks)

	ready, err := e.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "HS256", ready.Checks.Signer)
}

func TestHandshakeRateLimit(t *testing.T) {
	ctx := context.Background()
	limits := roomyLimits()
	limits.Strict = httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
	e := newEnv(t, limits)

	for range 2 {
		_, err := e.client.ExchangeHandshake(ctx, "garbage")
		require.ErrorIs(t, err, dashsdk.ErrHandshakeInvalid)
	}

	_, err := e.client.ExchangeHandshake(ctx, e.handshake(t, jwtx.RoleAdmin, false))
	var apiErr *dashsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}

func TestCorrelationIDIsEchoed(t *testing.T) {
	e := newEnv(t, roomyLimits())

	req, err := http.NewRequest(http.MethodGet, e.url+"/livez", nil)
	require.NoError(t, err)
	req.Header.Set(slogx.HeaderCorrelationID, "corr-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "corr-123", resp.Header.Get(slogx.HeaderCorrelationID))
}

func TestMetricsEndpoint(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, roomyLimits())

	_ = e.client.CheckSession(ctx)
	_, err := e.client.ExchangeHandshake(ctx, e.handshake(t, jwtx.RoleAdmin, false))
	require.NoError(t, err)
	_, err = e.client.ExchangeHandshake(ctx, "not-a-token")
	require.Error(t, err)

	resp, err := http.Get(e.url + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)

	require.Contains(t, body, `dashauth_session_checks_total{result="none"} 1`)
	require.Contains(t, body, `dashauth_handshake_exchanges_total{result="created"} 1`)
	require.Contains(t, body, `dashauth_handshake_exchanges_total{result="invalid"} 1`)
	require.Contains(t, body, `dashauth_verification_failures_total{kind="handshake",reason="malformed"} 1`)
	require.Contains(t, body, "dashauth_http_requests_total")
}
