package sessionx_test

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/metavr/dashauth/pkg/jwtx"
	"github.com/metavr/dashauth/pkg/sessionx"
	"github.com/stretchr/testify/require"
)

var dashboardURL = &url.URL{Scheme: "http", Host: "dashboard.local", Path: "/"}

// browser keeps cookies between requests the way a real client would.
type browser struct {
	t   *testing.T
	jar *cookiejar.Jar
}

func newBrowser(t *testing.T) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{t: t, jar: jar}
}

func (b *browser) receive(rec *httptest.ResponseRecorder) {
	b.jar.SetCookies(dashboardURL, rec.Result().Cookies())
}

func (b *browser) request() *http.Request {
	req := httptest.NewRequest(http.MethodGet, dashboardURL.String(), nil)
	for _, c := range b.jar.Cookies(dashboardURL) {
		req.AddCookie(c)
	}
	return req
}

func TestSetSessionCookieAttributes(t *testing.T) {
	tests := []struct {
		name       string
		rememberMe bool
		production bool
		maxAge     int
	}{
		{"standard development", false, false, 43200},
		{"remember me development", true, false, 604800},
		{"standard production", false, true, 43200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, clock := newService(t, func(c *sessionx.Config) { c.Production = tt.production })
			rec := httptest.NewRecorder()

			require.NoError(t, svc.SetSessionCookie(rec, sampleSession(clock.Now()), tt.rememberMe))

			cookies := rec.Result().Cookies()
			require.Len(t, cookies, 1)
			c := cookies[0]
			require.Equal(t, sessionx.CookieName, c.Name)
			require.NotEmpty(t, c.Value)
			require.Equal(t, "/", c.Path)
			require.Equal(t, tt.maxAge, c.MaxAge)
			require.True(t, c.HttpOnly)
			require.Equal(t, tt.production, c.Secure)
			require.Equal(t, http.SameSiteStrictMode, c.SameSite)

			got := svc.VerifySessionToken(c.Value)
			require.NotNil(t, got)
			require.Equal(t, tt.rememberMe, got.RememberMe)
		})
	}
}

func TestCookieLifecycle(t *testing.T) {
	svc, clock := newService(t)
	b := newBrowser(t)

	require.Nil(t, svc.GetSessionFromRequest(b.request()), "no cookie yet")

	login := httptest.NewRecorder()
	data := sampleSession(clock.Now())
	require.NoError(t, svc.SetSessionCookie(login, data, false))
	b.receive(login)

	got := svc.GetSessionFromRequest(b.request())
	require.NotNil(t, got)
	require.Equal(t, data.UserID, got.UserID)
	require.Equal(t, data.Role, got.Role)

	logout := httptest.NewRecorder()
	svc.ClearSessionCookie(logout)
	cleared := logout.Result().Cookies()
	require.Len(t, cleared, 1)
	require.Less(t, cleared[0].MaxAge, 0)
	b.receive(logout)

	require.Nil(t, svc.GetSessionFromRequest(b.request()))
}

func TestGetSessionFromRequestRejectsTamperedCookie(t *testing.T) {
	svc, clock := newService(t)
	token, err := svc.CreateSessionToken(sampleSession(clock.Now()))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionx.CookieName, Value: token + "x"})
	require.Nil(t, svc.GetSessionFromRequest(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionx.CookieName, Value: ""})
	require.Nil(t, svc.GetSessionFromRequest(req))
}

func TestSetSessionCookieVerifyOnly(t *testing.T) {
	pub := rsaPublicPEM(t)
	svc, clock := newService(t, func(c *sessionx.Config) { c.PublicKeyPEM = pub })

	rec := httptest.NewRecorder()
	err := svc.SetSessionCookie(rec, sampleSession(clock.Now()), false)
	require.ErrorIs(t, err, sessionx.ErrIssuanceDisabled)
	require.Empty(t, rec.Result().Cookies())
}

func TestClearHandshakeCookie(t *testing.T) {
	svc, _ := newService(t)
	rec := httptest.NewRecorder()
	svc.ClearHandshakeCookie(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, sessionx.HandshakeCookieName, cookies[0].Name)
	require.Less(t, cookies[0].MaxAge, 0)
}

func TestSessionContext(t *testing.T) {
	_, ok := sessionx.FromContext(context.Background())
	require.False(t, ok)

	data := sessionx.SessionData{UserID: "u1", Role: jwtx.RoleSupervisor}
	got, ok := sessionx.FromContext(sessionx.ContextWithSession(context.Background(), data))
	require.True(t, ok)
	require.Equal(t, data, got)
}
