package sessionx

import (
	"net/http"

	"github.com/metavr/dashauth/pkg/slogx"
)

const (
	// CookieName holds the session token.
	CookieName = "session"

	// HandshakeCookieName is set by the issuing backend right before it
	// redirects to the dashboard.
	HandshakeCookieName = "handshake"
)

// GetSessionFromRequest reads the session cookie and verifies it. Both a
// missing and an invalid cookie yield nil.
func (s *Service) GetSessionFromRequest(r *http.Request) *SessionData {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	return s.verifySessionLogged(slogx.FromContext(r.Context()), c.Value)
}

// SetSessionCookie mints a standard or remember-me token for data and attaches
// it to w with a Max-Age equal to the token lifetime.
func (s *Service) SetSessionCookie(w http.ResponseWriter, data SessionData, rememberMe bool) error {
	data.RememberMe = rememberMe

	var (
		token string
		err   error
	)
	if rememberMe {
		token, err = s.CreateRememberMeToken(data)
	} else {
		token, err = s.CreateSessionToken(data)
	}
	if err != nil {
		return err
	}

	http.SetCookie(w, s.cookie(CookieName, token, int(lifetime(rememberMe).Seconds())))
	return nil
}

// ClearSessionCookie expires the session cookie. This is logout.
func (s *Service) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie(CookieName, "", -1))
}

// ClearHandshakeCookie expires the handshake cookie once it has been
// exchanged.
func (s *Service) ClearHandshakeCookie(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie(HandshakeCookieName, "", -1))
}

func (s *Service) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.production,
		SameSite: http.SameSiteStrictMode,
	}
}
