package dashsdk

import (
	"context"
	"errors"
	"net/http"
)

// GetSession returns the current session. A missing or invalid cookie comes
// back as an *APIError matching ErrNoSession.
func (c *SDKClient) GetSession(ctx context.Context) (*SessionResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/auth/session", nil)
	if err != nil {
		return nil, err
	}

	var out SessionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckSession is the probe the dashboard runs before rendering a protected
// page. It never fails: transport problems and unexpected statuses come back
// as neither valid nor expired, so the caller can retry instead of logging the
// user out.
func (c *SDKClient) CheckSession(ctx context.Context) SessionCheckResult {
	sess, err := c.GetSession(ctx)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) &&
			(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
			return SessionCheckResult{Valid: false, Expired: true}
		}
		return SessionCheckResult{}
	}

	if sess.Success && sess.Session != nil {
		return SessionCheckResult{Valid: true, Role: sess.Session.Role}
	}
	return SessionCheckResult{Valid: false, Expired: true}
}

// Refresh asks the server to re-issue the session if it is close to expiry.
func (c *SDKClient) Refresh(ctx context.Context) (*RefreshResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/session/refresh", nil)
	if err != nil {
		return nil, err
	}

	var out RefreshResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout clears the session cookie on the server and in the jar.
func (c *SDKClient) Logout(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/logout", nil)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}
