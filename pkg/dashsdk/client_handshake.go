package dashsdk

import (
	"context"
	"net/http"
)

// ExchangeHandshake trades a handshake token for a session cookie, which ends
// up in the client's jar.
func (c *SDKClient) ExchangeHandshake(ctx context.Context, token string) (*HandshakeResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/auth/handshake", HandshakeRequest{Token: token})
	if err != nil {
		return nil, err
	}

	var out HandshakeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
