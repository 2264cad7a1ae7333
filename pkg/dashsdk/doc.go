/*
Package dashsdk is the Go client for the dashboard session API.

The dashboard keeps its session in an HttpOnly cookie, so the client is built
around a cookie jar: exchanging a handshake stores the session cookie and every
later call sends it back.

	client := dashsdk.NewSDKClient("https://dashboard.example.com")

	// Turn the handshake from the backend into a session cookie.
	hs, err := client.ExchangeHandshake(ctx, handshakeToken)

	// Cheap validity probe, never returns an error.
	check := client.CheckSession(ctx)
	if !check.Valid && check.Expired {
		// send the user back to login
	}

	// Re-issue the session when it is close to expiry.
	refreshed, err := client.Refresh(ctx)

	// Drop the cookie.
	err = client.Logout(ctx)

# Errors

Failed calls return *APIError carrying the HTTP status and the message from the
response body. The predefined APIError values are also what the server writes,
so both sides agree on status codes and wording.
*/
package dashsdk
