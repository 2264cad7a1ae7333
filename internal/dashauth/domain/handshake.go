package domain

import "time"

// ConsumedHandshake records a handshake that has already been exchanged for a
// session. The row lives until the handshake token itself would have expired;
// after that the token is rejected on exp alone.
type ConsumedHandshake struct {
	// Fingerprint is cryptox.FingerprintToken of the handshake jti.
	Fingerprint string
	UserID      string
	ExpiresAt   time.Time
	ConsumedAt  time.Time
}
