package jwtx

import "github.com/golang-jwt/jwt/v5"

// HS256Verifier validates tokens signed with the shared session secret.
type HS256Verifier struct{ tokenVerifier }

// NewVerifierHS256 creates a verifier for the shared secret.
func NewVerifierHS256(secret []byte, opts VerifyOptions) *HS256Verifier {
	return &HS256Verifier{tokenVerifier{
		method: jwt.SigningMethodHS256,
		key:    secret,
		opts:   opts.withDefaults(),
	}}
}
