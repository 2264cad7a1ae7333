package jwtx

import (
	"crypto/rsa"

	"github.com/golang-jwt/jwt/v5"
)

// RS256Verifier validates tokens minted by the backend's RSA private key.
type RS256Verifier struct{ tokenVerifier }

// NewVerifierRS256 creates a verifier for a single RSA public key.
func NewVerifierRS256(pub *rsa.PublicKey, opts VerifyOptions) *RS256Verifier {
	return &RS256Verifier{tokenVerifier{
		method: jwt.SigningMethodRS256,
		key:    pub,
		opts:   opts.withDefaults(),
	}}
}
