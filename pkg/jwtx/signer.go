package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is anything that can turn claims into a signed JWT.
type Signer interface {
	Alg() string
	Sign(jwt.Claims) (string, error)
	Validate() error
}

// NewSigner returns the signer for mode. Verify-only deployments get
// ErrIssuanceDisabled so they fail before anything is minted.
func NewSigner(mode SigningMode) (Signer, error) {
	switch m := mode.(type) {
	case Symmetric:
		return newHS256Signer(m.Secret)
	case AsymmetricVerifyOnly:
		return nil, ErrIssuanceDisabled
	default:
		return nil, ErrConfiguration
	}
}

// HS256Signer signs tokens with a shared secret.
type HS256Signer struct {
	secret []byte
}

func newHS256Signer(secret []byte) (*HS256Signer, error) {
	s := &HS256Signer{secret: secret}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate makes sure we actually have a secret to sign with.
func (s *HS256Signer) Validate() error {
	if len(s.secret) == 0 {
		return errors.Join(ErrConfiguration, errors.New("jwtx: empty HS256 secret"))
	}
	return nil
}
