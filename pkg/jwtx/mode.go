package jwtx

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrConfiguration marks a deployment that cannot run safely. It is fatal at
	// startup.
	ErrConfiguration = errors.New("jwtx: invalid configuration")

	// ErrIssuanceDisabled is returned when a token is requested while the
	// deployment only holds a public verification key.
	ErrIssuanceDisabled = fmt.Errorf(
		"%w: tokens are issued exclusively by the backend when RS256 is enabled",
		ErrConfiguration,
	)
)

// SigningMode is resolved once at startup and decides both which algorithm
// verifiers accept and whether this process may mint tokens at all.
//
// It is either Symmetric or AsymmetricVerifyOnly.
type SigningMode interface {
	Alg() string
	CanIssue() bool

	signingMode()
}

// Symmetric signs and verifies with a shared HS256 secret.
type Symmetric struct {
	Secret []byte
}

func (Symmetric) Alg() string    { return jwt.SigningMethodHS256.Alg() }
func (Symmetric) CanIssue() bool { return true }
func (Symmetric) signingMode()   {}

// AsymmetricVerifyOnly verifies RS256 tokens minted by an external authority
// holding the private key. Nothing can be signed in this mode.
type AsymmetricVerifyOnly struct {
	PublicKey *rsa.PublicKey
}

func (AsymmetricVerifyOnly) Alg() string    { return jwt.SigningMethodRS256.Alg() }
func (AsymmetricVerifyOnly) CanIssue() bool { return false }
func (AsymmetricVerifyOnly) signingMode()   {}

// ResolveMode picks the signing mode from deployment configuration. The secret
// is required in both modes; a non-empty public key switches the deployment to
// verify-only RS256.
func ResolveMode(secret, publicKeyPEM string) (SigningMode, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: session secret must be set before startup", ErrConfiguration)
	}

	publicKeyPEM = strings.TrimSpace(publicKeyPEM)
	if publicKeyPEM == "" {
		return Symmetric{Secret: []byte(secret)}, nil
	}

	pub, err := ParseRSAPublicKeyPEM(publicKeyPEM)
	if err != nil {
		return nil, err
	}
	return AsymmetricVerifyOnly{PublicKey: pub}, nil
}

// ParseRSAPublicKeyPEM parses a PKIX or PKCS1 RSA public key. Environment
// variables often carry the PEM with literal "\n" sequences, so those are
// unfolded first.
func ParseRSAPublicKeyPEM(pemKey string) (*rsa.PublicKey, error) {
	pemKey = strings.ReplaceAll(pemKey, `\n`, "\n")

	pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemKey))
	if err != nil {
		return nil, fmt.Errorf("%w: parse RSA public key: %w", ErrConfiguration, err)
	}
	return pub, nil
}
