package cryptox

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// MinRSABits is the smallest RSA modulus accepted for session signing keys.
const MinRSABits = 2048

// RSAKeyPair is a PEM encoded key pair for an RS256 deployment. The private
// half belongs to the issuing backend; only PublicPEM is handed to this
// service.
type RSAKeyPair struct {
	PrivatePEM []byte // PKCS8 "PRIVATE KEY"
	PublicPEM  []byte // PKIX "PUBLIC KEY"
}

// GenerateRSAKeyPair creates a new RSA key pair of the given size.
func GenerateRSAKeyPair(bits int) (RSAKeyPair, error) {
	if bits < MinRSABits {
		return RSAKeyPair{}, fmt.Errorf("cryptox: RSA key size must be at least %d bits", MinRSABits)
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return RSAKeyPair{}, fmt.Errorf("cryptox: failed to generate RSA key: %w", err)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return RSAKeyPair{}, fmt.Errorf("cryptox: failed to marshal private key: %w", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return RSAKeyPair{}, fmt.Errorf("cryptox: failed to marshal public key: %w", err)
	}

	return RSAKeyPair{
		PrivatePEM: pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER}),
		PublicPEM:  pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}),
	}, nil
}
