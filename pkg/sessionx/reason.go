package sessionx

import (
	"errors"

	"github.com/metavr/dashauth/pkg/jwtx"
)

// Reasons reported in verification warnings.
const (
	ReasonExpired          = "expired"
	ReasonBadSignature     = "bad_signature"
	ReasonMalformed        = "malformed"
	ReasonWrongAlgorithm   = "wrong_algorithm"
	ReasonIssuerMismatch   = "issuer_mismatch"
	ReasonAudienceMismatch = "audience_mismatch"
	ReasonInvalidClaims    = "invalid_claims"
)

// Reason classifies a verification error for logs and metrics.
func Reason(err error) string {
	switch {
	case errors.Is(err, jwtx.ErrExpired), errors.Is(err, jwtx.ErrSessionExpired):
		return ReasonExpired
	case errors.Is(err, jwtx.ErrInvalidSig):
		return ReasonBadSignature
	case errors.Is(err, jwtx.ErrMalformed):
		return ReasonMalformed
	case errors.Is(err, jwtx.ErrAlgMismatch):
		return ReasonWrongAlgorithm
	case errors.Is(err, jwtx.ErrIssuer):
		return ReasonIssuerMismatch
	case errors.Is(err, jwtx.ErrAudience):
		return ReasonAudienceMismatch
	default:
		return ReasonInvalidClaims
	}
}
