package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the fixed work factor for stored password hashes.
const BcryptCost = 12

// bcryptMaxBytes is the longest input bcrypt looks at.
const bcryptMaxBytes = 72

// GeneratedPasswordLength is the length of GenerateSecurePassword output.
const GeneratedPasswordLength = 12

// Character classes shared by the generator and the strength policy.
const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "@$!%*?&"

	// MinPasswordLength is the shortest password ValidatePasswordStrength allows.
	MinPasswordLength = 8
)

// Strength policy messages, reported in this order.
const (
	MsgTooShort  = "Password must be at least 8 characters long"
	MsgNoLower   = "Password must contain at least one lowercase letter"
	MsgNoUpper   = "Password must contain at least one uppercase letter"
	MsgNoDigit   = "Password must contain at least one number"
	MsgNoSpecial = "Password must contain at least one special character (@$!%*?&)"
)

// HashPassword returns a salted bcrypt hash of password at BcryptCost.
//
// Only the first 72 bytes count, the same as every other bcrypt
// implementation hashing these passwords. The error is reserved for a failing
// random source.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash. A
// malformed hash is just a mismatch.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(password)) == nil
}

// bcryptInput truncates to what bcrypt reads. x/crypto refuses longer input
// outright.
func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxBytes {
		b = b[:bcryptMaxBytes]
	}
	return b
}

// GenerateSecurePassword returns a GeneratedPasswordLength character password
// holding at least one lowercase letter, uppercase letter, digit and symbol.
// Output always satisfies ValidatePasswordStrength.
func GenerateSecurePassword() (string, error) {
	all := lowerChars + upperChars + digitChars + symbolChars

	password := make([]byte, 0, GeneratedPasswordLength)
	for _, set := range []string{upperChars, lowerChars, digitChars, symbolChars} {
		c, err := randomChar(set)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}
	for len(password) < GeneratedPasswordLength {
		c, err := randomChar(all)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	// Fisher-Yates so the guaranteed characters are not always up front.
	for i := len(password) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return "", err
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

// StrengthReport lists every rule a password breaks.
type StrengthReport struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidatePasswordStrength checks all rules and reports every violation, not
// just the first.
func ValidatePasswordStrength(password string) StrengthReport {
	errs := make([]string, 0, 5)

	if len([]rune(password)) < MinPasswordLength {
		errs = append(errs, MsgTooShort)
	}
	if !strings.ContainsAny(password, lowerChars) {
		errs = append(errs, MsgNoLower)
	}
	if !strings.ContainsAny(password, upperChars) {
		errs = append(errs, MsgNoUpper)
	}
	if !strings.ContainsAny(password, digitChars) {
		errs = append(errs, MsgNoDigit)
	}
	if !strings.ContainsAny(password, symbolChars) {
		errs = append(errs, MsgNoSpecial)
	}

	return StrengthReport{Valid: len(errs) == 0, Errors: errs}
}

func randomChar(set string) (byte, error) {
	i, err := randomIndex(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to generate random password: %w", err)
	}
	return int(v.Int64()), nil
}
