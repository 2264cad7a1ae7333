package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("P@ssw0rd!")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$2a$12$"), "bcrypt hash at cost 12, got %q", hash)

	// Same input, fresh salt.
	again, err := HashPassword("P@ssw0rd!")
	require.NoError(t, err)
	require.NotEqual(t, hash, again)
}

func TestHashPassword_LongInput(t *testing.T) {
	long := strings.Repeat("Aa1@", 19) // 76 bytes
	hash, err := HashPassword(long)
	require.NoError(t, err)
	require.True(t, VerifyPassword(long, hash))

	// Only the first 72 bytes are significant.
	require.True(t, VerifyPassword(long[:72], hash))
	require.True(t, VerifyPassword(long[:72]+"zzzz", hash))
	require.False(t, VerifyPassword(long[:71], hash))
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{"correct", "correct-password", hash, true},
		{"case difference", "Correct-Password", hash, false},
		{"extra space", "correct-password ", hash, false},
		{"prefix", "correct-passwor", hash, false},
		{"empty password", "", hash, false},
		{"empty hash", "correct-password", "", false},
		{"garbage hash", "correct-password", "not-a-bcrypt-hash", false},
		{"argon2 hash", "correct-password", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, VerifyPassword(tt.password, tt.hash))
		})
	}
}

func TestVerifyPassword_Unicode(t *testing.T) {
	password := "пароль🔒密码Aa1!"
	hash, err := HashPassword(password)
	require.NoError(t, err)
	require.True(t, VerifyPassword(password, hash))
}

func TestGenerateSecurePassword(t *testing.T) {
	for range 200 {
		password, err := GenerateSecurePassword()
		require.NoError(t, err)
		require.Len(t, password, GeneratedPasswordLength)

		report := ValidatePasswordStrength(password)
		require.True(t, report.Valid, "generated %q failed: %v", password, report.Errors)

		for _, c := range password {
			require.True(t, strings.ContainsRune(lowerChars+upperChars+digitChars+symbolChars, c),
				"unexpected character %q in %q", c, password)
		}
	}
}

func TestGenerateSecurePassword_Uniqueness(t *testing.T) {
	const count = 100
	seen := make(map[string]bool, count)

	for range count {
		password, err := GenerateSecurePassword()
		require.NoError(t, err)
		require.NotContains(t, seen, password, "duplicate password generated")
		seen[password] = true
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []string
	}{
		{"short", "short", []string{MsgTooShort, MsgNoUpper, MsgNoDigit, MsgNoSpecial}},
		{"empty", "", []string{MsgTooShort, MsgNoLower, MsgNoUpper, MsgNoDigit, MsgNoSpecial}},
		{"no symbol", "Password1", []string{MsgNoSpecial}},
		{"unsupported symbol", "Password1#", []string{MsgNoSpecial}},
		{"no lowercase", "PASSWORD1!", []string{MsgNoLower}},
		{"strong", "Passw0rd!", []string{}},
		{"exactly eight", "Aa1@aaaa", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := ValidatePasswordStrength(tt.password)
			require.Equal(t, len(tt.want) == 0, report.Valid)
			require.Equal(t, tt.want, report.Errors)
		})
	}
}

func TestPasswordWorkflow_EndToEnd(t *testing.T) {
	// Onboarding: generate, hash for storage, then log in with it.
	generated, err := GenerateSecurePassword()
	require.NoError(t, err)

	hash, err := HashPassword(generated)
	require.NoError(t, err)

	require.True(t, VerifyPassword(generated, hash))
	require.False(t, VerifyPassword(generated+"x", hash))
}
