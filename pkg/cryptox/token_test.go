package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(SecretSize)
	require.NoError(t, err)
	require.Len(t, token, 43)

	other, err := GenerateToken(SecretSize)
	require.NoError(t, err)
	require.NotEqual(t, token, other)
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestFingerprintToken(t *testing.T) {
	fp1a := FingerprintToken("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV")
	fp1b := FingerprintToken("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV")
	fp2 := FingerprintToken("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZW")

	require.Equal(t, fp1a, fp1b, "fingerprint should be deterministic")
	require.NotEqual(t, fp1a, fp2)
	require.Len(t, fp1a, 43, "SHA-256 base64url should be 43 chars")
}
