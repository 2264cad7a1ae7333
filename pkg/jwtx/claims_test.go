package jwtx_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/metavr/dashauth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	require.True(t, jwtx.RoleAdmin.Valid())
	require.True(t, jwtx.RoleSupervisor.Valid())
	require.False(t, jwtx.Role("user").Valid())
	require.False(t, jwtx.Role("").Valid())
}

func TestNewSessionClaims(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	data := jwtx.SessionData{
		UserID:    "u1",
		Email:     "a@b.com",
		Role:      jwtx.RoleAdmin,
		ExpiresAt: now.Add(time.Hour).UnixMilli(),
	}

	claims := jwtx.NewSessionClaims(data, jwtx.SessionTTL, "metavr-backend", "metavr-dashboard", now)

	require.Equal(t, data, claims.SessionData)
	require.Equal(t, "metavr-backend", claims.Issuer)
	require.Equal(t, jwt.ClaimStrings{"metavr-dashboard"}, claims.Audience)
	require.Equal(t, now, claims.IssuedAt.Time)
	require.Equal(t, now.Add(12*time.Hour), claims.RegisteredClaims.ExpiresAt.Time)
}

func TestSessionClaimsWireFormat(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	claims := jwtx.NewSessionClaims(jwtx.SessionData{
		UserID:     "u1",
		Email:      "a@b.com",
		Role:       jwtx.RoleSupervisor,
		ExpiresAt:  1_700_003_600_000,
		RememberMe: true,
	}, jwtx.RememberMeTTL, "iss", "aud", now)

	raw, err := json.Marshal(claims)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	require.Equal(t, "u1", fields["userId"])
	require.Equal(t, "a@b.com", fields["email"])
	require.Equal(t, "supervisor", fields["role"])
	require.EqualValues(t, 1_700_003_600_000, fields["expiresAt"])
	require.Equal(t, true, fields["rememberMe"])
	require.Equal(t, "iss", fields["iss"])
	require.EqualValues(t, 1_700_000_000+604800, fields["exp"])
	require.EqualValues(t, 1_700_000_000, fields["iat"])
}

func TestHandshakeClaimsCarryID(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	claims := jwtx.NewHandshakeClaims(jwtx.HandshakeClaims{
		ID:     "01HZX",
		UserID: "u1",
		Email:  "a@b.com",
		Role:   jwtx.RoleAdmin,
	}, jwtx.DefaultHandshakeTTL, "iss", "hs", now)

	raw, err := json.Marshal(claims)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	require.Equal(t, "01HZX", fields["jti"])
	require.NotContains(t, fields, "rememberMe")
	require.NotContains(t, fields, "expiresAt")
	require.EqualValues(t, 1_700_000_060, fields["exp"])
}
