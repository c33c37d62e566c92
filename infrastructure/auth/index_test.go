package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	t.Setenv("ADMIN_JWT_SIGNING_KEY", "test-signing-key")
	t.Setenv("ADMIN_JWKS_URL", "")
	now := time.Now()

	token, err := GenerateAdminToken(AdminClaimsData{
		AdminID:   "admin-1",
		Email:     "ops@verifid.io",
		ExpiresAt: now.Add(time.Hour).Unix(),
		IssuedAt:  now.Unix(),
	})
	require.NoError(t, err)
	require.NotNil(t, token)

	decoded, err := DecodeAdminToken(*token)
	require.NoError(t, err)
	claims, ok := decoded.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "admin-1", claims["sub"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "ops@verifid.io", claims["email"])
}

func TestDecodeRejectsExpiredToken(t *testing.T) {
	t.Setenv("ADMIN_JWT_SIGNING_KEY", "test-signing-key")
	t.Setenv("ADMIN_JWKS_URL", "")
	now := time.Now()

	token, err := GenerateAdminToken(AdminClaimsData{
		AdminID:   "admin-1",
		Email:     "ops@verifid.io",
		ExpiresAt: now.Add(-time.Minute).Unix(),
		IssuedAt:  now.Add(-time.Hour).Unix(),
	})
	require.NoError(t, err)

	_, err = DecodeAdminToken(*token)
	assert.Error(t, err)
}

func TestDecodeRejectsTamperedToken(t *testing.T) {
	t.Setenv("ADMIN_JWT_SIGNING_KEY", "test-signing-key")
	t.Setenv("ADMIN_JWKS_URL", "")
	now := time.Now()

	token, err := GenerateAdminToken(AdminClaimsData{
		AdminID:   "admin-1",
		Email:     "ops@verifid.io",
		ExpiresAt: now.Add(time.Hour).Unix(),
		IssuedAt:  now.Unix(),
	})
	require.NoError(t, err)

	t.Setenv("ADMIN_JWT_SIGNING_KEY", "a-different-key")
	_, err = DecodeAdminToken(*token)
	assert.Error(t, err)
}
