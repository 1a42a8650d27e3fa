package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret-at-least-32-bytes-long"))

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "clerk@stockbook.local", "Clerk", RoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	uc, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uc.UserID)
	assert.Equal(t, "clerk@stockbook.local", uc.Email)
	assert.Equal(t, "Clerk", uc.Name)
	assert.Equal(t, "manager", uc.Role)
}

func TestJWT_RejectsTamperedToken(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret-at-least-32-bytes-long"))

	token, _, err := svc.GenerateAccessToken("user-1", "clerk@stockbook.local", "Clerk", RoleEmployee)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestJWT_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("test-secret-at-least-32-bytes-long"))
	verifier := NewJWTService(DefaultJWTConfig("a-different-secret-32-bytes-long!"))

	token, _, err := issuer.GenerateAccessToken("user-1", "clerk@stockbook.local", "Clerk", RoleEmployee)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_RejectsExpiredToken(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret-at-least-32-bytes-long")
	cfg.AccessTokenTTL = -time.Minute
	svc := NewJWTService(cfg)

	token, _, err := svc.GenerateAccessToken("user-1", "clerk@stockbook.local", "Clerk", RoleEmployee)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_RejectsGarbage(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret-at-least-32-bytes-long"))

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
