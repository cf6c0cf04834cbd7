package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/foodordering/internal/auth/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    7,
		Name:  "Bob",
		Email: "bob@example.com",
		Role:  domain.RoleAdmin,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("round-trip-secret", time.Hour)

	token, err := svc.Sign(testUser())
	require.NoError(t, err)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "bob@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "Bob", claims.Name)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService("expiry-secret", -time.Minute)

	token, err := svc.Sign(testUser())
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	signer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := signer.Sign(testUser())
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	svc := NewTokenService("garbage-secret", time.Hour)

	_, err := svc.Parse("not-a-jwt")
	assert.Error(t, err)
}

func TestVerifyTokenIdentity(t *testing.T) {
	svc := NewTokenService("identity-secret", time.Hour)

	token, err := svc.Sign(testUser())
	require.NoError(t, err)

	identity, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), identity.UserID)
	assert.Equal(t, "bob@example.com", identity.Email)
	assert.True(t, identity.IsAdmin())
}
