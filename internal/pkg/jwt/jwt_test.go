package jwt

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/office-attendance-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc, err := NewJWTService("test-secret", "1h")
	require.NoError(t, err)

	token, exp, err := svc.GenerateAccessToken("u-1", "alice", user.RoleManager)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), exp, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	p, ok := PrincipalFromToken(decoded)
	require.True(t, ok)
	assert.Equal(t, user.Principal{UserID: "u-1", Username: "alice", Role: user.RoleManager}, p)
}

func TestRevocation(t *testing.T) {
	svc, err := NewJWTService("test-secret", "1h")
	require.NoError(t, err)

	token, exp, err := svc.GenerateAccessToken("u-1", "alice", user.RoleEmployee)
	require.NoError(t, err)
	assert.False(t, svc.IsTokenRevoked(token))

	svc.RevokeToken(token, exp)
	assert.True(t, svc.IsTokenRevoked(token))
}

func TestExpiredRevocationsArePruned(t *testing.T) {
	svc, err := NewJWTService("test-secret", "1h")
	require.NoError(t, err)
	j := svc.(*JWTService)

	j.RevokeToken("old", time.Now().Add(-time.Minute).Unix())
	j.RevokeToken("new", time.Now().Add(time.Hour).Unix())
	assert.False(t, j.IsTokenRevoked("old"))
	assert.True(t, j.IsTokenRevoked("new"))
}

func TestInvalidExpiration(t *testing.T) {
	_, err := NewJWTService("s", "eight hours")
	assert.Error(t, err)
}
