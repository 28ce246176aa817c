package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("irrelevant"))
	require.NoError(t, err)
	return token
}

func TestTokenExpired_PastExp(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
	assert.True(t, TokenExpired(token))
}

func TestTokenExpired_FutureExp(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	assert.False(t, TokenExpired(token))
}

func TestTokenExpired_NoExpClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "someone"})
	assert.False(t, TokenExpired(token))
}

func TestTokenExpired_Undecodable(t *testing.T) {
	assert.True(t, TokenExpired("not-a-jwt"))
	assert.True(t, TokenExpired(""))
	assert.True(t, TokenExpired("a.b.c"))
}
