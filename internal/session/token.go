package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired reads the token's exp claim without verifying its signature;
// the backend owns real validation. An undecodable token counts as expired,
// a token without an exp claim does not.
func TokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		return false
	}
	return time.Now().After(exp.Time)
}
