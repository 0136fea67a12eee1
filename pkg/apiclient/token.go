package apiclient

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether the access token's exp claim has passed.
// The signature is not checked; the backend remains the authority, this
// only skips a request that is guaranteed to bounce with a 401. Tokens
// that cannot be parsed are sent as-is.
func tokenExpired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) <= 0
}
