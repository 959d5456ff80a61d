package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource supplies the session token attached to every API request.
// The request layer takes it as a capability at construction time rather
// than reading ambient storage, so tests can substitute their own.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken serves a fixed token taken from configuration.
type StaticToken string

func (t StaticToken) Token() (string, error) {
	if t == "" {
		return "", errors.New("no session token configured")
	}

	return string(t), nil
}

// ExpiresAt inspects a JWT-shaped token's expiry claim without verifying
// the signature; verification is the server's job, this is only used to
// warn about a doomed session before a request is spent on it. Opaque
// tokens and tokens without an expiry return false.
func ExpiresAt(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}
