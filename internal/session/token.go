package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what can be read from a bearer token without its signing key.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that has passed.
func (i *TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// InspectToken decodes the claims of a JWT bearer token WITHOUT verifying the
// signature. The result is informational only; the backend remains the authority.
// Tokens that are not JWTs return an error.
func InspectToken(token string) (*TokenInfo, error) {
	if token == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}

	info := &TokenInfo{}
	// Subject may be numeric (e.g. a database row id)
	switch sub := claims["sub"].(type) {
	case string:
		info.Subject = sub
	case float64:
		info.Subject = fmt.Sprintf("%.0f", sub)
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
