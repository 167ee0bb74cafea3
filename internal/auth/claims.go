package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// SessionClaims is what the dashboard can show about the current
// session without verifying the token's signature. It is display data
// only; the server remains the authority on whether the session is
// valid, and a local expiry never blocks an API call.
type SessionClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// InspectClaims parses the token without signature verification and
// extracts the fields the header line renders.
func InspectClaims(token string) (*SessionClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	out := &SessionClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

// Expired reports whether the token carries an expiry in the past.
func (c *SessionClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
