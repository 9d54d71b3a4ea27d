package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the verified payload extracted from a session token:
// the subject identifier plus issuance and expiry times. Privilege is NOT
// carried in the token; the policy looks it up by subject so a flag change
// takes effect without waiting for outstanding tokens to expire.
type SessionClaims interface {
	Subject() string
	ClientID() (uuid.UUID, error)
	IssuedAt() time.Time
	Expires() time.Time
}

// JWTSessionClaims is the concrete implementation of SessionClaims
type JWTSessionClaims struct {
	jwt.RegisteredClaims
	UID string `json:"uid,omitempty"`
}

// Verify interface compliance
var _ SessionClaims = (*JWTSessionClaims)(nil)

// Subject returns the subject claim
func (c *JWTSessionClaims) Subject() string {
	if c.RegisteredClaims.Subject != "" {
		return c.RegisteredClaims.Subject
	}
	return c.UID
}

// ClientID parses the subject as a client identifier
func (c *JWTSessionClaims) ClientID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject())
}

// IssuedAt returns the issued at time
func (c *JWTSessionClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// Expires returns the expiration time
func (c *JWTSessionClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// HasClientID reports whether SessionClaims.ClientID will succeed.
func HasClientID(claims SessionClaims) bool {
	if claims == nil {
		return false
	}
	_, err := claims.ClientID()
	return err == nil
}
