package identity_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	identity "github.com/vistoria/go-identity"
)

func TestJWTSessionClaimsSubjectFallback(t *testing.T) {
	id := uuid.NewString()

	withSubject := &identity.JWTSessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: id},
	}
	assert.Equal(t, id, withSubject.Subject())

	uidOnly := &identity.JWTSessionClaims{UID: id}
	assert.Equal(t, id, uidOnly.Subject())

	parsed, err := uidOnly.ClientID()
	assert.NoError(t, err)
	assert.Equal(t, id, parsed.String())
}

func TestHasClientID(t *testing.T) {
	assert.False(t, identity.HasClientID(nil))

	junk := &identity.JWTSessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-uuid"},
	}
	assert.False(t, identity.HasClientID(junk))

	valid := &identity.JWTSessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()},
	}
	assert.True(t, identity.HasClientID(valid))
}
