package identity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	identity "github.com/vistoria/go-identity"
)

var testSigningKey = []byte("test-signing-key")

func TestTokenServiceRoundtrip(t *testing.T) {
	service := identity.NewTokenService(testSigningKey, 1, "identity-test", jwt.ClaimStrings{"api"}, nil)

	subject := uuid.New()
	token, err := service.Issue(subject)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, subject.String(), claims.Subject())

	id, err := claims.ClientID()
	assert.NoError(t, err)
	assert.Equal(t, subject, id)

	assert.WithinDuration(t, time.Now(), claims.IssuedAt(), time.Minute)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expires(), time.Minute)
}

func TestTokenServiceExpired(t *testing.T) {
	service := identity.NewTokenService(testSigningKey, 1, "", nil, nil)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &identity.JWTSessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	token, err := expired.SignedString(testSigningKey)
	assert.NoError(t, err)

	_, err = service.Validate(token)
	assert.ErrorIs(t, err, identity.ErrTokenExpired)
	assert.True(t, identity.IsTokenExpiredError(err))
}

func TestTokenServiceBadSignature(t *testing.T) {
	service := identity.NewTokenService(testSigningKey, 1, "", nil, nil)
	other := identity.NewTokenService([]byte("a-different-key"), 1, "", nil, nil)

	token, err := other.Issue(uuid.New())
	assert.NoError(t, err)

	_, err = service.Validate(token)
	assert.ErrorIs(t, err, identity.ErrTokenBadSignature)
}

func TestTokenServiceMalformed(t *testing.T) {
	service := identity.NewTokenService(testSigningKey, 1, "", nil, nil)

	_, err := service.Validate("not.a.token")
	assert.Error(t, err)

	var richErr *goerrors.Error
	assert.True(t, errors.As(err, &richErr))
	assert.Equal(t, identity.TextCodeTokenMalformed, richErr.TextCode)
	assert.True(t, identity.IsMalformedError(err))
}

func TestTokenServiceDefaultExpiration(t *testing.T) {
	service := identity.NewTokenService(testSigningKey, 0, "", nil, nil)

	token, err := service.Issue(uuid.New())
	assert.NoError(t, err)

	claims, err := service.Validate(token)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Expires(), time.Minute)
}
