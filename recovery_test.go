package identity_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	identity "github.com/vistoria/go-identity"
)

func TestGenerateRecoveryCode(t *testing.T) {
	code, err := identity.GenerateRecoveryCode()
	assert.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{6}$`), code)

	other, err := identity.GenerateRecoveryCode()
	assert.NoError(t, err)
	// 3 bytes of entropy can collide, but not in a two-draw test run
	assert.NotEqual(t, code, other)
}

func TestVerifyRecoveryCode(t *testing.T) {
	code, err := identity.GenerateRecoveryCode()
	assert.NoError(t, err)

	hashed, err := identity.HashRecoveryCode(code)
	assert.NoError(t, err)

	tests := []struct {
		name    string
		code    string
		hashed  string
		wantErr error
	}{
		{
			name:   "Matching code",
			code:   code,
			hashed: hashed,
		},
		{
			name:    "Wrong code",
			code:    "ffffff",
			hashed:  hashed,
			wantErr: identity.ErrBadRecoveryCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := identity.VerifyRecoveryCode(tt.code, tt.hashed)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestVerifyRecoveryCodeGarbageHash(t *testing.T) {
	err := identity.VerifyRecoveryCode("abc123", "not-a-hash")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, identity.ErrBadRecoveryCode)
}
