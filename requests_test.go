package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	identity "github.com/vistoria/go-identity"
)

func TestRegisterClientRequestValidate(t *testing.T) {
	valid := identity.RegisterClientRequest{
		FirstName: "Pepe",
		Email:     "pepe.rone@example.com",
		Password:  "hunter22",
	}
	assert.NoError(t, valid.Validate())

	missingEmail := valid
	missingEmail.Email = ""
	assert.Error(t, missingEmail.Validate())

	shortPassword := valid
	shortPassword.Password = "abc"
	assert.Error(t, shortPassword.Validate())
}

func TestChangePasswordRequestModes(t *testing.T) {
	codeMode := identity.ChangePasswordRequest{
		Code:        "a1b2c3",
		HashedCode:  "$2a$10$whatever",
		NewPassword: "newPassword1",
	}
	assert.True(t, codeMode.CodeMode())
	assert.NoError(t, codeMode.Validate())

	missingHash := codeMode
	missingHash.HashedCode = ""
	assert.Error(t, missingHash.Validate())

	badCode := codeMode
	badCode.Code = "zzzzzz"
	assert.Error(t, badCode.Validate())

	passwordMode := identity.ChangePasswordRequest{
		Password:    "currentPassword",
		NewPassword: "newPassword1",
	}
	assert.False(t, passwordMode.CodeMode())
	assert.NoError(t, passwordMode.Validate())

	missingCurrent := passwordMode
	missingCurrent.Password = ""
	assert.Error(t, missingCurrent.Validate())
}

func TestConfirmRecoveryRequestValidate(t *testing.T) {
	valid := identity.ConfirmRecoveryRequest{
		Code:       "0fa312",
		HashedCode: "$2a$10$whatever",
	}
	assert.NoError(t, valid.Validate())

	badLength := valid
	badLength.Code = "0fa3"
	assert.Error(t, badLength.Validate())
}
