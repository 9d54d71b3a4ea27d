package identity

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
)

// RegisterClientRequest is the registration payload
type RegisterClientRequest struct {
	FirstName    string `form:"first_name" json:"first_name"`
	Email        string `form:"email" json:"email"`
	Phone        string `form:"phone_number" json:"phone_number"`
	AddressCity  string `form:"address_city" json:"address_city"`
	AddressState string `form:"address_state" json:"address_state"`
	Password     string `form:"password" json:"password"`
	// UseHashid derives the client id deterministically from the email
	// instead of a random uuid.
	UseHashid bool `json:"-"`
}

// Validate will validate the payload
func (r RegisterClientRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.AddressCity, validation.Length(0, 100)),
		validation.Field(&r.AddressState, validation.Length(0, 100)),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
	)
}

// LoginRequest carries the login credentials
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will validate the payload
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// ConfirmLoginRequest carries a session token for verification
type ConfirmLoginRequest struct {
	Token string `form:"token" json:"token"`
}

// Validate will validate the payload
func (r ConfirmLoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
	)
}

// ChangePasswordRequest selects its sub-mode by shape: a non-empty Code
// means the recovery path (Code is checked against HashedCode); otherwise
// Password is verified against the stored credential.
type ChangePasswordRequest struct {
	ClientID    uuid.UUID `json:"-"`
	Password    string    `form:"password" json:"password"`
	Code        string    `form:"code" json:"code"`
	HashedCode  string    `form:"hashed_code" json:"hashed_code"`
	NewPassword string    `form:"new_password" json:"new_password"`
}

// CodeMode reports whether the recovery sub-mode was selected
func (r ChangePasswordRequest) CodeMode() bool {
	return r.Code != ""
}

// Validate will validate the payload
func (r ChangePasswordRequest) Validate() error {
	if r.CodeMode() {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Code, validation.Required, validation.Length(6, 6), is.Hexadecimal),
			validation.Field(&r.HashedCode, validation.Required),
			validation.Field(&r.NewPassword, validation.Required, validation.Length(6, 100)),
		)
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(6, 100)),
	)
}

// RequestRecoveryRequest starts the password recovery flow
type RequestRecoveryRequest struct {
	Email string `form:"email" json:"email"`
}

// Validate will validate the payload
func (r RequestRecoveryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// ConfirmRecoveryRequest pre-checks a recovery code against the hash the
// caller has been round-tripping since RequestRecovery
type ConfirmRecoveryRequest struct {
	Code       string `form:"code" json:"code"`
	HashedCode string `form:"hashed_code" json:"hashed_code"`
}

// Validate will validate the payload
func (r ConfirmRecoveryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(6, 6), is.Hexadecimal),
		validation.Field(&r.HashedCode, validation.Required),
	)
}
