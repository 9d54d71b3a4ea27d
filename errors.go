package identity

import (
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes surfaced to transport adapters alongside the HTTP status.
const (
	TextCodeTokenExpired      = "TOKEN_EXPIRED"
	TextCodeTokenMalformed    = "TOKEN_MALFORMED"
	TextCodeTokenBadSignature = "TOKEN_BAD_SIGNATURE"
	TextCodeBadCredential     = "BAD_CREDENTIAL"
	TextCodeBadRecoveryCode   = "BAD_RECOVERY_CODE"
)

// ErrNoEmptyString is returned when a secret to be hashed is empty
var ErrNoEmptyString = goerrors.New("secret must not be empty", goerrors.CategoryValidation).
	WithCode(goerrors.CodeBadRequest).
	WithTextCode("EMPTY_SECRET")

// ErrMismatchedHashAndSecret is the bad-credential failure: the supplied
// secret does not verify against the stored hash
var ErrMismatchedHashAndSecret = goerrors.New("credential does not match", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode(TextCodeBadCredential)

// ErrDuplicateEmail is returned on Register when the email is taken
var ErrDuplicateEmail = goerrors.New("email already registered", goerrors.CategoryConflict).
	WithCode(goerrors.CodeConflict).
	WithTextCode("DUPLICATE_EMAIL")

// ErrUnknownEmail is returned when no client exists for a login/recovery email
var ErrUnknownEmail = goerrors.New("email not registered", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound).
	WithTextCode("UNKNOWN_EMAIL")

// ErrClientNotFound is returned when a client id resolves to no record
var ErrClientNotFound = goerrors.New("client not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound).
	WithTextCode("CLIENT_NOT_FOUND")

// ErrBadRecoveryCode is returned when a recovery code fails verification
var ErrBadRecoveryCode = goerrors.New("recovery code does not match", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode(TextCodeBadRecoveryCode)

// ErrTokenExpired is returned for tokens past their validity window
var ErrTokenExpired = goerrors.New("session token is expired", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode(TextCodeTokenExpired)

// ErrTokenMalformed is returned for tokens that cannot be parsed
var ErrTokenMalformed = goerrors.New("session token is malformed", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode(TextCodeTokenMalformed)

// ErrTokenBadSignature is returned for tokens whose signature check fails
var ErrTokenBadSignature = goerrors.New("session token signature is invalid", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode(TextCodeTokenBadSignature)

// ErrUnauthorized is the generic missing/invalid-token failure
var ErrUnauthorized = goerrors.New("authentication required", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("UNAUTHENTICATED")

// ErrForbidden is returned when a valid actor lacks the privilege flag
var ErrForbidden = goerrors.New("insufficient privileges", goerrors.CategoryAuthz).
	WithCode(goerrors.CodeForbidden).
	WithTextCode("FORBIDDEN")

// ErrFieldNotPermitted is returned when a patch touches a restricted field
var ErrFieldNotPermitted = goerrors.New("field not permitted", goerrors.CategoryAuthz).
	WithCode(goerrors.CodeForbidden).
	WithTextCode("FIELD_NOT_PERMITTED")

// ErrDeliveryFailed is returned when the recovery email could not be sent.
// Retry is the caller's decision.
var ErrDeliveryFailed = goerrors.New("recovery email delivery failed", goerrors.CategoryOperation).
	WithTextCode("DELIVERY_FAILED")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
