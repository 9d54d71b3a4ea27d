package identity

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// recoveryCodeBytes yields a 6 hex character code, matching the width the
// delivery email promises. Predictability is mitigated only by randomness
// width plus whatever validity window the caller enforces.
const recoveryCodeBytes = 3

// GenerateRecoveryCode produces a short random code from a cryptographically
// secure source. The plaintext is never retained after generation: callers
// hash it immediately and hand the plaintext to the delivery channel.
func GenerateRecoveryCode() (string, error) {
	buf := make([]byte, recoveryCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read random source")
	}
	return hex.EncodeToString(buf), nil
}

// HashRecoveryCode delegates to the Secret Hasher
func HashRecoveryCode(code string) (string, error) {
	return HashSecret(code)
}

// VerifyRecoveryCode checks a candidate code against a previously issued
// hash. A wrong guess returns ErrBadRecoveryCode; only structurally invalid
// hashes surface anything else.
func VerifyRecoveryCode(code, hashed string) error {
	if err := CompareSecretAndHash(code, hashed); err != nil {
		if errors.Is(err, ErrMismatchedHashAndSecret) {
			return ErrBadRecoveryCode
		}
		return err
	}
	return nil
}
