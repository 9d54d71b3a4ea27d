package identity

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var hashCost = defaultHashCost()

// SetHashCost overrides the bcrypt work factor for every subsequent hash.
// Values outside bcrypt's supported range reset to the package default.
// Call once at startup; the cost is read without locking afterwards.
func SetHashCost(cost int) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = defaultHashCost()
	}
	hashCost = cost
}

// HashSecret will generate a bcrypt hash with a per-call random salt.
// It serves both passwords and recovery codes.
func HashSecret(secret string) (string, error) {
	if secret == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(secret), hashCost)
	return string(h), err
}

// CompareSecretAndHash will validate the given cleartext secret
// matches the hashed secret
func CompareSecretAndHash(secret, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndSecret
		}
		return err
	}
	return nil
}

// RandomSecretHash is a placeholder credential that no caller can guess
func RandomSecretHash() string {
	pwd := uuid.New()

	h, err := HashSecret(pwd.String())
	if err != nil {
		return RandomSecretHash()
	}

	return h
}
