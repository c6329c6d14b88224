// Package secret hashes and verifies driver and shop credentials.
package secret

import (
	"errors"

	"github.com/daniel06264831/menuia/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

const minLength = 4

// Hash returns the bcrypt hash of plain.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", errs.NewValueIsRequiredError("password")
	}
	if len(plain) < minLength {
		return "", errs.NewValueIsOutOfRangeError("password length", len(plain), minLength, 72)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", errs.NewValueIsOutOfRangeErrorWithCause("password length", len(plain), minLength, 72, err)
		}
		return "", err
	}

	return string(hash), nil
}

// Matches reports whether plain is the secret behind hash.
func Matches(hash, plain string) bool {
	if hash == "" || plain == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
