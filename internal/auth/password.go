package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordLength is the longest password bcrypt can hash without
// truncation.
const MaxPasswordLength = 72

var (
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
	ErrPasswordEmpty   = errors.New("password must not be empty")
	ErrPasswordInvalid = errors.New("password does not match")
)

// dummyHash is compared against when a login names an unknown user so both
// failure paths spend the same bcrypt work.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("tenant-backend-dummy-password"), bcrypt.DefaultCost)

func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", ErrPasswordEmpty
	}
	if len(plain) > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether plain matches hash. Passwords longer than
// MaxPasswordLength never match: bcrypt would only compare their prefix.
func CheckPassword(hash, plain string) error {
	if len(plain) > MaxPasswordLength {
		_ = CheckPasswordAgainstDummy(plain[:MaxPasswordLength])
		return ErrPasswordInvalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		return ErrPasswordInvalid
	}
	return nil
}

// CheckPasswordAgainstDummy burns one bcrypt comparison and always fails.
func CheckPasswordAgainstDummy(plain string) error {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
	return ErrPasswordInvalid
}
