package users

import (
	stderrors "errors"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor applied to every hash. Each call salts
// independently, so two hashes of the same plaintext are never equal.
const DefaultBcryptCost = 12

// HashPassword will generate a password hash
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyPassword
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), DefaultBcryptCost)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "password hashing failed").
			WithCode(errors.CodeInternal)
	}

	return string(h), nil
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if stderrors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return errors.Wrap(err, errors.CategoryInternal, "password verification failed").
			WithCode(errors.CodeInternal)
	}
	return nil
}

// RandomPasswordHash is a temporary password. On persistent hash failure it
// returns an empty string, which no password can verify against.
func RandomPasswordHash() string {
	for range 3 {
		h, err := HashPassword(uuid.New().String())
		if err == nil {
			return h
		}
	}

	return ""
}

// BcryptAuthenticator is the default PasswordAuthenticator backed by the
// package level bcrypt helpers.
type BcryptAuthenticator struct{}

func (BcryptAuthenticator) HashPassword(password string) (string, error) {
	return HashPassword(password)
}

func (BcryptAuthenticator) ComparePasswordAndHash(password, hash string) error {
	return ComparePasswordAndHash(password, hash)
}

var _ PasswordAuthenticator = BcryptAuthenticator{}
