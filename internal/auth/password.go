package auth

import (
	"errors"

	"github.com/rushikesh125/Incubyte-project-submission/internal/database"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword maps a bcrypt mismatch to ErrInvalidCredentials so callers
// never learn whether the email or the password was wrong.
func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return database.ErrInvalidCredentials
		}
		return err
	}
	return nil
}
