package usecase

import (
	"errors"
	"fmt"

	"github.com/vadimbarashkov/url-analytics/internal/entity"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("password too long: %w", entity.ErrInvalidInput)
		}

		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// checkPassword guards protected URLs. Unprotected URLs accept any credential.
func checkPassword(url *entity.URL, password string) error {
	if !url.IsProtected() {
		return nil
	}

	if password == "" {
		return entity.ErrPasswordRequired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*url.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return entity.ErrPasswordMismatch
		}

		return fmt.Errorf("failed to compare password: %w", err)
	}

	return nil
}
