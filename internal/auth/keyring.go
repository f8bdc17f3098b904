package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/adityarawat/prepometer/internal/constants"
)

var (
	// ErrNotFound is returned when no session token is cached in the keyring
	ErrNotFound = errors.New("session token not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetCachedToken retrieves the session token from the OS keyring so sign-in
// survives process restarts.
func GetCachedToken() (string, error) {
	token, err := keyring.Get(constants.AppName, constants.KeyringSessionUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return token, nil
}

// SetCachedToken stores the session token in the OS keyring.
func SetCachedToken(token string) error {
	if token == "" {
		return errors.New("session token cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.KeyringSessionUser, token); err != nil {
		return fmt.Errorf("failed to store session token in keyring: %w", err)
	}
	return nil
}

// DeleteCachedToken removes the session token from the OS keyring.
func DeleteCachedToken() error {
	err := keyring.Delete(constants.AppName, constants.KeyringSessionUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete session token from keyring: %w", err)
	}
	return nil
}
