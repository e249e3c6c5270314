// Package keyring keeps secrets (database connection strings, object storage
// keys) in the OS keyring instead of config files or flags.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/weekly/internal/constants"
)

// Account names a secret stored under the application's keyring service.
type Account string

const (
	// Connection is the storage location (PostgreSQL or Redis URL)
	Connection Account = constants.DefaultKeyringUser
	// MinioSecret is the secret key for remote backups
	MinioSecret Account = "minio-secret-key"
)

var (
	// ErrNotFound is returned when no secret is stored for an account
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Get retrieves the secret stored for account.
func Get(account Account) (string, error) {
	secret, err := keyring.Get(constants.AppName, string(account))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

// Set stores secret for account, replacing any previous value.
func Set(account Account, secret string) error {
	if secret == "" {
		return fmt.Errorf("%s cannot be empty", account)
	}
	if err := keyring.Set(constants.AppName, string(account), secret); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", account, err)
	}
	return nil
}

// Delete removes the secret stored for account.
func Delete(account Account) error {
	err := keyring.Delete(constants.AppName, string(account))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", account, err)
	}
	return nil
}

// GetConnectionString retrieves the storage connection string.
func GetConnectionString() (string, error) {
	return Get(Connection)
}

// SetConnectionString stores the storage connection string.
func SetConnectionString(connStr string) error {
	return Set(Connection, connStr)
}

// DeleteConnectionString removes the storage connection string.
func DeleteConnectionString() error {
	return Delete(Connection)
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
