package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/weekly/internal/cli"
	"github.com/julianstephens/weekly/internal/keyring"
	"github.com/julianstephens/weekly/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show a stored secret (masked)."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
	Status KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
}

func account(name string) (keyring.Account, error) {
	switch name {
	case "", "connection":
		return keyring.Connection, nil
	case "minio":
		return keyring.MinioSecret, nil
	}
	return "", fmt.Errorf("unknown account %q (use connection or minio)", name)
}

// KeyringSetCmd stores a storage connection string or a MinIO secret key in the OS keyring
type KeyringSetCmd struct {
	Secret  string `arg:"" help:"PostgreSQL or Redis connection string, or the MinIO secret key."`
	Account string `help:"Which secret to store (connection or minio)." default:"connection" enum:"connection,minio"`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	acct, err := account(cmd.Account)
	if err != nil {
		return err
	}
	if acct == keyring.Connection {
		if err := validateConnection(cmd.Secret); err != nil {
			return err
		}
	}

	if err := keyring.Set(acct, cmd.Secret); err != nil {
		return fmt.Errorf("failed to store secret in keyring: %w", err)
	}

	fmt.Println("✓ Secret stored successfully in OS keyring")
	if acct == keyring.Connection {
		fmt.Println("  You can now use weekly without the --config flag")
	}
	return nil
}

func validateConnection(connStr string) error {
	if strings.HasPrefix(connStr, "redis://") || strings.HasPrefix(connStr, "rediss://") {
		return nil
	}
	if !strings.HasPrefix(connStr, "postgres://") &&
		!strings.HasPrefix(connStr, "postgresql://") &&
		!strings.Contains(connStr, "host=") {
		return errors.New("connection string must be a valid PostgreSQL or Redis connection string")
	}

	if _, err := postgres.ValidateConnString(connStr); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		fmt.Println("⚠️  Warning: Connection string contains embedded credentials.")
		fmt.Println("   It will be stored as-is in the encrypted OS keyring.")
	}
	return nil
}

type KeyringGetCmd struct {
	Account string `help:"Which secret to show (connection or minio)." default:"connection" enum:"connection,minio"`
}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	acct, err := account(cmd.Account)
	if err != nil {
		return err
	}
	secret, err := keyring.Get(acct)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no secret found in keyring. Use 'weekly keyring set' to store one")
		}
		return fmt.Errorf("failed to retrieve secret from keyring: %w", err)
	}

	if acct == keyring.Connection {
		fmt.Println("Connection string retrieved from keyring:")
		fmt.Println(maskPassword(secret))
		return nil
	}
	fmt.Println("MinIO secret key is stored in keyring:")
	fmt.Println(strings.Repeat("*", len(secret)))
	return nil
}

type KeyringDeleteCmd struct {
	Account string `help:"Which secret to delete (connection or minio)." default:"connection" enum:"connection,minio"`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	acct, err := account(cmd.Account)
	if err != nil {
		return err
	}
	if err := keyring.Delete(acct); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no secret found in keyring")
		}
		return fmt.Errorf("failed to delete secret from keyring: %w", err)
	}

	fmt.Println("✓ Secret deleted from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	fmt.Println("✓ OS keyring is available")

	for _, acct := range []keyring.Account{keyring.Connection, keyring.MinioSecret} {
		_, err := keyring.Get(acct)
		switch {
		case err == nil:
			fmt.Printf("✓ %s is stored in keyring\n", acct)
		case errors.Is(err, keyring.ErrNotFound):
			fmt.Printf("ℹ No %s stored in keyring\n", acct)
		}
	}
	return nil
}

// maskPassword masks passwords in connection strings for display
func maskPassword(connStr string) string {
	if i := strings.Index(connStr, "://"); i != -1 {
		rest := connStr[i+3:]
		if at := strings.LastIndex(rest, "@"); at != -1 {
			userInfo := rest[:at]
			if colon := strings.Index(userInfo, ":"); colon != -1 {
				return connStr[:i+3] + userInfo[:colon] + ":****" + rest[at:]
			}
		}
		return connStr
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		for i, part := range parts {
			if strings.HasPrefix(part, "password=") {
				parts[i] = "password=****"
			}
		}
		return strings.Join(parts, " ")
	}

	return connStr
}
