// Package config resolves where weekly keeps its data and which optional
// integrations are configured. Values come from flags, the environment
// (optionally seeded from .env files), and the OS keyring.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/julianstephens/weekly/internal/constants"
	"github.com/julianstephens/weekly/internal/keyring"
	"github.com/julianstephens/weekly/internal/logger"
)

// Source records which layer supplied the storage location.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
	SourceDefault Source = "default"
)

var (
	userHomeDirFunc = os.UserHomeDir
	keyringGetFunc  = keyring.Get
	dotenvFilesFunc = defaultDotenvFiles
)

// Minio holds S3-compatible endpoint settings for remote backups.
type Minio struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Configured reports whether enough settings are present to connect.
func (m Minio) Configured() bool {
	return m.Endpoint != "" && m.AccessKey != "" && m.SecretKey != ""
}

// Config is the resolved runtime configuration.
type Config struct {
	Location  string
	Source    Source
	ConfigDir string
	Debug     bool
	Language  string
	Minio     Minio
}

// Options are the raw inputs from the command line.
type Options struct {
	Location string
	Debug    bool
}

// Load resolves the configuration. The storage location is taken from the
// flag, then WEEKLY_DB_CONNECTION, then the OS keyring, then the default path.
func Load(opts Options) (*Config, error) {
	for _, path := range dotenvFilesFunc() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	cfg := &Config{
		Debug:    opts.Debug,
		Language: os.Getenv(constants.EnvLanguage),
	}

	location, source, err := resolveLocation(opts.Location)
	if err != nil {
		return nil, err
	}
	cfg.Location = location
	cfg.Source = source

	if IsFileLocation(location) {
		cfg.ConfigDir = filepath.Dir(location)
	} else {
		dir, err := ExpandPath(filepath.Dir(constants.DefaultConfigPath))
		if err != nil {
			return nil, err
		}
		cfg.ConfigDir = dir
	}

	cfg.Minio = Minio{
		Endpoint:  os.Getenv(constants.EnvMinioHost),
		AccessKey: os.Getenv(constants.EnvMinioKey),
		SecretKey: os.Getenv(constants.EnvMinioSecret),
	}
	if v := os.Getenv(constants.EnvMinioSSL); v != "" {
		ssl, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", constants.EnvMinioSSL, v, err)
		}
		cfg.Minio.UseSSL = ssl
	}
	if cfg.Minio.SecretKey == "" && cfg.Minio.Endpoint != "" {
		if secret, err := keyringGetFunc(keyring.MinioSecret); err == nil {
			cfg.Minio.SecretKey = secret
		}
	}

	return cfg, nil
}

func resolveLocation(flagValue string) (string, Source, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		loc, err := ExpandPath(v)
		return loc, SourceFlag, err
	}
	if v := strings.TrimSpace(os.Getenv(constants.EnvConnection)); v != "" {
		loc, err := ExpandPath(v)
		return loc, SourceEnv, err
	}
	connStr, err := keyringGetFunc(keyring.Connection)
	switch {
	case err == nil && connStr != "":
		return connStr, SourceKeyring, nil
	case err != nil && !errors.Is(err, keyring.ErrNotFound):
		logger.Debug("Keyring lookup failed", "error", err)
	}
	loc, err := ExpandPath(constants.DefaultConfigPath)
	return loc, SourceDefault, err
}

// ExpandPath replaces a leading ~ with the user's home directory. URLs and
// DSNs are returned unchanged.
func ExpandPath(p string) (string, error) {
	if !IsFileLocation(p) {
		return p, nil
	}
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := userHomeDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	if p == "~" {
		return home, nil
	}
	return filepath.Join(home, p[2:]), nil
}

// IsFileLocation reports whether loc names a local file rather than a
// database URL or DSN.
func IsFileLocation(loc string) bool {
	for _, prefix := range []string{"postgres://", "postgresql://", "redis://", "rediss://"} {
		if strings.HasPrefix(loc, prefix) {
			return false
		}
	}
	return !strings.Contains(loc, "host=")
}

func defaultDotenvFiles() []string {
	files := []string{".env"}
	if dir, err := ExpandPath(filepath.Dir(constants.DefaultConfigPath)); err == nil {
		files = append(files, filepath.Join(dir, ".env"))
	}
	return files
}
