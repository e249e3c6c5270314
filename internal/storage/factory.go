package storage

import (
	"strings"

	"github.com/julianstephens/weekly/internal/storage/jsonfile"
	"github.com/julianstephens/weekly/internal/storage/kv"
	"github.com/julianstephens/weekly/internal/storage/postgres"
	"github.com/julianstephens/weekly/internal/storage/redis"
	"github.com/julianstephens/weekly/internal/storage/sqlite"
)

// NewBackend selects a backend from a resolved storage location.
func NewBackend(location string) (kv.Backend, error) {
	switch {
	case isPostgres(location):
		if _, err := postgres.ValidateConnString(location); err != nil {
			return nil, err
		}
		return postgres.New(location), nil
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		return redis.New(location), nil
	case strings.HasSuffix(strings.ToLower(location), ".json"):
		return jsonfile.New(location), nil
	default:
		return sqlite.New(location), nil
	}
}

func isPostgres(location string) bool {
	return strings.HasPrefix(location, "postgres://") ||
		strings.HasPrefix(location, "postgresql://") ||
		strings.HasPrefix(strings.TrimSpace(location), "host=")
}
