// Package kv defines the key-value contract every storage backend satisfies
// and a shared implementation for database/sql backends.
package kv

import (
	"context"
	"errors"

	apperrors "github.com/julianstephens/weekly/internal/errors"
)

var (
	// ErrNotFound is returned by Get for absent keys
	ErrNotFound = apperrors.ErrNotFound
	// ErrNotInitialized is returned by Load when the backend has never been initialized
	ErrNotInitialized = errors.New("storage not initialized, run 'weekly init' first")
)

// HistoryLimit is how many replaced values are kept per key.
const HistoryLimit = 20

// Backend is a durable string-keyed byte store.
type Backend interface {
	// Init creates the backing storage (files, schema) if needed and opens it.
	Init(ctx context.Context) error
	// Load opens previously initialized storage.
	Load(ctx context.Context) error
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
	// Location returns a non-sensitive description of where data lives.
	Location() string
}

// Revision is a previous value of a key.
type Revision struct {
	Value      []byte
	ReplacedAt string // RFC3339 timestamp
}

// Historian is implemented by backends that retain replaced values.
type Historian interface {
	History(ctx context.Context, key string, limit int) ([]Revision, error)
}
