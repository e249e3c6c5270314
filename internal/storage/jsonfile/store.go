// Package jsonfile is a backend that keeps every key in one human-readable
// JSON document.
package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/julianstephens/weekly/internal/storage/kv"
)

type Store struct {
	mu      sync.Mutex
	path    string
	data    map[string]json.RawMessage
	loaded  bool
	modTime time.Time
	size    int64
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return s.readLocked()
	}
	s.data = map[string]json.RawMessage{}
	s.loaded = true
	return s.writeLocked()
}

func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return kv.ErrNotInitialized
	}
	return s.readLocked()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return nil, kv.ErrNotInitialized
	}
	if err := s.syncLocked(); err != nil {
		return nil, err
	}
	raw, ok := s.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	// plain strings are stored quoted
	if len(raw) > 0 && raw[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err == nil {
			return []byte(str), nil
		}
	}
	return append([]byte(nil), raw...), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return kv.ErrNotInitialized
	}
	if err := s.syncLocked(); err != nil {
		return err
	}

	var raw json.RawMessage
	if isDocument(value) {
		raw = append(json.RawMessage(nil), value...)
	} else {
		quoted, err := json.Marshal(string(value))
		if err != nil {
			return fmt.Errorf("failed to encode key %s: %w", key, err)
		}
		raw = quoted
	}

	prev, had := s.data[key]
	s.data[key] = raw
	if err := s.writeLocked(); err != nil {
		if had {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return kv.ErrNotInitialized
	}
	if err := s.syncLocked(); err != nil {
		return err
	}
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.writeLocked()
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.loaded = false
	return nil
}

func (s *Store) Location() string {
	return s.path
}

func (s *Store) readLocked() error {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	data := map[string]json.RawMessage{}
	if len(content) > 0 {
		if err := json.Unmarshal(content, &data); err != nil {
			return fmt.Errorf("failed to parse %s: %w", s.path, err)
		}
	}
	s.data = data
	s.loaded = true
	s.stampLocked()
	return nil
}

// syncLocked re-reads the file when another process replaced it.
func (s *Store) syncLocked() error {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil
	}
	if info.ModTime().Equal(s.modTime) && info.Size() == s.size {
		return nil
	}
	return s.readLocked()
}

func (s *Store) stampLocked() {
	if info, err := os.Stat(s.path); err == nil {
		s.modTime = info.ModTime()
		s.size = info.Size()
	}
}

// writeLocked replaces the file atomically through a temp file and rename.
func (s *Store) writeLocked() error {
	content, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".weekly-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	s.stampLocked()
	return nil
}

func isDocument(value []byte) bool {
	for _, b := range value {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '{', '[':
			return json.Valid(value)
		default:
			return false
		}
	}
	return false
}
