// Package storage persists the week dataset through a kv.Backend. Saves
// update an in-memory cache immediately and reach the backend after a quiet
// period, so bursts of edits produce a single write.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/julianstephens/weekly/internal/clock"
	"github.com/julianstephens/weekly/internal/constants"
	apperrors "github.com/julianstephens/weekly/internal/errors"
	"github.com/julianstephens/weekly/internal/logger"
	"github.com/julianstephens/weekly/internal/models"
	"github.com/julianstephens/weekly/internal/storage/kv"
	"github.com/julianstephens/weekly/internal/validation"
)

type Store struct {
	mu      sync.Mutex
	backend kv.Backend
	clock   clock.Clock
	delay   time.Duration
	key     string

	cache   *models.WeekDataset
	dirty   bool
	pending clock.Timer
	gen     uint64
	writes  int
}

// NewStore wraps an opened backend. A nil clock uses the wall clock.
func NewStore(backend kv.Backend, clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Store{
		backend: backend,
		clock:   clk,
		delay:   constants.DebounceDelay,
		key:     constants.StorageKey,
	}
}

// SetDelay overrides the debounce delay.
func (s *Store) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

func (s *Store) Backend() kv.Backend {
	return s.backend
}

// Load returns a copy of the current dataset. The second result is false
// when nothing is stored or the stored record cannot be decoded.
func (s *Store) Load(ctx context.Context) (*models.WeekDataset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache != nil {
		return s.cache.Clone(), true
	}

	raw, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			logger.Warn("Failed to read stored dataset", "error", err)
		}
		return nil, false
	}

	ds := models.NewWeekDataset()
	if err := json.Unmarshal(raw, ds); err != nil {
		logger.Warn("Stored dataset is corrupt, treating as absent", "error", err)
		return nil, false
	}
	ds.Normalize()
	s.cache = ds
	return ds.Clone(), true
}

// LoadOrInit returns the stored dataset, saving and returning the default
// dataset when none exists.
func (s *Store) LoadOrInit(ctx context.Context) *models.WeekDataset {
	if ds, ok := s.Load(ctx); ok {
		return ds
	}
	ds := models.NewWeekDataset()
	s.Save(ds)
	return ds
}

// Save replaces the cached dataset and schedules a write after the debounce
// delay, superseding any write already scheduled.
func (s *Store) Save(ds *models.WeekDataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := ds.Clone()
	next.Normalize()
	s.cache = next
	s.dirty = true
	s.gen++

	if s.pending != nil {
		s.pending.Stop()
	}
	gen := s.gen
	s.pending = s.clock.AfterFunc(s.delay, func() { s.flushScheduled(gen) })
}

func (s *Store) flushScheduled(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || !s.dirty {
		return
	}
	s.pending = nil
	if err := s.writeLocked(context.Background()); err != nil {
		logger.Error("Failed to persist dataset", "error", err)
	}
}

// FlushNow cancels the pending write and writes synchronously if there are
// unsaved changes.
func (s *Store) FlushNow(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopPendingLocked()
	if !s.dirty {
		return nil
	}
	return s.writeLocked(ctx)
}

func (s *Store) writeLocked(ctx context.Context) error {
	if s.cache == nil {
		s.dirty = false
		return nil
	}
	data, err := json.Marshal(s.cache)
	if err != nil {
		return &apperrors.StorageError{Op: "encode", Err: err}
	}
	if err := s.backend.Set(ctx, s.key, data); err != nil {
		return &apperrors.StorageError{Op: "write", Err: err}
	}
	s.dirty = false
	s.writes++
	return nil
}

func (s *Store) stopPendingLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.gen++
}

// Invalidate discards the cache along with any unwritten changes.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopPendingLocked()
	s.cache = nil
	s.dirty = false
}

// Refresh drops the cache so the next Load observes the backend, unless
// there are changes still waiting to be written.
func (s *Store) Refresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty || s.pending != nil {
		return false
	}
	s.cache = nil
	return true
}

// Import validates raw and replaces the stored dataset with it. An invalid
// payload leaves the current data untouched.
func (s *Store) Import(ctx context.Context, raw []byte) (*models.WeekDataset, error) {
	ds, err := validation.ValidateDatasetJSON(raw)
	if err != nil {
		return nil, err
	}
	s.Invalidate()
	s.Save(ds)
	if err := s.FlushNow(ctx); err != nil {
		return nil, err
	}
	return ds.Clone(), nil
}

// Export flushes and writes the dataset as indented JSON.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	if err := s.FlushNow(ctx); err != nil {
		return err
	}
	ds, ok := s.Load(ctx)
	if !ok {
		ds = models.NewWeekDataset()
	}
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// Clear removes the stored dataset.
func (s *Store) Clear(ctx context.Context) error {
	s.Invalidate()
	if err := s.backend.Delete(ctx, s.key); err != nil {
		return &apperrors.StorageError{Op: "delete", Err: err}
	}
	return nil
}

// Close flushes pending changes and closes the backend.
func (s *Store) Close(ctx context.Context) error {
	flushErr := s.FlushNow(ctx)
	closeErr := s.backend.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// Pref reads a small preference value. Missing preferences return "".
func (s *Store) Pref(ctx context.Context, key string) (string, error) {
	raw, err := s.backend.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", &apperrors.StorageError{Op: "read", Err: err}
	}
	return string(raw), nil
}

// SetPref writes a preference immediately.
func (s *Store) SetPref(ctx context.Context, key, value string) error {
	if err := s.backend.Set(ctx, key, []byte(value)); err != nil {
		return &apperrors.StorageError{Op: "write", Err: err}
	}
	return nil
}

// History returns previously stored versions of the dataset when the
// backend keeps them.
func (s *Store) History(ctx context.Context, limit int) ([]kv.Revision, error) {
	h, ok := s.backend.(kv.Historian)
	if !ok {
		return nil, nil
	}
	return h.History(ctx, s.key, limit)
}

// PendingWrite reports whether a debounced write is scheduled.
func (s *Store) PendingWrite() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Writes returns how many physical writes reached the backend.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
