// Package app assembles a running session: storage, permission state, the
// schedule registry, the reminder scheduler and the active language.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/julianstephens/weekly/internal/backup"
	"github.com/julianstephens/weekly/internal/clock"
	"github.com/julianstephens/weekly/internal/config"
	"github.com/julianstephens/weekly/internal/constants"
	"github.com/julianstephens/weekly/internal/i18n"
	"github.com/julianstephens/weekly/internal/logger"
	"github.com/julianstephens/weekly/internal/models"
	"github.com/julianstephens/weekly/internal/notifier"
	"github.com/julianstephens/weekly/internal/permission"
	"github.com/julianstephens/weekly/internal/registry"
	"github.com/julianstephens/weekly/internal/scheduler"
	"github.com/julianstephens/weekly/internal/storage"
	"github.com/julianstephens/weekly/internal/storage/kv"
)

var getenvFunc = os.Getenv

// Options override the parts of a session that tests and the headless
// daemon replace.
type Options struct {
	Clock clock.Clock
	// Deliverer defaults to the tray app.
	Deliverer notifier.Deliverer
	// Fallback defaults to the in-app inbox.
	Fallback notifier.Deliverer
	// AutoInit initializes storage that has never been set up.
	AutoInit bool
}

type Session struct {
	Config     *config.Config
	Backend    kv.Backend
	Store      *storage.Store
	Permission *permission.Manager
	Registry   *registry.Registry
	Scheduler  *scheduler.Scheduler
	Inbox      *notifier.Inbox
	Backups    *backup.Manager

	clock   clock.Clock
	mu      sync.Mutex
	catalog *i18n.Catalog
	cancel  context.CancelFunc
	done    chan struct{}
}

// Open connects to the configured storage and wires the session together.
// Nothing is armed until Start.
func Open(ctx context.Context, cfg *config.Config, opts Options) (*Session, error) {
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}

	backend, err := storage.NewBackend(cfg.Location)
	if err != nil {
		return nil, err
	}
	if err := backend.Load(ctx); err != nil {
		if !errors.Is(err, kv.ErrNotInitialized) || !opts.AutoInit {
			return nil, err
		}
		if err := backend.Init(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		logger.Info("Initialized storage", "location", backend.Location())
	}

	s := &Session{
		Config:  cfg,
		Backend: backend,
		Store:   storage.NewStore(backend, clk),
		Inbox:   notifier.NewInbox(constants.InboxCapacity),
		Backups: backup.NewManager(cfg.ConfigDir),
		clock:   clk,
	}

	saved, err := s.Store.Pref(ctx, constants.PrefLanguage)
	if err != nil {
		logger.Warn("Failed to read language preference", "error", err)
	}
	s.catalog = i18n.New(i18n.Detect(saved, cfg.Language,
		getenvFunc("LC_ALL"), getenvFunc("LC_MESSAGES"), getenvFunc("LANG")))

	deliverer := opts.Deliverer
	if deliverer == nil {
		deliverer = notifier.NewTray()
	}
	fallback := opts.Fallback
	if fallback == nil {
		fallback = s.Inbox
	}

	s.Permission = permission.NewManager(ctx, s.Store)
	s.Registry = registry.New(s.Store, clk)
	s.Scheduler = scheduler.New(scheduler.Config{
		Store:      s.Store,
		Permission: s.Permission,
		Deliverer:  deliverer,
		Fallback:   fallback,
		Formatter:  s,
		Clock:      clk,
	})
	s.Registry.SetObserver(s.Scheduler)
	s.Permission.OnChange(s.permissionChanged)

	return s, nil
}

// permissionChanged mirrors the decision into settings and re-arms or
// disarms reminders.
func (s *Session) permissionChanged(ctx context.Context, state permission.State) {
	granted := state == permission.Granted
	if _, err := s.Registry.UpdateSettings(ctx, models.SettingsPatch{NotificationEnabled: &granted}); err != nil {
		logger.Warn("Failed to record notification setting", "error", err)
	}
	s.Scheduler.PermissionChanged(ctx, granted)
}

// Start launches the reconcile loop. It is a no-op when already running.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	go func() {
		defer close(done)
		if err := s.Scheduler.Run(runCtx); err != nil {
			logger.Error("Reminder loop stopped", "error", err)
		}
	}()
}

// Focus picks up changes written by other processes and reconciles.
func (s *Session) Focus(ctx context.Context) scheduler.ReconcileResult {
	s.Store.Refresh()
	return s.Scheduler.Focus(ctx)
}

// Catalog returns the active language catalog.
func (s *Session) Catalog() *i18n.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

// NotificationBody renders reminder text in the active language.
func (s *Session) NotificationBody(day models.Day, hhmm string) string {
	return s.Catalog().NotificationBody(day, hhmm)
}

// SetLanguage switches and persists the active language.
func (s *Session) SetLanguage(ctx context.Context, lang i18n.Lang) error {
	if !lang.Valid() {
		return fmt.Errorf("unsupported language %q", lang)
	}
	s.mu.Lock()
	s.catalog = i18n.New(lang)
	s.mu.Unlock()
	return s.Store.SetPref(ctx, constants.PrefLanguage, string(lang))
}

// ToggleTheme flips between the light and dark themes.
func (s *Session) ToggleTheme(ctx context.Context) (constants.Theme, error) {
	next := constants.ThemeDark
	if s.Registry.Settings(ctx).Theme == constants.ThemeDark {
		next = constants.ThemeLight
	}
	settings, err := s.Registry.UpdateSettings(ctx, models.SettingsPatch{Theme: &next})
	if err != nil {
		return "", err
	}
	return settings.Theme, nil
}

// RestoreDay returns the last viewed day, or today.
func (s *Session) RestoreDay(ctx context.Context) models.Day {
	raw, err := s.Store.Pref(ctx, constants.PrefLastDay)
	if err != nil {
		logger.Debug("Failed to read last viewed day", "error", err)
	}
	if d := models.Day(raw); d.Valid() {
		return d
	}
	return models.DayOf(s.clock.Now())
}

// RememberDay persists the viewed day. Failures are logged only.
func (s *Session) RememberDay(ctx context.Context, day models.Day) {
	if !day.Valid() {
		return
	}
	if err := s.Store.SetPref(ctx, constants.PrefLastDay, string(day)); err != nil {
		logger.Warn("Failed to remember viewed day", "error", err)
	}
}

// AutoBackup snapshots the dataset and logs rather than returns failures.
func (s *Session) AutoBackup(ctx context.Context) {
	if _, err := s.Backups.CreateBackup(ctx, s.Store); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Close stops the reconcile loop, flushes pending writes and closes storage.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	s.Scheduler.CancelAll()
	return s.Store.Close(ctx)
}
