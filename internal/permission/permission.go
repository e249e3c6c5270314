// Package permission tracks whether the user allowed reminders. The state
// is persisted as a preference so a decision survives restarts.
package permission

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/weekly/internal/constants"
	apperrors "github.com/julianstephens/weekly/internal/errors"
	"github.com/julianstephens/weekly/internal/logger"
)

type State string

const (
	Default State = "default"
	Granted State = "granted"
	Denied  State = "denied"
)

// ParseState accepts the three persisted state names.
func ParseState(s string) (State, error) {
	switch State(s) {
	case Default, Granted, Denied:
		return State(s), nil
	}
	return "", apperrors.Invalid("permission", fmt.Sprintf("unknown permission state %q", s))
}

// PrefStore persists small string preferences.
type PrefStore interface {
	Pref(ctx context.Context, key string) (string, error)
	SetPref(ctx context.Context, key, value string) error
}

// Prompter asks the user whether reminders are allowed.
type Prompter interface {
	Prompt(ctx context.Context) (bool, error)
}

// Listener is called after every state change with the new state.
type Listener func(ctx context.Context, s State)

type Manager struct {
	mu        sync.Mutex
	store     PrefStore
	state     State
	listeners []Listener
}

// NewManager restores the persisted state. Read failures are logged and
// leave the state at Default.
func NewManager(ctx context.Context, store PrefStore) *Manager {
	m := &Manager{store: store, state: Default}
	raw, err := store.Pref(ctx, constants.PrefPermission)
	if err != nil {
		logger.Warn("Failed to read notification permission", "error", err)
		return m
	}
	if s, err := ParseState(raw); err == nil {
		m.state = s
	}
	return m
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) Granted() bool {
	return m.State() == Granted
}

// OnChange registers l for state transitions.
func (m *Manager) OnChange(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Set persists s and notifies listeners when it differs from the current
// state. A failed write is logged and the new state still applies for this
// session.
func (m *Manager) Set(ctx context.Context, s State) error {
	if _, err := ParseState(string(s)); err != nil {
		return err
	}

	m.mu.Lock()
	if m.state == s {
		m.mu.Unlock()
		return nil
	}
	m.state = s
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	if err := m.store.SetPref(ctx, constants.PrefPermission, string(s)); err != nil {
		logger.Warn("Failed to persist notification permission", "state", s, "error", err)
	}
	logger.Info("Notification permission changed", "state", s)

	for _, l := range listeners {
		l(ctx, s)
	}
	return nil
}

// Reload re-reads the persisted state, which another process may have
// changed, and notifies listeners when it differs. It reports whether the
// state changed. Read failures keep the current state.
func (m *Manager) Reload(ctx context.Context) bool {
	raw, err := m.store.Pref(ctx, constants.PrefPermission)
	if err != nil {
		logger.Warn("Failed to reload notification permission", "error", err)
		return false
	}
	s := Default
	if parsed, err := ParseState(raw); err == nil {
		s = parsed
	}

	m.mu.Lock()
	if m.state == s {
		m.mu.Unlock()
		return false
	}
	m.state = s
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	logger.Info("Notification permission changed elsewhere", "state", s)
	for _, l := range listeners {
		l(ctx, s)
	}
	return true
}

// Request prompts only while the state is Default and returns the
// resulting state.
func (m *Manager) Request(ctx context.Context, p Prompter) (State, error) {
	if s := m.State(); s != Default {
		return s, nil
	}
	allowed, err := p.Prompt(ctx)
	if err != nil {
		return Default, err
	}
	next := Denied
	if allowed {
		next = Granted
	}
	return next, m.Set(ctx, next)
}

// Reset returns to Default so the next Request prompts again.
func (m *Manager) Reset(ctx context.Context) error {
	return m.Set(ctx, Default)
}

// Require returns a PermissionError unless reminders are granted.
func (m *Manager) Require() error {
	if s := m.State(); s != Granted {
		return &apperrors.PermissionError{State: string(s)}
	}
	return nil
}

// FormPrompter asks with a huh confirm.
type FormPrompter struct {
	Title   string
	Message string
	Allow   string
	Later   string
}

func (f FormPrompter) Prompt(ctx context.Context) (bool, error) {
	allowed := true
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(f.Title).
				Description(f.Message).
				Affirmative(f.Allow).
				Negative(f.Later).
				Value(&allowed),
		),
	).WithTheme(huh.ThemeDracula()).RunWithContext(ctx)
	if err != nil {
		return false, err
	}
	return allowed, nil
}

// Static answers without asking. Used by non-interactive commands.
type Static bool

func (s Static) Prompt(ctx context.Context) (bool, error) {
	return bool(s), nil
}
