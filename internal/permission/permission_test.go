package permission

import (
	"context"
	"errors"
	"testing"

	"github.com/julianstephens/weekly/internal/constants"
	apperrors "github.com/julianstephens/weekly/internal/errors"
)

type memPrefs struct {
	values  map[string]string
	readErr error
	sets    int
}

func (m *memPrefs) Pref(ctx context.Context, key string) (string, error) {
	if m.readErr != nil {
		return "", m.readErr
	}
	return m.values[key], nil
}

func (m *memPrefs) SetPref(ctx context.Context, key, value string) error {
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.sets++
	m.values[key] = value
	return nil
}

type countingPrompter struct {
	answer bool
	calls  int
}

func (c *countingPrompter) Prompt(ctx context.Context) (bool, error) {
	c.calls++
	return c.answer, nil
}

func TestNewManagerRestoresState(t *testing.T) {
	ctx := context.Background()

	m := NewManager(ctx, &memPrefs{values: map[string]string{constants.PrefPermission: "granted"}})
	if !m.Granted() {
		t.Errorf("State() = %s, want granted", m.State())
	}

	m = NewManager(ctx, &memPrefs{values: map[string]string{constants.PrefPermission: "bogus"}})
	if m.State() != Default {
		t.Errorf("unknown stored value should give default, got %s", m.State())
	}

	m = NewManager(ctx, &memPrefs{readErr: errors.New("io")})
	if m.State() != Default {
		t.Errorf("read failure should give default, got %s", m.State())
	}
}

func TestSetNotifiesOnTransition(t *testing.T) {
	ctx := context.Background()
	prefs := &memPrefs{}
	m := NewManager(ctx, prefs)

	var seen []State
	m.OnChange(func(ctx context.Context, s State) { seen = append(seen, s) })

	if err := m.Set(ctx, Granted); err != nil {
		t.Fatal(err)
	}
	if err := m.Set(ctx, Granted); err != nil {
		t.Fatal(err)
	}
	if err := m.Set(ctx, Denied); err != nil {
		t.Fatal(err)
	}

	if len(seen) != 2 || seen[0] != Granted || seen[1] != Denied {
		t.Errorf("listener saw %v", seen)
	}
	if prefs.values[constants.PrefPermission] != "denied" || prefs.sets != 2 {
		t.Errorf("persisted %q after %d writes", prefs.values[constants.PrefPermission], prefs.sets)
	}

	if err := m.Set(ctx, "maybe"); !apperrors.IsValidation(err) {
		t.Errorf("Set(maybe) error = %v", err)
	}
}

func TestRequestOnlyPromptsFromDefault(t *testing.T) {
	ctx := context.Background()
	m := NewManager(ctx, &memPrefs{})
	p := &countingPrompter{answer: true}

	s, err := m.Request(ctx, p)
	if err != nil || s != Granted {
		t.Fatalf("Request() = %s, %v", s, err)
	}
	s, _ = m.Request(ctx, p)
	if s != Granted || p.calls != 1 {
		t.Errorf("second Request() prompted again (%d calls)", p.calls)
	}

	if err := m.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	s, _ = m.Request(ctx, Static(false))
	if s != Denied {
		t.Errorf("Request() after reset = %s, want denied", s)
	}
}

func TestRequire(t *testing.T) {
	ctx := context.Background()
	m := NewManager(ctx, &memPrefs{})

	err := m.Require()
	if !errors.Is(err, apperrors.ErrPermission) {
		t.Errorf("Require() error = %v", err)
	}
	m.Set(ctx, Granted)
	if err := m.Require(); err != nil {
		t.Errorf("Require() after grant = %v", err)
	}
}

func TestReloadPicksUpExternalChange(t *testing.T) {
	ctx := context.Background()
	prefs := &memPrefs{values: map[string]string{}}
	m := NewManager(ctx, prefs)

	var seen []State
	m.OnChange(func(ctx context.Context, s State) { seen = append(seen, s) })

	if m.Reload(ctx) {
		t.Error("Reload() = true with nothing stored")
	}

	prefs.values[constants.PrefPermission] = "granted"
	if !m.Reload(ctx) || !m.Granted() {
		t.Fatalf("Reload() did not apply grant, state %s", m.State())
	}
	if m.Reload(ctx) {
		t.Error("second Reload() reported a change")
	}

	prefs.values[constants.PrefPermission] = "denied"
	m.Reload(ctx)

	prefs.readErr = errors.New("io")
	if m.Reload(ctx) || m.State() != Denied {
		t.Errorf("read failure changed state to %s", m.State())
	}

	if len(seen) != 2 || seen[0] != Granted || seen[1] != Denied {
		t.Errorf("listeners saw %v, want [granted denied]", seen)
	}
	if prefs.sets != 0 {
		t.Errorf("Reload wrote the preference %d times", prefs.sets)
	}
}
