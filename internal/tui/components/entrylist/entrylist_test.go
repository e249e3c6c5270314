package entrylist

import (
	"testing"

	"github.com/julianstephens/weekly/internal/models"
)

func entry(id, hhmm string) models.ScheduleEntry {
	return models.ScheduleEntry{ID: id, Time: hhmm, Title: "Task " + id}
}

func TestSetEntriesKeepsCursorOnEntry(t *testing.T) {
	m := New(40, 20)
	m.Reset([]models.ScheduleEntry{entry("a", "08:00"), entry("b", "09:00"), entry("c", "10:00")})
	m.CursorDown()
	m.CursorDown()

	if sel, _ := m.Selected(); sel.ID != "c" {
		t.Fatalf("selected %s, want c", sel.ID)
	}

	// a new earlier entry shifts c down one row
	m.SetEntries([]models.ScheduleEntry{entry("z", "07:00"), entry("a", "08:00"), entry("b", "09:00"), entry("c", "10:00")})
	if sel, _ := m.Selected(); sel.ID != "c" {
		t.Errorf("after insert selected %s, want c", sel.ID)
	}

	// c is retimed and moves to the front
	m.SetEntries([]models.ScheduleEntry{entry("c", "06:00"), entry("z", "07:00"), entry("a", "08:00"), entry("b", "09:00")})
	sel, _ := m.Selected()
	if sel.ID != "c" || sel.Time != "06:00" {
		t.Errorf("after move selected %+v", sel)
	}
	if m.Len() != 4 {
		t.Errorf("Len() = %d, want 4", m.Len())
	}
}

func TestSetEntriesClampsWhenSelectionRemoved(t *testing.T) {
	m := New(40, 20)
	m.Reset([]models.ScheduleEntry{entry("a", "08:00"), entry("b", "09:00")})
	m.CursorDown()

	m.SetEntries([]models.ScheduleEntry{entry("a", "08:00")})
	if sel, ok := m.Selected(); !ok || sel.ID != "a" {
		t.Errorf("selected %+v, %v, want a", sel, ok)
	}

	m.SetEntries(nil)
	if _, ok := m.Selected(); ok {
		t.Error("empty list has a selection")
	}
}

func TestItemTitle(t *testing.T) {
	e := entry("a", "14:30")
	e.Completed = true
	e.NotificationEnabled = true
	item := Item{Entry: e, format: func(s string) string { return "<" + s + ">" }}
	if got := item.Title(); got != "☑ <14:30>  Task a 🔔" {
		t.Errorf("Title() = %q", got)
	}
}
