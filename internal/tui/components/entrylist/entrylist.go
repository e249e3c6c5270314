package entrylist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/weekly/internal/models"
	"github.com/julianstephens/weekly/internal/tui/actions"
)

type Item struct {
	Entry  models.ScheduleEntry
	format func(string) string
}

func (i Item) Title() string {
	check := "☐"
	if i.Entry.Completed {
		check = "☑"
	}
	title := fmt.Sprintf("%s %s  %s", check, i.format(i.Entry.Time), i.Entry.Title)
	if i.Entry.NotificationEnabled {
		title += " 🔔"
	}
	return title
}

func (i Item) Description() string { return i.Entry.Description }

func (i Item) FilterValue() string { return i.Entry.Title }

// Model is the entry list of one day. Updates are applied as id-keyed
// edits so the cursor stays on the same entry.
type Model struct {
	list    list.Model
	entries []models.ScheduleEntry
	format  func(string) string
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return Model{
		list:   l,
		format: func(s string) string { return s },
	}
}

// SetFormatter sets how times are rendered and redraws every row.
func (m *Model) SetFormatter(format func(string) string) {
	m.format = format
	m.list.SetItems(m.items(m.entries))
}

// Reset replaces the list and moves the cursor to the top.
func (m *Model) Reset(entries []models.ScheduleEntry) {
	m.entries = append([]models.ScheduleEntry(nil), entries...)
	m.list.SetItems(m.items(m.entries))
	m.list.Select(0)
}

// SetEntries applies the difference between the shown entries and entries.
func (m *Model) SetEntries(entries []models.ScheduleEntry) tea.Cmd {
	selected, hadSelection := m.Selected()
	ops := actions.DiffEntries(m.entries, entries)
	if !actions.Changed(ops) {
		return nil
	}

	var cmds []tea.Cmd
	for _, op := range ops {
		item := Item{Entry: op.Entry, format: m.format}
		switch op.Kind {
		case actions.Update:
			cmds = append(cmds, m.list.SetItem(op.Index, item))
		case actions.Insert:
			cmds = append(cmds, m.list.InsertItem(op.Index, item))
		case actions.Remove:
			m.list.RemoveItem(op.Index)
		}
	}
	m.entries = append([]models.ScheduleEntry(nil), entries...)

	if hadSelection {
		for i, e := range m.entries {
			if e.ID == selected.ID {
				m.list.Select(i)
				return tea.Batch(cmds...)
			}
		}
	}
	if idx := m.list.Index(); idx >= len(m.entries) && len(m.entries) > 0 {
		m.list.Select(len(m.entries) - 1)
	}
	return tea.Batch(cmds...)
}

func (m Model) items(entries []models.ScheduleEntry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e, format: m.format}
	}
	return items
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (models.ScheduleEntry, bool) {
	if item, ok := m.list.SelectedItem().(Item); ok {
		return item.Entry, true
	}
	return models.ScheduleEntry{}, false
}

func (m *Model) CursorUp() {
	m.list.CursorUp()
}

func (m *Model) CursorDown() {
	m.list.CursorDown()
}

func (m Model) Len() int {
	return len(m.entries)
}

func (m Model) View() string {
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
