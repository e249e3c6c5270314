package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/weekly/internal/app"
	apperrors "github.com/julianstephens/weekly/internal/errors"
	"github.com/julianstephens/weekly/internal/logger"
	"github.com/julianstephens/weekly/internal/models"
	"github.com/julianstephens/weekly/internal/permission"
	"github.com/julianstephens/weekly/internal/tui/actions"
)

const (
	toastDuration  = 3 * time.Second
	bannerDuration = 10 * time.Second
)

type notificationMsg struct {
	n models.Notification
}

type toastExpiredMsg struct{ seq int }

type bannerExpiredMsg struct{ seq int }

func waitForNotification(s *app.Session) tea.Cmd {
	return func() tea.Msg {
		return notificationMsg{n: <-s.Inbox.C()}
	}
}

func (m *Model) showToast(text string, isErr bool) tea.Cmd {
	m.toast = text
	m.toastErr = isErr
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.FocusMsg:
		m.session.Focus(m.ctx)
		return m, m.reload()

	case notificationMsg:
		m.banner = msg.n.Title + "  " + msg.n.Body
		m.bannerSeq++
		seq := m.bannerSeq
		m.resize()
		return m, tea.Batch(
			waitForNotification(m.session),
			tea.Tick(bannerDuration, func(time.Time) tea.Msg { return bannerExpiredMsg{seq: seq} }),
		)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case bannerExpiredMsg:
		if msg.seq == m.bannerSeq {
			m.banner = ""
			m.resize()
		}
		return m, nil
	}

	if m.mode == actions.ModeForm {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	return m.dispatch(actions.Resolve(keyMsg.String(), m.actionState()))
}

func (m Model) dispatch(cmd actions.Command) (tea.Model, tea.Cmd) {
	msg := m.catalog.Messages()

	switch cmd.Action {
	case actions.Quit:
		m.quitting = true
		return m, tea.Quit

	case actions.SelectDay, actions.NextDay, actions.PrevDay:
		m.selectDay(cmd.Day)

	case actions.CursorUp:
		m.list.CursorUp()
	case actions.CursorDown:
		m.list.CursorDown()

	case actions.Add:
		m.entryForm = &EntryFormModel{Days: []models.Day{cmd.Day}, Day: cmd.Day}
		return m.openForm(formAdd, newAddForm(m.catalog, m.entryForm, m.session.Registry.Titles(m.ctx)))

	case actions.Edit:
		e, err := m.session.Registry.Entry(m.ctx, cmd.Day, cmd.EntryID)
		if err != nil {
			return m, m.showToast(msg.Toast.SaveError, true)
		}
		m.target = &editTarget{Day: cmd.Day, ID: e.ID, Title: e.Title}
		m.entryForm = &EntryFormModel{
			Time:        e.Time,
			Title:       e.Title,
			Description: e.Description,
			Day:         cmd.Day,
			Notify:      e.NotificationEnabled,
		}
		return m.openForm(formEdit, newEditForm(m.catalog, m.entryForm, m.session.Registry.Titles(m.ctx)))

	case actions.Delete:
		if e, ok := m.list.Selected(); ok {
			m.target = &editTarget{Day: cmd.Day, ID: e.ID, Title: e.Title}
			m.mode = actions.ModeConfirm
		}

	case actions.Confirm:
		if m.target != nil {
			if m.session.Registry.DeleteEntry(m.ctx, m.target.Day, m.target.ID) {
				m.target = nil
				m.mode = actions.ModeBrowse
				return m, tea.Batch(m.reload(), m.showToast(msg.Toast.ScheduleDeleted, false))
			}
		}
		m.target = nil
		m.mode = actions.ModeBrowse

	case actions.Toggle:
		if _, err := m.session.Registry.ToggleCompletion(m.ctx, cmd.Day, cmd.EntryID); err != nil {
			logger.Warn("Failed to toggle completion", "entry", cmd.EntryID, "error", err)
			return m, m.showToast(msg.Toast.SaveError, true)
		}
		return m, m.reload()

	case actions.ToggleTheme:
		theme, err := m.session.ToggleTheme(m.ctx)
		if err != nil {
			return m, m.showToast(msg.Toast.SaveError, true)
		}
		m.styles = NewStyles(theme)

	case actions.RequestPermission:
		switch m.session.Permission.State() {
		case permission.Granted:
			return m, m.showToast(msg.Permission.AlreadyGranted, false)
		case permission.Denied:
			return m, m.showToast(msg.Permission.Denied, true)
		}
		m.permForm = &PermissionFormModel{Allow: true}
		return m.openForm(formPermission, newPermissionForm(m.catalog, m.permForm))

	case actions.CycleLanguage:
		next := m.catalog.Lang().Next()
		if err := m.session.SetLanguage(m.ctx, next); err != nil {
			logger.Warn("Failed to save language", "error", err)
		}
		m.catalog = m.session.Catalog()
		m.list.SetFormatter(m.catalog.FormatClock)

	case actions.Help:
		m.help.ShowAll = true
		m.mode = actions.ModeHelp

	case actions.Close:
		m.help.ShowAll = false
		m.target = nil
		m.mode = actions.ModeBrowse
	}

	return m, nil
}

func (m Model) openForm(kind formKind, form *huh.Form) (tea.Model, tea.Cmd) {
	m.form = form
	m.formKind = kind
	m.mode = actions.ModeForm
	return m, m.form.Init()
}

func (m Model) closeForm() Model {
	m.form = nil
	m.formKind = formNone
	m.entryForm = nil
	m.permForm = nil
	m.target = nil
	m.mode = actions.ModeBrowse
	return m
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch actions.Resolve(keyMsg.String(), m.actionState()).Action {
		case actions.Close:
			return m.closeForm(), nil
		case actions.Quit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		done := m.submitForm()
		m = m.closeForm()
		return m, tea.Batch(cmd, done, m.reload())
	case huh.StateAborted:
		return m.closeForm(), cmd
	}
	return m, cmd
}

func (m *Model) submitForm() tea.Cmd {
	msg := m.catalog.Messages()

	switch m.formKind {
	case formAdd:
		days := m.entryForm.Days
		if _, err := m.session.Registry.AddEntries(m.ctx, days, m.entryForm.fields()); err != nil {
			return m.saveFailed(err)
		}
		return m.showToast(m.catalog.Added(days), false)

	case formEdit:
		if m.target == nil {
			return nil
		}
		patch := m.entryForm.patch(m.target.Day)
		if m.entryForm.ApplyToAll {
			n, err := m.session.Registry.UpdateByTitle(m.ctx, m.target.Title, patch)
			if err != nil {
				return m.saveFailed(err)
			}
			logger.Debug("Updated entries by title", "title", m.target.Title, "count", n)
			return m.showToast(m.catalog.Updated(m.titledDays(patch)), false)
		}
		e, err := m.session.Registry.UpdateEntry(m.ctx, m.target.Day, m.target.ID, patch)
		if err != nil {
			return m.saveFailed(err)
		}
		if e.Day != m.day {
			m.selectDay(e.Day)
		}
		return m.showToast(m.catalog.Updated([]models.Day{e.Day}), false)

	case formPermission:
		state := permission.Default
		if m.permForm.Allow {
			state = permission.Granted
		}
		if state == permission.Default {
			return nil
		}
		if err := m.session.Permission.Set(m.ctx, state); err != nil {
			return m.saveFailed(err)
		}
		return m.showToast(msg.Permission.Granted, false)
	}
	return nil
}

// titledDays lists the days that now hold an entry with the patched title.
func (m *Model) titledDays(patch models.EntryPatch) []models.Day {
	var days []models.Day
	ds := m.session.Registry.Dataset(m.ctx)
	for _, d := range models.Days {
		for _, e := range ds.Schedules[d] {
			if patch.Title != nil && e.Title == *patch.Title {
				days = append(days, d)
				break
			}
		}
	}
	return days
}

func (m *Model) saveFailed(err error) tea.Cmd {
	logger.Warn("Failed to save schedule", "error", err)
	msg := m.catalog.Messages()
	if apperrors.IsValidation(err) {
		return m.showToast(msg.Toast.FillRequired, true)
	}
	return m.showToast(msg.Toast.SaveError, true)
}
