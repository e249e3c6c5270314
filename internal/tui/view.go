package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/weekly/internal/models"
	"github.com/julianstephens/weekly/internal/tui/actions"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.mode {
	case actions.ModeForm:
		content = m.form.View()
	case actions.ModeConfirm:
		content = m.viewConfirmDelete()
	default:
		content = m.viewDay()
	}

	parts := []string{m.viewHeader(), m.viewTabs()}
	if m.banner != "" {
		parts = append(parts, m.styles.Banner.Render(m.banner))
	}
	parts = append(parts, content, m.viewToast(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewHeader() string {
	msg := m.catalog.Messages()
	bell := "🔕"
	if m.session.Permission.Granted() {
		bell = "🔔"
	}
	return m.styles.Title.Render(msg.AppTitle + "  " + bell)
}

func (m Model) viewTabs() string {
	tabs := make([]string, 0, len(models.Days))
	for _, d := range models.Days {
		label := m.catalog.DayShort(d)
		if d == m.day {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewDay() string {
	title := m.styles.Title.Render(m.catalog.DayTitle(m.day))
	if m.list.Len() == 0 {
		empty := m.catalog.Messages().EmptyState
		return m.styles.Doc.Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			m.styles.Muted.Render(empty.Line1),
			m.styles.Muted.Render(empty.Line2),
		))
	}
	return m.styles.Doc.Render(lipgloss.JoinVertical(lipgloss.Left, title, m.list.View()))
}

func (m Model) viewToast() string {
	if m.toast == "" {
		return ""
	}
	if m.toastErr {
		return m.styles.Warning.Render(m.toast)
	}
	return m.styles.Toast.Render(m.toast)
}

func (m Model) viewConfirmDelete() string {
	msg := m.catalog.Messages()
	name := ""
	if m.target != nil {
		name = m.target.Title
	}
	return lipgloss.Place(m.width, m.height-8,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Danger.Render(msg.Toast.DeleteConfirm),
			name,
			"",
			"[y] "+msg.Buttons.Delete,
			"[n] "+msg.Modal.Cancel,
		),
	)
}
