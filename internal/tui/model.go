package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/weekly/internal/app"
	"github.com/julianstephens/weekly/internal/i18n"
	"github.com/julianstephens/weekly/internal/models"
	"github.com/julianstephens/weekly/internal/tui/actions"
	"github.com/julianstephens/weekly/internal/tui/components/entrylist"
)

// editTarget identifies the entry a form or confirmation applies to.
type editTarget struct {
	Day   models.Day
	ID    string
	Title string
}

type Model struct {
	ctx       context.Context
	session   *app.Session
	catalog   *i18n.Catalog
	mode      actions.Mode
	day       models.Day
	keys      KeyMap
	help      help.Model
	list      entrylist.Model
	styles    Styles
	form      *huh.Form
	formKind  formKind
	entryForm *EntryFormModel
	permForm  *PermissionFormModel
	target    *editTarget
	toast     string
	toastErr  bool
	toastSeq  int
	banner    string
	bannerSeq int
	quitting  bool
	width     int
	height    int
}

func NewModel(ctx context.Context, session *app.Session) Model {
	cat := session.Catalog()
	m := Model{
		ctx:     ctx,
		session: session,
		catalog: cat,
		mode:    actions.ModeBrowse,
		day:     session.RestoreDay(ctx),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		list:    entrylist.New(0, 0),
		styles:  NewStyles(session.Registry.Settings(ctx).Theme),
	}
	m.list.SetFormatter(cat.FormatClock)
	m.list.Reset(session.Registry.Entries(ctx, m.day))
	return m
}

func (m Model) Init() tea.Cmd {
	return waitForNotification(m.session)
}

// Run starts the interactive program and blocks until it exits.
func Run(ctx context.Context, session *app.Session) error {
	p := tea.NewProgram(NewModel(ctx, session),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

func (m Model) actionState() actions.State {
	st := actions.State{Mode: m.mode, Day: m.day}
	if e, ok := m.list.Selected(); ok {
		st.Selected = e.ID
	}
	return st
}

// reload pulls the day's entries and updates the list in place.
func (m *Model) reload() tea.Cmd {
	return m.list.SetEntries(m.session.Registry.Entries(m.ctx, m.day))
}

func (m *Model) selectDay(day models.Day) {
	if day == m.day {
		return
	}
	m.day = day
	m.list.Reset(m.session.Registry.Entries(m.ctx, day))
	m.session.RememberDay(m.ctx, day)
}

func (m *Model) resize() {
	// header, tabs, day title, toast and help
	reserved := 8
	if m.banner != "" {
		reserved += 3
	}
	h := m.height - reserved
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
	m.help.Width = m.width
}
