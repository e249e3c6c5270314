package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/weekly/internal/constants"
)

type palette struct {
	accent, text, muted, surface, danger, warning, success lipgloss.Color
}

var (
	lightPalette = palette{
		accent:  lipgloss.Color("63"),
		text:    lipgloss.Color("235"),
		muted:   lipgloss.Color("245"),
		surface: lipgloss.Color("254"),
		danger:  lipgloss.Color("160"),
		warning: lipgloss.Color("166"),
		success: lipgloss.Color("28"),
	}
	darkPalette = palette{
		accent:  lipgloss.Color("205"),
		text:    lipgloss.Color("252"),
		muted:   lipgloss.Color("240"),
		surface: lipgloss.Color("236"),
		danger:  lipgloss.Color("196"),
		warning: lipgloss.Color("214"),
		success: lipgloss.Color("42"),
	}
)

type Styles struct {
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	Title       lipgloss.Style
	Muted       lipgloss.Style
	Danger      lipgloss.Style
	Warning     lipgloss.Style
	Toast       lipgloss.Style
	Banner      lipgloss.Style
	Doc         lipgloss.Style
}

// NewStyles builds the styles for theme. ThemeAuto follows the terminal
// background.
func NewStyles(theme constants.Theme) Styles {
	p := lightPalette
	if theme == constants.ThemeDark || (theme == constants.ThemeAuto && lipgloss.HasDarkBackground()) {
		p = darkPalette
	}

	return Styles{
		ActiveTab: lipgloss.NewStyle().
			Foreground(p.accent).
			Background(p.surface).
			Padding(0, 1).
			Bold(true),
		InactiveTab: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(p.text).
			Bold(true).
			Padding(0, 1),
		Muted: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),
		Danger: lipgloss.NewStyle().
			Foreground(p.danger).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning).
			Italic(true),
		Toast: lipgloss.NewStyle().
			Foreground(p.success).
			Padding(0, 1),
		Banner: lipgloss.NewStyle().
			Foreground(p.text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(0, 1),
		Doc: lipgloss.NewStyle().Padding(1, 2),
	}
}
