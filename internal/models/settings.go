package models

import (
	"github.com/goccy/go-json"

	"github.com/julianstephens/weekly/internal/constants"
)

// Settings represents application-wide settings
type Settings struct {
	NotificationEnabled bool            `json:"notificationEnabled"` // master switch for reminders
	Theme               constants.Theme `json:"theme"`
	DefaultLeadMinutes  int             `json:"defaultLeadMinutes"` // minutes before an activity to notify
}

// SettingsPatch holds optional replacements for Settings
type SettingsPatch struct {
	NotificationEnabled *bool
	Theme               *constants.Theme
	DefaultLeadMinutes  *int
}

// DefaultSettings returns the settings of a fresh dataset.
func DefaultSettings() Settings {
	return Settings{
		NotificationEnabled: constants.DefaultNotificationsEnabled,
		Theme:               constants.DefaultTheme,
		DefaultLeadMinutes:  constants.DefaultLeadMinutes,
	}
}

// UnmarshalJSON accepts the legacy "defaultNotificationTime" key written by
// older exports.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw struct {
		NotificationEnabled bool            `json:"notificationEnabled"`
		Theme               constants.Theme `json:"theme"`
		DefaultLeadMinutes  *int            `json:"defaultLeadMinutes"`
		LegacyLeadMinutes   *int            `json:"defaultNotificationTime"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.NotificationEnabled = raw.NotificationEnabled
	s.Theme = raw.Theme
	if s.Theme == "" {
		s.Theme = constants.DefaultTheme
	}
	switch {
	case raw.DefaultLeadMinutes != nil:
		s.DefaultLeadMinutes = *raw.DefaultLeadMinutes
	case raw.LegacyLeadMinutes != nil:
		s.DefaultLeadMinutes = *raw.LegacyLeadMinutes
	default:
		s.DefaultLeadMinutes = constants.DefaultLeadMinutes
	}
	return nil
}

// Apply merges the patch into s.
func (p SettingsPatch) Apply(s *Settings) {
	if p.NotificationEnabled != nil {
		s.NotificationEnabled = *p.NotificationEnabled
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.DefaultLeadMinutes != nil {
		s.DefaultLeadMinutes = *p.DefaultLeadMinutes
	}
}

// ValidTheme reports whether t is a known theme.
func ValidTheme(t constants.Theme) bool {
	switch t {
	case constants.ThemeLight, constants.ThemeDark, constants.ThemeAuto:
		return true
	}
	return false
}
