package constants

// Theme is the color scheme of the interface
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"

	// Default Settings Values
	DefaultNotificationsEnabled = false
	DefaultTheme                = ThemeLight
	DefaultLeadMinutes          = 5

	// Lead time policy
	ShortLeadMinutes = 1
	ImmediateSeconds = 3
)
