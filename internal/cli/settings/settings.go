package settings

import (
	"fmt"

	"github.com/julianstephens/weekly/internal/cli"
	"github.com/julianstephens/weekly/internal/constants"
	"github.com/julianstephens/weekly/internal/i18n"
	"github.com/julianstephens/weekly/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Theme       *string `help:"Color theme (light, dark or auto)."`
	LeadMinutes *int    `help:"Minutes before an activity to send its reminder." name:"lead-minutes"`
	Language    *string `help:"Interface language (ko, en, ja, zh or es)."`
}

func (c *SettingsCmd) patch() (models.SettingsPatch, error) {
	var patch models.SettingsPatch
	if c.Theme != nil {
		theme := constants.Theme(*c.Theme)
		patch.Theme = &theme
	}
	if c.LeadMinutes != nil {
		if *c.LeadMinutes <= constants.ShortLeadMinutes {
			return patch, fmt.Errorf("lead minutes must be greater than %d", constants.ShortLeadMinutes)
		}
		patch.DefaultLeadMinutes = c.LeadMinutes
	}
	return patch, nil
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	bg := ctx.Background()

	if c.List {
		settings := s.Registry.Settings(bg)
		fmt.Println("Current Settings:")
		fmt.Printf("  Theme:                 %s\n", settings.Theme)
		fmt.Printf("  Reminder Lead:         %d min\n", settings.DefaultLeadMinutes)
		fmt.Printf("  Language:              %s\n", s.Catalog().Lang().Name())
		fmt.Println("\nNotification Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationEnabled)
		fmt.Printf("  Permission:            %s\n", s.Permission.State())
		return nil
	}

	patch, err := c.patch()
	if err != nil {
		return err
	}

	updated := false
	if patch.Theme != nil || patch.DefaultLeadMinutes != nil {
		if _, err := s.Registry.UpdateSettings(bg, patch); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		updated = true
	}
	if c.Language != nil {
		lang, err := i18n.ParseLang(*c.Language)
		if err != nil {
			return err
		}
		if err := s.SetLanguage(bg, lang); err != nil {
			return fmt.Errorf("failed to save language: %w", err)
		}
		updated = true
	}

	if updated {
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}
	return nil
}
