package entries

import (
	"fmt"

	"github.com/julianstephens/weekly/internal/cli"
	"github.com/julianstephens/weekly/internal/models"
)

type AddCmd struct {
	Days        string `arg:"" help:"Days to add to, comma separated (mon,wed) or 'all'."`
	Time        string `arg:"" help:"Start time (HH:MM)."`
	Title       string `arg:"" help:"Activity name."`
	Description string `help:"Optional description." short:"d"`
	Notify      bool   `help:"Send a reminder before the activity starts." default:"true" negatable:""`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	days, err := models.ParseDays(c.Days)
	if err != nil {
		return err
	}

	s, err := ctx.Session()
	if err != nil {
		return err
	}

	added, err := s.Registry.AddEntries(ctx.Background(), days, models.EntryFields{
		Time:                c.Time,
		Title:               c.Title,
		Description:         c.Description,
		NotificationEnabled: c.Notify,
	})
	if err != nil {
		return fmt.Errorf("failed to add schedule: %w", err)
	}

	fmt.Printf("✓ %s\n", s.Catalog().Added(days))
	for _, e := range added {
		fmt.Printf("  %-9s %s\n", e.Day.Short(), cli.FormatEntry(e))
	}
	return nil
}
