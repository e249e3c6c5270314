package entries

import (
	"errors"
	"fmt"

	"github.com/julianstephens/weekly/internal/cli"
	"github.com/julianstephens/weekly/internal/models"
)

type EditCmd struct {
	Day string `arg:"" help:"Day the entry is on."`
	ID  string `arg:"" help:"Entry ID."`

	Time         *string `help:"New start time (HH:MM)."`
	Title        *string `help:"New activity name."`
	Description  *string `help:"New description."`
	Notify       *bool   `help:"Enable or disable the reminder." negatable:""`
	Move         string  `help:"Move the entry to another day."`
	AllWithTitle bool    `help:"Apply the change to every entry with the same title." name:"all-with-title"`
}

func (c *EditCmd) patch() (models.EntryPatch, error) {
	patch := models.EntryPatch{
		Time:                c.Time,
		Title:               c.Title,
		Description:         c.Description,
		NotificationEnabled: c.Notify,
	}
	if c.Move != "" {
		if c.AllWithTitle {
			return patch, errors.New("--move cannot be combined with --all-with-title")
		}
		d, err := models.ParseDay(c.Move)
		if err != nil {
			return patch, err
		}
		patch.Day = &d
	}
	if patch.Empty() {
		return patch, errors.New("no changes specified")
	}
	return patch, nil
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	day, err := models.ParseDay(c.Day)
	if err != nil {
		return err
	}
	patch, err := c.patch()
	if err != nil {
		return err
	}

	s, err := ctx.Session()
	if err != nil {
		return err
	}
	bg := ctx.Background()

	if c.AllWithTitle {
		current, err := s.Registry.Entry(bg, day, c.ID)
		if err != nil {
			return err
		}
		n, err := s.Registry.UpdateByTitle(bg, current.Title, patch)
		if err != nil {
			return fmt.Errorf("failed to update schedules: %w", err)
		}
		fmt.Printf("✓ Updated %d entries titled %q\n", n, current.Title)
		return nil
	}

	updated, err := s.Registry.UpdateEntry(bg, day, c.ID, patch)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}
	fmt.Printf("✓ %s\n", s.Catalog().Updated([]models.Day{updated.Day}))
	fmt.Printf("  %s\n", cli.FormatEntry(updated))
	return nil
}
