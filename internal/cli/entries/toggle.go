package entries

import (
	"fmt"

	"github.com/julianstephens/weekly/internal/cli"
	"github.com/julianstephens/weekly/internal/models"
)

type ToggleCmd struct {
	Day string `arg:"" help:"Day the entry is on."`
	ID  string `arg:"" help:"Entry ID."`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	day, err := models.ParseDay(c.Day)
	if err != nil {
		return err
	}

	s, err := ctx.Session()
	if err != nil {
		return err
	}

	e, err := s.Registry.ToggleCompletion(ctx.Background(), day, c.ID)
	if err != nil {
		return err
	}
	state := "not done"
	if e.Completed {
		state = "done"
	}
	fmt.Printf("✓ Marked %q as %s\n", e.Title, state)
	return nil
}
