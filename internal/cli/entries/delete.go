package entries

import (
	"fmt"

	"github.com/julianstephens/weekly/internal/cli"
	apperrors "github.com/julianstephens/weekly/internal/errors"
	"github.com/julianstephens/weekly/internal/models"
)

type DeleteCmd struct {
	Day string `arg:"" help:"Day the entry is on."`
	ID  string `arg:"" help:"Entry ID."`
	Yes bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	day, err := models.ParseDay(c.Day)
	if err != nil {
		return err
	}

	s, err := ctx.Session()
	if err != nil {
		return err
	}
	bg := ctx.Background()

	entry, err := s.Registry.Entry(bg, day, c.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Printf("%s\n  %s\n", s.Catalog().Messages().Toast.DeleteConfirm, cli.FormatEntry(entry))
		ok, err := cli.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if !s.Registry.DeleteEntry(bg, day, c.ID) {
		return &apperrors.NotFoundError{Day: string(day), ID: c.ID}
	}
	fmt.Printf("✓ %s\n", s.Catalog().Messages().Toast.ScheduleDeleted)
	return nil
}
