package entries

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/julianstephens/weekly/internal/cli"
	"github.com/julianstephens/weekly/internal/models"
)

type ListCmd struct {
	Day  string `arg:"" optional:"" help:"Only list this day."`
	JSON bool   `help:"Print entries as JSON." name:"json"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	days := models.Days
	if c.Day != "" {
		d, err := models.ParseDay(c.Day)
		if err != nil {
			return err
		}
		days = []models.Day{d}
	}

	s, err := ctx.Session()
	if err != nil {
		return err
	}
	bg := ctx.Background()

	if c.JSON {
		out := make(map[models.Day][]models.ScheduleEntry, len(days))
		for _, d := range days {
			out[d] = s.Registry.Entries(bg, d)
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal entries: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	cat := s.Catalog()
	empty := true
	for _, d := range days {
		entries := s.Registry.Entries(bg, d)
		if len(entries) == 0 && c.Day == "" {
			continue
		}
		empty = false
		fmt.Printf("%s (%d)\n", cat.DayTitle(d), len(entries))
		if len(entries) == 0 {
			fmt.Printf("  %s\n", cat.Messages().EmptyState.Line1)
		}
		for _, e := range entries {
			fmt.Printf("  %s\n", cli.FormatEntry(e))
		}
		fmt.Println()
	}
	if empty {
		fmt.Println(cat.Messages().EmptyState.Line1)
		fmt.Println(cat.Messages().EmptyState.Line2)
	}
	return nil
}
