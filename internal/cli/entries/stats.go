package entries

import (
	"fmt"
	"strings"

	"github.com/julianstephens/weekly/internal/cli"
	"github.com/julianstephens/weekly/internal/models"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	bg := ctx.Background()

	week, key := s.Registry.RecomputeWeeklyStats(bg)
	totals := s.Registry.Stats(bg)
	cat := s.Catalog()

	fmt.Printf("Week %s\n\n", key)
	for _, d := range models.Days {
		st := week[d]
		fmt.Printf("  %-4s %-10s %2d/%-2d %3d%%\n",
			cat.DayShort(d), bar(st.Percentage), st.Completed, st.Total, st.Percentage)
	}
	fmt.Printf("\nTotal: %d schedules, %d completed\n", totals.TotalSchedules, totals.CompletedSchedules)
	return nil
}

func bar(pct int) string {
	filled := pct / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}
