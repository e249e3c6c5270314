package system

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/julianstephens/weekly/internal/cli"
	"github.com/julianstephens/weekly/internal/models"
	"github.com/julianstephens/weekly/internal/scheduler"
)

var nowFunc = time.Now

type DebugCmd struct {
	Location  *DebugLocationCmd  `cmd:"" help:"Show where data is stored."`
	FireTimes *DebugFireTimesCmd `cmd:"" help:"Show when each reminder would fire."`
	Dump      *DebugDumpCmd      `cmd:"" help:"Dump the dataset as JSON."`
	History   *DebugHistoryCmd   `cmd:"" help:"List previous versions of the dataset."`
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugLocationCmd struct{}

func (cmd *DebugLocationCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{
		"location":   ctx.Config.Location,
		"source":     string(ctx.Config.Source),
		"config_dir": ctx.Config.ConfigDir,
	})
}

// FireTime is one row of the fire-times report.
type FireTime struct {
	ID      string     `json:"id"`
	Day     models.Day `json:"day"`
	Time    string     `json:"time"`
	Title   string     `json:"title"`
	Next    string     `json:"next_occurrence,omitempty"`
	FiresAt string     `json:"fires_at,omitempty"`
	Reason  string     `json:"reason,omitempty"`
}

type DebugFireTimesCmd struct {
	At string `help:"Evaluate at this RFC3339 time instead of now."`
}

func (cmd *DebugFireTimesCmd) Run(ctx *cli.Context) error {
	now := nowFunc()
	if cmd.At != "" {
		t, err := time.Parse(time.RFC3339, cmd.At)
		if err != nil {
			return fmt.Errorf("invalid --at time: %w", err)
		}
		now = t
	}

	s, err := ctx.Session()
	if err != nil {
		return err
	}
	ds := s.Registry.Dataset(ctx.Background())
	return printJSON(FireTimes(ds, now))
}

// FireTimes computes when each entry's reminder would fire at now.
func FireTimes(ds *models.WeekDataset, now time.Time) []FireTime {
	policy := scheduler.DefaultPolicy().WithLeadMinutes(ds.Settings.DefaultLeadMinutes)
	rows := []FireTime{}
	ds.Each(func(day models.Day, e models.ScheduleEntry) {
		row := FireTime{ID: e.ID, Day: day, Time: e.Time, Title: e.Title}
		if next, ok := scheduler.NextOccurrence(day, e.Time, now); ok {
			row.Next = next.Format(time.RFC3339)
		}
		switch fire, ok := policy.FireTime(day, e.Time, now); {
		case !e.NotificationEnabled:
			row.Reason = "notifications disabled"
		case !ok:
			row.Reason = "already passed today"
		default:
			row.FiresAt = fire.Format(time.RFC3339)
		}
		rows = append(rows, row)
	})
	return rows
}

type DebugDumpCmd struct{}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	return printJSON(s.Registry.Dataset(ctx.Background()))
}

type DebugHistoryCmd struct {
	Limit int `help:"Maximum revisions to show." default:"10"`
}

func (cmd *DebugHistoryCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	revs, err := s.Store.History(ctx.Background(), cmd.Limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	type row struct {
		ReplacedAt string `json:"replaced_at"`
		Entries    int    `json:"entries"`
		Bytes      int    `json:"bytes"`
	}
	out := make([]row, 0, len(revs))
	for _, r := range revs {
		n := -1
		var ds models.WeekDataset
		if err := json.Unmarshal(r.Value, &ds); err == nil {
			n = ds.Count()
		}
		out = append(out, row{ReplacedAt: r.ReplacedAt, Entries: n, Bytes: len(r.Value)})
	}
	if len(out) == 0 {
		fmt.Println("No previous versions recorded.")
		return nil
	}
	return printJSON(out)
}
