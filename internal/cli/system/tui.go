package system

import (
	"github.com/julianstephens/weekly/internal/cli"
	"github.com/julianstephens/weekly/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	bg := ctx.Background()
	s.Start(bg)
	return tui.Run(bg, s)
}
