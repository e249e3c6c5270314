package system

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/weekly/internal/cli"
	"github.com/julianstephens/weekly/internal/notifier"
)

// WatchCmd keeps reminders armed without the TUI. Reminders the tray app
// cannot take are printed to stdout.
type WatchCmd struct {
	Quiet bool `help:"Do not list armed reminders on start."`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	if ctx.Options.Fallback == nil {
		ctx.Options.Fallback = notifier.NewConsole(os.Stdout)
	}
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	if err := s.Permission.Require(); err != nil {
		return fmt.Errorf("%w, run 'weekly permission grant' first", err)
	}

	runCtx, stop := signal.NotifyContext(ctx.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.Start(runCtx)
	s.Focus(runCtx)

	if !c.Quiet {
		armed := s.Scheduler.Armed()
		fmt.Printf("Watching %d reminders (Ctrl+C to stop)\n", len(armed))
		for _, a := range armed {
			fmt.Printf("  %s  %s  %s\n", a.FiresAt.Format(time.RFC1123), a.Day.Short(), a.Title)
		}
	}

	<-runCtx.Done()
	fmt.Println("\nStopped watching.")
	return nil
}
