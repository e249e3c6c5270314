package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/weekly/internal/cli"
	"github.com/julianstephens/weekly/internal/cli/backups"
	"github.com/julianstephens/weekly/internal/cli/entries"
	"github.com/julianstephens/weekly/internal/cli/settings"
	"github.com/julianstephens/weekly/internal/cli/system"
	"github.com/julianstephens/weekly/internal/config"
	"github.com/julianstephens/weekly/internal/constants"
	apperrors "github.com/julianstephens/weekly/internal/errors"
	"github.com/julianstephens/weekly/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Data file path, or a PostgreSQL/Redis connection string. Defaults to WEEKLY_DB_CONNECTION, then the OS keyring, then ~/.config/weekly/weekly.db." type:"string"`
	Debug   bool   `help:"Enable debug logging."`

	Init   system.InitCmd    `cmd:"" help:"Initialize weekly storage."`
	Tui    system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Watch  system.WatchCmd   `cmd:"" help:"Deliver reminders without the TUI."`
	Add    entries.AddCmd    `cmd:"" help:"Add an activity to one or more days."`
	Edit   entries.EditCmd   `cmd:"" help:"Edit an activity."`
	Delete entries.DeleteCmd `cmd:"" help:"Delete an activity."`
	Toggle entries.ToggleCmd `cmd:"" help:"Mark an activity done or not done."`
	List   entries.ListCmd   `cmd:"" help:"List activities."`
	Stats  entries.StatsCmd  `cmd:"" help:"Show this week's completion."`
	Export backups.ExportCmd `cmd:"" help:"Export schedules to a JSON file."`
	Import backups.ImportCmd `cmd:"" help:"Replace schedules with an exported JSON file."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
		Push    backups.BackupPushCmd    `cmd:"" help:"Create a backup and upload it to S3-compatible storage."`
		Pull    backups.BackupPullCmd    `cmd:"" help:"Download a backup from S3-compatible storage."`
	} `cmd:"" help:"Manage backups."`
	Settings   settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Permission system.PermissionCmd `cmd:"" help:"Manage notification permission."`
	Keyring    system.KeyringCmd    `cmd:"" help:"Manage secrets in the OS keyring."`
	Doctor     system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	DebugCmd   system.DebugCmd      `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Notify     system.NotifyCmd     `cmd:"" hidden:"" help:"Send a notification (used internally)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Weekly routine planner with reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(config.Options{Location: CLI.Config, Debug: CLI.Debug})
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: cfg.ConfigDir,
		Console:   ctx.Command() == "watch",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
		logger.InitWriter(os.Stderr, cfg.Debug)
	}

	appCtx := &cli.Context{
		Ctx:    context.Background(),
		Config: cfg,
	}

	err = ctx.Run(appCtx)
	if closeErr := appCtx.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		apperrors.Fatal(err)
	}
}
