package backups

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/weekly/internal/backup"
	"github.com/julianstephens/weekly/internal/cli"
	"github.com/julianstephens/weekly/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}

	backupPath, err := s.Backups.CreateBackup(ctx.Background(), s.Store)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Config.ConfigDir)
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		fmt.Printf("  %s  %s  (%.1f KB)\n", timestamp, filepath.Base(b.Path), sizeKB)
	}
	fmt.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())

	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Config.ConfigDir)
	backupPath, err := resolveBackupPath(c.BackupFile, mgr.GetBackupDir())
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Println("⚠️  WARNING: This will replace your current schedules with the backup.")
		fmt.Println("A backup of your current data will be created before restoring.")
		fmt.Printf("\nRestore from: %s\n", backupPath)
		ok, err := cli.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	return restore(ctx, backupPath)
}

func restore(ctx *cli.Context, backupPath string) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}

	previous, err := s.Backups.RestoreBackup(ctx.Background(), backupPath, s.Store)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Println("✓ Schedules restored successfully!")
	fmt.Printf("  Previous data saved to: %s\n", filepath.Base(previous))
	return nil
}

// resolveBackupPath accepts an absolute path, a path relative to the working
// directory, or a file name inside the backup directory.
func resolveBackupPath(name, backupDir string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); os.IsNotExist(err) {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}

	if _, err := os.Stat(name); err == nil {
		abs, err := filepath.Abs(name)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return abs, nil
	}

	candidate := filepath.Join(backupDir, name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", backupDir)
}

type BackupPushCmd struct {
	Target string `arg:"" help:"Destination, e.g. s3://bucket/weekly/."`
}

func (c *BackupPushCmd) Run(ctx *cli.Context) error {
	remote, err := backup.NewRemote(ctx.Config.Minio)
	if err != nil {
		return err
	}
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	bg := ctx.Background()

	local, err := s.Backups.CreateBackup(bg, s.Store)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	url, err := remote.Push(bg, local, c.Target)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Backup uploaded: %s\n", url)
	return nil
}

type BackupPullCmd struct {
	Source  string `arg:"" help:"Remote snapshot, e.g. s3://bucket/weekly/weekly-20240115-0930.json."`
	Restore bool   `help:"Restore the downloaded snapshot."`
	Yes     bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *BackupPullCmd) Run(ctx *cli.Context) error {
	remote, err := backup.NewRemote(ctx.Config.Minio)
	if err != nil {
		return err
	}
	if _, _, err := backup.ParseURL(c.Source, ""); err != nil {
		return err
	}

	mgr := backup.NewManager(ctx.Config.ConfigDir)
	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	local := filepath.Join(mgr.GetBackupDir(), "pulled-"+time.Now().Format(constants.BackupTimestampFormatSeconds)+"-"+filepath.Base(c.Source))
	if err := remote.Pull(ctx.Background(), c.Source, local); err != nil {
		return err
	}
	fmt.Printf("✓ Backup downloaded: %s\n", local)

	if !c.Restore {
		return nil
	}
	if !c.Yes {
		ok, err := cli.Confirm("Replace your current schedules with this backup?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}
	return restore(ctx, local)
}
