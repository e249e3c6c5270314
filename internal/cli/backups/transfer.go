package backups

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/weekly/internal/backup"
	"github.com/julianstephens/weekly/internal/cli"
)

type ExportCmd struct {
	Path string `arg:"" optional:"" help:"Destination file or s3:// URL. Defaults to weekly-routine-backup-<date>.json."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	bg := ctx.Background()
	name := backup.ExportFileName(time.Now())

	if backup.IsRemote(c.Path) {
		remote, err := backup.NewRemote(ctx.Config.Minio)
		if err != nil {
			return err
		}
		local := filepath.Join(os.TempDir(), name)
		if err := writeExport(ctx, local); err != nil {
			return err
		}
		defer os.Remove(local)
		url, err := remote.Push(bg, local, c.Path)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Exported %d schedules to %s\n", s.Store.LoadOrInit(bg).Count(), url)
		return nil
	}

	dest := c.Path
	if dest == "" {
		dest = name
	}
	if err := writeExport(ctx, dest); err != nil {
		return err
	}
	fmt.Printf("✓ Exported %d schedules to %s\n", s.Store.LoadOrInit(bg).Count(), dest)
	return nil
}

func writeExport(ctx *cli.Context, dest string) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := s.Store.Export(ctx.Background(), f); err != nil {
		f.Close()
		return fmt.Errorf("failed to export schedules: %w", err)
	}
	return f.Close()
}

type ImportCmd struct {
	Path string `arg:"" help:"File or s3:// URL to import."`
	Yes  bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	src := c.Path
	if backup.IsRemote(src) {
		remote, err := backup.NewRemote(ctx.Config.Minio)
		if err != nil {
			return err
		}
		local := filepath.Join(os.TempDir(), filepath.Base(src))
		if err := remote.Pull(ctx.Background(), src, local); err != nil {
			return err
		}
		defer os.Remove(local)
		src = local
	}

	raw, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	if err := backup.VerifyBackup(raw); err != nil {
		return err
	}

	if !c.Yes {
		fmt.Println("⚠️  Importing replaces all current schedules and settings.")
		ok, err := cli.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Import cancelled.")
			return nil
		}
	}
	return restore(ctx, src)
}
