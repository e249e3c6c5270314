package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/weekly/internal/cli"
	"github.com/julianstephens/weekly/internal/config"
	"github.com/julianstephens/weekly/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting existing data before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	location := ctx.Config.Location
	bg := ctx.Background()

	if c.Force && config.IsFileLocation(location) {
		if _, err := os.Stat(location); err == nil {
			if err := os.Remove(location); err != nil {
				return fmt.Errorf("failed to delete existing data: %w", err)
			}
			fmt.Printf("Deleted existing data at: %s\n", location)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing data: %w", err)
		}
	}

	backend, err := storage.NewBackend(location)
	if err != nil {
		return err
	}
	if err := backend.Init(bg); err != nil {
		return err
	}

	store := storage.NewStore(backend, nil)
	if c.Force && !config.IsFileLocation(location) {
		if err := store.Clear(bg); err != nil {
			store.Close(bg)
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
		fmt.Printf("Cleared existing data at: %s\n", backend.Location())
	}
	store.LoadOrInit(bg)
	if err := store.Close(bg); err != nil {
		return err
	}

	fmt.Printf("Initialized weekly storage at: %s\n", backend.Location())
	return nil
}
