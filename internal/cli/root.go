package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/weekly/internal/app"
	"github.com/julianstephens/weekly/internal/config"
	"github.com/julianstephens/weekly/internal/logger"
	"github.com/julianstephens/weekly/internal/models"
)

// Context is shared by every command. The session is opened on first use so
// that commands like init and keyring run without touching storage.
type Context struct {
	Ctx     context.Context
	Config  *config.Config
	Options app.Options

	session *app.Session
}

// Session opens the configured storage and wires the session.
func (c *Context) Session() (*app.Session, error) {
	if c.session != nil {
		return c.session, nil
	}
	if c.Config == nil {
		return nil, errors.New("no configuration loaded")
	}
	s, err := app.Open(c.Background(), c.Config, c.Options)
	if err != nil {
		return nil, err
	}
	c.session = s
	return s, nil
}

// Close flushes and releases the session, if one was opened.
func (c *Context) Close() error {
	if c.session == nil {
		return nil
	}
	err := c.session.Close(c.Background())
	c.session = nil
	return err
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	s, err := c.Session()
	if err != nil {
		logger.Warn("Automatic backup skipped", "error", err)
		return
	}
	s.AutoBackup(c.Background())
}

// Background returns the command context.
func (c *Context) Background() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// Confirm asks a yes/no question on stdin. Anything but y/yes is a no.
func Confirm(prompt string) (bool, error) {
	fmt.Print(prompt + " [y/N]: ")
	response, err := readLine()
	if err != nil {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// FormatEntry renders one entry as a list row.
func FormatEntry(e models.ScheduleEntry) string {
	box := "☐"
	if e.Completed {
		box = "☑"
	}
	bell := ""
	if e.NotificationEnabled {
		bell = " 🔔"
	}
	row := fmt.Sprintf("%s %s  %s%s  [%s]", box, e.Time, e.Title, bell, e.ID)
	if e.Description != "" {
		row += "\n      " + e.Description
	}
	return row
}
