package system

import (
	"fmt"

	"github.com/julianstephens/weekly/internal/cli"
	"github.com/julianstephens/weekly/internal/constants"
	"github.com/julianstephens/weekly/internal/models"
	"github.com/julianstephens/weekly/internal/notifier"
)

var trayDeliverer notifier.Deliverer = notifier.NewTray()

// NotifyCmd sends one notification through the tray app. Used by scripts
// and to check the tray connection.
type NotifyCmd struct {
	Title  string `arg:"" help:"Notification title."`
	Body   string `arg:"" optional:"" help:"Notification body."`
	DryRun bool   `help:"Print the notification instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	n := models.Notification{
		Title: c.Title,
		Body:  c.Body,
		Icon:  constants.NotificationIcon,
		Tag:   constants.AppName,
	}
	if c.DryRun {
		fmt.Printf("%s: %s\n", n.Title, n.Body)
		return nil
	}
	if err := trayDeliverer.Deliver(ctx.Background(), n); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
