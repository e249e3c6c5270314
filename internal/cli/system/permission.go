package system

import (
	"fmt"

	"github.com/julianstephens/weekly/internal/app"
	"github.com/julianstephens/weekly/internal/cli"
	"github.com/julianstephens/weekly/internal/permission"
)

type PermissionCmd struct {
	Status  PermissionStatusCmd  `cmd:"" help:"Show the notification permission." default:"1"`
	Request PermissionRequestCmd `cmd:"" help:"Ask for notification permission."`
	Grant   PermissionGrantCmd   `cmd:"" help:"Allow notifications."`
	Deny    PermissionDenyCmd    `cmd:"" help:"Block notifications."`
	Reset   PermissionResetCmd   `cmd:"" help:"Forget the decision so the next request asks again."`
}

// prompter is replaced in tests.
var prompter = func(s *app.Session) permission.Prompter {
	msg := s.Catalog().Messages().Permission
	return permission.FormPrompter{
		Title:   msg.Title,
		Message: msg.Message,
		Allow:   msg.Allow,
		Later:   msg.Later,
	}
}

type PermissionStatusCmd struct{}

func (c *PermissionStatusCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	state := s.Permission.State()
	fmt.Printf("Notification permission: %s\n", state)
	if state == permission.Denied {
		fmt.Println("  Run 'weekly permission reset' to be asked again.")
	}
	return nil
}

type PermissionRequestCmd struct{}

func (c *PermissionRequestCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	msg := s.Catalog().Messages().Permission

	switch s.Permission.State() {
	case permission.Granted:
		fmt.Println(msg.AlreadyGranted)
		return nil
	case permission.Denied:
		fmt.Println(msg.Denied)
		fmt.Println("  Run 'weekly permission reset' to be asked again.")
		return nil
	}

	state, err := s.Permission.Request(ctx.Background(), prompter(s))
	if err != nil {
		return fmt.Errorf("permission request failed: %w", err)
	}
	if state == permission.Granted {
		fmt.Printf("✓ %s\n", msg.Granted)
	} else {
		fmt.Println(msg.Denied)
	}
	return nil
}

func setPermission(ctx *cli.Context, state permission.State) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	if err := s.Permission.Set(ctx.Background(), state); err != nil {
		return err
	}
	fmt.Printf("✓ Notification permission: %s\n", state)
	return nil
}

type PermissionGrantCmd struct{}

func (c *PermissionGrantCmd) Run(ctx *cli.Context) error {
	return setPermission(ctx, permission.Granted)
}

type PermissionDenyCmd struct{}

func (c *PermissionDenyCmd) Run(ctx *cli.Context) error {
	return setPermission(ctx, permission.Denied)
}

type PermissionResetCmd struct{}

func (c *PermissionResetCmd) Run(ctx *cli.Context) error {
	return setPermission(ctx, permission.Default)
}
