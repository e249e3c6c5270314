package settings

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/julianstephens/weekly/internal/app"
	"github.com/julianstephens/weekly/internal/cli"
	"github.com/julianstephens/weekly/internal/config"
	"github.com/julianstephens/weekly/internal/constants"
	"github.com/julianstephens/weekly/internal/i18n"
	"github.com/julianstephens/weekly/internal/notifier"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	dir := t.TempDir()
	ctx := &cli.Context{
		Ctx: context.Background(),
		Config: &config.Config{
			Location:  filepath.Join(dir, "weekly.json"),
			ConfigDir: dir,
			Language:  "en",
		},
		Options: app.Options{Deliverer: notifier.NewInbox(4), AutoInit: true},
	}
	t.Cleanup(func() { ctx.Close() })
	return ctx
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int { return &n }

func TestSettingsCmd(t *testing.T) {
	tests := []struct {
		name    string
		cmd     SettingsCmd
		wantErr bool
		check   func(t *testing.T, ctx *cli.Context)
	}{
		{
			name: "list",
			cmd:  SettingsCmd{List: true},
		},
		{
			name: "no changes",
			cmd:  SettingsCmd{},
		},
		{
			name: "theme",
			cmd:  SettingsCmd{Theme: strPtr("dark")},
			check: func(t *testing.T, ctx *cli.Context) {
				s, _ := ctx.Session()
				if got := s.Registry.Settings(ctx.Background()).Theme; got != constants.ThemeDark {
					t.Errorf("theme = %s, want dark", got)
				}
			},
		},
		{
			name:    "invalid theme",
			cmd:     SettingsCmd{Theme: strPtr("neon")},
			wantErr: true,
		},
		{
			name: "lead minutes",
			cmd:  SettingsCmd{LeadMinutes: intPtr(15)},
			check: func(t *testing.T, ctx *cli.Context) {
				s, _ := ctx.Session()
				if got := s.Registry.Settings(ctx.Background()).DefaultLeadMinutes; got != 15 {
					t.Errorf("lead = %d, want 15", got)
				}
			},
		},
		{
			name:    "lead minutes too short",
			cmd:     SettingsCmd{LeadMinutes: intPtr(1)},
			wantErr: true,
		},
		{
			name: "language",
			cmd:  SettingsCmd{Language: strPtr("ja")},
			check: func(t *testing.T, ctx *cli.Context) {
				s, _ := ctx.Session()
				if got := s.Catalog().Lang(); got != i18n.Japanese {
					t.Errorf("lang = %s, want ja", got)
				}
			},
		},
		{
			name:    "unknown language",
			cmd:     SettingsCmd{Language: strPtr("xx")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupTestContext(t)
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SettingsCmd.Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, ctx)
			}
		})
	}
}
