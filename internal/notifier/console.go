package notifier

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/weekly/internal/models"
)

var (
	consoleTimeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	consoleTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	consoleBodyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// Console writes notifications as styled lines. The headless watch command
// uses it as its last resort.
type Console struct {
	w   io.Writer
	now func() time.Time
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w, now: time.Now}
}

func (c *Console) Deliver(ctx context.Context, n models.Notification) error {
	_, err := fmt.Fprintf(c.w, "%s %s %s\n",
		consoleTimeStyle.Render(c.now().Format("15:04:05")),
		consoleTitleStyle.Render(n.Title),
		consoleBodyStyle.Render(n.Body),
	)
	return err
}
