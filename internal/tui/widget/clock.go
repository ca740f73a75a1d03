package widget

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/bulkhead/internal/tui/msg"
	"github.com/Iron-Ham/bulkhead/internal/tui/styles"
)

// Clock is a well-behaved demo pane: a spinner plus a tick counter and the
// current wall-clock time. It never fails, which makes it the control group
// next to the flaky panes.
type Clock struct {
	spinner spinner.Model
	ticks   int
	now     time.Time
}

// NewClock creates a clock widget.
func NewClock() Clock {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Primary
	return Clock{spinner: s, now: time.Now()}
}

// Name identifies the widget in failure provenance.
func (c Clock) Name() string { return "clock" }

// Init starts the spinner animation.
func (c Clock) Init() tea.Cmd {
	return c.spinner.Tick
}

// Update advances the spinner and the tick counter.
func (c Clock) Update(m tea.Msg) (tea.Model, tea.Cmd) {
	switch m := m.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(m)
		return c, cmd
	case msg.TickMsg:
		c.ticks++
		c.now = time.Time(m)
	}
	return c, nil
}

// View renders the spinner, tick count, and current time.
func (c Clock) View() string {
	return fmt.Sprintf("%s %s\n%s",
		c.spinner.View(),
		styles.Text.Render(c.now.Format("15:04:05")),
		styles.Muted.Render(fmt.Sprintf("ticks: %d", c.ticks)))
}
