package widget

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/bulkhead/internal/errors"
	"github.com/Iron-Ham/bulkhead/internal/tui/msg"
	"github.com/Iron-Ham/bulkhead/internal/tui/styles"
)

// Brittle is a demo pane whose setup step fails on first boot with a
// transient error, so its pane starts out failed and comes up on retry.
// Like Flaky, it is a pointer model: the failure fires exactly once.
type Brittle struct {
	name   string
	booted bool
	ticks  int
}

// NewBrittle creates a brittle widget with the given provenance name.
func NewBrittle(name string) *Brittle {
	return &Brittle{name: name}
}

// Name identifies the widget in failure provenance.
func (b *Brittle) Name() string { return b.name }

// Init panics on the first boot attempt and succeeds afterwards.
func (b *Brittle) Init() tea.Cmd {
	if !b.booted {
		b.booted = true
		panic(errors.Transientf("%s: failed to boot", b.name))
	}
	return nil
}

// Update counts ticks once the widget is up.
func (b *Brittle) Update(m tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := m.(msg.TickMsg); ok {
		b.ticks++
	}
	return b, nil
}

// View renders the boot status.
func (b *Brittle) View() string {
	return fmt.Sprintf("%s\n%s",
		styles.Secondary.Render("booted"),
		styles.Muted.Render(fmt.Sprintf("uptime ticks: %d", b.ticks)))
}
