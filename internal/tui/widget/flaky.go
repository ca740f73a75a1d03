package widget

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/bulkhead/internal/errors"
	"github.com/Iron-Ham/bulkhead/internal/tui/msg"
	"github.com/Iron-Ham/bulkhead/internal/tui/styles"
)

// Flaky is a demo pane that can be armed to panic during a chosen pass.
// An armed update failure fires on the next tick as a transient error, so an
// auto-retry policy will recover it. An armed view failure panics with a
// plain value, which only a manual retry clears.
//
// Flaky is a pointer model: each armed failure fires exactly once, so a
// retried pane comes back up instead of tripping again on the next tick.
type Flaky struct {
	name      string
	armUpdate bool
	armView   bool
	updates   int
}

// NewFlaky creates a flaky widget with the given provenance name.
func NewFlaky(name string) *Flaky {
	return &Flaky{name: name}
}

// Name identifies the widget in failure provenance.
func (f *Flaky) Name() string { return f.name }

// Init does nothing; the widget is driven entirely by messages.
func (f *Flaky) Init() tea.Cmd { return nil }

// Update arms failures and fires armed update failures on the next tick.
func (f *Flaky) Update(m tea.Msg) (tea.Model, tea.Cmd) {
	switch m := m.(type) {
	case msg.ArmFailureMsg:
		if m.Target != f.name {
			return f, nil
		}
		switch m.Phase {
		case "view":
			f.armView = true
		default:
			f.armUpdate = true
		}
		return f, nil

	case msg.TickMsg:
		if f.armUpdate {
			f.armUpdate = false
			panic(errors.Transientf("%s: simulated update failure", f.name))
		}
		f.updates++
	}
	return f, nil
}

// View renders the widget status, or panics if a view failure is armed.
func (f *Flaky) View() string {
	if f.armView {
		f.armView = false
		panic(fmt.Sprintf("%s: simulated view failure", f.name))
	}

	status := styles.Secondary.Render("stable")
	if f.armUpdate {
		status = styles.Warning.Render("armed: update")
	}
	return fmt.Sprintf("%s\n%s",
		status,
		styles.Muted.Render(fmt.Sprintf("updates: %d", f.updates)))
}
