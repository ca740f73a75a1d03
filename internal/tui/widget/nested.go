package widget

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/bulkhead/internal/boundary"
	"github.com/Iron-Ham/bulkhead/internal/tui/styles"
)

// Nested is a demo pane whose body is itself wrapped in a containment
// boundary. A failure in the body trips the inner boundary; the outer pane
// (and the boundary wrapping it) keeps rendering normally.
type Nested struct {
	name  string
	inner *boundary.Boundary
}

// NewNested creates a nested pane around an inner boundary.
func NewNested(name string, inner *boundary.Boundary) Nested {
	return Nested{name: name, inner: inner}
}

// Name identifies the widget in failure provenance.
func (n Nested) Name() string { return n.name }

// Init initializes the inner boundary.
func (n Nested) Init() tea.Cmd {
	return n.inner.Init()
}

// Update forwards every message to the inner boundary.
func (n Nested) Update(m tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := n.inner.Update(m)
	n.inner = model.(*boundary.Boundary)
	return n, cmd
}

// View renders a header for the outer pane above the inner boundary's view.
func (n Nested) View() string {
	return styles.Muted.Render("outer: healthy") + "\n" + n.inner.View()
}
