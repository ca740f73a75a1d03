package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/bulkhead/internal/boundary"
)

// stackTailLines caps how many stack lines the detail view shows.
const stackTailLines = 8

// FallbackPanel renders the substitute view for a failed boundary: a title,
// a reassuring message, an optional detail block, and a retry hint. It
// implements both PanelRenderer and boundary.Fallback, so it can be handed
// straight to a boundary or composed into a larger layout.
type FallbackPanel struct {
	theme      Theme
	title      string
	message    string
	showDetail bool
	retryHint  string
	height     int
}

// FallbackOption configures a FallbackPanel.
type FallbackOption func(*FallbackPanel)

// WithTitle sets the heading text.
func WithTitle(title string) FallbackOption {
	return func(p *FallbackPanel) { p.title = title }
}

// WithMessage sets the user-facing explanation text.
func WithMessage(msg string) FallbackOption {
	return func(p *FallbackPanel) { p.message = msg }
}

// WithDetail enables the failure detail block (panic message, origin, stack).
func WithDetail(show bool) FallbackOption {
	return func(p *FallbackPanel) { p.showDetail = show }
}

// WithRetryHint names the key shown in the "press X to retry" line.
func WithRetryHint(key string) FallbackOption {
	return func(p *FallbackPanel) { p.retryHint = key }
}

// NewFallbackPanel creates a FallbackPanel styled by the given theme.
// A nil theme falls back to unstyled output.
func NewFallbackPanel(theme Theme, opts ...FallbackOption) *FallbackPanel {
	p := &FallbackPanel{
		theme:     theme,
		title:     "Something went wrong",
		message:   "This panel hit an error. The rest of the app is unaffected.",
		retryHint: "r",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// View renders the fallback for the given failure at the given size. This is
// the boundary.Fallback entry point.
func (p *FallbackPanel) View(rec *boundary.FailureRecord, width, height int) string {
	state := NewRenderState(width, height)
	state.Theme = p.theme
	state.Failure = rec
	state.Title = p.title
	state.Message = p.message
	state.ShowDetail = p.showDetail
	state.RetryHint = p.retryHint
	return p.Render(state)
}

// Render produces the fallback view from a RenderState snapshot. A failure
// can be captured before the program has seen its first window size; with no
// usable dimensions the output is simply rendered unconstrained, never
// suppressed.
func (p *FallbackPanel) Render(state *RenderState) string {
	theme := state.Theme
	if theme == nil {
		theme = plainTheme{}
	}

	var lines []string
	lines = append(lines, theme.Error().Bold(true).Render(state.Title))
	if state.Message != "" {
		lines = append(lines, theme.Text().Render(state.Message))
	}

	if state.ShowDetail && state.Failure != nil {
		lines = append(lines, "")
		lines = append(lines, p.detail(theme, state.Failure)...)
	}

	if state.RetryHint != "" {
		lines = append(lines, "")
		lines = append(lines, theme.Muted().Render(
			fmt.Sprintf("press %s to retry", state.RetryHint)))
	}

	out := strings.Join(lines, "\n")
	p.height = lipgloss.Height(out)

	if state.Width > 0 {
		out = lipgloss.NewStyle().Width(state.Width).Render(out)
	}
	return out
}

// Height returns the height of the last render in terminal rows.
func (p *FallbackPanel) Height() int {
	return p.height
}

// detail formats the failure message, its origin, and a stack tail.
func (p *FallbackPanel) detail(theme Theme, rec *boundary.FailureRecord) []string {
	lines := []string{
		theme.Warning().Render(rec.Message),
		theme.Muted().Render(rec.Provenance.String()),
	}
	if tail := stackTail(rec.Provenance.Stack, stackTailLines); tail != "" {
		lines = append(lines, theme.Muted().Render(tail))
	}
	return lines
}

// stackTail returns the first n lines of a captured stack trace.
func stackTail(stack []byte, n int) string {
	if len(stack) == 0 {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(string(stack)), "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

// plainTheme is the unstyled fallback used when no theme is supplied.
type plainTheme struct{}

func (plainTheme) Primary() lipgloss.Style   { return lipgloss.NewStyle() }
func (plainTheme) Secondary() lipgloss.Style { return lipgloss.NewStyle() }
func (plainTheme) Muted() lipgloss.Style     { return lipgloss.NewStyle() }
func (plainTheme) Error() lipgloss.Style     { return lipgloss.NewStyle() }
func (plainTheme) Warning() lipgloss.Style   { return lipgloss.NewStyle() }
func (plainTheme) Text() lipgloss.Style      { return lipgloss.NewStyle() }
func (plainTheme) Border() lipgloss.Style    { return lipgloss.NewStyle() }
