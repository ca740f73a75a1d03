// Package panel provides interfaces and types for TUI panel rendering.
// Panels are pure: they produce output from a RenderState snapshot and hold
// no mutable state of their own beyond layout bookkeeping.
package panel

import (
	"errors"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/bulkhead/internal/boundary"
)

// Common errors returned by RenderState validation.
var (
	ErrInvalidWidth  = errors.New("width must be positive")
	ErrInvalidHeight = errors.New("height must be positive")
	ErrNilTheme      = errors.New("theme cannot be nil")
)

// PanelRenderer defines the interface for rendering UI panels.
type PanelRenderer interface {
	// Render produces the visual output for this panel given the current
	// state. The returned string may contain ANSI escape codes for styling.
	Render(state *RenderState) string

	// Height returns the rendered height of the panel in terminal rows.
	Height() int
}

// Theme provides styling configuration for panel rendering. This interface
// abstracts the styling system, allowing panels to request styles without
// depending on concrete style implementations.
type Theme interface {
	// Primary returns the primary style for emphasis.
	Primary() lipgloss.Style
	// Secondary returns the secondary style for less prominent elements.
	Secondary() lipgloss.Style
	// Muted returns the muted style for de-emphasized elements.
	Muted() lipgloss.Style
	// Error returns the style for error states.
	Error() lipgloss.Style
	// Warning returns the style for warning states.
	Warning() lipgloss.Style
	// Text returns the style for regular text.
	Text() lipgloss.Style
	// Border returns the style for borders.
	Border() lipgloss.Style
}

// RenderState holds the state needed to render a panel. It is a snapshot:
// panels never reach back into live models.
type RenderState struct {
	// Width is the available width in terminal columns.
	Width int

	// Height is the available height in terminal rows.
	Height int

	// Theme provides styling for the panel. Required for styled rendering.
	Theme Theme

	// Focused indicates whether this panel currently has focus.
	Focused bool

	// Failure is the captured failure being presented, if any.
	Failure *boundary.FailureRecord

	// Title is the fallback heading text.
	Title string

	// Message is the user-facing fallback explanation.
	Message string

	// ShowDetail reveals the failure message, provenance, and stack tail.
	ShowDetail bool

	// RetryHint names the key that triggers a retry (e.g. "r").
	RetryHint string
}

// Validate checks that the RenderState has valid values for rendering.
func (rs *RenderState) Validate() error {
	if rs.Width <= 0 {
		return ErrInvalidWidth
	}
	if rs.Height <= 0 {
		return ErrInvalidHeight
	}
	if rs.Theme == nil {
		return ErrNilTheme
	}
	return nil
}

// NewRenderState creates a RenderState with the given dimensions.
func NewRenderState(width, height int) *RenderState {
	return &RenderState{
		Width:  width,
		Height: height,
	}
}
