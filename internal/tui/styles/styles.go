// Package styles provides the lipgloss color palette and shared styles for
// the demo TUI, plus the selectable themes consumed by panel renderers.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - chosen for readable contrast on dark terminals
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	// Header
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(BorderColor)

	// Pane borders
	PaneBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	PaneBorderFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(PrimaryColor).
				Padding(0, 1)

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)

	// Status line
	StatusLine = lipgloss.NewStyle().
			Foreground(MutedColor)
)

// Theme bundles the styles panel renderers ask for, keyed by role rather
// than by concrete color, so panes render the same under any palette.
type Theme struct {
	name      string
	primary   lipgloss.Style
	secondary lipgloss.Style
	muted     lipgloss.Style
	err       lipgloss.Style
	warning   lipgloss.Style
	text      lipgloss.Style
	border    lipgloss.Style
}

// Name returns the theme's name.
func (t *Theme) Name() string { return t.name }

// Primary returns the primary style for emphasis.
func (t *Theme) Primary() lipgloss.Style { return t.primary }

// Secondary returns the secondary style for less prominent elements.
func (t *Theme) Secondary() lipgloss.Style { return t.secondary }

// Muted returns the muted style for de-emphasized elements.
func (t *Theme) Muted() lipgloss.Style { return t.muted }

// Error returns the style for error states.
func (t *Theme) Error() lipgloss.Style { return t.err }

// Warning returns the style for warning states.
func (t *Theme) Warning() lipgloss.Style { return t.warning }

// Text returns the style for regular text.
func (t *Theme) Text() lipgloss.Style { return t.text }

// Border returns the style for borders.
func (t *Theme) Border() lipgloss.Style { return t.border }

// DefaultTheme returns the standard color theme.
func DefaultTheme() *Theme {
	return &Theme{
		name:      "default",
		primary:   Primary,
		secondary: Secondary,
		muted:     Muted,
		err:       Error,
		warning:   Warning,
		text:      Text,
		border:    lipgloss.NewStyle().Foreground(BorderColor),
	}
}

// MonoTheme returns a colorless theme for limited terminals.
func MonoTheme() *Theme {
	plain := lipgloss.NewStyle()
	return &Theme{
		name:      "mono",
		primary:   plain.Bold(true),
		secondary: plain,
		muted:     plain.Faint(true),
		err:       plain.Bold(true),
		warning:   plain,
		text:      plain,
		border:    plain,
	}
}

// ThemeByName returns the named theme, falling back to the default.
func ThemeByName(name string) *Theme {
	switch name {
	case "mono":
		return MonoTheme()
	default:
		return DefaultTheme()
	}
}
