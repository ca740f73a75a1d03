package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/bulkhead/internal/boundary"
	"github.com/Iron-Ham/bulkhead/internal/boundary/policy"
	"github.com/Iron-Ham/bulkhead/internal/config"
	"github.com/Iron-Ham/bulkhead/internal/event"
	"github.com/Iron-Ham/bulkhead/internal/logging"
	"github.com/Iron-Ham/bulkhead/internal/report"
	"github.com/Iron-Ham/bulkhead/internal/tui/msg"
	"github.com/Iron-Ham/bulkhead/internal/tui/panel"
	"github.com/Iron-Ham/bulkhead/internal/tui/styles"
	"github.com/Iron-Ham/bulkhead/internal/tui/widget"
)

// Layout constants
const (
	// chromeHeight is the vertical space taken by the header, status line,
	// and help bar around the pane row.
	chromeHeight = 6
	// paneChrome is the horizontal space each pane's border and padding use.
	paneChrome = 4
)

// pane couples a boundary with its chrome: the title shown above it, the
// widget name the arm keys target, and the boundary IDs a retry reaches.
type pane struct {
	title     string
	boundary  *boundary.Boundary
	armTarget string
	retryIDs  []string
}

// Model holds the demo TUI state: a row of panes, each wrapped in its own
// containment boundary, plus the optional auto-retry supervisor.
type Model struct {
	cfg        *config.Config
	logger     *logging.Logger
	supervisor *policy.Supervisor

	panes []pane
	focus int

	width    int
	height   int
	ready    bool
	quitting bool

	// status is the most recent lifecycle announcement, shown below the panes.
	status string
}

// NewModel builds the demo pane row. Each pane gets its own boundary so
// failures stay contained to the pane that raised them.
func NewModel(cfg *config.Config, logger *logging.Logger, bus *event.Bus, reporter report.Reporter) Model {
	if logger == nil {
		logger = logging.NopLogger()
	}
	theme := styles.ThemeByName(cfg.TUI.Theme)
	fallback := panel.NewFallbackPanel(theme,
		panel.WithTitle(cfg.Fallback.Title),
		panel.WithMessage(cfg.Fallback.Message),
		panel.WithDetail(cfg.Fallback.ShowDetail),
	)

	opts := func(extra ...boundary.Option) []boundary.Option {
		base := []boundary.Option{
			boundary.WithFallback(fallback),
			boundary.WithReporter(reporter),
			boundary.WithBus(bus),
			boundary.WithLogger(logger),
		}
		return append(base, extra...)
	}

	inner := boundary.New("nested-inner", widget.NewFlaky("inner-flaky"), opts()...)

	m := Model{
		cfg:    cfg,
		logger: logger,
		panes: []pane{
			{
				title:    "clock",
				boundary: boundary.New("clock", widget.NewClock(), opts()...),
				retryIDs: []string{"clock"},
			},
			{
				title:     "flaky",
				boundary:  boundary.New("flaky", widget.NewFlaky("flaky"), opts()...),
				armTarget: "flaky",
				retryIDs:  []string{"flaky"},
			},
			{
				title:     "nested",
				boundary:  boundary.New("nested", widget.NewNested("nested", inner), opts()...),
				armTarget: "inner-flaky",
				retryIDs:  []string{"nested", "nested-inner"},
			},
			{
				// Fails during Init on first boot; starts out in fallback.
				title:    "boot",
				boundary: boundary.New("boot", widget.NewBrittle("brittle"), opts()...),
				retryIDs: []string{"boot"},
			},
		},
	}

	if cfg.Retry.Auto {
		delay := policy.ConstantDelay(cfg.Retry.Delay())
		if cfg.Retry.Backoff {
			delay = policy.BackoffDelay(cfg.Retry.Delay())
		}
		m.supervisor = policy.NewSupervisor(policy.Policy{
			MaxAttempts: cfg.Retry.MaxAttempts,
			Delay:       delay,
		}, logger)
	}
	return m
}

// Init starts each pane's boundary and the demo tick.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick()}
	for _, p := range m.panes {
		cmds = append(cmds, p.boundary.Init())
	}
	return tea.Batch(cmds...)
}

// Update routes program messages: keys drive the demo, lifecycle messages
// feed the status line and the supervisor, everything else is forwarded to
// every pane's boundary.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch v := message.(type) {
	case tea.KeyMsg:
		return m.handleKey(v)

	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		m.ready = true
		return m, m.forward(m.paneSize())

	case msg.TickMsg:
		return m, tea.Batch(m.forward(v), m.tick())

	case boundary.FailureCapturedMsg:
		m.status = fmt.Sprintf("captured: %s (episode %d)",
			v.Record.Provenance, v.Record.Episode)
		return m, m.observe(v)

	case boundary.RecoveredMsg:
		m.status = fmt.Sprintf("recovered: boundary=%s (episode %d)",
			v.BoundaryID, v.Episode)
		return m, m.observe(v)

	case boundary.RetryMsg:
		// Scheduled by the supervisor or broadcast by the retry key; the
		// matching boundary consumes it, the rest forward it inward.
		return m, tea.Batch(m.observe(v), m.forward(v))
	}

	return m, m.forward(message)
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		m.focus = (m.focus + 1) % len(m.panes)
		return m, nil

	case "shift+tab":
		m.focus = (m.focus - 1 + len(m.panes)) % len(m.panes)
		return m, nil

	case "x":
		if target := m.panes[m.focus].armTarget; target != "" {
			return m, m.forward(msg.ArmFailureMsg{Target: target, Phase: "update"})
		}
		return m, nil

	case "v":
		if target := m.panes[m.focus].armTarget; target != "" {
			return m, m.forward(msg.ArmFailureMsg{Target: target, Phase: "view"})
		}
		return m, nil

	case "r":
		var cmds []tea.Cmd
		for _, id := range m.panes[m.focus].retryIDs {
			retry := boundary.RetryMsg{BoundaryID: id}
			cmds = append(cmds, m.observe(retry), m.forward(retry))
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// forward delivers a message to every pane's boundary.
func (m Model) forward(message tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i := range m.panes {
		model, cmd := m.panes[i].boundary.Update(message)
		m.panes[i].boundary = model.(*boundary.Boundary)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// observe feeds a lifecycle message to the auto-retry supervisor, if enabled.
func (m Model) observe(message tea.Msg) tea.Cmd {
	if m.supervisor == nil {
		return nil
	}
	return m.supervisor.Observe(message)
}

func (m Model) tick() tea.Cmd {
	return msg.Tick(time.Duration(m.cfg.TUI.TickMs) * time.Millisecond)
}

// paneSize returns the window size each pane's subtree should lay out for.
func (m Model) paneSize() tea.WindowSizeMsg {
	width := m.width/len(m.panes) - paneChrome
	if width < 10 {
		width = 10
	}
	height := m.height - chromeHeight
	if height < 3 {
		height = 3
	}
	return tea.WindowSizeMsg{Width: width, Height: height}
}

// View renders the header, the pane row, the status line, and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	size := m.paneSize()
	rendered := make([]string, 0, len(m.panes))
	for i, p := range m.panes {
		border := styles.PaneBorder
		if i == m.focus {
			border = styles.PaneBorderFocused
		}

		title := styles.Text.Render(p.title)
		if p.boundary.State() == boundary.Failed {
			title = styles.Error.Render(p.title + " ✗")
		} else if i == m.focus {
			title = styles.Primary.Render(p.title)
		}

		body := lipgloss.NewStyle().
			Width(size.Width).
			Height(size.Height).
			Render(p.boundary.View())
		rendered = append(rendered, border.Render(title+"\n"+body))
	}

	var b strings.Builder
	b.WriteString(styles.Header.Render("bulkhead · containment demo"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")
	b.WriteString(styles.StatusLine.Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(m.helpBar())
	return b.String()
}

func (m Model) statusLine() string {
	if m.status == "" {
		return "all panes healthy"
	}
	return m.status
}

func (m Model) helpBar() string {
	keys := []struct{ key, desc string }{
		{"tab", "focus"},
		{"x", "break update"},
		{"v", "break view"},
		{"r", "retry"},
		{"q", "quit"},
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, styles.HelpKey.Render(k.key)+" "+k.desc)
	}
	return styles.HelpBar.Render(strings.Join(parts, "  •  "))
}
