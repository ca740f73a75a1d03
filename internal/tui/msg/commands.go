package msg

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Tick returns a command that sends a TickMsg after the given interval.
// This drives periodic UI updates.
func Tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ArmFailure returns a command that arms the named widget to panic in the
// given phase on its next pass.
func ArmFailure(target, phase string) tea.Cmd {
	return func() tea.Msg {
		return ArmFailureMsg{Target: target, Phase: phase}
	}
}
