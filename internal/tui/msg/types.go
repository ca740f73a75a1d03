package msg

import "time"

// TickMsg is sent on each periodic UI tick. It drives the demo clock and
// any time-based status updates.
type TickMsg time.Time

// ArmFailureMsg arms a demo widget to panic on its next pass. Phase selects
// which pass blows up: "update" or "view".
type ArmFailureMsg struct {
	// Target is the widget name to arm.
	Target string
	// Phase is the pass that should panic ("update" or "view").
	Phase string
}
