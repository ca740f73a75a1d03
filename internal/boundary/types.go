package boundary

import (
	"fmt"
	"strings"
	"time"
)

// State is the containment state of a Boundary.
type State int

const (
	// Healthy means the subtree is rendered normally.
	Healthy State = iota
	// Failed means a capture occurred and the fallback view is substituted.
	Failed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Phase identifies the construction pass during which a failure was raised.
type Phase string

const (
	// PhaseInit is the subtree's setup step.
	PhaseInit Phase = "init"
	// PhaseUpdate is a reaction to a lifecycle signal delivered during an
	// update pass.
	PhaseUpdate Phase = "update"
	// PhaseView is the subtree's rendering step.
	PhaseView Phase = "view"
)

// Provenance identifies which nested unit's construction raised a failure.
type Provenance struct {
	// BoundaryID is the capturing boundary.
	BoundaryID string
	// Phase is the construction pass that raised the failure.
	Phase Phase
	// Component is the wrapped child's name (via Named) or its Go type.
	Component string
	// Stack is the goroutine stack captured at the recovery site.
	Stack []byte
}

// String returns a single-line provenance trail.
func (p Provenance) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "boundary=%s phase=%s", p.BoundaryID, p.Phase)
	if p.Component != "" {
		fmt.Fprintf(&b, " component=%s", p.Component)
	}
	return b.String()
}

// FailureRecord describes one captured failure episode.
type FailureRecord struct {
	// Err is the panic converted to an error (*errors.PanicError).
	Err error
	// Message is the human-readable failure message.
	Message string
	// Provenance identifies where the failure was raised.
	Provenance Provenance
	// Episode is the 1-based failure episode counter for the boundary.
	Episode int
	// CapturedAt is when the failure was captured.
	CapturedAt time.Time
}

// Named is optionally implemented by child models to contribute a
// human-readable name to failure provenance.
type Named interface {
	Name() string
}

// Fallback produces the substitute view for a failed boundary.
// Implementations must be pure: render fixed structure from the inputs.
type Fallback interface {
	// View renders the fallback for the captured failure within the given
	// dimensions. rec is never nil.
	View(rec *FailureRecord, width, height int) string
}

// PlainFallback is the unstyled default fallback used when none is injected.
type PlainFallback struct {
	// ShowDetail reveals the panic message when set.
	ShowDetail bool
}

// View renders a minimal textual fallback.
func (f PlainFallback) View(rec *FailureRecord, width, height int) string {
	if f.ShowDetail {
		return fmt.Sprintf("something went wrong: %s (%s)", rec.Message, rec.Provenance)
	}
	return "something went wrong"
}

// -----------------------------------------------------------------------------
// Messages
// -----------------------------------------------------------------------------

// FailureCapturedMsg announces a capture to the enclosing program.
type FailureCapturedMsg struct {
	// BoundaryID identifies the capturing boundary.
	BoundaryID string
	// Record is the captured failure.
	Record *FailureRecord
}

// RetryMsg requests a retry of the boundary with the matching ID.
// Attempt is 0 for manual retries; auto-retry policies stamp their attempt
// number so observers can distinguish the two.
type RetryMsg struct {
	BoundaryID string
	Attempt    int
}

// RecoveredMsg announces that a previously failed boundary rendered its
// subtree successfully after a retry.
type RecoveredMsg struct {
	BoundaryID string
	// Episode is the failure episode that was recovered from.
	Episode int
}
