package event

import "time"

// Event types published on the bus.
const (
	TypeFailureCaptured = "failure_captured"
	TypeRetryRequested  = "retry_requested"
	TypeRecovered       = "recovered"
)

// Event is the interface all bus events implement.
type Event interface {
	// EventType returns the type string used for subscription matching.
	EventType() string
}

// FailureCaptured is published when a boundary intercepts a panic raised
// during a construction pass inside its subtree.
type FailureCaptured struct {
	// BoundaryID identifies the boundary that captured the failure.
	BoundaryID string
	// Episode is the 1-based failure episode counter for that boundary.
	Episode int
	// Phase is the construction phase during which the panic was raised
	// ("init", "update", or "view").
	Phase string
	// Message is the human-readable failure message.
	Message string
	// Time is when the failure was captured.
	Time time.Time
}

// EventType returns the event type string.
func (FailureCaptured) EventType() string { return TypeFailureCaptured }

// RetryRequested is published when a retry is requested for a failed
// boundary, either manually or by an auto-retry policy.
type RetryRequested struct {
	// BoundaryID identifies the boundary being retried.
	BoundaryID string
	// Manual is true for user-triggered retries, false for policy-driven ones.
	Manual bool
	// Attempt is the policy attempt number, 0 for manual retries.
	Attempt int
	// Time is when the retry was requested.
	Time time.Time
}

// EventType returns the event type string.
func (RetryRequested) EventType() string { return TypeRetryRequested }

// Recovered is published when a previously failed boundary renders its
// subtree successfully after a retry.
type Recovered struct {
	// BoundaryID identifies the boundary that recovered.
	BoundaryID string
	// Episode is the failure episode that was recovered from.
	Episode int
	// Time is when the recovery was observed.
	Time time.Time
}

// EventType returns the event type string.
func (Recovered) EventType() string { return TypeRecovered }
