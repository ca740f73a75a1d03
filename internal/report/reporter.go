// Package report defines the failure-reporting collaborator injected into
// containment boundaries. A Reporter is an opaque, fire-and-forget sink:
// boundaries hand it a Record after updating their own state and do not
// inspect any result.
package report

import (
	"time"

	"github.com/Iron-Ham/bulkhead/internal/event"
	"github.com/Iron-Ham/bulkhead/internal/logging"
)

// Record describes a single captured failure, in sink-friendly form.
type Record struct {
	// BoundaryID identifies the capturing boundary.
	BoundaryID string `json:"boundary_id"`
	// Episode is the 1-based failure episode counter for that boundary.
	Episode int `json:"episode"`
	// Phase is the construction phase that raised the failure.
	Phase string `json:"phase"`
	// Message is the human-readable failure message.
	Message string `json:"message"`
	// Provenance identifies which nested unit's construction raised the failure.
	Provenance string `json:"provenance"`
	// Stack is the goroutine stack captured at the recovery site.
	Stack []byte `json:"stack,omitempty"`
	// CapturedAt is when the failure was captured.
	CapturedAt time.Time `json:"captured_at"`
}

// Reporter is the sink interface for captured failures.
type Reporter interface {
	// Report delivers a captured failure to the sink. It returns nothing;
	// delivery problems are the sink's own concern.
	Report(rec Record)
}

// Func adapts a plain function to the Reporter interface.
type Func func(rec Record)

// Report calls the underlying function.
func (f Func) Report(rec Record) { f(rec) }

// LogReporter writes captured failures to a structured logger.
type LogReporter struct {
	logger *logging.Logger
}

// NewLogReporter creates a Reporter backed by the given logger.
func NewLogReporter(logger *logging.Logger) *LogReporter {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &LogReporter{logger: logger}
}

// Report logs the captured failure at ERROR level.
func (r *LogReporter) Report(rec Record) {
	r.logger.WithBoundary(rec.BoundaryID).WithEpisode(rec.Episode).Error(
		"failure captured",
		"phase", rec.Phase,
		"message", rec.Message,
		"provenance", rec.Provenance,
		"captured_at", rec.CapturedAt,
	)
}

// BusReporter republishes captured failures on an event bus, for observers
// that subscribe to lifecycle events rather than receive records directly.
// Boundaries constructed with WithBus already publish their own events; use
// one wiring or the other for a given bus.
type BusReporter struct {
	bus *event.Bus
}

// NewBusReporter creates a Reporter that publishes to the given bus.
func NewBusReporter(bus *event.Bus) *BusReporter {
	return &BusReporter{bus: bus}
}

// Report publishes the record as a FailureCaptured event.
func (r *BusReporter) Report(rec Record) {
	if r.bus == nil {
		return
	}
	r.bus.Publish(event.FailureCaptured{
		BoundaryID: rec.BoundaryID,
		Episode:    rec.Episode,
		Phase:      rec.Phase,
		Message:    rec.Message,
		Time:       rec.CapturedAt,
	})
}

// Multi fans a record out to several reporters in order.
type Multi []Reporter

// NewMulti creates a fan-out reporter. Nil entries are skipped.
func NewMulti(reporters ...Reporter) Multi {
	out := make(Multi, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// Report delivers the record to each reporter in order.
func (m Multi) Report(rec Record) {
	for _, r := range m {
		r.Report(rec)
	}
}

// Nop is a Reporter that discards everything.
type Nop struct{}

// Report discards the record.
func (Nop) Report(Record) {}
