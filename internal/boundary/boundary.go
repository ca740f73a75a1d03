package boundary

import (
	"fmt"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/bulkhead/internal/errors"
	"github.com/Iron-Ham/bulkhead/internal/event"
	"github.com/Iron-Ham/bulkhead/internal/logging"
	"github.com/Iron-Ham/bulkhead/internal/report"
)

// Boundary wraps a child model and contains panics raised synchronously
// during the subtree's construction passes. It implements tea.Model and can
// be composed anywhere a model is expected, including inside another
// Boundary's subtree.
//
// A Boundary has exactly two states. Healthy: passes flow through to the
// child and its output is returned unchanged. Failed: the child receives no
// messages and the fallback view is substituted until Retry.
type Boundary struct {
	id       string
	child    tea.Model
	fallback Fallback
	reporter report.Reporter
	bus      *event.Bus
	logger   *logging.Logger

	state   State
	rec     *FailureRecord
	episode int

	width  int
	height int

	// Captures that happen during View cannot emit a command from the same
	// pass; they are announced on the next update pass.
	pendingCapture *FailureRecord
	// Episode awaiting a successful render after a retry, 0 if none.
	awaitRecovery int
	// Recovery observed during View, announced on the next update pass.
	pendingRecovered int
}

// Option configures a Boundary.
type Option func(*Boundary)

// WithFallback sets the substitute view for the failed state.
func WithFallback(f Fallback) Option {
	return func(b *Boundary) { b.fallback = f }
}

// WithReporter sets the failure-reporting sink. The reporter is invoked
// after the state update; a panicking reporter is not recaptured by the same
// boundary.
func WithReporter(r report.Reporter) Option {
	return func(b *Boundary) { b.reporter = r }
}

// WithBus sets an event bus on which the boundary publishes its lifecycle
// events (capture, retry, recovery).
func WithBus(bus *event.Bus) Option {
	return func(b *Boundary) { b.bus = bus }
}

// WithLogger sets the structured logger used for capture and retry logging.
func WithLogger(logger *logging.Logger) Option {
	return func(b *Boundary) { b.logger = logger }
}

// New creates a Boundary around child. The id names the boundary in
// provenance trails, retry messages, and published events; it should be
// unique within the tree. Panics with errors.ErrNilChild if child is nil.
func New(id string, child tea.Model, opts ...Option) *Boundary {
	if child == nil {
		panic(errors.ErrNilChild)
	}

	b := &Boundary{
		id:       id,
		child:    child,
		fallback: PlainFallback{},
		logger:   logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ID returns the boundary's identifier.
func (b *Boundary) ID() string { return b.id }

// State returns the current containment state.
func (b *Boundary) State() State { return b.state }

// Failure returns the captured failure record, or nil when healthy.
func (b *Boundary) Failure() *FailureRecord { return b.rec }

// Child returns the wrapped model.
func (b *Boundary) Child() tea.Model { return b.child }

// Init runs the subtree's setup step inside the containment guard.
func (b *Boundary) Init() tea.Cmd {
	cmd, rec := b.containInit()
	if rec != nil {
		return announceCapture(b.id, rec)
	}
	return cmd
}

// Update forwards the message to the subtree inside the containment guard.
// While failed, the subtree is suspended: the child receives nothing until
// a retry succeeds.
func (b *Boundary) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Announce view-phase captures and recoveries deferred from the last
	// render pass.
	if b.pendingCapture != nil {
		cmds = append(cmds, announceCapture(b.id, b.pendingCapture))
		b.pendingCapture = nil
	}
	if b.pendingRecovered != 0 {
		cmds = append(cmds, b.announceRecovered(b.pendingRecovered))
		b.pendingRecovered = 0
	}

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = v.Width, v.Height
	case RetryMsg:
		if v.BoundaryID == b.id {
			cmds = append(cmds, b.retry(v.Attempt))
			return b, tea.Batch(cmds...)
		}
		// Not ours; forward so nested boundaries can see it.
	}

	if b.state == Failed {
		return b, tea.Batch(cmds...)
	}

	child, cmd, rec := b.containUpdate(msg)
	if rec != nil {
		cmds = append(cmds, announceCapture(b.id, rec))
		return b, tea.Batch(cmds...)
	}

	b.child = child
	cmds = append(cmds, cmd)
	return b, tea.Batch(cmds...)
}

// View produces the subtree's output, or the fallback view when failed.
// The failed-state render path is deliberately unguarded: a panicking
// fallback unwinds to an ancestor boundary, never back into this one.
func (b *Boundary) View() string {
	if b.state == Failed {
		return b.fallback.View(b.rec, b.width, b.height)
	}

	out, rec := b.containView()
	if rec != nil {
		b.pendingCapture = rec
		return b.fallback.View(rec, b.width, b.height)
	}

	if b.awaitRecovery != 0 {
		b.pendingRecovered = b.awaitRecovery
		b.awaitRecovery = 0
	}
	return out
}

// Retry resets a failed boundary to healthy and re-attempts the subtree's
// setup step. Calling Retry on a healthy boundary is a no-op and returns nil.
func (b *Boundary) Retry() tea.Cmd {
	return b.retry(0)
}

func (b *Boundary) retry(attempt int) tea.Cmd {
	if b.state != Failed {
		return nil
	}

	episode := b.rec.Episode
	b.state = Healthy
	b.rec = nil
	b.awaitRecovery = episode

	b.logger.WithBoundary(b.id).WithEpisode(episode).Info("retrying",
		"manual", attempt == 0, "attempt", attempt)
	if b.bus != nil {
		b.bus.Publish(event.RetryRequested{
			BoundaryID: b.id,
			Manual:     attempt == 0,
			Attempt:    attempt,
			Time:       time.Now(),
		})
	}

	cmd, rec := b.containInit()
	if rec != nil {
		return announceCapture(b.id, rec)
	}
	return cmd
}

// -----------------------------------------------------------------------------
// Containment guard
// -----------------------------------------------------------------------------

func (b *Boundary) containInit() (cmd tea.Cmd, rec *FailureRecord) {
	defer func() {
		if r := recover(); r != nil {
			rec = b.capture(PhaseInit, r, debug.Stack())
			cmd = nil
		}
	}()
	return b.child.Init(), nil
}

func (b *Boundary) containUpdate(msg tea.Msg) (child tea.Model, cmd tea.Cmd, rec *FailureRecord) {
	defer func() {
		if r := recover(); r != nil {
			rec = b.capture(PhaseUpdate, r, debug.Stack())
			child, cmd = nil, nil
		}
	}()
	child, cmd = b.child.Update(msg)
	return child, cmd, nil
}

func (b *Boundary) containView() (out string, rec *FailureRecord) {
	defer func() {
		if r := recover(); r != nil {
			rec = b.capture(PhaseView, r, debug.Stack())
			out = ""
		}
	}()
	return b.child.View(), nil
}

// capture is the failure-capture hook: it records the failure and flips the
// state, exactly once per episode. Reporting runs after the state update;
// panics raised by the reporter (or the bus sink) escape this boundary and
// unwind to an ancestor.
func (b *Boundary) capture(phase Phase, value any, stack []byte) *FailureRecord {
	b.episode++
	rec := &FailureRecord{
		Err:     errors.FromPanic(value, stack),
		Message: fmt.Sprint(value),
		Provenance: Provenance{
			BoundaryID: b.id,
			Phase:      phase,
			Component:  componentName(b.child),
			Stack:      stack,
		},
		Episode:    b.episode,
		CapturedAt: time.Now(),
	}
	b.state = Failed
	b.rec = rec
	b.awaitRecovery = 0
	b.pendingRecovered = 0

	b.logger.WithBoundary(b.id).WithEpisode(rec.Episode).Error("failure captured",
		"phase", string(phase),
		"message", rec.Message,
		"provenance", rec.Provenance.String())

	if b.bus != nil {
		b.bus.Publish(event.FailureCaptured{
			BoundaryID: b.id,
			Episode:    rec.Episode,
			Phase:      string(phase),
			Message:    rec.Message,
			Time:       rec.CapturedAt,
		})
	}
	if b.reporter != nil {
		b.reporter.Report(report.Record{
			BoundaryID: b.id,
			Episode:    rec.Episode,
			Phase:      string(phase),
			Message:    rec.Message,
			Provenance: rec.Provenance.String(),
			Stack:      stack,
			CapturedAt: rec.CapturedAt,
		})
	}
	return rec
}

func (b *Boundary) announceRecovered(episode int) tea.Cmd {
	b.logger.WithBoundary(b.id).WithEpisode(episode).Info("recovered")
	if b.bus != nil {
		b.bus.Publish(event.Recovered{
			BoundaryID: b.id,
			Episode:    episode,
			Time:       time.Now(),
		})
	}
	id := b.id
	return func() tea.Msg {
		return RecoveredMsg{BoundaryID: id, Episode: episode}
	}
}

func announceCapture(id string, rec *FailureRecord) tea.Cmd {
	return func() tea.Msg {
		return FailureCapturedMsg{BoundaryID: id, Record: rec}
	}
}

func componentName(child tea.Model) string {
	if n, ok := child.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", child)
}
