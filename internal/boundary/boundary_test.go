package boundary

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/bulkhead/internal/errors"
	"github.com/Iron-Ham/bulkhead/internal/event"
	"github.com/Iron-Ham/bulkhead/internal/report"
)

// boomMsg makes the stub with the matching name panic during its update pass.
type boomMsg struct{ target string }

// armViewMsg makes the stub with the matching name panic during its next
// render pass.
type armViewMsg struct{ target string }

// stub is a minimal leaf component with switchable failure modes.
type stub struct {
	name        string
	text        string
	panicInInit bool
	viewArmed   bool
}

func (s stub) Name() string { return s.name }

func (s stub) Init() tea.Cmd {
	if s.panicInInit {
		panic("setup failure in " + s.name)
	}
	return nil
}

func (s stub) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case boomMsg:
		if v.target == s.name {
			panic("update failure in " + s.name)
		}
	case armViewMsg:
		if v.target == s.name {
			s.viewArmed = true
		}
	}
	return s, nil
}

func (s stub) View() string {
	if s.viewArmed {
		panic("render failure in " + s.name)
	}
	return s.text
}

// container forwards passes to its children and joins their output,
// simulating an intermediate node in the component tree.
type container struct {
	children []tea.Model
}

func (c container) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, child := range c.children {
		cmds = append(cmds, child.Init())
	}
	return tea.Batch(cmds...)
}

func (c container) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	children := make([]tea.Model, len(c.children))
	for i, child := range c.children {
		updated, cmd := child.Update(msg)
		children[i] = updated
		cmds = append(cmds, cmd)
	}
	c.children = children
	return c, tea.Batch(cmds...)
}

func (c container) View() string {
	var parts []string
	for _, child := range c.children {
		parts = append(parts, child.View())
	}
	return strings.Join(parts, "|")
}

// cmdPanicModel returns a command whose deferred execution panics. The pass
// that scheduled the command completes normally.
type cmdPanicModel struct{}

func (cmdPanicModel) Init() tea.Cmd { return nil }

func (m cmdPanicModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, func() tea.Msg { panic("panic from command goroutine") }
}

func (cmdPanicModel) View() string { return "ok" }

// panickyFallback simulates a failing failed-state render path.
type panickyFallback struct{}

func (panickyFallback) View(rec *FailureRecord, width, height int) string {
	panic("fallback render failure")
}

// drain executes a command tree and returns the produced messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func findCapture(t *testing.T, msgs []tea.Msg) FailureCapturedMsg {
	t.Helper()
	for _, m := range msgs {
		if captured, ok := m.(FailureCapturedMsg); ok {
			return captured
		}
	}
	t.Fatal("no FailureCapturedMsg produced")
	return FailureCapturedMsg{}
}

func TestNew_NilChildPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("New(nil) should panic")
		}
		if err, ok := r.(error); !ok || !errors.Is(err, errors.ErrNilChild) {
			t.Errorf("panic value = %v, want ErrNilChild", r)
		}
	}()
	New("x", nil)
}

func TestBoundary_CapturesUpdatePanic(t *testing.T) {
	b := New("pane", stub{name: "flaky", text: "content"})

	_, cmd := b.Update(boomMsg{target: "flaky"})

	if b.State() != Failed {
		t.Fatalf("State() = %v, want Failed", b.State())
	}
	rec := b.Failure()
	if rec == nil {
		t.Fatal("Failure() = nil after capture")
	}
	if rec.Provenance.Phase != PhaseUpdate {
		t.Errorf("Phase = %v, want PhaseUpdate", rec.Provenance.Phase)
	}
	if rec.Provenance.Component != "flaky" {
		t.Errorf("Component = %q, want flaky (via Named)", rec.Provenance.Component)
	}
	if !strings.Contains(rec.Message, "update failure in flaky") {
		t.Errorf("Message = %q, want the panic text", rec.Message)
	}
	if !errors.IsPanic(rec.Err) {
		t.Error("record error should be a PanicError")
	}

	captured := findCapture(t, drain(cmd))
	if captured.BoundaryID != "pane" {
		t.Errorf("announced BoundaryID = %q, want pane", captured.BoundaryID)
	}
}

func TestBoundary_CapturesInitPanic(t *testing.T) {
	b := New("pane", stub{name: "broken", panicInInit: true})

	cmd := b.Init()

	if b.State() != Failed {
		t.Fatalf("State() = %v, want Failed", b.State())
	}
	if got := b.Failure().Provenance.Phase; got != PhaseInit {
		t.Errorf("Phase = %v, want PhaseInit", got)
	}
	findCapture(t, drain(cmd))
}

func TestBoundary_CapturesViewPanic(t *testing.T) {
	b := New("pane", stub{name: "flaky", text: "content"})

	b.Update(armViewMsg{target: "flaky"})
	out := b.View()

	if b.State() != Failed {
		t.Fatalf("State() = %v, want Failed", b.State())
	}
	if out != "something went wrong" {
		t.Errorf("View() = %q, want plain fallback output", out)
	}
	if got := b.Failure().Provenance.Phase; got != PhaseView {
		t.Errorf("Phase = %v, want PhaseView", got)
	}

	// The view-phase capture is announced on the next update pass.
	_, cmd := b.Update(struct{}{})
	findCapture(t, drain(cmd))
}

func TestBoundary_CapturesAtDepth(t *testing.T) {
	tree := container{children: []tea.Model{
		stub{name: "ok", text: "fine"},
		container{children: []tea.Model{
			stub{name: "deep-leaf", text: "leaf"},
		}},
	}}
	b := New("root", tree)

	b.Update(boomMsg{target: "deep-leaf"})

	if b.State() != Failed {
		t.Fatalf("State() = %v, want Failed for a panic two levels down", b.State())
	}
	if !strings.Contains(b.Failure().Message, "deep-leaf") {
		t.Errorf("Message = %q, want the deep leaf's panic text", b.Failure().Message)
	}
}

func TestBoundary_SuspendsChildWhileFailed(t *testing.T) {
	b := New("pane", stub{name: "flaky", text: "content"})

	b.Update(boomMsg{target: "flaky"})
	// While failed, messages must not reach the child: arming the view
	// panic would have no effect even after a retry that skipped it.
	b.Update(armViewMsg{target: "flaky"})
	drain(b.Retry())

	if out := b.View(); out != "content" {
		t.Errorf("View() after retry = %q, want %q (message leaked to suspended child)", out, "content")
	}
}

func TestBoundary_CommandPanicsNotCaptured(t *testing.T) {
	b := New("pane", cmdPanicModel{})

	_, cmd := b.Update(struct{}{})
	if b.State() != Healthy {
		t.Fatal("scheduling pass completed; boundary must stay healthy")
	}

	defer func() {
		if recover() == nil {
			t.Error("panic from a command must escape the boundary")
		}
	}()
	drain(cmd)
}

func TestBoundary_RetryIdempotentWhenHealthy(t *testing.T) {
	b := New("pane", stub{name: "ok", text: "content"})

	if cmd := b.Retry(); cmd != nil {
		t.Error("Retry() on a healthy boundary should return nil")
	}
	if b.State() != Healthy {
		t.Errorf("State() = %v, want Healthy", b.State())
	}
	if b.View() != "content" {
		t.Errorf("View() = %q, want unchanged output", b.View())
	}
}

func TestBoundary_RetryRecovers(t *testing.T) {
	b := New("pane", stub{name: "flaky", text: "content"})

	b.Update(boomMsg{target: "flaky"})
	if b.State() != Failed {
		t.Fatal("expected Failed after capture")
	}

	drain(b.Retry())

	if b.State() != Healthy {
		t.Fatalf("State() after retry = %v, want Healthy", b.State())
	}
	if b.Failure() != nil {
		t.Error("Failure() should be cleared by retry")
	}
	if out := b.View(); out != "content" {
		t.Errorf("View() after retry = %q, want normal output", out)
	}

	// The recovery is announced on the update pass after the healthy render.
	_, cmd := b.Update(struct{}{})
	var recovered bool
	for _, m := range drain(cmd) {
		if r, ok := m.(RecoveredMsg); ok {
			recovered = true
			if r.Episode != 1 {
				t.Errorf("RecoveredMsg.Episode = %d, want 1", r.Episode)
			}
		}
	}
	if !recovered {
		t.Error("expected a RecoveredMsg after the first healthy render")
	}
}

func TestBoundary_ReentrantAfterRetry(t *testing.T) {
	b := New("pane", stub{name: "flaky", text: "content"})

	b.Update(boomMsg{target: "flaky"})
	first := b.Failure()
	drain(b.Retry())
	b.Update(boomMsg{target: "flaky"})

	second := b.Failure()
	if second == nil {
		t.Fatal("expected a new capture after retry")
	}
	if second == first {
		t.Error("second episode should produce a new FailureRecord")
	}
	if second.Episode != 2 {
		t.Errorf("Episode = %d, want 2", second.Episode)
	}
}

func TestBoundary_RetryViaMessage(t *testing.T) {
	b := New("pane", stub{name: "flaky", text: "content"})

	b.Update(boomMsg{target: "flaky"})
	b.Update(RetryMsg{BoundaryID: "other"})
	if b.State() != Failed {
		t.Error("RetryMsg for another boundary must not reset this one")
	}

	b.Update(RetryMsg{BoundaryID: "pane"})
	if b.State() != Healthy {
		t.Errorf("State() = %v, want Healthy after targeted RetryMsg", b.State())
	}
}

func TestBoundary_SiblingIsolation(t *testing.T) {
	left := New("left", stub{name: "left-widget", text: "left-ok"})
	right := New("right", stub{name: "right-widget", text: "right-ok"})
	root := container{children: []tea.Model{left, right}}

	updated, _ := root.Update(boomMsg{target: "left-widget"})
	root = updated.(container)

	out := root.View()
	if !strings.Contains(out, "something went wrong") {
		t.Error("failed sibling should render its fallback")
	}
	if !strings.Contains(out, "right-ok") {
		t.Error("healthy sibling should render normally")
	}
	if left.State() != Failed {
		t.Errorf("left.State() = %v, want Failed", left.State())
	}
	if right.State() != Healthy {
		t.Errorf("right.State() = %v, want Healthy", right.State())
	}
}

func TestBoundary_NestedBoundaryShieldsOuter(t *testing.T) {
	inner := New("inner", stub{name: "leaf", text: "leaf-ok"})
	outer := New("outer", container{children: []tea.Model{
		inner,
		stub{name: "sibling", text: "sibling-ok"},
	}})

	outer.Update(boomMsg{target: "leaf"})

	if inner.State() != Failed {
		t.Errorf("inner.State() = %v, want Failed", inner.State())
	}
	if outer.State() != Healthy {
		t.Errorf("outer.State() = %v, want Healthy (inner boundary shields it)", outer.State())
	}

	out := outer.View()
	if !strings.Contains(out, "something went wrong") {
		t.Error("inner fallback should appear inside outer's normal output")
	}
	if !strings.Contains(out, "sibling-ok") {
		t.Error("outer's unrelated child should render normally")
	}
}

func TestBoundary_FallbackPanicEscapesToAncestor(t *testing.T) {
	inner := New("inner", stub{name: "leaf", text: "leaf-ok"},
		WithFallback(panickyFallback{}))
	outer := New("outer", container{children: []tea.Model{inner}})

	outer.Update(boomMsg{target: "leaf"})
	out := outer.View()

	if outer.State() != Failed {
		t.Fatalf("outer.State() = %v, want Failed (inner's fallback panicked)", outer.State())
	}
	if !strings.Contains(outer.Failure().Message, "fallback render failure") {
		t.Errorf("outer captured %q, want the fallback panic", outer.Failure().Message)
	}
	if out != "something went wrong" {
		t.Errorf("outer View() = %q, want outer's own fallback", out)
	}
}

func TestBoundary_ReporterPanicEscapesToAncestor(t *testing.T) {
	bad := report.Func(func(report.Record) { panic("sink exploded") })
	inner := New("inner", stub{name: "leaf", text: "leaf-ok"}, WithReporter(bad))
	outer := New("outer", container{children: []tea.Model{inner}})

	outer.Update(boomMsg{target: "leaf"})

	// Inner flipped its state before reporting, but the reporter panic is
	// not recaptured by inner; the ancestor contains it.
	if inner.State() != Failed {
		t.Errorf("inner.State() = %v, want Failed", inner.State())
	}
	if outer.State() != Failed {
		t.Fatalf("outer.State() = %v, want Failed", outer.State())
	}
	if !strings.Contains(outer.Failure().Message, "sink exploded") {
		t.Errorf("outer captured %q, want the reporter panic", outer.Failure().Message)
	}
}

func TestBoundary_ReportsToSink(t *testing.T) {
	var got []report.Record
	sink := report.Func(func(rec report.Record) { got = append(got, rec) })
	b := New("pane", stub{name: "flaky"}, WithReporter(sink))

	b.Update(boomMsg{target: "flaky"})

	if len(got) != 1 {
		t.Fatalf("reporter received %d records, want 1", len(got))
	}
	rec := got[0]
	if rec.BoundaryID != "pane" || rec.Episode != 1 || rec.Phase != "update" {
		t.Errorf("record = %+v", rec)
	}
	if !strings.Contains(rec.Provenance, "boundary=pane") {
		t.Errorf("Provenance = %q, want boundary trail", rec.Provenance)
	}
	if len(rec.Stack) == 0 {
		t.Error("record should carry the capture-site stack")
	}
}

func TestBoundary_PublishesLifecycleEvents(t *testing.T) {
	bus := event.NewBus()
	var types []string
	bus.SubscribeAll(func(e event.Event) { types = append(types, e.EventType()) })

	b := New("pane", stub{name: "flaky", text: "content"}, WithBus(bus))

	b.Update(boomMsg{target: "flaky"})
	drain(b.Retry())
	b.View()             // first healthy render
	b.Update(struct{}{}) // drains the recovery announcement

	want := []string{event.TypeFailureCaptured, event.TypeRetryRequested, event.TypeRecovered}
	if len(types) != len(want) {
		t.Fatalf("published %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event[%d] = %q, want %q", i, types[i], want[i])
		}
	}
}

func TestBoundary_WindowSizeForFallback(t *testing.T) {
	var gotWidth int
	f := fallbackFunc(func(rec *FailureRecord, width, height int) string {
		gotWidth = width
		return "fb"
	})
	b := New("pane", stub{name: "flaky"}, WithFallback(f))

	b.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	b.Update(boomMsg{target: "flaky"})
	b.View()

	if gotWidth != 120 {
		t.Errorf("fallback width = %d, want 120", gotWidth)
	}
}

// fallbackFunc adapts a function to the Fallback interface for tests.
type fallbackFunc func(rec *FailureRecord, width, height int) string

func (f fallbackFunc) View(rec *FailureRecord, width, height int) string {
	return f(rec, width, height)
}

func TestProvenance_String(t *testing.T) {
	p := Provenance{BoundaryID: "pane", Phase: PhaseView, Component: "widget.Flaky"}
	want := "boundary=pane phase=view component=widget.Flaky"
	if p.String() != want {
		t.Errorf("String() = %q, want %q", p.String(), want)
	}
}

func TestState_String(t *testing.T) {
	if Healthy.String() != "healthy" || Failed.String() != "failed" {
		t.Error("unexpected state strings")
	}
	if State(9).String() != "unknown" {
		t.Error("out-of-range state should stringify as unknown")
	}
}
