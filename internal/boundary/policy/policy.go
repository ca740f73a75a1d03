// Package policy provides optional auto-retry for containment boundaries.
//
// The base boundary never retries on its own; recovery is an explicit,
// manual action. A Supervisor composes a retry policy around boundaries from
// the outside: it observes capture announcements, classifies the failure,
// and schedules delayed retry messages until its attempt budget runs out.
// The policy is a value the caller constructs, never behavior hardcoded into
// the boundary itself.
package policy

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/bulkhead/internal/boundary"
	"github.com/Iron-Ham/bulkhead/internal/errors"
	"github.com/Iron-Ham/bulkhead/internal/logging"
)

// Classifier decides whether a captured failure is transient and worth
// re-attempting automatically.
type Classifier func(rec *boundary.FailureRecord) bool

// TransientOnly is the default classifier: retry only failures whose panic
// value carries the transient marker.
func TransientOnly(rec *boundary.FailureRecord) bool {
	return errors.IsTransient(rec.Err)
}

// Always classifies every captured failure as retryable.
func Always(*boundary.FailureRecord) bool { return true }

// Policy describes when and how often a failed boundary is retried
// automatically.
type Policy struct {
	// Classifier selects which failures are auto-retried.
	// Defaults to TransientOnly.
	Classifier Classifier
	// MaxAttempts is the retry budget per failure run. Zero disables
	// auto-retry entirely.
	MaxAttempts int
	// Delay returns the wait before the given 1-based attempt.
	// Defaults to a constant one second.
	Delay func(attempt int) time.Duration
}

// ConstantDelay returns a schedule that waits the same duration before
// every attempt.
func ConstantDelay(d time.Duration) func(int) time.Duration {
	return func(int) time.Duration { return d }
}

// BackoffDelay returns a schedule that doubles the base duration for each
// subsequent attempt.
func BackoffDelay(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		d := base
		for i := 1; i < attempt; i++ {
			d *= 2
		}
		return d
	}
}

// Supervisor tracks per-boundary attempt counts and turns capture
// announcements into delayed retry messages. It is safe for concurrent use.
type Supervisor struct {
	policy Policy
	logger *logging.Logger

	mu       sync.Mutex
	attempts map[string]int // boundary id -> attempts this failure run
}

// NewSupervisor creates a Supervisor for the given policy. A nil logger
// disables logging.
func NewSupervisor(p Policy, logger *logging.Logger) *Supervisor {
	if p.Classifier == nil {
		p.Classifier = TransientOnly
	}
	if p.Delay == nil {
		p.Delay = ConstantDelay(time.Second)
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Supervisor{
		policy:   p,
		logger:   logger,
		attempts: make(map[string]int),
	}
}

// Observe inspects a program message and returns a command scheduling the
// next retry, or nil. Wire it into the program's Update alongside normal
// message handling.
func (s *Supervisor) Observe(msg tea.Msg) tea.Cmd {
	switch v := msg.(type) {
	case boundary.FailureCapturedMsg:
		return s.onCapture(v)
	case boundary.RecoveredMsg:
		s.reset(v.BoundaryID)
	case boundary.RetryMsg:
		// A manual retry starts a fresh budget.
		if v.Attempt == 0 {
			s.reset(v.BoundaryID)
		}
	}
	return nil
}

func (s *Supervisor) onCapture(msg boundary.FailureCapturedMsg) tea.Cmd {
	if !s.policy.Classifier(msg.Record) {
		s.logger.WithBoundary(msg.BoundaryID).Debug("failure not retryable")
		return nil
	}

	s.mu.Lock()
	attempt := s.attempts[msg.BoundaryID] + 1
	if attempt > s.policy.MaxAttempts {
		s.mu.Unlock()
		s.logger.WithBoundary(msg.BoundaryID).Warn("retry budget exhausted",
			"max_attempts", s.policy.MaxAttempts)
		return nil
	}
	s.attempts[msg.BoundaryID] = attempt
	s.mu.Unlock()

	delay := s.policy.Delay(attempt)
	s.logger.WithBoundary(msg.BoundaryID).Info("scheduling retry",
		"attempt", attempt, "delay", delay)

	id := msg.BoundaryID
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return boundary.RetryMsg{BoundaryID: id, Attempt: attempt}
	})
}

func (s *Supervisor) reset(boundaryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, boundaryID)
}

// Attempts returns the attempt count for a boundary's current failure run.
func (s *Supervisor) Attempts(boundaryID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts[boundaryID]
}
