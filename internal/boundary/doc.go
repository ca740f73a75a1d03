// Package boundary implements panic containment for Bubble Tea component
// trees. A Boundary wraps a child model and recovers panics raised
// synchronously while that subtree is being constructed (during Init,
// Update, or View, at any nesting depth), substituting a fallback view for
// the subtree's output until an explicit retry.
//
// The containment boundary is exactly that: a boundary around construction
// passes. Panics raised from tea.Cmd functions, timers, or any other work
// that runs after the pass that scheduled it has completed are not captured,
// and neither are panics raised from the boundary's own fallback render or
// reporting path; those unwind to an ancestor Boundary if one exists.
//
// Usage:
//
//	b := boundary.New("sidebar", sidebarModel,
//	    boundary.WithFallback(panel.NewFallbackPanel(theme)),
//	    boundary.WithReporter(report.NewLogReporter(logger)),
//	)
//	// b is a tea.Model; compose it like any other.
package boundary
