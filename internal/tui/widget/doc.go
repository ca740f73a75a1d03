// Package widget holds the demo pane models wrapped by containment
// boundaries in the showcase TUI. The widgets are ordinary tea.Model
// implementations; the flaky ones can be armed to panic in a chosen pass so
// containment and retry can be exercised interactively.
package widget
