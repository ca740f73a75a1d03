// Package msg defines the message types and command factories shared by the
// demo TUI. Boundary lifecycle messages live in the boundary package; this
// package carries the app-level messages that drive the surrounding chrome.
package msg
