// Package event provides a synchronous pub-sub bus for boundary lifecycle
// events. Observers outside the component tree (loggers, counters, tests)
// subscribe to capture, retry, and recovery events without coupling to the
// boundaries that emit them.
package event
