package errors

import (
	"fmt"
	"testing"
)

func TestFromPanic_StringValue(t *testing.T) {
	err := FromPanic("something broke", []byte("stack"))

	if err.Error() != "panic: something broke" {
		t.Errorf("Error() = %q, want %q", err.Error(), "panic: something broke")
	}
	if err.Unwrap() != nil {
		t.Errorf("Unwrap() = %v, want nil for non-error panic value", err.Unwrap())
	}
	if string(err.Stack) != "stack" {
		t.Errorf("Stack = %q, want %q", err.Stack, "stack")
	}
}

func TestFromPanic_ErrorValue(t *testing.T) {
	cause := New("root cause")
	err := FromPanic(cause, nil)

	if !Is(err, cause) {
		t.Error("expected errors.Is to see through PanicError to the cause")
	}
}

func TestFromPanic_Severity(t *testing.T) {
	err := FromPanic("boom", nil)
	if got := err.Severity(); got != SeverityError {
		t.Errorf("Severity() = %v, want SeverityError", got)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", New("boom"), false},
		{"transient", NewTransient(New("boom")), true},
		{"transient formatted", Transientf("attempt %d failed", 3), true},
		{"wrapped transient", fmt.Errorf("outer: %w", NewTransient(New("boom"))), true},
		{"panic carrying transient", FromPanic(NewTransient(New("boom")), nil), true},
		{"panic carrying plain error", FromPanic(New("boom"), nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsPanic(t *testing.T) {
	if IsPanic(New("boom")) {
		t.Error("plain error should not be classified as panic")
	}
	if !IsPanic(FromPanic("boom", nil)) {
		t.Error("PanicError should be classified as panic")
	}
	if !IsPanic(fmt.Errorf("outer: %w", error(FromPanic("boom", nil)))) {
		t.Error("wrapped PanicError should be classified as panic")
	}
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("must be non-negative").WithKey("retry.max_attempts").WithValue(-1)

	want := "config error [key=retry.max_attempts]: must be non-negative"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !Is(err, ErrInvalidConfig) {
		t.Error("ConfigError should match ErrInvalidConfig")
	}
}

func TestGetSeverity(t *testing.T) {
	if got := GetSeverity(nil); got != SeverityDebug {
		t.Errorf("GetSeverity(nil) = %v, want SeverityDebug", got)
	}
	if got := GetSeverity(New("boom")); got != SeverityError {
		t.Errorf("GetSeverity(plain) = %v, want SeverityError", got)
	}
	if got := GetSeverity(FromPanic("boom", nil)); got != SeverityError {
		t.Errorf("GetSeverity(panic) = %v, want SeverityError", got)
	}
}

func TestWrap(t *testing.T) {
	base := New("base")
	wrapped := Wrap(base, "context")

	if wrapped.Error() != "context: base" {
		t.Errorf("Wrap() = %q, want %q", wrapped.Error(), "context: base")
	}
	if !Is(wrapped, base) {
		t.Error("wrapped error should match base via errors.Is")
	}
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.severity, got, tt.want)
		}
	}
}
