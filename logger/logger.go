// Package logger holds the two module-wide loggers used across the
// polyfill core: one for progress/debug tracing of a transpile run, one for
// non-fatal warnings (dropped rules, unresolved features, recovered parse
// errors). Both are safe to use uninitialized — a nil *zap.Logger anywhere
// in this package's API falls back to zap.NewNop().
package logger

import "go.uber.org/zap"

// Progress traces the main steps of a transpile run (rule counts, descriptor
// allocation, recursive descent into nested at-rules).
var Progress = zap.NewNop().Named("cqpolyfill.progress")

// Warning reports non-fatal conditions: a malformed declaration dropped
// during recovery, a container name colliding with a reserved keyword, an
// unknown media feature, a catastrophic transpile falling back to the
// original source.
var Warning = zap.NewNop().Named("cqpolyfill.warning")

// Configure installs base as the backing logger for both Progress and
// Warning, named "progress" and "warning" respectively. Passing nil resets
// both to no-ops, which is the default.
func Configure(base *zap.Logger) {
	if base == nil {
		base = zap.NewNop()
	}
	Progress = base.Named("progress")
	Warning = base.Named("warning")
}

// WithFallback returns log, or a no-op logger if log is nil. Packages that
// accept an optional *zap.Logger parameter (rather than using the package
// globals) should run it through this first.
func WithFallback(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
