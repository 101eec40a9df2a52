// Package diag collects the non-fatal diagnostics a single transpilation
// pass produces (dropped rules, malformed declarations, tokenizer errors)
// into one joined error, per spec.md §7's "collected, never thrown" policy.
package diag

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tdewolff-labs/cqpolyfill/logger"
	"github.com/tdewolff-labs/cqpolyfill/token"
)

// Sink accumulates diagnostics during one pass and logs each one through
// the ambient logger as it arrives (grounded on rupor-github/fbc's
// nil-safe *zap.Logger injection, via logger.WithFallback).
type Sink struct {
	log *zap.Logger
	err error
}

// NewSink returns a Sink that logs through log, falling back to a no-op
// logger when log is nil.
func NewSink(log *zap.Logger) *Sink {
	return &Sink{log: logger.WithFallback(log)}
}

// Add records one diagnostic at pos with a formatted message.
func (s *Sink) Add(pos token.Pos, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.err = multierr.Append(s.err, fmt.Errorf("%d:%d: %s", pos.Line, pos.Column, msg))
	s.log.Warn(msg, zap.Int("line", pos.Line), zap.Int("column", pos.Column))
}

// AddTokenizerDiagnostics folds tokenizer-level diagnostics into the sink.
func (s *Sink) AddTokenizerDiagnostics(diags []token.Diagnostic) {
	for _, d := range diags {
		s.Add(d.Pos, "%s", d.Message)
	}
}

// Err returns the joined error accumulated so far, nil if nothing was
// recorded.
func (s *Sink) Err() error {
	return s.err
}
