// Package diagnostics carries the "optional progress callback" mentioned
// throughout spec §7: generators and placers that hit an infeasible-options
// situation never fail outright, they emit a Diagnostic and keep going with
// a best-effort result. This package is a thin logrus wrapper, matching how
// opd-ai-goldbox-rpg wires a *logrus.Logger through its subsystems instead
// of relying on the standard library's log package.
package diagnostics

import (
	"github.com/sirupsen/logrus"
)

// Severity classifies a Diagnostic the way validation issues are classified
// in spec §4.10 (error/warning/info), reused here for generation-time
// diagnostics so both surfaces read consistently.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic is a single best-effort notice: "I could not fully satisfy
// your request, here is what happened instead."
type Diagnostic struct {
	Component string
	Severity  Severity
	Message   string
	Fields    map[string]interface{}
}

// Callback receives Diagnostics as they occur. A nil Callback is always
// safe to invoke through Emit.
type Callback func(Diagnostic)

// Emit calls cb with d if cb is non-nil; otherwise it is a no-op. Every
// generator and placer in this module accepts a nil-safe Callback rather
// than requiring callers to install one.
func Emit(cb Callback, d Diagnostic) {
	if cb != nil {
		cb(d)
	}
}

// Logger wraps a *logrus.Logger and exposes a Callback that logs at the
// level matching the Diagnostic's Severity. Construct once per process and
// share across generation calls; logrus.Logger is safe for concurrent use.
type Logger struct {
	entry *logrus.Logger
}

// NewLogger returns a Logger writing structured fields through logrus.
func NewLogger(l *logrus.Logger) *Logger {
	if l == nil {
		l = logrus.New()
	}
	return &Logger{entry: l}
}

// Callback returns a diagnostics.Callback bound to this Logger, suitable to
// pass directly as a generator's progress callback.
func (l *Logger) Callback() Callback {
	return func(d Diagnostic) {
		fields := logrus.Fields{"component": d.Component}
		for k, v := range d.Fields {
			fields[k] = v
		}
		entry := l.entry.WithFields(fields)
		switch d.Severity {
		case SeverityError:
			entry.Error(d.Message)
		case SeverityWarning:
			entry.Warn(d.Message)
		default:
			entry.Info(d.Message)
		}
	}
}
