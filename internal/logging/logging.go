// Package logging wraps github.com/charmbracelet/log behind the small
// interface the engine's inner loops need: a handful of leveled calls and
// a host-selectable sink (spec.md §7: "a process-singleton logger whose
// output destination is host-configurable"). There is no package-level
// singleton — a *Logger is built once by the host and threaded into every
// component that can hit a bounds-overflow or dimension-mismatch case, per
// the Design Notes' "global state... becomes explicit configuration."
package logging

import (
	"io"
	"os"

	charm "github.com/charmbracelet/log"
)

// Sink selects where a Logger writes.
type Sink int

const (
	// SinkNone discards all log output.
	SinkNone Sink = iota
	// SinkStderr writes to the process's standard error.
	SinkStderr
	// SinkFile writes to a caller-provided file.
	SinkFile
)

// Logger is the engine-wide logging handle. The zero value is not usable;
// construct one with New.
type Logger struct {
	l *charm.Logger
}

// Options configures a new Logger.
type Options struct {
	Sink   Sink
	File   *os.File // required when Sink == SinkFile
	Prefix string   // e.g. "sal"
}

// New builds a Logger for the given options.
func New(opts Options) *Logger {
	var w io.Writer
	switch opts.Sink {
	case SinkFile:
		if opts.File == nil {
			w = io.Discard
		} else {
			w = opts.File
		}
	case SinkStderr:
		w = os.Stderr
	default:
		w = io.Discard
	}
	l := charm.NewWithOptions(w, charm.Options{
		ReportTimestamp: opts.Sink != SinkNone,
		Prefix:          opts.Prefix,
	})
	return &Logger{l: l}
}

// Discard is a Logger that drops everything; useful as a zero-cost default
// for components constructed without an explicit host logger.
func Discard() *Logger {
	return New(Options{Sink: SinkNone})
}

// Warn logs a clamp/bounds-overflow style warning (spec.md §7 policy:
// "clamp, produce best-effort output, log at error level" / "log").
func (l *Logger) Warn(msg string, kv ...any) {
	if l == nil || l.l == nil {
		return
	}
	l.l.Warn(msg, kv...)
}

// Error logs an unrecoverable-but-non-fatal condition.
func (l *Logger) Error(msg string, kv ...any) {
	if l == nil || l.l == nil {
		return
	}
	l.l.Error(msg, kv...)
}

// Info logs a routine informational event (e.g. an IR swap).
func (l *Logger) Info(msg string, kv ...any) {
	if l == nil || l.l == nil {
		return
	}
	l.l.Info(msg, kv...)
}
