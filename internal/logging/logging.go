// Package logging wires Latch's ambient structured logger.
//
// The example pack carries no third-party structured logging library;
// the prior implementation logs ad hoc via fmt.Fprintln to stderr.
// log/slog is the idiomatic stdlib replacement for that ad hoc style and
// is used here instead of inventing a hand-rolled leveled logger, per
// SPEC_FULL.md's Ambient Stack section.
package logging

import (
	"io"
	"log/slog"
)

// New builds a text-handler slog.Logger writing to w at the given level.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
