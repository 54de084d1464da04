// Package nopslog provides the silent logger every pdfrender package
// falls back to when none is configured.
package nopslog

import (
	"context"
	"log/slog"
)

// Handler is a slog.Handler that discards all log records.
// Enabled returns false so callers skip formatting entirely.
type Handler struct{}

func (Handler) Enabled(context.Context, slog.Level) bool  { return false }
func (Handler) Handle(context.Context, slog.Record) error { return nil }
func (Handler) WithAttrs([]slog.Attr) slog.Handler        { return Handler{} }
func (Handler) WithGroup(string) slog.Handler             { return Handler{} }

var logger = slog.New(Handler{})

// Logger returns a shared logger backed by Handler.
func Logger() *slog.Logger { return logger }
