package pdfrender

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/pdfrender/internal/nopslog"
)

// loggerPtr stores the active logger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(nopslog.Logger())
}

// SetLogger configures the logger used by pdfrender and its backends.
// By default nothing is logged. Pass nil to restore the silent default.
//
// SetLogger is safe for concurrent use. Backends capture the logger when
// they are created, so call it before creating them.
//
// Log levels used:
//   - [slog.LevelDebug]: per-call diagnostics (hooks, font fallbacks,
//     unsupported paints)
//   - [slog.LevelWarn]: recoverable misuse (a second SetViewBox, an
//     unbalanced clip)
//
// Example:
//
//	pdfrender.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = nopslog.Logger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Backend packages call it to share
// the configuration without an import cycle.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
