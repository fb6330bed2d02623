package asyncscope

import (
	"io"
	"log/slog"

	"go.uber.org/atomic"
)

var logger atomic.Value

func init() {
	logger.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// SetLogger replaces the logger used by task runners. Logging is discarded
// until this is called. Passing nil restores the discarding logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Store(l)
}

func log() *slog.Logger {
	return logger.Load().(*slog.Logger)
}
