package gb

import "log/slog"

var logger = slog.Default()

// SetLogger replaces the package logger. The embedder calls this once
// during startup with its level-filtered logger.
func SetLogger(l *slog.Logger) {
	logger = l
}
