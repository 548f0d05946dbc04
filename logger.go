package bsp

import "log/slog"

var logger *slog.Logger = discardLogger()

// SetLogger replaces the package logger. Passing nil restores the silent default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discardLogger()
	}
	logger = l
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
