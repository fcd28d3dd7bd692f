package snowgo

import (
	"context"
	"log/slog"
	"sync"
)

var (
	loggerMu sync.RWMutex
	logger   = slog.New(discardHandler{})
)

// SetLogger sets the logger used by the default registry and by registries
// created without WithLogger. Pass nil to silence logging again.
func SetLogger(l *slog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		l = slog.New(discardHandler{})
	}
	logger = l
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// discardHandler drops every record.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
