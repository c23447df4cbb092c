// Package log adapts structured logging (slog) to the host's printf-style
// log sink. Records are flattened to a single line and emitted through the
// SDK's logging bridge, so slog output lands in the same server log as
// direct Logprintf calls.
package log

import (
	"context"
	"log/slog"
	"strings"
)

// Printer is the subset of the logging bridge the handler needs. Both
// *bridge.Bridge and *plugin.Adapter satisfy it.
type Printer interface {
	Logprintf(format string, args ...any)
}

// HostLogHandler implements slog.Handler on top of a Printer.
type HostLogHandler struct {
	printer Printer
	opts    handlerConfig
	attrs   []slog.Attr
}

// HandlerOption configures the HostLogHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level slog.Level
}

func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level: slog.LevelInfo,
	}
}

// WithLevel sets the minimum log level to emit. Records below this level are
// dropped before any formatting happens.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// NewHandler creates a HostLogHandler emitting through the given printer.
func NewHandler(printer Printer, opts ...HandlerOption) *HostLogHandler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &HostLogHandler{printer: printer, opts: cfg}
}

// Enabled reports whether the handler handles records at the given level.
func (h *HostLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level
}

// WithAttrs returns a handler that includes the given attributes on every
// record.
func (h *HostLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &nh
}

// WithGroup returns a handler for the given group. Groups are not nested in
// the flat host log line; the group name is dropped.
func (h *HostLogHandler) WithGroup(name string) slog.Handler {
	nh := *h
	return &nh
}

// Handle flattens the record to one line and emits it through the printer.
// The bridge applies the host's length ceiling; nothing here can fail.
func (h *HostLogHandler) Handle(_ context.Context, record slog.Record) error {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(record.Level.String())
	sb.WriteString("] ")
	sb.WriteString(record.Message)

	emit := func(attr slog.Attr) {
		key, value := AttrText(attr)
		sb.WriteByte(' ')
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(value)
	}
	for _, attr := range h.attrs {
		emit(attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		emit(attr)
		return true
	})

	h.printer.Logprintf("%s", sb.String())
	return nil
}

// Install routes slog's default logger through the given printer. Plugin
// binaries call this once during startup.
func Install(printer Printer, opts ...HandlerOption) {
	slog.SetDefault(slog.New(NewHandler(printer, opts...)))
}
