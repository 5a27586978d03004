package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/manzanit0/addressmap/pkg/middleware"
)

// InitGlobalSlog sets the default logger for a binary. format is "json" or
// "text"; debug lowers the level to include debug records.
func InitGlobalSlog(service, format string, debug bool) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}

	logger := slog.New(NewContextHandler(os.Stdout, format, opts))
	logger = logger.With("service", service)
	slog.SetDefault(logger)
}

// ContextHandler stamps every record with the trace ID found in the context.
type ContextHandler struct {
	handler slog.Handler
}

func NewContextHandler(w io.Writer, format string, opts *slog.HandlerOptions) *ContextHandler {
	if format == "text" {
		return &ContextHandler{slog.NewTextHandler(w, opts)}
	}

	return &ContextHandler{slog.NewJSONHandler(w, opts)}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name)}
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(middleware.CtxKeyTraceID).(string); ok {
			r.AddAttrs(slog.String(string(middleware.CtxKeyTraceID), traceID))
		}
	}

	return h.handler.Handle(ctx, r)
}
