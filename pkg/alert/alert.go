// Package alert reports failures that need a developer's attention, as opposed
// to the alerts shown to the user in the page.
package alert

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

type Notifier interface {
	Msg(ctx context.Context, msg string, args ...interface{}) error
	Recover(ctx context.Context)
}

type slogNotifier struct {
	l *slog.Logger
}

// NewSlogNotifier reports through l, or the default logger when l is nil.
func NewSlogNotifier(l *slog.Logger) *slogNotifier {
	if l == nil {
		l = slog.Default()
	}

	return &slogNotifier{l: l}
}

var _ Notifier = (*slogNotifier)(nil)

func (n *slogNotifier) Msg(ctx context.Context, msg string, args ...interface{}) error {
	n.l.ErrorContext(ctx, fmt.Sprintf(msg, args...))
	return nil
}

// Recover must be deferred directly.
func (n *slogNotifier) Recover(ctx context.Context) {
	if r := recover(); r != nil {
		n.l.ErrorContext(ctx, "recovered from panic",
			"panic", fmt.Sprint(r),
			"callstack", getCallstack())
	}
}

func getCallstack() string {
	pcs := make([]uintptr, 20)
	depth := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:depth])

	var sb strings.Builder
	for f, more := frames.Next(); more; f, more = frames.Next() {
		sb.WriteString(fmt.Sprintf("%s: %d\n", f.Function, f.Line))
	}

	return sb.String()
}
