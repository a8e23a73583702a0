package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// traceBuffer is a slog.Handler keeping the most recent engine trace
// events for display. Attrs from the enter/exit events are rendered
// inline; handler grouping is not needed here and is ignored.
type traceBuffer struct {
	mu    sync.Mutex
	lines []string
	max   int
}

func newTraceBuffer(max int) *traceBuffer {
	return &traceBuffer{max: max}
}

func (t *traceBuffer) Logger() *slog.Logger { return slog.New(t) }

func (t *traceBuffer) Enabled(context.Context, slog.Level) bool { return true }

func (t *traceBuffer) Handle(_ context.Context, r slog.Record) error {
	line := r.Message
	r.Attrs(func(a slog.Attr) bool {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value.Any())
		return true
	})
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, line)
	if len(t.lines) > t.max {
		t.lines = t.lines[len(t.lines)-t.max:]
	}
	return nil
}

func (t *traceBuffer) WithAttrs([]slog.Attr) slog.Handler { return t }

func (t *traceBuffer) WithGroup(string) slog.Handler { return t }

func (t *traceBuffer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = nil
}

func (t *traceBuffer) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.lines...)
}
