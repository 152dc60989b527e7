// Package logsink buffers slog records as (severity, text) entries until the
// TUI's log screen drains them.
//
// Handle never blocks on the consumer: the UI event loop itself logs through
// the same handler, so delivery is a pending slice plus a one-slot wake-up
// channel rather than a synchronous send.
package logsink

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Entry is a single formatted log line.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// core is shared by a handler and every handler derived from it through
// WithAttrs/WithGroup.
type core struct {
	mu      sync.Mutex
	pending []Entry
	limit   int
	ready   chan struct{}
}

// Handler is a slog.Handler feeding the log screen.
type Handler struct {
	core   *core
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// New returns a handler emitting records at or above level. limit bounds the
// number of undrained entries; the oldest are dropped first. A non-positive
// limit keeps everything.
func New(level slog.Leveler, limit int) *Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &Handler{
		core: &core{
			limit: limit,
			ready: make(chan struct{}, 1),
		},
		level: level,
	}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		appendAttr(&b, "", a)
	}
	prefix := strings.Join(h.groups, ".")
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, prefix, a)
		return true
	})

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	h.core.push(Entry{Time: ts, Level: r.Level, Message: b.String()})
	return nil
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	prefix := strings.Join(h.groups, ".")
	next.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		next.attrs = append(next.attrs, a)
	}
	return &next
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(append([]string(nil), h.groups...), name)
	return &next
}

// Ready is signalled whenever new entries are waiting to be drained.
func (h *Handler) Ready() <-chan struct{} {
	return h.core.ready
}

// Drain returns and clears every pending entry, oldest first.
func (h *Handler) Drain() []Entry {
	c := h.core
	c.mu.Lock()
	defer c.mu.Unlock()

	out := c.pending
	c.pending = nil
	return out
}

func (c *core) push(e Entry) {
	c.mu.Lock()
	c.pending = append(c.pending, e)
	if c.limit > 0 && len(c.pending) > c.limit {
		c.pending = append([]Entry(nil), c.pending[len(c.pending)-c.limit:]...)
	}
	c.mu.Unlock()

	select {
	case c.ready <- struct{}{}:
	default:
	}
}

func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	switch {
	case key == "":
		key = prefix
	case prefix != "":
		key = prefix + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			appendAttr(b, key, ga)
		}
		return
	}
	val := a.Value.String()
	if strings.ContainsAny(val, " \t\"=") {
		val = fmt.Sprintf("%q", val)
	}
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(val)
}
