package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

// LogRecord is one captured log entry. Attrs holds both the attrs bound
// on the logger and those passed at the call site, keyed by their
// group-qualified name ("request.id" for WithGroup("request") + "id").
type LogRecord struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// BufferedSlogHandler collects log records in memory so tests can assert
// on what was logged. Handlers derived via WithAttrs and WithGroup share
// the buffer, and all methods are safe for concurrent use.
type BufferedSlogHandler struct {
	store  *recordStore
	bound  []slog.Attr
	prefix string
	t      *testing.T
}

type recordStore struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewBufferedSlogHandler creates an empty handler. Captured records are
// echoed through t.Logf so a failing test shows its log context.
func NewBufferedSlogHandler(t *testing.T) *BufferedSlogHandler {
	return &BufferedSlogHandler{store: &recordStore{}, t: t}
}

// NewTestLogger returns a logger wired to a fresh buffered handler.
func NewTestLogger(t *testing.T) (*slog.Logger, *BufferedSlogHandler) {
	handler := NewBufferedSlogHandler(t)
	return slog.New(handler), handler
}

// Enabled implements slog.Handler. Tests capture every level.
func (h *BufferedSlogHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle implements slog.Handler.
func (h *BufferedSlogHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(h.bound)+r.NumAttrs())
	for _, a := range h.bound {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[h.prefix+a.Key] = a.Value.Any()
		return true
	})

	h.store.mu.Lock()
	h.store.records = append(h.store.records, LogRecord{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	h.store.mu.Unlock()

	if h.t != nil {
		h.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

// WithAttrs implements slog.Handler. Bound attrs are qualified with the
// group prefix in effect when they were bound.
func (h *BufferedSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	child := *h
	child.bound = make([]slog.Attr, 0, len(h.bound)+len(attrs))
	child.bound = append(child.bound, h.bound...)
	for _, a := range attrs {
		child.bound = append(child.bound, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &child
}

// WithGroup implements slog.Handler. Groups flatten into dotted attr
// keys rather than nesting.
func (h *BufferedSlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	child := *h
	child.prefix = h.prefix + name + "."
	return &child
}

// GetRecords returns a copy of all captured records.
func (h *BufferedSlogHandler) GetRecords() []LogRecord {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	records := make([]LogRecord, len(h.store.records))
	copy(records, h.store.records)
	return records
}

// GetRecordsByLevel returns the captured records at exactly level.
func (h *BufferedSlogHandler) GetRecordsByLevel(level slog.Level) []LogRecord {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	var filtered []LogRecord
	for _, r := range h.store.records {
		if r.Level == level {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// ContainsMessage reports whether any captured message contains the
// given substring.
func (h *BufferedSlogHandler) ContainsMessage(message string) bool {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	for _, r := range h.store.records {
		if strings.Contains(r.Message, message) {
			return true
		}
	}
	return false
}

// ContainsAttr reports whether any captured record carries the attr
// under its group-qualified key.
func (h *BufferedSlogHandler) ContainsAttr(key string, value any) bool {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	for _, r := range h.store.records {
		if v, ok := r.Attrs[key]; ok && v == value {
			return true
		}
	}
	return false
}

// Count returns the number of captured records.
func (h *BufferedSlogHandler) Count() int {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return len(h.store.records)
}

// Clear discards all captured records.
func (h *BufferedSlogHandler) Clear() {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.records = h.store.records[:0]
}
