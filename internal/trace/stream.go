package trace

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// StreamTracer writes events immediately to an io.Writer as text lines.
type StreamTracer struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
}

// NewStreamTracer creates a new StreamTracer.
func NewStreamTracer(w io.Writer, level Level) *StreamTracer {
	return &StreamTracer{w: w, level: level}
}

// Emit writes an event to the output.
func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	ev.Seq = NextSeq()

	line := fmt.Sprintf("[%s] #%d %-8s %s", ev.Time.Format("15:04:05.000"), ev.Seq, ev.Scope, ev.Name)
	if ev.Detail != "" {
		line += " " + ev.Detail
	}
	line += "\n"

	t.mu.Lock()
	defer t.mu.Unlock()
	// Best-effort write: tracing must never disrupt the analysis.
	_, _ = io.WriteString(t.w, line)
}

// Flush is a no-op for unbuffered stream output.
func (t *StreamTracer) Flush() error { return nil }

// Close flushes and closes the underlying writer when it is closable.
func (t *StreamTracer) Close() error {
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Level returns the configured level.
func (t *StreamTracer) Level() Level { return t.level }

// Enabled returns true when the level is above off.
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
