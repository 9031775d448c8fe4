package trace

import (
	"context"
	"strings"
	"testing"
)

func TestStreamTracerRespectsLevel(t *testing.T) {
	var buf strings.Builder
	tr := NewStreamTracer(&buf, LevelPhase)

	tr.Emit(&Event{Scope: ScopePass, Name: "normalize"})
	tr.Emit(&Event{Scope: ScopeArg, Name: "arg 0"})

	out := buf.String()
	if !strings.Contains(out, "normalize") {
		t.Fatalf("pass-scope event should be emitted at phase level: %q", out)
	}
	if strings.Contains(out, "arg 0") {
		t.Fatalf("arg-scope event must be filtered at phase level: %q", out)
	}
}

func TestNewReturnsNopWhenOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Enabled() {
		t.Fatalf("off tracer must be disabled")
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := ParseLevel("detail"); err != nil || lvl != LevelDetail {
		t.Fatalf("expected detail, got %v (%v)", lvl, err)
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected an error for an unknown level")
	}
}

func TestFromContextDefaultsToNop(t *testing.T) {
	if tr := FromContext(context.Background()); tr != Nop {
		t.Fatalf("expected the nop tracer")
	}
}
