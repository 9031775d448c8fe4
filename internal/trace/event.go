package trace

import (
	"sync/atomic"
	"time"
)

// Scope indicates the granularity level of the event.
// Lower numeric values represent higher-level/coarser events.
type Scope uint8

const (
	// ScopeDriver represents top-level driver operations.
	ScopeDriver Scope = iota + 1
	// ScopePass represents analysis passes (load, normalize, render, cache).
	ScopePass
	// ScopeCallsite represents per-callsite processing.
	ScopeCallsite
	// ScopeArg represents per-argument normalization (most detailed).
	ScopeArg
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeCallsite:
		return "callsite"
	case ScopeArg:
		return "arg"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time   time.Time // wall-clock timestamp
	Seq    uint64    // global sequence number (monotonic)
	Scope  Scope     // granularity level
	Name   string    // e.g., "normalize", "callsite:make_point"
	Detail string    // optional detail message
}

var seqCounter atomic.Uint64

// NextSeq returns the next global sequence number.
func NextSeq() uint64 {
	return seqCounter.Add(1)
}
