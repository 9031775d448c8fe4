// Package trace provides a small tracing subsystem for the tuplex driver.
//
// Enable tracing via command-line flags:
//
//	tuplex analyze --trace=- --trace-level=phase
//
// Verbosity is controlled by levels (off, phase, detail, debug) and events
// are categorized by scope (driver, pass, callsite, arg). Tracers propagate
// through the analysis via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//	t.Emit(&trace.Event{Scope: trace.ScopePass, Name: "normalize"})
package trace
