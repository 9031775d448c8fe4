package trace

import "context"

type tracerKey struct{}

// WithTracer attaches a tracer to the context.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext extracts the tracer from the context, returning Nop when none
// is attached.
func FromContext(ctx context.Context) Tracer {
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok && t != nil {
		return t
	}
	return Nop
}
