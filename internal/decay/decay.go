// Package decay computes the storage types a generic container infers for
// its constructor arguments. Plain arguments decay the way they would when
// passed by value to an ordinary function; ref[X] arguments are the sole
// signal that the caller wants the container to hold a mutable alias
// instead of a copy.
package decay

import "tuplex/internal/types"

// Normalize maps one declared argument type to its storage type. Total and
// deterministic: every well-formed descriptor maps to exactly one Storage.
//
// The binding mode is dropped first; the residual type decides everything
// else, in priority order: ref wrapper, array, function, default.
func Normalize(in *types.Interner, arg types.ArgDescriptor) Storage {
	t := in.MustLookup(arg.Type)
	switch t.Kind {
	case types.KindRef:
		// Fires for all qualifier/binding combinations of the wrapper and
		// never recurses: ref[ref[X]] yields an alias to ref[X], not to X.
		// The target passes through untouched, qualifiers included.
		return ReferenceTo(t.Elem)
	case types.KindArray:
		// The length is discarded along with top-level qualifiers.
		return ValueOf(in.Intern(types.MakePointer(t.Elem)))
	case types.KindFn:
		// Functions decay to pointers, never to by-value copies.
		fn := in.Intern(t.Unqualified())
		return ValueOf(in.Intern(types.MakePointer(fn)))
	default:
		return ValueOf(in.Intern(t.Unqualified()))
	}
}

// ElementTypes applies Normalize independently to each argument, preserving
// order and arity. No cross-argument rules exist.
func ElementTypes(in *types.Interner, args []types.ArgDescriptor) []Storage {
	out := make([]Storage, len(args))
	for i, arg := range args {
		out[i] = Normalize(in, arg)
	}
	return out
}
