// Package diagfmt renders interned types and storage descriptors for
// human-readable reports.
package diagfmt

import (
	"fmt"
	"strings"

	"tuplex/internal/decay"
	"tuplex/internal/types"
)

// Type renders a TypeID using the structural syntax the manifest mirrors:
// "const int", "int[5]", "*int", "fn(int) -> bool", "ref[double]",
// "&mut double", "(int, &mut double)".
func Type(in *types.Interner, id types.TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	base := renderBase(in, tt)
	if tt.Quals != 0 {
		return tt.Quals.String() + " " + base
	}
	return base
}

func renderBase(in *types.Interner, tt types.Type) string {
	switch tt.Kind {
	case types.KindUnit:
		return "unit"
	case types.KindBool:
		return "bool"
	case types.KindString:
		return "string"
	case types.KindInt, types.KindUint, types.KindFloat:
		return renderNumeric(tt)
	case types.KindNamed:
		return renderNamed(in, tt)
	case types.KindPointer:
		return "*" + Type(in, tt.Elem)
	case types.KindArray:
		if tt.Count == types.ArrayDynamicLength {
			return Type(in, tt.Elem) + "[]"
		}
		return fmt.Sprintf("%s[%d]", Type(in, tt.Elem), tt.Count)
	case types.KindFn:
		return renderFn(in, tt)
	case types.KindRef:
		return "ref[" + Type(in, tt.Elem) + "]"
	case types.KindReference:
		return "&mut " + Type(in, tt.Elem)
	case types.KindTuple:
		return renderTuple(in, tt)
	default:
		return "<" + tt.Kind.String() + ">"
	}
}

func renderNumeric(tt types.Type) string {
	if tt.Kind == types.KindFloat && tt.Width == types.Width64 {
		return "double"
	}
	name := tt.Kind.String()
	if tt.Width == types.WidthAny || (tt.Kind == types.KindFloat && tt.Width == types.Width32) {
		return name
	}
	return fmt.Sprintf("%s%d", name, tt.Width)
}

func renderNamed(in *types.Interner, tt types.Type) string {
	if int(tt.Payload) == 0 {
		return "<named>"
	}
	info, ok := in.NamedInfo(in.Intern(types.Type{Kind: types.KindNamed, Payload: tt.Payload}))
	if !ok {
		return "<named>"
	}
	return info.Name
}

func renderFn(in *types.Interner, tt types.Type) string {
	info, ok := in.FnInfo(in.Intern(tt.Unqualified()))
	if !ok {
		return "fn(?)"
	}
	params := make([]string, len(info.Params))
	for i, p := range info.Params {
		params[i] = Type(in, p)
	}
	out := "fn(" + strings.Join(params, ", ") + ")"
	if info.Result != types.NoTypeID && info.Result != in.Builtins().Unit {
		out += " -> " + Type(in, info.Result)
	}
	return out
}

func renderTuple(in *types.Interner, tt types.Type) string {
	info, ok := in.TupleInfo(in.Intern(tt.Unqualified()))
	if !ok {
		return "(?)"
	}
	elems := make([]string, len(info.Elems))
	for i, e := range info.Elems {
		elems[i] = Type(in, e)
	}
	return "(" + strings.Join(elems, ", ") + ")"
}

// Storage renders a storage descriptor.
func Storage(in *types.Interner, s decay.Storage) string {
	if s.Class == decay.ClassReference {
		return "&mut " + Type(in, s.Type)
	}
	return Type(in, s.Type)
}
