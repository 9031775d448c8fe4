package types

import (
	"fmt"
	"strings"
)

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindBool
	KindString
	KindInt
	KindUint
	KindFloat
	KindNamed
	KindPointer
	KindArray
	KindFn
	KindRef       // explicit reference marker ref[X]
	KindReference // mutable alias &mut X (storage result)
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindNamed:
		return "named"
	case KindPointer:
		return "pointer"
	case KindArray:
		return "array"
	case KindFn:
		return "fn"
	case KindRef:
		return "ref"
	case KindReference:
		return "reference"
	case KindTuple:
		return "tuple"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of integers/floats.
type Width uint8

const (
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
)

// Qual is a bitset of top-level type qualifiers.
type Qual uint8

const (
	QualConst Qual = 1 << iota
	QualVolatile
)

// Has reports whether all bits of q2 are set in q.
func (q Qual) Has(q2 Qual) bool { return q&q2 == q2 }

func (q Qual) String() string {
	var parts []string
	if q.Has(QualConst) {
		parts = append(parts, "const")
	}
	if q.Has(QualVolatile) {
		parts = append(parts, "volatile")
	}
	return strings.Join(parts, " ")
}

// ParseQual converts a qualifier name to its bit.
func ParseQual(s string) (Qual, error) {
	switch s {
	case "const":
		return QualConst, nil
	case "volatile":
		return QualVolatile, nil
	default:
		return 0, fmt.Errorf("invalid qualifier: %q (expected: const|volatile)", s)
	}
}

// ArrayDynamicLength marks slices with unknown compile-time length.
const ArrayDynamicLength = ^uint32(0)

// Type is a compact descriptor for any supported type. Classification is the
// single Kind tag, so an array that is also a function is unrepresentable.
type Type struct {
	Kind    Kind
	Elem    TypeID // array element, pointer/reference target, ref[X] target
	Count   uint32 // for arrays (ArrayDynamicLength means slice)
	Width   Width  // for numeric primitives
	Quals   Qual   // top-level qualifiers
	Payload uint32 // slot into fn/tuple/named side tables
}

// Descriptor helpers ---------------------------------------------------------

// MakeInt describes a signed integer of the given width (WidthAny for "int").
func MakeInt(width Width) Type {
	return Type{Kind: KindInt, Width: width}
}

// MakeUint describes an unsigned integer type.
func MakeUint(width Width) Type {
	return Type{Kind: KindUint, Width: width}
}

// MakeFloat describes a floating-point type.
func MakeFloat(width Width) Type {
	return Type{Kind: KindFloat, Width: width}
}

// MakeArray describes an array of element type. Use ArrayDynamicLength for
// open-ended slices (T[]).
func MakeArray(elem TypeID, count uint32) Type {
	return Type{Kind: KindArray, Elem: elem, Count: count}
}

// MakePointer describes a raw pointer.
func MakePointer(elem TypeID) Type {
	return Type{Kind: KindPointer, Elem: elem}
}

// MakeRef describes ref[X], the explicit reference marker. X passes through
// untouched: a qualified or nested-ref target keeps its identity.
func MakeRef(target TypeID) Type {
	return Type{Kind: KindRef, Elem: target}
}

// MakeReference describes the mutable alias &mut X.
func MakeReference(elem TypeID) Type {
	return Type{Kind: KindReference, Elem: elem}
}

// WithQuals returns a copy of t with the given qualifiers added.
func (t Type) WithQuals(q Qual) Type {
	t.Quals |= q
	return t
}

// Unqualified returns a copy of t with top-level qualifiers stripped.
func (t Type) Unqualified() Type {
	t.Quals = 0
	return t
}
