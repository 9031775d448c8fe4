package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Invalid TypeID
	Unit    TypeID
	Bool    TypeID
	String  TypeID
	Int     TypeID
	Uint    TypeID
	Float   TypeID
	Double  TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Not goroutine-safe; concurrent analyses each own an interner.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	fns      []FnInfo
	tuples   []TupleInfo
	named    []NamedInfo
	namedIdx map[string]uint32
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index:    make(map[typeKey]TypeID, 64),
		namedIdx: make(map[string]uint32, 16),
	}
	in.fns = append(in.fns, FnInfo{}) // reserve 0 as invalid sentinel
	in.tuples = append(in.tuples, TupleInfo{})
	in.named = append(in.named, NamedInfo{})
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Unit = in.Intern(Type{Kind: KindUnit})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Int = in.Intern(MakeInt(WidthAny))
	in.builtins.Uint = in.Intern(MakeUint(WidthAny))
	in.builtins.Float = in.Intern(MakeFloat(Width32))
	in.builtins.Double = in.Intern(MakeFloat(Width64))
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	key := typeKey(t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Qualify interns a qualified variant of the given type.
func (in *Interner) Qualify(id TypeID, q Qual) TypeID {
	if q == 0 {
		return id
	}
	return in.Intern(in.MustLookup(id).WithQuals(q))
}

// Unqualify interns the unqualified variant of the given type.
func (in *Interner) Unqualify(id TypeID) TypeID {
	tt := in.MustLookup(id)
	if tt.Quals == 0 {
		return id
	}
	return in.Intern(tt.Unqualified())
}

// RefTarget reports whether id is the explicit reference marker ref[X]
// (regardless of top-level qualifiers) and extracts X.
func (in *Interner) RefTarget(id TypeID) (TypeID, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindRef {
		return NoTypeID, false
	}
	return tt.Elem, true
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Count   uint32
	Width   Width
	Quals   Qual
	Payload uint32
}
