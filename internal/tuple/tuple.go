// Package tuple is the runtime counterpart of the decay factory: it builds
// tuple values whose elements are fresh copies or mutable aliases, matching
// the storage types the normalizer computed for the call site.
package tuple

import (
	"fmt"

	"tuplex/internal/decay"
	"tuplex/internal/types"
)

// Value carries a runtime value together with its type.
type Value struct {
	Type types.TypeID
	Data any
}

// Arg is one constructor argument. For ref[X] arguments, Referent points at
// the aliased value the wrapper carries; the wrapper itself is discarded
// after extraction.
type Arg struct {
	Desc     types.ArgDescriptor
	Val      Value
	Referent *Value
}

type element struct {
	storage decay.Storage
	copied  Value  // ClassValue: fresh copy of the argument
	alias   *Value // ClassReference: mutable alias to the referent
}

// Tuple is a constructed container value.
type Tuple struct {
	Type  types.TypeID
	elems []element
}

// New constructs a tuple from the given arguments, normalizing each one
// independently. A ref[X] argument must carry a referent.
func New(in *types.Interner, args []Arg) (*Tuple, error) {
	descs := make([]types.ArgDescriptor, len(args))
	for i, a := range args {
		descs[i] = a.Desc
	}
	storages, tupleID := decay.Build(in, decay.TupleInstantiator{Interner: in}, descs)

	elems := make([]element, len(args))
	for i, a := range args {
		s := storages[i]
		if s.Class == decay.ClassReference {
			if a.Referent == nil {
				return nil, fmt.Errorf("argument %d: ref argument has no referent", i)
			}
			elems[i] = element{storage: s, alias: a.Referent}
			continue
		}
		elems[i] = element{storage: s, copied: Value{Type: s.Type, Data: a.Val.Data}}
	}
	return &Tuple{Type: tupleID, elems: elems}, nil
}

// Len returns the number of elements.
func (t *Tuple) Len() int { return len(t.elems) }

// Storage returns the storage descriptor of element i.
func (t *Tuple) Storage(i int) decay.Storage { return t.elems[i].storage }

// Get reads element i. Aliased elements read through to the referent, so
// the result observes writes made after construction.
func (t *Tuple) Get(i int) Value {
	e := t.elems[i]
	if e.alias != nil {
		return *e.alias
	}
	return e.copied
}

// Set writes element i. Aliased elements write through to the referent;
// value elements only mutate the tuple's own copy.
func (t *Tuple) Set(i int, data any) {
	e := &t.elems[i]
	if e.alias != nil {
		e.alias.Data = data
		return
	}
	e.copied.Data = data
}
