package decay

import "tuplex/internal/types"

// Instantiator models the host type-inference capability: given the ordered
// element-type list, it produces a fully parameterized container type. Any
// container factory that defers to Normalize for its parameters inherits
// wrapper unwrapping without authoring its own rules.
type Instantiator interface {
	Instantiate(elems []types.TypeID) types.TypeID
}

// TupleInstantiator instantiates tuple types through the interner.
type TupleInstantiator struct {
	Interner *types.Interner
}

// Instantiate registers (or finds) the tuple type with the given elements.
func (ti TupleInstantiator) Instantiate(elems []types.TypeID) types.TypeID {
	return ti.Interner.RegisterTuple(elems)
}

// Build normalizes every argument and hands the resulting element types to
// the instantiator. Returns the storage list and the container TypeID.
func Build(in *types.Interner, inst Instantiator, args []types.ArgDescriptor) ([]Storage, types.TypeID) {
	storages := ElementTypes(in, args)
	elems := make([]types.TypeID, len(storages))
	for i, s := range storages {
		elems[i] = s.ElementType(in)
	}
	return storages, inst.Instantiate(elems)
}
