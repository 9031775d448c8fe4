package decay

import (
	"fmt"

	"tuplex/internal/types"
)

// Class distinguishes the two ways a container can hold an element.
type Class uint8

const (
	// ClassValue stores a plain, qualifier-stripped, non-reference copy.
	ClassValue Class = iota + 1
	// ClassReference stores a mutable alias, never a temporary binding.
	ClassReference
)

func (c Class) String() string {
	switch c {
	case ClassValue:
		return "value"
	case ClassReference:
		return "reference"
	default:
		return fmt.Sprintf("Class(%d)", c)
	}
}

// Storage is the normalizer's output: what a generic container actually
// holds for one element. For ClassValue, Type is the decayed element type;
// for ClassReference, Type is the referent (the wrapper's target).
type Storage struct {
	Class Class
	Type  types.TypeID
}

// ValueOf builds a by-value storage descriptor.
func ValueOf(id types.TypeID) Storage {
	return Storage{Class: ClassValue, Type: id}
}

// ReferenceTo builds a mutable-alias storage descriptor.
func ReferenceTo(id types.TypeID) Storage {
	return Storage{Class: ClassReference, Type: id}
}

// ElementType maps a storage descriptor to the container element TypeID:
// the type itself for values, &mut X for references.
func (s Storage) ElementType(in *types.Interner) types.TypeID {
	if s.Class == ClassReference {
		return in.Intern(types.MakeReference(s.Type))
	}
	return s.Type
}
