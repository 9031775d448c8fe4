package driver

import (
	"fmt"

	"tuplex/internal/project"
	"tuplex/internal/types"
)

// lowerArg converts one manifest argument spec into a call-site descriptor.
func lowerArg(in *types.Interner, spec project.ArgSpec) (types.ArgDescriptor, error) {
	binding, err := types.ParseBinding(spec.Binding)
	if err != nil {
		return types.ArgDescriptor{}, err
	}
	id, err := lowerType(in, spec.TypeSpec)
	if err != nil {
		return types.ArgDescriptor{}, err
	}
	return types.ArgDescriptor{Type: id, Binding: binding}, nil
}

// lowerType interns the structural type a spec describes. Qualifiers apply
// at the top level of the resulting type.
func lowerType(in *types.Interner, spec project.TypeSpec) (types.TypeID, error) {
	var quals types.Qual
	for _, name := range spec.Quals {
		q, err := types.ParseQual(name)
		if err != nil {
			return types.NoTypeID, err
		}
		quals |= q
	}

	var id types.TypeID
	switch spec.Kind {
	case "", "named":
		if spec.Name == "" {
			return types.NoTypeID, fmt.Errorf("named type spec is missing a name")
		}
		id = namedType(in, spec.Name)
	case "array":
		if spec.Elem == nil {
			return types.NoTypeID, fmt.Errorf("array type spec is missing elem")
		}
		elem, err := lowerType(in, *spec.Elem)
		if err != nil {
			return types.NoTypeID, err
		}
		count := spec.Count
		if count == 0 {
			count = types.ArrayDynamicLength
		}
		id = in.Intern(types.MakeArray(elem, count))
	case "fn":
		params := make([]types.TypeID, len(spec.Params))
		for i, p := range spec.Params {
			pid, err := lowerType(in, p)
			if err != nil {
				return types.NoTypeID, err
			}
			params[i] = pid
		}
		result := in.Builtins().Unit
		if spec.Result != nil {
			rid, err := lowerType(in, *spec.Result)
			if err != nil {
				return types.NoTypeID, err
			}
			result = rid
		}
		id = in.RegisterFn(params, result)
	case "ref":
		if spec.Target == nil {
			return types.NoTypeID, fmt.Errorf("ref type spec is missing target")
		}
		target, err := lowerType(in, *spec.Target)
		if err != nil {
			return types.NoTypeID, err
		}
		id = in.Intern(types.MakeRef(target))
	default:
		return types.NoTypeID, fmt.Errorf("invalid type kind: %q (expected: named|array|fn|ref)", spec.Kind)
	}
	return in.Qualify(id, quals), nil
}

// namedType resolves builtin names and falls back to opaque named types.
func namedType(in *types.Interner, name string) types.TypeID {
	b := in.Builtins()
	switch name {
	case "unit":
		return b.Unit
	case "bool":
		return b.Bool
	case "string":
		return b.String
	case "int":
		return b.Int
	case "uint":
		return b.Uint
	case "float", "float32":
		return b.Float
	case "double", "float64":
		return b.Double
	case "int8":
		return in.Intern(types.MakeInt(types.Width8))
	case "int16":
		return in.Intern(types.MakeInt(types.Width16))
	case "int32":
		return in.Intern(types.MakeInt(types.Width32))
	case "int64":
		return in.Intern(types.MakeInt(types.Width64))
	case "uint8":
		return in.Intern(types.MakeUint(types.Width8))
	case "uint16":
		return in.Intern(types.MakeUint(types.Width16))
	case "uint32":
		return in.Intern(types.MakeUint(types.Width32))
	case "uint64":
		return in.Intern(types.MakeUint(types.Width64))
	default:
		return in.RegisterNamed(name)
	}
}
