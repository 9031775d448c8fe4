package decay

import (
	"testing"

	"tuplex/internal/types"
)

func TestNormalizePlainValue(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	s := Normalize(in, types.ArgDescriptor{Type: b.Int})
	if s.Class != ClassValue || s.Type != b.Int {
		t.Fatalf("expected value int, got %v %v", s.Class, s.Type)
	}
}

func TestNormalizeIgnoresBindingAndQualifiers(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	cases := []types.ArgDescriptor{
		{Type: b.Int, Binding: types.BindLValue},
		{Type: b.Int, Binding: types.BindRValue},
		{Type: in.Qualify(b.Int, types.QualConst), Binding: types.BindLValue},
		{Type: in.Qualify(b.Int, types.QualConst|types.QualVolatile)},
	}
	for _, arg := range cases {
		s := Normalize(in, arg)
		if s.Class != ClassValue || s.Type != b.Int {
			t.Fatalf("arg %+v: expected value int, got %v %v", arg, s.Class, s.Type)
		}
	}
}

func TestNormalizeArrayDecaysToPointer(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	arr := in.Intern(types.MakeArray(b.Int, 5))
	want := in.Intern(types.MakePointer(b.Int))

	s := Normalize(in, types.ArgDescriptor{Type: arr})
	if s.Class != ClassValue || s.Type != want {
		t.Fatalf("expected value *int, got %v %v", s.Class, s.Type)
	}

	// Qualifiers and binding never change the array branch's output.
	s = Normalize(in, types.ArgDescriptor{Type: in.Qualify(arr, types.QualConst), Binding: types.BindLValue})
	if s.Class != ClassValue || s.Type != want {
		t.Fatalf("qualified array: expected value *int, got %v %v", s.Class, s.Type)
	}
}

func TestNormalizeFunctionDecaysToPointer(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	fn := in.RegisterFn([]types.TypeID{b.Int}, b.Bool)
	want := in.Intern(types.MakePointer(fn))

	s := Normalize(in, types.ArgDescriptor{Type: fn})
	if s.Class != ClassValue || s.Type != want {
		t.Fatalf("expected value *fn, got %v %v", s.Class, s.Type)
	}

	s = Normalize(in, types.ArgDescriptor{Type: in.Qualify(fn, types.QualConst), Binding: types.BindRValue})
	if s.Class != ClassValue || s.Type != want {
		t.Fatalf("qualified fn: expected value *fn, got %v %v", s.Class, s.Type)
	}
}

func TestNormalizeRefWrapperAllCombinations(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	ref := in.Intern(types.MakeRef(b.Int))

	// Six scenarios, one law: {unqualified, const} x {value, lvalue, rvalue}.
	for _, quals := range []types.Qual{0, types.QualConst} {
		for _, binding := range []types.Binding{types.BindValue, types.BindLValue, types.BindRValue} {
			arg := types.ArgDescriptor{Type: in.Qualify(ref, quals), Binding: binding}
			s := Normalize(in, arg)
			if s.Class != ClassReference || s.Type != b.Int {
				t.Fatalf("quals=%v binding=%v: expected reference int, got %v %v", quals, binding, s.Class, s.Type)
			}
		}
	}
}

func TestNormalizeRefWrapperDoesNotRecurse(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	inner := in.Intern(types.MakeRef(b.Int))
	outer := in.Intern(types.MakeRef(inner))

	s := Normalize(in, types.ArgDescriptor{Type: outer})
	if s.Class != ClassReference {
		t.Fatalf("expected reference class, got %v", s.Class)
	}
	if s.Type != inner {
		t.Fatalf("expected referent ref[int], got %v", s.Type)
	}
	if s.Type == b.Int {
		t.Fatalf("nested wrapper must not unwrap twice")
	}
}

func TestNormalizeRefWrapperQualifiedTargetPassesThrough(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	constInt := in.Qualify(b.Int, types.QualConst)
	ref := in.Intern(types.MakeRef(constInt))

	s := Normalize(in, types.ArgDescriptor{Type: ref})
	if s.Class != ClassReference || s.Type != constInt {
		t.Fatalf("expected reference to const int, got %v %v", s.Class, s.Type)
	}
}

func TestElementTypesPreservesOrderAndArity(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	refDouble := in.Intern(types.MakeRef(b.Double))

	args := []types.ArgDescriptor{
		{Type: b.Int},
		{Type: refDouble},
		{Type: b.Int},
	}
	storages := ElementTypes(in, args)
	if len(storages) != 3 {
		t.Fatalf("expected 3 storages, got %d", len(storages))
	}
	if storages[0].Class != ClassValue || storages[0].Type != b.Int {
		t.Fatalf("element 0: expected value int, got %+v", storages[0])
	}
	if storages[1].Class != ClassReference || storages[1].Type != b.Double {
		t.Fatalf("element 1: expected reference double, got %+v", storages[1])
	}
	if storages[2].Class != ClassValue || storages[2].Type != b.Int {
		t.Fatalf("element 2: expected value int, got %+v", storages[2])
	}
}

func TestBuildInstantiatesTuple(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	refDouble := in.Intern(types.MakeRef(b.Double))

	args := []types.ArgDescriptor{
		{Type: in.Qualify(b.Int, types.QualConst), Binding: types.BindLValue},
		{Type: refDouble},
	}
	storages, tupleID := Build(in, TupleInstantiator{Interner: in}, args)
	if len(storages) != 2 {
		t.Fatalf("expected 2 storages, got %d", len(storages))
	}

	info, ok := in.TupleInfo(tupleID)
	if !ok {
		t.Fatalf("expected a tuple type")
	}
	if len(info.Elems) != 2 {
		t.Fatalf("expected 2 tuple elements, got %d", len(info.Elems))
	}
	if info.Elems[0] != b.Int {
		t.Fatalf("element 0: expected int, got %v", info.Elems[0])
	}
	wantRef := in.Intern(types.MakeReference(b.Double))
	if info.Elems[1] != wantRef {
		t.Fatalf("element 1: expected &mut double, got %v", info.Elems[1])
	}
}

func TestBuildSameArgsSameTuple(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	args := []types.ArgDescriptor{{Type: b.Int}, {Type: b.Bool}}

	_, first := Build(in, TupleInstantiator{Interner: in}, args)
	_, second := Build(in, TupleInstantiator{Interner: in}, args)
	if first != second {
		t.Fatalf("identical argument lists must instantiate the same tuple type")
	}
}
