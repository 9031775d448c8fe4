package types

import "fmt"

// Binding describes how an argument is bound at the call site.
type Binding uint8

const (
	BindValue  Binding = iota // plain by-value argument
	BindLValue                // mutable alias (lvalue reference)
	BindRValue                // temporary binding (rvalue reference)
)

func (b Binding) String() string {
	switch b {
	case BindValue:
		return "value"
	case BindLValue:
		return "lvalue"
	case BindRValue:
		return "rvalue"
	default:
		return fmt.Sprintf("Binding(%d)", b)
	}
}

// ParseBinding converts a string to a Binding. The empty string means
// by-value, matching an omitted manifest key.
func ParseBinding(s string) (Binding, error) {
	switch s {
	case "", "value":
		return BindValue, nil
	case "lvalue":
		return BindLValue, nil
	case "rvalue":
		return BindRValue, nil
	default:
		return BindValue, fmt.Errorf("invalid binding: %q (expected: value|lvalue|rvalue)", s)
	}
}

// ArgDescriptor describes one call-site argument as declared: the base type
// (qualifiers interned into it) plus the reference-binding mode. Immutable
// value data, produced fresh per argument.
type ArgDescriptor struct {
	Type    TypeID
	Binding Binding
}
