package types

import (
	"fmt"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// NamedInfo stores metadata for opaque named types.
type NamedInfo struct {
	Name string
}

// RegisterNamed creates or finds an opaque named type. Names are
// NFC-normalized so visually identical identifiers intern to one type.
func (in *Interner) RegisterNamed(name string) TypeID {
	name = norm.NFC.String(name)
	if slot, ok := in.namedIdx[name]; ok {
		return in.Intern(Type{Kind: KindNamed, Payload: slot})
	}
	slot := in.appendNamedInfo(NamedInfo{Name: name})
	in.namedIdx[name] = slot
	return in.internRaw(Type{Kind: KindNamed, Payload: slot})
}

// NamedInfo retrieves named type metadata by TypeID.
func (in *Interner) NamedInfo(id TypeID) (*NamedInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindNamed {
		return nil, false
	}
	if int(tt.Payload) >= len(in.named) {
		return nil, false
	}
	return &in.named[tt.Payload], true
}

func (in *Interner) appendNamedInfo(info NamedInfo) uint32 {
	in.named = append(in.named, info)
	slot, err := safecast.Conv[uint32](len(in.named) - 1)
	if err != nil {
		panic(fmt.Errorf("named info overflow: %w", err))
	}
	return slot
}
