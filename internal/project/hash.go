package project

import (
	"crypto/sha256"
)

// Digest is a fixed 256-bit content hash.
type Digest [32]byte

// HashBytes digests raw content.
func HashBytes(data []byte) Digest {
	return sha256.Sum256(data)
}

// Combine builds an aggregate hash: H( content || d1 || d2 ... ).
// The order of deps must be deterministic.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// IsZero reports whether the digest is all zeroes.
func (d Digest) IsZero() bool {
	var z Digest
	return d == z
}
