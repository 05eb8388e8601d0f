package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Fingerprint accumulates an order-sensitive xxHash64 over a sequence of
// named fields. Each field contributes its name, a separator and its
// integer attributes, so ("ab", 1) and ("a", 0x62...) never collide by
// concatenation.
type Fingerprint struct {
	d   *xxhash.Digest
	buf [8]byte
}

// NewFingerprint creates an empty fingerprint.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{d: xxhash.New()}
}

// Add mixes one named field and its attributes into the fingerprint.
func (f *Fingerprint) Add(name string, attrs ...uint64) {
	binary.LittleEndian.PutUint64(f.buf[:], uint64(len(name)))
	// xxhash.Digest writes can not fail.
	_, _ = f.d.Write(f.buf[:])
	_, _ = f.d.WriteString(name)

	for _, a := range attrs {
		binary.LittleEndian.PutUint64(f.buf[:], a)
		_, _ = f.d.Write(f.buf[:])
	}
}

// Sum64 returns the current fingerprint value.
func (f *Fingerprint) Sum64() uint64 {
	return f.d.Sum64()
}
