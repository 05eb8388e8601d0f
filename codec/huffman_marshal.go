package codec

import (
	"fmt"

	"github.com/arloliu/rawbit/bitio"
	"github.com/arloliu/rawbit/errs"
)

// Serialized coder layout, MSB-first bit fields:
//
//	version    8 bits
//	name len  16 bits, then name bytes
//	bitLength  7 bits
//	count     32 bits
//	count x (symbol: bitLength bits, code length: 7 bits), canonical order
//	zero padding to a byte boundary
//
// Only code lengths are stored; codes are reassigned canonically on load.
const (
	coderPayloadVersion = 1
	maxCoderNameLength  = 1<<16 - 1
	coderLengthBits     = 7
)

// MarshalBinary encodes the canonical code table of c.
func (c *HuffmanCoder) MarshalBinary() ([]byte, error) {
	if len(c.name) > maxCoderNameLength {
		return nil, fmt.Errorf("%w: name of %d bytes", errs.ErrInvalidCoderPayload, len(c.name))
	}

	w := bitio.NewGrowableWriter()
	defer w.Finish()

	// Growable writer with in-range fields, can not fail.
	_ = w.WriteBits(coderPayloadVersion, 8)
	_ = w.WriteBits(uint64(len(c.name)), 16)
	for i := 0; i < len(c.name); i++ {
		_ = w.WriteBits(uint64(c.name[i]), 8)
	}
	_ = w.WriteBits(uint64(c.bitLength), coderLengthBits)
	_ = w.WriteBits(uint64(len(c.leaves)), 32)
	for _, l := range c.leaves {
		_ = w.WriteBits(l.Symbol, int(c.bitLength)) //nolint: gosec
		_ = w.WriteBits(uint64(l.Length), coderLengthBits)
	}
	_, _ = w.Align()

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out, nil
}

// UnmarshalBinary replaces c with the coder encoded in data.
//
// Returns errs.ErrInvalidCoderPayload for a malformed payload, including code lengths
// that do not form a prefix code.
func (c *HuffmanCoder) UnmarshalBinary(data []byte) error {
	decoded, err := UnmarshalHuffmanCoder(data)
	if err != nil {
		return err
	}
	*c = *decoded

	return nil
}

// UnmarshalHuffmanCoder decodes a coder written by MarshalBinary.
func UnmarshalHuffmanCoder(data []byte) (*HuffmanCoder, error) {
	r := bitio.NewReader(data)

	version, err := r.ReadBits(8)
	if err != nil {
		return nil, invalidPayload("version", err)
	}
	if version != coderPayloadVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidCoderPayload, version)
	}

	nameLen, err := r.ReadBits(16)
	if err != nil {
		return nil, invalidPayload("name length", err)
	}
	name := make([]byte, nameLen)
	for i := range name {
		b, err := r.ReadBits(8)
		if err != nil {
			return nil, invalidPayload("name", err)
		}
		name[i] = byte(b)
	}

	width, err := r.ReadBits(coderLengthBits)
	if err != nil {
		return nil, invalidPayload("bit length", err)
	}
	bitLength := uint(width)
	if err := validateCoderShape(string(name), bitLength); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidCoderPayload, err)
	}

	count, err := r.ReadBits(32)
	if err != nil {
		return nil, invalidPayload("symbol count", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidCoderPayload, errs.ErrEmptyAlphabet)
	}
	// Each entry needs at least bitLength+7 bits; reject counts the data cannot hold.
	if count*uint64(bitLength+coderLengthBits) > r.Remaining() {
		return nil, fmt.Errorf("%w: %d symbols do not fit in %d bits", errs.ErrInvalidCoderPayload, count, r.Remaining())
	}

	leaves := make([]HuffmanLeaf, count)
	for i := range leaves {
		sym, err := r.ReadBits(int(bitLength)) //nolint: gosec
		if err != nil {
			return nil, invalidPayload("symbol", err)
		}
		length, err := r.ReadBits(coderLengthBits)
		if err != nil {
			return nil, invalidPayload("code length", err)
		}
		if length == 0 || length > maxCodeLength {
			return nil, fmt.Errorf("%w: code length %d for symbol %d", errs.ErrInvalidCoderPayload, length, sym)
		}

		leaves[i] = HuffmanLeaf{Symbol: sym, Length: uint(length)}
		if i > 0 && !canonicalLess(leaves[i-1], leaves[i]) {
			return nil, fmt.Errorf("%w: entries not in canonical order at %d", errs.ErrInvalidCoderPayload, i)
		}
	}

	return newCanonicalCoder(string(name), bitLength, leaves)
}

func canonicalLess(a, b HuffmanLeaf) bool {
	if a.Length != b.Length {
		return a.Length < b.Length
	}

	return a.Symbol < b.Symbol
}

func invalidPayload(field string, err error) error {
	return fmt.Errorf("%w: reading %s: %w", errs.ErrInvalidCoderPayload, field, err)
}
