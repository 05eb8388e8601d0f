package bitio

import (
	"github.com/arloliu/rawbit/errs"
)

// MaxFieldBits is the widest field a single ReadBits or WriteBits call can transfer.
const MaxFieldBits = 64

// Reader extracts MSB-first bit fields from a byte slice.
//
// The zero value is an empty reader; use Reset or ResetBits to attach data.
// Reader never allocates after construction.
type Reader struct {
	data   []byte // Source data, never modified
	pos    uint64 // Absolute bit offset of the next bit to read
	bitLen uint64 // Number of valid bits in data
}

// NewReader creates a reader over all bits of data.
func NewReader(data []byte) *Reader {
	r := &Reader{}
	r.Reset(data)

	return r
}

// NewBitLimitedReader creates a reader over the first bitLen bits of data.
//
// Encoders pad the last byte of a stream with zero bits; limiting the reader to the
// exact bit length keeps that padding from being decoded as values.
// bitLen is clamped to len(data)*8.
func NewBitLimitedReader(data []byte, bitLen uint64) *Reader {
	r := &Reader{}
	r.ResetBits(data, bitLen)

	return r
}

// Reset attaches data to the reader and rewinds it to bit 0.
func (r *Reader) Reset(data []byte) {
	r.ResetBits(data, uint64(len(data))*8)
}

// ResetBits attaches the first bitLen bits of data to the reader and rewinds it to bit 0.
func (r *Reader) ResetBits(data []byte, bitLen uint64) {
	r.data = data
	r.pos = 0

	maxBits := uint64(len(data)) * 8
	if bitLen > maxBits {
		bitLen = maxBits
	}
	r.bitLen = bitLen
}

// BitPosition returns the absolute offset, in bits, of the next bit to read.
func (r *Reader) BitPosition() uint64 {
	return r.pos
}

// BitLen returns the number of readable bits attached to the reader.
func (r *Reader) BitLen() uint64 {
	return r.bitLen
}

// Remaining returns the number of bits left to read.
func (r *Reader) Remaining() uint64 {
	return r.bitLen - r.pos
}

// ReadBit reads a single bit.
//
// Returns:
//   - uint64: 0 or 1
//   - error: errs.ErrOutOfData at the end of the stream
func (r *Reader) ReadBit() (uint64, error) {
	if r.pos >= r.bitLen {
		return 0, errs.ErrOutOfData
	}

	bit := uint64(r.data[r.pos>>3]>>(7-(r.pos&7))) & 1
	r.pos++

	return bit, nil
}

// ReadBits reads an n-bit unsigned field and advances the offset by n.
//
// ReadBits(0) returns 0 and consumes nothing. On error the offset is unchanged.
//
// Parameters:
//   - n: field width, 0 to 64
//
// Returns:
//   - uint64: the field value, right-aligned
//   - error: errs.ErrInvalidBitCount if n is out of range, errs.ErrOutOfData if fewer
//     than n bits remain
func (r *Reader) ReadBits(n int) (uint64, error) {
	v, err := r.PeekBits(n)
	if err != nil {
		return 0, err
	}
	r.pos += uint64(n) //nolint: gosec

	return v, nil
}

// PeekBits returns the next n-bit field without consuming it.
func (r *Reader) PeekBits(n int) (uint64, error) {
	if n < 0 || n > MaxFieldBits {
		return 0, errs.ErrInvalidBitCount
	}
	if uint64(n) > r.Remaining() { //nolint: gosec
		return 0, errs.ErrOutOfData
	}

	return r.peek(r.pos, n), nil
}

// Skip advances the offset by n bits without decoding them.
func (r *Reader) Skip(n uint64) error {
	if n > r.Remaining() {
		return errs.ErrOutOfData
	}
	r.pos += n

	return nil
}

// Rewind moves the offset back by n bits.
//
// This is used by decoders that read ahead to detect a trailer and must hand the bits
// back to the next stage.
func (r *Reader) Rewind(n uint64) error {
	if n > r.pos {
		return errs.ErrInvalidBitCount
	}
	r.pos -= n

	return nil
}

// Align skips to the next byte boundary and returns the number of bits skipped.
//
// A bit-limited reader stops at its limit when the limit falls before the boundary;
// the return value then counts only the bits up to the limit.
func (r *Reader) Align() int {
	pad := (8 - r.pos&7) & 7
	pad = min(pad, r.bitLen-r.pos)
	r.pos += pad

	return int(pad) //nolint: gosec
}

// peek extracts n bits starting at pos. The caller guarantees the bits exist.
func (r *Reader) peek(pos uint64, n int) uint64 {
	var v uint64
	for n > 0 {
		b := r.data[pos>>3]
		avail := 8 - int(pos&7) //nolint: gosec
		take := min(avail, n)

		chunk := (uint64(b) >> (avail - take)) & (uint64(1)<<take - 1)
		v = v<<take | chunk

		pos += uint64(take) //nolint: gosec
		n -= take
	}

	return v
}
