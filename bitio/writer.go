package bitio

import (
	"github.com/arloliu/rawbit/errs"
	"github.com/arloliu/rawbit/internal/pool"
)

// Writer packs MSB-first bit fields into a byte buffer.
//
// A Writer either targets a caller-supplied buffer of fixed capacity (NewWriter), in
// which case WriteBits fails with errs.ErrBufferFull once the buffer is exhausted, or a
// pooled buffer that grows on demand (NewGrowableWriter).
//
// Bits not yet written in the last byte are always zero, so Bytes can be called at any
// point and yields a zero-padded stream.
type Writer struct {
	buf    *pool.ByteBuffer // Output bytes, len(buf.B) == ceil(pos/8)
	pos    uint64           // Number of bits written
	fixed  bool             // Capacity is bounded by the caller-supplied buffer
	pooled bool             // buf came from the payload pool and goes back on Finish
}

// NewWriter creates a writer over buf. The writer may use all len(buf) bytes and never
// grows beyond them. The previous contents of buf are overwritten.
func NewWriter(buf []byte) *Writer {
	return &Writer{
		buf:   &pool.ByteBuffer{B: buf[:0:len(buf)]},
		fixed: true,
	}
}

// NewGrowableWriter creates a writer backed by a pooled buffer that grows as needed.
//
// Call Finish when the written bytes are no longer needed to return the buffer to the pool.
func NewGrowableWriter() *Writer {
	return &Writer{
		buf:    pool.GetPayloadBuffer(),
		pooled: true,
	}
}

// WriteBit appends a single bit. Only the least significant bit of bit is used.
func (w *Writer) WriteBit(bit uint64) error {
	return w.WriteBits(bit&1, 1)
}

// WriteBits appends the n-bit unsigned field v.
//
// The write is atomic: on error nothing is written and the bit offset is unchanged.
//
// Parameters:
//   - v: field value; must fit in n bits
//   - n: field width, 0 to 64
//
// Returns:
//   - error: errs.ErrInvalidBitCount, errs.ErrValueOverflow, or errs.ErrBufferFull for a
//     fixed-capacity writer without room for n more bits
func (w *Writer) WriteBits(v uint64, n int) error {
	if w.buf == nil {
		panic("writer already finished - cannot write bits after Finish()")
	}
	if n < 0 || n > MaxFieldBits {
		return errs.ErrInvalidBitCount
	}
	if n < MaxFieldBits && v>>n != 0 {
		return errs.ErrValueOverflow
	}
	if n == 0 {
		return nil
	}

	need := int((w.pos + uint64(n) + 7) >> 3) //nolint: gosec
	if err := w.ensure(need); err != nil {
		return err
	}
	w.put(v, n)

	return nil
}

// Align pads the stream with zero bits up to the next byte boundary and returns the
// number of padding bits written.
func (w *Writer) Align() (int, error) {
	pad := int((8 - w.pos&7) & 7) //nolint: gosec
	if pad == 0 {
		return 0, nil
	}
	if err := w.WriteBits(0, pad); err != nil {
		return 0, err
	}

	return pad, nil
}

// Bytes returns the written bytes, zero-padded to a byte boundary.
//
// The returned slice aliases the writer's buffer and is valid until the next write,
// Reset or Finish.
func (w *Writer) Bytes() []byte {
	if w.buf == nil {
		panic("writer already finished - cannot access bytes after Finish()")
	}

	return w.buf.Bytes()
}

// BitLen returns the number of bits written.
func (w *Writer) BitLen() uint64 {
	return w.pos
}

// Len returns the number of bytes touched by the written bits.
func (w *Writer) Len() int {
	if w.buf == nil {
		return 0
	}

	return w.buf.Len()
}

// Available returns how many more bits a fixed-capacity writer accepts, or -1 for a
// growable writer.
func (w *Writer) Available() int64 {
	if !w.fixed {
		return -1
	}

	return int64(w.buf.Cap())*8 - int64(w.pos) //nolint: gosec
}

// Reset discards everything written and rewinds the writer to bit 0.
func (w *Writer) Reset() {
	if w.buf == nil {
		panic("writer already finished - cannot reset after Finish()")
	}
	w.buf.Reset()
	w.pos = 0
}

// Finish releases the writer's buffer. Pooled buffers are returned to the pool, so the
// caller must copy Bytes() before calling Finish. The writer is unusable afterwards.
func (w *Writer) Finish() {
	if w.buf == nil {
		return // Already finished
	}
	if w.pooled {
		pool.PutPayloadBuffer(w.buf)
	}
	w.buf = nil
}

// ensure makes the buffer at least size bytes long, zeroing newly exposed bytes.
func (w *Writer) ensure(size int) error {
	cur := w.buf.Len()
	if size <= cur {
		return nil
	}

	if w.fixed {
		if !w.buf.Extend(size - cur) {
			return errs.ErrBufferFull
		}
	} else {
		w.buf.ExtendOrGrow(size - cur)
	}
	clear(w.buf.B[cur:size])

	return nil
}

// put ORs the n-bit field v into the buffer at the current offset.
func (w *Writer) put(v uint64, n int) {
	for n > 0 {
		idx := w.pos >> 3
		avail := 8 - int(w.pos&7) //nolint: gosec
		take := min(avail, n)

		chunk := byte((v >> (n - take)) & (uint64(1)<<take - 1))
		w.buf.B[idx] |= chunk << (avail - take)

		w.pos += uint64(take) //nolint: gosec
		n -= take
	}
}
