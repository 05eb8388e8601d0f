package pool

import (
	"io"
	"sync"
)

// Buffer sizes.
//
// A payload buffer backs one growable bit writer and grows a byte at a time as bits
// arrive. A frame buffer is filled once with a header and a stored payload.
const (
	PayloadBufferDefaultSize  = 1024 * 8        // 8KiB
	PayloadBufferMaxThreshold = 1024 * 256      // 256KiB
	FrameBufferDefaultSize    = 1024 * 16       // 16KiB
	FrameBufferMaxThreshold   = 1024 * 1024 * 4 // 4MiB
)

// ByteBuffer is a byte slice that keeps its capacity across pool round trips.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates an empty buffer with capacity size.
func NewByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, size)}
}

// Bytes returns the buffered bytes.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer and keeps its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Extend lengthens the buffer by n bytes within its current capacity. It reports false,
// leaving the buffer unchanged, when the capacity is too small. Fixed-capacity bit
// writers rely on this to detect a full buffer.
func (bb *ByteBuffer) Extend(n int) bool {
	if cap(bb.B)-len(bb.B) < n {
		return false
	}
	bb.B = bb.B[:len(bb.B)+n]

	return true
}

// ExtendOrGrow lengthens the buffer by n bytes, reallocating when needed.
//
// Bit writers extend by one byte at a time, so a reallocation doubles the capacity
// until PayloadBufferMaxThreshold and adds a quarter of it from there on. The bytes
// exposed by the extension are not zeroed.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	if bb.Extend(n) {
		return
	}

	size := len(bb.B) + n
	growTo := 2 * cap(bb.B)
	if cap(bb.B) >= PayloadBufferMaxThreshold {
		growTo = cap(bb.B) + cap(bb.B)/4
	}
	growTo = max(growTo, size, PayloadBufferDefaultSize)

	buf := make([]byte, size, growTo)
	copy(buf, bb.B)
	bb.B = buf
}

// WriteTo writes the buffered bytes to w in a single call.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// bufferPool recycles ByteBuffers of one kind. Buffers that grew beyond maxCap are
// left to the garbage collector.
type bufferPool struct {
	pool   sync.Pool
	maxCap int
}

func newBufferPool(size, maxCap int) *bufferPool {
	return &bufferPool{
		pool:   sync.Pool{New: func() any { return NewByteBuffer(size) }},
		maxCap: maxCap,
	}
}

func (p *bufferPool) get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

func (p *bufferPool) put(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > p.maxCap {
		return
	}
	bb.Reset()
	p.pool.Put(bb)
}

var (
	payloadPool = newBufferPool(PayloadBufferDefaultSize, PayloadBufferMaxThreshold)
	framePool   = newBufferPool(FrameBufferDefaultSize, FrameBufferMaxThreshold)
)

// GetPayloadBuffer returns an empty buffer for a growable bit writer.
func GetPayloadBuffer() *ByteBuffer {
	return payloadPool.get()
}

// PutPayloadBuffer returns bb to the payload pool. bb must not be used afterwards.
func PutPayloadBuffer(bb *ByteBuffer) {
	payloadPool.put(bb)
}

// GetFrameBuffer returns an empty buffer for assembling a frame.
func GetFrameBuffer() *ByteBuffer {
	return framePool.get()
}

// PutFrameBuffer returns bb to the frame pool. bb must not be used afterwards.
func PutFrameBuffer(bb *ByteBuffer) {
	framePool.put(bb)
}
