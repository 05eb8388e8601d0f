package frame

import (
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"iter"

	"github.com/arloliu/rawbit/compress"
	"github.com/arloliu/rawbit/endian"
	"github.com/arloliu/rawbit/errs"
	"github.com/arloliu/rawbit/format"
	"github.com/arloliu/rawbit/internal/options"
	"github.com/arloliu/rawbit/internal/pool"
	"github.com/arloliu/rawbit/param"
)

// Option configures frame encoding.
type Option = options.Option[*Flag]

// WithCompression compresses the payload with compressionType. Payloads that do not
// shrink are stored uncompressed and the header says so.
func WithCompression(compressionType format.CompressionType) Option {
	return options.New(func(f *Flag) error {
		if !compressionType.IsValid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, compressionType)
		}
		f.CompressionType = compressionType

		return nil
	})
}

// WithCodecType records how the payload was packed. The default is format.CodecSimple.
func WithCodecType(codecType format.CodecType) Option {
	return options.New(func(f *Flag) error {
		if !codecType.IsValid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCodecType, codecType)
		}
		f.CodecType = codecType

		return nil
	})
}

// WithBigEndian writes the header fields big-endian.
func WithBigEndian() Option {
	return options.NoError(func(f *Flag) {
		f.WithBigEndian()
	})
}

// WithEngine writes the header fields in the byte order of engine.
func WithEngine(engine endian.EndianEngine) Option {
	return options.New(func(f *Flag) error {
		if engine == nil {
			return fmt.Errorf("%w: nil endian engine", errs.ErrInvalidHeaderFlags)
		}
		if endian.IsLittleEndian(engine) {
			f.WithLittleEndian()
		} else {
			f.WithBigEndian()
		}

		return nil
	})
}

// Frame is a decoded frame.
type Frame struct {
	Header
	// Payload is the decompressed packed bitstream. For uncompressed frames it aliases
	// the decoded data.
	Payload []byte
}

// Verify reports errs.ErrSchemaMismatch unless the frame was packed with table.
func (f *Frame) Verify(table *param.Table) error {
	if fp := table.Fingerprint(); fp != f.Fingerprint {
		return fmt.Errorf("%w: frame 0x%016x, table 0x%016x", errs.ErrSchemaMismatch, f.Fingerprint, fp)
	}

	return nil
}

// Size returns the encoded size of the frame in bytes.
func (f *Frame) Size() int {
	return HeaderSize + int(f.StoredSize)
}

// Encode builds a frame around a packed payload.
//
// Parameters:
//   - payload: packed bitstream, exactly ceil(bitLen/8) bytes
//   - bitLen: number of meaningful bits in payload
//   - count: number of values in payload
//   - fingerprint: param.Table fingerprint of the packing schema
//   - opts: WithCompression, WithCodecType, WithBigEndian
//
// Returns:
//   - []byte: the frame, owned by the caller
//   - error: errs.ErrInvalidPayloadSize, option or compression errors
func Encode(payload []byte, bitLen uint64, count uint32, fingerprint uint64, opts ...Option) ([]byte, error) {
	return Append(nil, payload, bitLen, count, fingerprint, opts...)
}

// Append is like Encode but appends the frame to dst.
func Append(dst, payload []byte, bitLen uint64, count uint32, fingerprint uint64, opts ...Option) ([]byte, error) {
	h, stored, err := build(payload, bitLen, count, fingerprint, opts)
	if err != nil {
		return dst, err
	}

	dst = h.AppendTo(dst)

	return append(dst, stored...), nil
}

func build(payload []byte, bitLen uint64, count uint32, fingerprint uint64, opts []Option) (Header, []byte, error) {
	h := Header{Flag: NewFlag(), Fingerprint: fingerprint, Count: count, BitLen: bitLen}
	if err := options.Apply(&h.Flag, opts...); err != nil {
		return Header{}, nil, err
	}
	if uint64(count) > bitLen {
		return Header{}, nil, fmt.Errorf("%w: %d values in %d bits", errs.ErrInvalidPayloadSize, count, bitLen)
	}
	if size := h.PayloadSize(); size < 0 || size != len(payload) {
		return Header{}, nil, fmt.Errorf("%w: %d bits in %d bytes", errs.ErrInvalidPayloadSize, bitLen, len(payload))
	}

	stored, err := compressPayload(&h.Flag, payload)
	if err != nil {
		return Header{}, nil, err
	}
	if uint64(len(stored)) > uint64(^uint32(0)) {
		return Header{}, nil, fmt.Errorf("%w: %d stored bytes", errs.ErrInvalidPayloadSize, len(stored))
	}

	h.StoredSize = uint32(len(stored)) //nolint: gosec
	h.Checksum = crc32.ChecksumIEEE(stored)

	return h, stored, nil
}

// compressPayload applies the flag's compression, falling back to none when the
// payload does not shrink.
func compressPayload(f *Flag, payload []byte) ([]byte, error) {
	if f.CompressionType == format.CompressionNone {
		return payload, nil
	}

	c, err := compress.GetCodec(f.CompressionType)
	if err != nil {
		return nil, err
	}

	stored, err := c.Compress(payload)
	if errors.Is(err, errs.ErrIncompressible) || (err == nil && len(stored) >= len(payload)) {
		f.CompressionType = format.CompressionNone
		return payload, nil
	}
	if err != nil {
		return nil, fmt.Errorf("compress %s payload: %w", f.CompressionType, err)
	}

	return stored, nil
}

// Decode decodes the frame at the start of data. Bytes after the frame are ignored;
// use Frame.Size to step to the next one.
//
// Returns:
//   - Frame: header and decompressed payload
//   - error: errs.ErrInvalidHeaderSize, errs.ErrInvalidHeaderFlags,
//     errs.ErrInvalidPayloadSize, errs.ErrChecksumMismatch or decompression errors
func Decode(data []byte) (Frame, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return Frame{}, err
	}

	end := uint64(HeaderSize) + uint64(h.StoredSize)
	if end > uint64(len(data)) {
		return Frame{}, fmt.Errorf("%w: %d stored bytes, %d available",
			errs.ErrInvalidPayloadSize, h.StoredSize, len(data)-HeaderSize)
	}
	stored := data[HeaderSize:end]

	if sum := crc32.ChecksumIEEE(stored); sum != h.Checksum {
		return Frame{}, fmt.Errorf("%w: got 0x%08x, want 0x%08x", errs.ErrChecksumMismatch, sum, h.Checksum)
	}
	if err := h.checkPayload(); err != nil {
		return Frame{}, err
	}

	c, err := compress.GetCodec(h.Flag.CompressionType)
	if err != nil {
		return Frame{}, err
	}
	payload, err := c.Decompress(stored, h.PayloadSize())
	if err != nil {
		return Frame{}, err
	}

	return Frame{Header: h, Payload: payload}, nil
}

// All iterates over consecutive frames in data. Iteration stops after the first
// error.
func All(data []byte) iter.Seq2[Frame, error] {
	return func(yield func(Frame, error) bool) {
		for len(data) > 0 {
			f, err := Decode(data)
			if err != nil {
				yield(Frame{}, err)
				return
			}
			if !yield(f, nil) {
				return
			}
			data = data[f.Size():]
		}
	}
}

// Writer writes frames to an io.Writer through a pooled buffer.
type Writer struct {
	w    io.Writer
	opts []Option
	n    int64
}

// NewWriter creates a writer that encodes every frame with opts.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	return &Writer{w: w, opts: opts}
}

// WriteFrame encodes one frame and writes it in a single call to the underlying
// writer.
func (fw *Writer) WriteFrame(payload []byte, bitLen uint64, count uint32, fingerprint uint64) (int64, error) {
	h, stored, err := build(payload, bitLen, count, fingerprint, fw.opts)
	if err != nil {
		return 0, err
	}

	buf := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(buf)

	buf.B = h.AppendTo(buf.B)
	buf.MustWrite(stored)

	n, err := buf.WriteTo(fw.w)
	fw.n += n

	return n, err
}

// Written returns the total number of bytes written.
func (fw *Writer) Written() int64 {
	return fw.n
}
