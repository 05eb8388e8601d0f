package frame

import (
	"fmt"

	"github.com/arloliu/rawbit/compress"
	"github.com/arloliu/rawbit/errs"
	"github.com/arloliu/rawbit/format"
)

// HeaderSize is the fixed frame header size in bytes.
const HeaderSize = 32

// Header is the fixed-size section at the start of every frame.
type Header struct {
	// Flag holds byte order, magic number, codec and compression.
	Flag Flag // byte offset 0-3
	// Fingerprint identifies the parameter table the payload was packed with.
	Fingerprint uint64 // byte offset 4-11
	// Count is the number of values in the payload.
	Count uint32 // byte offset 12-15
	// BitLen is the exact payload length in bits; the decompressed payload is
	// ceil(BitLen/8) bytes.
	BitLen uint64 // byte offset 16-23
	// StoredSize is the payload size in bytes after compression.
	StoredSize uint32 // byte offset 24-27
	// Checksum is the CRC-32 (IEEE) of the stored payload.
	Checksum uint32 // byte offset 28-31
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly 32 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 32 bytes, or flag validation errors
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Options decide the byte order of everything else, so they are always little-endian.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.CodecType = format.CodecType(data[2])
	h.Flag.CompressionType = format.CompressionType(data[3])

	engine := h.Flag.GetEndianEngine()
	h.Fingerprint = engine.Uint64(data[4:12])
	h.Count = engine.Uint32(data[12:16])
	h.BitLen = engine.Uint64(data[16:24])
	h.StoredSize = engine.Uint32(data[24:28])
	h.Checksum = engine.Uint32(data[28:32])

	return h.Flag.Validate()
}

// Bytes serializes the header into a new 32-byte slice.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to b.
func (h *Header) AppendTo(b []byte) []byte {
	engine := h.Flag.GetEndianEngine()

	b = append(b, byte(h.Flag.Options), byte(h.Flag.Options>>8))
	b = append(b, byte(h.Flag.CodecType), byte(h.Flag.CompressionType))
	b = engine.AppendUint64(b, h.Fingerprint)
	b = engine.AppendUint32(b, h.Count)
	b = engine.AppendUint64(b, h.BitLen)
	b = engine.AppendUint32(b, h.StoredSize)
	b = engine.AppendUint32(b, h.Checksum)

	return b
}

// PayloadSize returns the decompressed payload size in bytes.
func (h *Header) PayloadSize() int {
	n := h.BitLen >> 3
	if h.BitLen&7 != 0 {
		n++
	}
	if n > compress.MaxPayloadSize {
		return -1
	}

	return int(n)
}

// checkPayload checks the size fields against each other before anything is sized
// from them. The checksum does not cover the header.
func (h *Header) checkPayload() error {
	size := h.PayloadSize()
	switch {
	case size < 0:
		return fmt.Errorf("%w: %d payload bits exceed the %d byte limit",
			errs.ErrInvalidPayloadSize, h.BitLen, compress.MaxPayloadSize)
	case h.Flag.CompressionType == format.CompressionNone && size != int(h.StoredSize):
		return fmt.Errorf("%w: %d payload bits stored in %d bytes",
			errs.ErrInvalidPayloadSize, h.BitLen, h.StoredSize)
	case h.Flag.CompressionType != format.CompressionNone && int(h.StoredSize) >= size:
		// Payloads that do not shrink are stored uncompressed.
		return fmt.Errorf("%w: %s payload of %d bytes stored in %d bytes",
			errs.ErrInvalidPayloadSize, h.Flag.CompressionType, size, h.StoredSize)
	case uint64(h.Count) > h.BitLen:
		// Every value takes at least one bit.
		return fmt.Errorf("%w: %d values in %d bits", errs.ErrInvalidPayloadSize, h.Count, h.BitLen)
	}

	return nil
}

// ParseHeader parses a Header from the start of data.
//
// Parameters:
//   - data: Byte slice containing header (must be at least 32 bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
