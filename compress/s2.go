package compress

import (
	"fmt"

	"github.com/arloliu/rawbit/errs"
	"github.com/arloliu/rawbit/format"
	"github.com/klauspost/compress/s2"
)

// S2Compressor compresses payloads with S2, the fastest of the built-in codecs.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates an S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses data with S2 block encoding.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress restores an S2 block. The block header carries its decoded length,
// which must equal size.
func (c S2Compressor) Decompress(data []byte, size int) ([]byte, error) {
	if err := checkBound(format.CompressionS2, size); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return checkSize(format.CompressionS2, nil, size)
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if n != size {
		return nil, fmt.Errorf("%w: s2 block holds %d bytes, want %d", errs.ErrInvalidPayloadSize, n, size)
	}

	out, err := s2.Decode(make([]byte, size), data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return checkSize(format.CompressionS2, out, size)
}
