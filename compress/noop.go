package compress

import "github.com/arloliu/rawbit/format"

// NoOpCompressor stores payloads as they are.
//
// Use it for payloads that are already dense, e.g. Huffman-packed streams, where a
// general purpose compressor rarely wins back its own framing.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a pass-through compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself, without copying.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself, without copying. The returned slice aliases the
// frame it was read from.
func (c NoOpCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if err := checkBound(format.CompressionNone, size); err != nil {
		return nil, err
	}

	return checkSize(format.CompressionNone, data, size)
}
