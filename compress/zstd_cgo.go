//go:build gozstd && cgo

package compress

import (
	"fmt"

	"github.com/arloliu/rawbit/format"
	"github.com/valyala/gozstd"
)

const zstdLevel = 3

// Compress compresses data with libzstd.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress restores a Zstd frame into a buffer sized for size bytes.
func (c ZstdCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if err := checkBound(format.CompressionZstd, size); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return checkSize(format.CompressionZstd, nil, size)
	}

	out, err := gozstd.Decompress(make([]byte, 0, size), data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return checkSize(format.CompressionZstd, out, size)
}
