package compress

import (
	"fmt"

	"github.com/arloliu/rawbit/errs"
	"github.com/arloliu/rawbit/format"
)

// Compressor compresses a frame payload.
//
// Memory management:
//   - the returned slice is owned by the caller unless documented otherwise
//   - the input slice is not modified
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a frame payload.
//
// Frames always know the decompressed payload size (the payload bit length rounded
// up to whole bytes), so it is passed in. Implementations use it to size their
// output and report errs.ErrInvalidPayloadSize when the restored payload differs.
type Decompressor interface {
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// MaxPayloadSize is the largest payload, in bytes, a Decompressor restores.
const MaxPayloadSize = 1 << 28 // 256MiB

// builtinCodecs holds one stateless instance per compression type; all of them are
// safe for concurrent use.
var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in codec for compressionType.
//
// Returns:
//   - Codec: shared codec instance
//   - error: errs.ErrInvalidCompression for an unknown type
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if c, ok := builtinCodecs[compressionType]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("%w: %s (%d)", errs.ErrInvalidCompression, compressionType, uint8(compressionType))
}

// checkBound rejects a requested output size before any buffer is allocated for it.
func checkBound(algo format.CompressionType, size int) error {
	if size < 0 || size > MaxPayloadSize {
		return fmt.Errorf("%w: %s payload of %d bytes, limit %d",
			errs.ErrInvalidPayloadSize, algo, size, MaxPayloadSize)
	}

	return nil
}

// checkSize verifies a decompressed payload against the size recorded in its frame.
func checkSize(algo format.CompressionType, out []byte, size int) ([]byte, error) {
	if len(out) != size {
		return nil, fmt.Errorf("%w: %s payload restored to %d bytes, want %d",
			errs.ErrInvalidPayloadSize, algo, len(out), size)
	}

	return out, nil
}
