package compress

// ZstdCompressor compresses payloads with Zstandard. It gives the best ratio of the
// built-in codecs and suits archived runs where payloads are read rarely.
//
// The pure Go implementation (klauspost/compress) is used by default. Building with
// the gozstd tag and cgo enabled switches to the libzstd binding (valyala/gozstd).
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd compressor.
//
// Example:
//
//	c := compress.NewZstdCompressor()
//	packed, err := c.Compress(payload)
//	if err != nil {
//		return err
//	}
//	restored, err := c.Decompress(packed, len(payload))
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
