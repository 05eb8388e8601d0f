package format

type (
	CodecType       uint8
	CompressionType uint8
)

const (
	CodecSimple  CodecType = 0x1 // CodecSimple represents fixed (optionally reduced) width packing.
	CodecHuffman CodecType = 0x2 // CodecHuffman represents per-parameter Huffman packing.
	CodecRaw     CodecType = 0x3 // CodecRaw represents raw hardware words with no field packing.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CodecType) String() string {
	switch c {
	case CodecSimple:
		return "Simple"
	case CodecHuffman:
		return "Huffman"
	case CodecRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a known codec type.
func (c CodecType) IsValid() bool {
	return c >= CodecSimple && c <= CodecRaw
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a known compression type.
func (c CompressionType) IsValid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}
