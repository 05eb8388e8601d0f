// Package endian selects the byte order of multi-byte fields.
//
// Two places in rawbit deal in bytes rather than bits: frame headers, whose fields
// follow the byte order recorded in the header flag, and unpacked TOF readout words,
// which the hardware writes little-endian. Bitstreams themselves have no byte order;
// they are always read most significant bit first.
//
//	engine := endian.GetLittleEndianEngine()
//	word := engine.Uint32(payload[off:])
//	buf = engine.AppendUint32(buf, word)
//
// The returned engines are stateless and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines the read, write and append operations of encoding/binary.
//
// binary.LittleEndian and binary.BigEndian satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsLittleEndian reports whether engine is the little-endian engine.
func IsLittleEndian(engine EndianEngine) bool {
	return engine == EndianEngine(binary.LittleEndian)
}
