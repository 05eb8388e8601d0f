package frame

import (
	"fmt"

	"github.com/arloliu/rawbit/endian"
	"github.com/arloliu/rawbit/errs"
	"github.com/arloliu/rawbit/format"
)

const (
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0)
	ReservedBitsMask = 0x000E // Mask for reserved bits (bits 1-3), must be zero
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	MagicFrameV1Opt = 0xB170 // MagicFrameV1Opt is the version 1 magic number of rawbit frames.
)

// Flag is the packed first word of a frame header.
type Flag struct {
	// Options is a packed field, always stored little-endian.
	// Bit 0 is the endianness of the remaining header fields, 0 little, 1 big.
	// Bits 1-3 are reserved and must be 0.
	// Bits 4-15 are the magic number, MagicFrameV1Opt.
	Options uint16

	// CodecType is the field packing of the payload.
	CodecType format.CodecType
	// CompressionType is the compression applied on top of the packing.
	CompressionType format.CompressionType
}

// NewFlag creates a little-endian flag for an uncompressed simple-packed payload.
func NewFlag() Flag {
	return Flag{
		Options:         MagicFrameV1Opt,
		CodecType:       format.CodecSimple,
		CompressionType: format.CompressionNone,
	}
}

// IsLittleEndian returns whether the header fields are little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the header fields are big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// Validate checks the magic number, the reserved bits and both type bytes.
func (f Flag) Validate() error {
	if f.GetMagicNumber() != MagicFrameV1Opt {
		return fmt.Errorf("%w: magic 0x%04x", errs.ErrInvalidHeaderFlags, f.GetMagicNumber())
	}
	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved bits 0x%04x", errs.ErrInvalidHeaderFlags, f.Options&ReservedBitsMask)
	}
	if !f.CodecType.IsValid() {
		return fmt.Errorf("%w: %w %d", errs.ErrInvalidHeaderFlags, errs.ErrInvalidCodecType, f.CodecType)
	}
	if !f.CompressionType.IsValid() {
		return fmt.Errorf("%w: %w %d", errs.ErrInvalidHeaderFlags, errs.ErrInvalidCompression, f.CompressionType)
	}

	return nil
}

// GetEndianEngine returns the engine for the header fields after the flag.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
