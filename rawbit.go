// Package rawbit packs detector readout parameters into compact bitstreams.
//
// A readout is a sequence of small integer fields (channel, TDC, hit time, ...) that
// repeat in a fixed order. rawbit describes that order with a parameter table and
// packs each value in exactly as many bits as its parameter needs, either at a fixed
// width with an optional reduced width (the simple codec) or with trained Huffman
// codes.
//
// # Basic Usage
//
// Packing (chan, gain) pairs into a frame:
//
//	table := param.MustNewTable(
//	    param.Definition{Name: "chan", BitLength: 8, ReducedBitLength: 3},
//	    param.Definition{Name: "gain", BitLength: 2},
//	)
//
//	data, _ := rawbit.EncodeSimple(table, []uint64{5, 1, 200, 3},
//	    frame.WithCompression(format.CompressionZstd))
//
//	values, _ := rawbit.DecodeSimple(table, data)
//
// Huffman packing needs coders trained on representative values:
//
//	trainer, _ := codec.NewHuffmanTrainer("chan", 8)
//	for _, v := range sample {
//	    trainer.AddTrainingValue(v)
//	}
//	chanCoder, _ := trainer.Build()
//
//	data, _ := rawbit.EncodeHuffman(table, coders, values)
//	values, _ = rawbit.DecodeHuffman(table, coders, data)
//
// # Package Structure
//
// This package provides top-level wrappers for whole value sequences. For streaming
// use, or to mix raw bits into a stream, use the codec package directly; bitio holds
// the bit reader and writer, frame the container format and tof the TOF readout word
// views.
package rawbit

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/rawbit/codec"
	"github.com/arloliu/rawbit/errs"
	"github.com/arloliu/rawbit/format"
	"github.com/arloliu/rawbit/frame"
	"github.com/arloliu/rawbit/internal/hash"
	"github.com/arloliu/rawbit/param"
)

// maxPreallocValues bounds the up-front allocation of a decoded value slice.
const maxPreallocValues = 1 << 16

// ParameterID returns the 64-bit hash of a parameter name, as folded into table
// fingerprints.
func ParameterID(name string) uint64 {
	return hash.ID(name)
}

// EncodeSimple packs values with the simple codec and wraps them in a frame.
//
// Values are assigned to parameters in the table's cycling order; a sequence that
// stops mid-cycle is allowed.
//
// Parameters:
//   - table: parameter table, recorded in the frame by fingerprint
//   - values: values to pack
//   - opts: frame options (see frame.WithCompression, frame.WithBigEndian)
//
// Returns:
//   - []byte: the encoded frame
//   - error: errs.ErrValueOverflow for a value wider than its parameter, or frame errors
func EncodeSimple(table *param.Table, values []uint64, opts ...frame.Option) ([]byte, error) {
	d, err := codec.NewSimpleDeflater(table)
	if err != nil {
		return nil, err
	}
	defer d.Finish()

	return encode(d, table, values, format.CodecSimple, opts)
}

// EncodeHuffman packs values with the Huffman codec and wraps them in a frame.
//
// coders are bound to parameters by name; every parameter that receives a value needs
// one. The decoder must be given the same coders.
//
// Returns:
//   - []byte: the encoded frame
//   - error: errs.ErrSymbolNotInAlphabet for a value the coders were not trained on,
//     coder binding errors, or frame errors
func EncodeHuffman(table *param.Table, coders []*codec.HuffmanCoder, values []uint64, opts ...frame.Option) ([]byte, error) {
	d, err := codec.NewHuffmanDeflater(table)
	if err != nil {
		return nil, err
	}
	defer d.Finish()

	if err := d.InitEncoders(coders); err != nil {
		return nil, err
	}

	return encode(d, table, values, format.CodecHuffman, opts)
}

// EncodeRaw wraps an unpacked readout payload, a sequence of 32-bit hardware words, in
// a frame. The frame carries no schema fingerprint.
func EncodeRaw(payload []byte, opts ...frame.Option) ([]byte, error) {
	if len(payload)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of words", errs.ErrInvalidPayloadSize, len(payload))
	}
	words := len(payload) / 4
	if uint64(words) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d words", errs.ErrInvalidPayloadSize, words)
	}

	opts = append(slices.Clip(opts), frame.WithCodecType(format.CodecRaw))

	return frame.Encode(payload, uint64(len(payload))*8, uint32(words), 0, opts...) //nolint: gosec
}

func encode(d codec.Deflater, table *param.Table, values []uint64, codecType format.CodecType, opts []frame.Option) ([]byte, error) {
	if uint64(len(values)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d values", errs.ErrInvalidPayloadSize, len(values))
	}

	for i, v := range values {
		if err := d.Deflate(v); err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
	}

	opts = append(slices.Clip(opts), frame.WithCodecType(codecType))

	return frame.Encode(d.Bytes(), d.BitLen(), uint32(len(values)), table.Fingerprint(), opts...) //nolint: gosec
}

// DecodeSimple decodes a frame written by EncodeSimple.
//
// Returns:
//   - []uint64: the values, in stream order
//   - error: frame errors, errs.ErrSchemaMismatch when table differs from the encoder's,
//     errs.ErrInvalidCodecType for a frame of another codec, or stream errors
func DecodeSimple(table *param.Table, data []byte, opts ...codec.Option) ([]uint64, error) {
	f, err := open(table, data, format.CodecSimple)
	if err != nil {
		return nil, err
	}

	in, err := codec.NewSimpleInflater(table, opts...)
	if err != nil {
		return nil, err
	}

	return inflate(in, &f)
}

// DecodeHuffman decodes a frame written by EncodeHuffman with the same coders.
func DecodeHuffman(table *param.Table, coders []*codec.HuffmanCoder, data []byte, opts ...codec.Option) ([]uint64, error) {
	f, err := open(table, data, format.CodecHuffman)
	if err != nil {
		return nil, err
	}

	in, err := codec.NewHuffmanInflater(table, opts...)
	if err != nil {
		return nil, err
	}
	if err := in.InitDecoders(coders); err != nil {
		return nil, err
	}

	return inflate(in, &f)
}

// DecodeRaw returns the readout payload of a frame written by EncodeRaw.
func DecodeRaw(data []byte) ([]byte, error) {
	f, err := frame.Decode(data)
	if err != nil {
		return nil, err
	}
	if f.Flag.CodecType != format.CodecRaw {
		return nil, fmt.Errorf("%w: want %s frame, got %s", errs.ErrInvalidCodecType, format.CodecRaw, f.Flag.CodecType)
	}

	return f.Payload, nil
}

func open(table *param.Table, data []byte, codecType format.CodecType) (frame.Frame, error) {
	f, err := frame.Decode(data)
	if err != nil {
		return frame.Frame{}, err
	}
	if f.Flag.CodecType != codecType {
		return frame.Frame{}, fmt.Errorf("%w: want %s frame, got %s", errs.ErrInvalidCodecType, codecType, f.Flag.CodecType)
	}
	if err := f.Verify(table); err != nil {
		return frame.Frame{}, err
	}

	return f, nil
}

// inflate reads every value of f. The frame's bit length keeps byte padding from
// decoding as values.
func inflate(in codec.Inflater, f *frame.Frame) ([]uint64, error) {
	in.InitBitDataInputBits(f.Payload, f.BitLen)

	// Count comes from the header; trust it only as a hint.
	values := make([]uint64, 0, min(uint64(f.Count), f.BitLen, maxPreallocValues))
	for v, err := range codec.Values(in) {
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", len(values), err)
		}
		values = append(values, v.Value)
	}

	if len(values) != int(f.Count) {
		return nil, fmt.Errorf("%w: frame declares %d values, stream holds %d",
			errs.ErrInvalidPayloadSize, f.Count, len(values))
	}

	return values, nil
}
