// Package errs defines the sentinel errors returned by rawbit packages.
//
// Errors fall into three groups:
//   - stream errors (ErrOutOfData, ErrInvalidCode) raised while decoding a bitstream;
//   - encode-time programming errors (ErrValueOverflow, ErrSymbolNotInAlphabet, ErrBufferFull);
//   - configuration errors (ErrDuplicateName, ErrInvalidWidth, ErrNotFound, ErrUnknownParameter, ...)
//     raised while a parameter table or codec is being set up.
//
// Callers match errors with errors.Is; packages wrap them with context using fmt.Errorf and %w.
package errs

import "errors"

// Stream errors.
var (
	// ErrOutOfData is returned when the bitstream ends before a requested field is complete.
	// At a field boundary it means end of stream.
	ErrOutOfData = errors.New("out of data")
	// ErrInvalidCode is returned when a Huffman-coded bit pattern matches no trained leaf.
	ErrInvalidCode = errors.New("invalid huffman code")
	// ErrTruncatedField is returned together with ErrOutOfData when the stream ends in
	// the middle of a field, which is corruption rather than a clean end of stream.
	ErrTruncatedField = errors.New("truncated field")
)

// Encode-time errors.
var (
	ErrValueOverflow       = errors.New("value does not fit in field width")
	ErrSymbolNotInAlphabet = errors.New("symbol not in huffman alphabet")
	ErrBufferFull          = errors.New("output buffer full")
	ErrInvalidBitCount     = errors.New("bit count out of range [0, 64]")
)

// Configuration errors.
var (
	ErrDuplicateName    = errors.New("duplicate parameter name")
	ErrInvalidName      = errors.New("invalid parameter name")
	ErrInvalidWidth     = errors.New("invalid parameter bit width")
	ErrNotFound         = errors.New("parameter not found")
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrLegacyMode       = errors.New("legacy mode requires at most one parameter")
	ErrCodeTooLong      = errors.New("huffman code longer than 64 bits")
	ErrEmptyAlphabet    = errors.New("huffman alphabet is empty")
)

// Serialization errors.
var (
	ErrInvalidCoderPayload = errors.New("invalid huffman coder payload")
	ErrInvalidHeaderSize   = errors.New("invalid frame header size")
	ErrInvalidHeaderFlags  = errors.New("invalid frame header flags")
	ErrInvalidPayloadSize  = errors.New("invalid frame payload size")
	ErrChecksumMismatch    = errors.New("frame payload checksum mismatch")
	ErrSchemaMismatch      = errors.New("frame schema fingerprint mismatch")
	ErrInvalidCompression  = errors.New("invalid compression type")
	ErrInvalidCodecType    = errors.New("invalid codec type")
	ErrIncompressible      = errors.New("payload is incompressible")
)
