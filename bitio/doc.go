// Package bitio provides the bit cursor used by every rawbit codec: a Reader and a
// Writer over a byte buffer that extract and insert unsigned fields of 0 to 64 bits,
// crossing byte boundaries transparently.
//
// # Bit Order
//
// Streams are MSB-first. Bit 0 of a stream is the most significant bit of byte 0,
// and an n-bit field is stored with its most significant bit first:
//
//	byte   0               1
//	      +---------------+---------------+-
//	      |7 6 5 4 3 2 1 0|7 6 5 4 3 2 1 0|
//	      +---------------+---------------+-
//	bit    0 1 2 3 4 5 6 7 8 9 ...
//
// Writing the 4-bit value 9 followed by the 4-bit value 3 produces the single byte 0x93.
// Reader and Writer share this convention, so any sequence of (value, width) pairs
// written by a Writer is returned unchanged by a Reader over the produced bytes.
//
// # Failure Semantics
//
// Both sides are atomic per field: a failed ReadBits leaves the read offset unchanged,
// and a failed WriteBits leaves the output untouched. ReadBits reports errs.ErrOutOfData
// when fewer bits remain than requested; at a field boundary callers treat it as the end
// of the stream.
//
// # Thread Safety
//
// Readers and Writers are not safe for concurrent use. Each instance owns one buffer
// for the duration of one decode or encode pass.
package bitio
