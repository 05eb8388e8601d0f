// Package param holds the parameter tables shared by rawbit encoders and decoders.
//
// A Table is an ordered list of named field definitions. Encoder and decoder agree on
// the table out of band (it is never embedded in the bitstream); the table's
// Fingerprint can be stored next to a payload so a decoder can verify that it uses the
// schema the payload was written with.
//
// Registration order is the cycling order: codecs read and write fields round-robin,
// parameter 0, 1, ..., n-1, 0, ... A Cursor tracks that position. Cursors live in the
// codecs, so a Table is never mutated while decoding and can be shared read-only
// between goroutines once configuration is complete.
package param
