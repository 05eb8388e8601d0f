// Package codec implements the parameter-cycling stream codecs of rawbit.
//
// A stream is a sequence of values for the parameters of a param.Table, written
// round-robin in registration order: parameter 0, 1, ..., n-1, 0, 1, ... Nothing in the
// stream says which parameter a value belongs to; encoder and decoder share the table
// and walk it in lockstep.
//
// # Codecs
//
// Two codecs share the Inflater and Deflater interfaces:
//
//   - Simple: each value is written at fixed width. Parameters declared with a reduced
//     width carry one marker bit per value (0 = reduced width follows, 1 = full width
//     follows), so small values cost fewer bits.
//   - Huffman: each value is written as the canonical Huffman code of its parameter's
//     HuffmanCoder. Coders are trained from symbol frequencies (NewHuffmanCoder or
//     HuffmanTrainer) and exchanged out of band (MarshalBinary).
//
// # Usage
//
//	table := param.MustNewTable(
//	    param.Definition{Name: "chan", BitLength: 8, ReducedBitLength: 3},
//	    param.Definition{Name: "gain", BitLength: 2},
//	)
//
//	enc, _ := codec.NewSimpleDeflater(table)
//	defer enc.Finish()
//	for _, h := range hits {
//	    _ = enc.Deflate(h.Chan)
//	    _ = enc.Deflate(h.Gain)
//	}
//	data, bits := bytes.Clone(enc.Bytes()), enc.BitLen()
//
//	dec, _ := codec.NewSimpleInflater(table)
//	dec.InitBitDataInputBits(data, bits)
//	for v, err := range codec.Values(dec) {
//	    ...
//	}
//
// # End of Stream
//
// NextValue returns errs.ErrOutOfData when the stream is exhausted at a field
// boundary. A stream that ends inside a field returns an error matching both
// errs.ErrTruncatedField and errs.ErrOutOfData; IsEndOfStream tells the two apart.
// Huffman streams should be attached with their exact bit length, otherwise the zero
// padding of the last byte may decode as codes.
//
// # Thread Safety
//
// Inflaters and deflaters are single-threaded. Tables and HuffmanCoders are immutable
// and may be shared between any number of them.
package codec
