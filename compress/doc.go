// Package compress provides the general purpose compressors a frame can apply to its
// packed payload.
//
// Field packing (the codec package) removes redundancy inside each value; compression
// removes redundancy across values, such as repeated channel patterns in a run.
// Huffman-packed payloads are already close to their entropy and are usually stored
// with CompressionNone.
//
// # Algorithms
//
//   - None: payload stored as is
//   - Zstd: best ratio; pure Go by default, libzstd with the gozstd build tag
//   - S2: fastest, moderate ratio
//   - LZ4: fast decompression, raw blocks without framing
//
// # Usage
//
//	c, err := compress.GetCodec(format.CompressionS2)
//	if err != nil {
//	    return err
//	}
//	packed, err := c.Compress(payload)
//	...
//	payload, err = c.Decompress(packed, size)
//
// Decompress takes the expected decompressed size, which a frame derives from its
// payload bit length; a mismatch is errs.ErrInvalidPayloadSize.
//
// # Thread Safety
//
// All codecs are stateless values backed by sync.Pool'ed encoders and decoders and
// are safe for concurrent use.
package compress
