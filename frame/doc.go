// Package frame wraps a packed rawbit payload in a self-describing frame.
//
// A frame is a fixed 32-byte header followed by the stored payload:
//
//	┌──────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                             │
//	│  - Options (2 bytes, little-endian): byte order,     │
//	│    reserved bits, magic number 0xB17                 │
//	│  - CodecType (1 byte), CompressionType (1 byte)      │
//	│  - Fingerprint (8 bytes): parameter table identity   │
//	│  - Count (4 bytes): number of values                 │
//	│  - BitLen (8 bytes): exact payload length in bits    │
//	│  - StoredSize (4 bytes): payload bytes after         │
//	│    compression                                       │
//	│  - Checksum (4 bytes): CRC-32 of the stored payload  │
//	├──────────────────────────────────────────────────────┤
//	│ Stored payload (StoredSize bytes)                    │
//	└──────────────────────────────────────────────────────┘
//
// Bitstreams are not byte aligned, so the header carries BitLen; a decoder limits its
// reader to BitLen bits and never mistakes the final padding for data.
//
// The checksum covers the stored bytes, so a corrupted frame is rejected before it is
// decompressed.
//
// # Usage
//
//	data, err := frame.Encode(d.Bytes(), d.BitLen(), count, table.Fingerprint(),
//		frame.WithCompression(format.CompressionZstd))
//
//	f, err := frame.Decode(data)
//	if err := f.Verify(table); err != nil {
//		return err
//	}
//	in.InitBitDataInputBits(f.Payload, f.BitLen)
package frame
