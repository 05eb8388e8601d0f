// Package tof provides views over the 32-bit readout words of the TOF detector: DRM
// (Data Readout Module) headers and trailers, TRM (TDC Readout Module) headers,
// chain headers and trailers, and TDC hits.
//
// # Bit Layout
//
// Unlike rawbit bitstreams, hardware words number their bits from the least
// significant bit. Fields are laid out from bit 0 upwards in declaration order:
//
//	TDCPackedHit
//	 31 30 29 28 27   24 23 21 20        13 12              0
//	+--+-----+--+-------+-----+------------+-----------------+
//	|1 |PS   |E |TDCID  |Chan |TOTWidth    |HitTime          |
//	+--+-----+--+-------+-----+------------+-----------------+
//
// Words are stored little-endian in the payload.
//
// Each view is a named uint32 with one accessor per field; views never validate the
// word they wrap. Scanner classifies the words of a payload so the right view can be
// applied.
//
// # Packing Hits
//
// HitParameters is the parameter table that packs a hit as (chan, tdc, time, tot) for
// the codec package; DeflateHit and InflateHit move whole hits through a codec.
package tof
