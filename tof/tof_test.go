package tof

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/arloliu/rawbit/codec"
	"github.com/arloliu/rawbit/endian"
	"github.com/arloliu/rawbit/errs"
	"github.com/stretchr/testify/require"
)

func mustPack(t *testing.T, l *Layout, values ...uint32) uint32 {
	t.Helper()

	w, err := l.Pack(values...)
	require.NoError(t, err)

	return w
}

func TestLayouts_CoverWord(t *testing.T) {
	for k := KindUnknown; k <= KindFiller; k++ {
		l, ok := k.Layout()
		if !ok {
			continue
		}

		var next uint
		for _, f := range l.Fields() {
			require.Equal(t, next, f.Offset, "%s.%s", l.Name(), f.Name)
			next += f.Width
		}
		require.Equal(t, uint(WordBits), next, l.Name())
	}
}

func TestDRMGlobalHeader(t *testing.T) {
	raw := uint32(4)<<28 | uint32(0x55)<<21 | uint32(0x1ABCD)<<4 | 1
	require.Equal(t, raw, mustPack(t, drmGlobalHeaderLayout, 1, 0x1ABCD, 0x55, 4))

	h := DRMGlobalHeader(raw)
	require.Equal(t, uint32(1), h.SlotID())
	require.Equal(t, uint32(0x1ABCD), h.EventWords())
	require.Equal(t, uint32(0x55), h.DRMID())
	require.Equal(t, uint32(4), h.WordType())
}

func TestDRMStatusHeaders(t *testing.T) {
	t.Run("status 1", func(t *testing.T) {
		raw := uint32(4)<<28 | uint32(7)<<21 | uint32(0x12)<<16 | 1<<15 | uint32(0x7FE)<<4 | 1
		require.Equal(t, raw, mustPack(t, drmStatusHeader1Layout, 1, 0x7FE, 1, 0x12, 7, 4))

		h := DRMStatusHeader1(raw)
		require.Equal(t, uint32(1), h.SlotID())
		require.Equal(t, uint32(0x7FE), h.ParticipatingSlotID())
		require.Equal(t, uint32(1), h.CBit())
		require.Equal(t, uint32(0x12), h.VersionID())
		require.Equal(t, uint32(7), h.DRMHSize())
		require.Equal(t, uint32(4), h.WordType())
	})

	t.Run("status 2", func(t *testing.T) {
		h := DRMStatusHeader2(mustPack(t, drmStatusHeader2Layout, 1, 0x3FF, 0, 0x401, 1, 4))
		require.Equal(t, uint32(1), h.SlotID())
		require.Equal(t, uint32(0x3FF), h.SlotEnableMask())
		require.Equal(t, uint32(0), h.MBZ())
		require.Equal(t, uint32(0x401), h.FaultID())
		require.Equal(t, uint32(1), h.RTOBit())
		require.Equal(t, uint32(4), h.WordType())
	})

	t.Run("status 3", func(t *testing.T) {
		h := DRMStatusHeader3(mustPack(t, drmStatusHeader3Layout, 1, 3563, 0xABC, 4))
		require.Equal(t, uint32(1), h.SlotID())
		require.Equal(t, uint32(3563), h.L0BCID())
		require.Equal(t, uint32(0xABC), h.RunTimeInfo())
		require.Equal(t, uint32(4), h.WordType())
	})

	t.Run("status 4", func(t *testing.T) {
		h := DRMStatusHeader4(mustPack(t, drmStatusHeader4Layout, 1, 0x3A5, 0, 1, 5, 0, 4))
		require.Equal(t, uint32(1), h.SlotID())
		require.Equal(t, uint32(0x3A5), h.Temperature())
		require.Equal(t, uint32(0), h.MBZ1())
		require.Equal(t, uint32(1), h.ACKBit())
		require.Equal(t, uint32(5), h.SensAD())
		require.Equal(t, uint32(0), h.MBZ2())
		require.Equal(t, uint32(4), h.WordType())
		require.Equal(t, uint32(0), uint32(h)>>20&0xFF, "reserved bits")
	})

	t.Run("event crc", func(t *testing.T) {
		c := DRMEventCRC(mustPack(t, drmEventCRCLayout, 1, 0xBEEF, 4))
		require.Equal(t, uint32(0xBEEF), c.EventCRC())
		require.Equal(t, uint32(0xBEEF)<<4|1|4<<28, uint32(c))
	})

	t.Run("global trailer", func(t *testing.T) {
		tr := DRMGlobalTrailer(mustPack(t, drmGlobalTrailerLayout, 1, 0xFFF, 5))
		require.Equal(t, uint32(1), tr.SlotID())
		require.Equal(t, uint32(0xFFF), tr.LocalEventCounter())
		require.Equal(t, uint32(5), tr.WordType())
	})
}

func TestTRMWords(t *testing.T) {
	t.Run("global header", func(t *testing.T) {
		raw := mustPack(t, trmGlobalHeaderLayout, 7, 0x1234, 2, 1, 4)
		h := TRMGlobalHeader(raw | 0xAB<<20) // undefined bits do not leak into fields
		require.Equal(t, uint32(7), h.SlotID())
		require.Equal(t, uint32(0x1234), h.EventWords())
		require.Equal(t, uint32(2), h.ACQBits())
		require.Equal(t, uint32(1), h.LBit())
		require.Equal(t, uint32(4), h.WordType())
	})

	t.Run("global trailer", func(t *testing.T) {
		tr := TRMGlobalTrailer(mustPack(t, trmGlobalTrailerLayout, 15, 0x321, 0x654, 5))
		require.Equal(t, uint32(15), tr.SlotID())
		require.Equal(t, uint32(0x321), tr.EventCRC())
		require.Equal(t, uint32(0x654), tr.EventCounter())
		require.Equal(t, uint32(5), tr.WordType())
	})

	t.Run("chain header", func(t *testing.T) {
		h := TRMChainHeader(mustPack(t, trmChainHeaderLayout, 9, 0xFED, 0x7F, 5, 1, 2))
		require.Equal(t, uint32(9), h.SlotID())
		require.Equal(t, uint32(0xFED), h.BunchID())
		require.Equal(t, uint32(0x7F), h.PB24Temp())
		require.Equal(t, uint32(5), h.PB24ID())
		require.Equal(t, uint32(1), h.TSBit())
		require.Equal(t, uint32(2), h.WordType())
		require.Equal(t, uint32(1), h.Chain())
	})

	t.Run("chain trailer", func(t *testing.T) {
		tr := TRMChainTrailer(mustPack(t, trmChainTrailerLayout, 0xA, 0, 0x800, 1))
		require.Equal(t, uint32(0xA), tr.Status())
		require.Equal(t, uint32(0), tr.MBZ())
		require.Equal(t, uint32(0x800), tr.EventCounter())
		require.Equal(t, uint32(1), tr.WordType())
		require.Equal(t, uint32(0), tr.Chain())
	})
}

func TestTDCHits(t *testing.T) {
	t.Run("packed", func(t *testing.T) {
		raw := uint32(1)<<31 | uint32(2)<<29 | 1<<28 | uint32(0xC)<<24 | uint32(5)<<21 | uint32(0x99)<<13 | 0x1ABC
		h := TDCPackedHit(raw)
		require.Equal(t, uint32(0x1ABC), h.HitTime())
		require.Equal(t, uint32(0x99), h.TOTWidth())
		require.Equal(t, uint32(5), h.Chan())
		require.Equal(t, uint32(0xC), h.TDCID())
		require.Equal(t, uint32(1), h.EBit())
		require.Equal(t, uint32(2), h.PSBits())
		require.Equal(t, uint32(1), h.MBO())
	})

	t.Run("unpacked", func(t *testing.T) {
		raw := uint32(1)<<31 | uint32(1)<<29 | uint32(3)<<24 | uint32(6)<<21 | 0x1FFFFF
		h := TDCUnpackedHit(raw)
		require.Equal(t, uint32(0x1FFFFF), h.HitTime())
		require.Equal(t, uint32(6), h.Chan())
		require.Equal(t, uint32(3), h.TDCID())
		require.Equal(t, uint32(0), h.EBit())
		require.Equal(t, uint32(1), h.PSBits())
		require.Equal(t, uint32(1), h.MBO())
	})

	t.Run("new packed hit", func(t *testing.T) {
		h, err := NewPackedHit(5, 0xC, 0x1ABC, 0x99)
		require.NoError(t, err)
		require.Equal(t, uint32(1)<<31|uint32(0xC)<<24|uint32(5)<<21|uint32(0x99)<<13|0x1ABC, uint32(h))

		_, err = NewPackedHit(8, 0, 0, 0)
		require.ErrorIs(t, err, errs.ErrValueOverflow)
	})
}

func TestLayout_Pack(t *testing.T) {
	_, err := drmGlobalHeaderLayout.Pack(1, 2, 3)
	require.Error(t, err)
	_, err = drmGlobalHeaderLayout.Pack(1, 2, 3, 4, 5)
	require.Error(t, err)
	_, err = drmGlobalHeaderLayout.Pack(16, 0, 0, 4)
	require.ErrorIs(t, err, errs.ErrValueOverflow)

	f, ok := drmGlobalHeaderLayout.Field("DRMID")
	require.True(t, ok)
	require.Equal(t, Field{Name: "DRMID", Offset: 21, Width: 7}, f)
	require.Equal(t, uint32(0x7F)<<21, f.Set(0, 0xFF), "excess bits are dropped")

	_, ok = drmGlobalHeaderLayout.Field("")
	require.False(t, ok)

	vals := drmGlobalTrailerLayout.Unpack(0xFFFFFFFF)
	require.Len(t, vals, 3, "reserved field is skipped")
	require.Equal(t, "LocalEventCounter", vals[1].Name)
	require.Equal(t, uint32(0xFFF), vals[1].Value)

	require.Panics(t, func() { newLayout("short", fieldDef{"A", 31}) })
}

type payloadBuilder struct {
	t      *testing.T
	engine endian.EndianEngine
	buf    []byte
	kinds  []Kind
}

func (b *payloadBuilder) add(k Kind, w uint32) *payloadBuilder {
	b.buf = b.engine.AppendUint32(b.buf, w)
	b.kinds = append(b.kinds, k)

	return b
}

func (b *payloadBuilder) pack(k Kind, l *Layout, values ...uint32) *payloadBuilder {
	return b.add(k, mustPack(b.t, l, values...))
}

func eventPayload(t *testing.T, engine endian.EndianEngine) *payloadBuilder {
	b := &payloadBuilder{t: t, engine: engine}
	hit1, err := NewPackedHit(1, 2, 100, 7)
	require.NoError(t, err)
	hit2, err := NewPackedHit(3, 4, 200, 20)
	require.NoError(t, err)

	return b.
		pack(KindDRMGlobalHeader, drmGlobalHeaderLayout, SlotDRM, 14, 9, 4).
		pack(KindDRMStatusHeader1, drmStatusHeader1Layout, SlotDRM, 0x4, 0, 0x11, 5, 4).
		pack(KindDRMStatusHeader2, drmStatusHeader2Layout, SlotDRM, 0x4, 0, 0, 0, 4).
		pack(KindDRMStatusHeader3, drmStatusHeader3Layout, SlotDRM, 1000, 0, 4).
		pack(KindDRMStatusHeader4, drmStatusHeader4Layout, SlotDRM, 300, 0, 1, 2, 0, 4).
		pack(KindDRMEventCRC, drmEventCRCLayout, SlotDRM, 0xCAFE, 4).
		pack(KindTRMGlobalHeader, trmGlobalHeaderLayout, 3, 6, 0, 0, 4).
		pack(KindTRMChainHeader, trmChainHeaderLayout, 3, 1000, 40, 1, 0, 0).
		add(KindTDCHit, uint32(hit1)).
		add(KindTDCHit, uint32(hit2)).
		pack(KindTRMChainTrailer, trmChainTrailerLayout, 0, 0, 1, 1).
		pack(KindTRMGlobalTrailer, trmGlobalTrailerLayout, SlotTRMTrailer, 0x12, 1, 5).
		pack(KindDRMGlobalTrailer, drmGlobalTrailerLayout, SlotDRM, 1, 5).
		add(KindFiller, 0x70000000).
		add(KindUnknown, 0x60000000)
}

func scanKinds(t *testing.T, s *Scanner) []Kind {
	t.Helper()

	var kinds []Kind
	for w, err := range s.All() {
		require.NoError(t, err)
		kinds = append(kinds, w.Kind)
	}

	return kinds
}

func TestScanner(t *testing.T) {
	b := eventPayload(t, endian.GetLittleEndianEngine())

	s, err := NewScanner(b.buf)
	require.NoError(t, err)
	require.Equal(t, b.kinds, scanKinds(t, s))

	_, err = s.Next()
	require.ErrorIs(t, err, errs.ErrOutOfData)

	s.Reset(b.buf)
	w, err := s.Next()
	require.NoError(t, err)
	require.Equal(t, 0, w.Offset)
	require.Equal(t, uint32(14), DRMGlobalHeader(w.Raw).EventWords())
	require.Equal(t, "DRMGlobalHeader(0x412000e1)", w.String())

	fields := w.Fields()
	require.Len(t, fields, 4)
	require.Equal(t, "DRMID", fields[2].Name)
	require.Equal(t, uint32(9), fields[2].Value)
}

func TestScanner_BigEndian(t *testing.T) {
	b := eventPayload(t, endian.GetBigEndianEngine())

	s, err := NewScanner(b.buf, WithEngine(endian.GetBigEndianEngine()))
	require.NoError(t, err)
	require.Equal(t, b.kinds, scanKinds(t, s))

	_, err = NewScanner(b.buf, WithEngine(nil))
	require.Error(t, err)
}

func TestScanner_ShortHeaderBlock(t *testing.T) {
	b := &payloadBuilder{t: t, engine: endian.GetLittleEndianEngine()}
	b.pack(KindDRMGlobalHeader, drmGlobalHeaderLayout, SlotDRM, 3, 0, 4).
		pack(KindDRMStatusHeader1, drmStatusHeader1Layout, SlotDRM, 0x4, 0, 0x11, 5, 4).
		pack(KindTRMGlobalHeader, trmGlobalHeaderLayout, 5, 2, 0, 0, 4).
		pack(KindDRMGlobalTrailer, drmGlobalTrailerLayout, SlotDRM, 1, 5)

	s, err := NewScanner(b.buf)
	require.NoError(t, err)
	require.Equal(t, b.kinds, scanKinds(t, s))
}

func TestScanner_Truncated(t *testing.T) {
	b := eventPayload(t, endian.GetLittleEndianEngine())
	data := b.buf[:len(b.buf)-2]

	s, err := NewScanner(data)
	require.NoError(t, err)

	var (
		n       int
		lastErr error
	)
	for _, err := range s.All() {
		if err != nil {
			lastErr = err
			continue
		}
		n++
	}
	require.Equal(t, len(b.kinds)-1, n)
	require.ErrorIs(t, lastErr, errs.ErrOutOfData)
	require.ErrorIs(t, lastErr, errs.ErrTruncatedField)
}

func TestKind_String(t *testing.T) {
	require.Equal(t, "TDCHit", KindTDCHit.String())
	require.Equal(t, "Kind(200)", Kind(200).String())

	_, ok := KindFiller.Layout()
	require.False(t, ok)
}

func randomPackedHits(t *testing.T, n int, seed int64) []TDCPackedHit {
	t.Helper()

	rng := rand.New(rand.NewSource(seed)) //nolint: gosec
	hits := make([]TDCPackedHit, n)
	for i := range hits {
		tot := uint32(rng.ExpFloat64() * 10)
		if tot > 255 {
			tot = 255
		}
		h, err := NewPackedHit(uint32(rng.Intn(8)), uint32(rng.Intn(15)), uint32(rng.Intn(1<<13)), tot) //nolint: gosec
		require.NoError(t, err)
		hits[i] = h
	}

	return hits
}

func TestHits_SimpleRoundTrip(t *testing.T) {
	hits := randomPackedHits(t, 500, 11)

	enc, err := codec.NewSimpleDeflater(HitParameters())
	require.NoError(t, err)
	defer enc.Finish()
	for _, h := range hits {
		require.NoError(t, DeflateHit(enc, h))
	}

	dec, err := codec.NewSimpleInflater(HitParameters())
	require.NoError(t, err)
	dec.InitBitDataInputBits(enc.Bytes(), enc.BitLen())

	for i, want := range hits {
		got, err := InflateHit(dec)
		require.NoError(t, err, "hit %d", i)
		require.Equal(t, want, got)
	}
	_, err = InflateHit(dec)
	require.True(t, codec.IsEndOfStream(err))
}

func TestHits_HuffmanRoundTrip(t *testing.T) {
	hits := randomPackedHits(t, 500, 12)
	coders, err := TrainHitCoders(hits)
	require.NoError(t, err)
	require.Len(t, coders, 4)

	enc, err := codec.NewHuffmanDeflater(HitParameters())
	require.NoError(t, err)
	defer enc.Finish()
	require.NoError(t, enc.InitEncoders(coders))
	for _, h := range hits {
		require.NoError(t, DeflateHit(enc, h))
	}
	data, bits := bytes.Clone(enc.Bytes()), enc.BitLen()
	require.Less(t, bits, uint64(len(hits)*WordBits))

	dec, err := codec.NewHuffmanInflater(HitParameters())
	require.NoError(t, err)
	require.NoError(t, dec.InitDecoders(coders))
	dec.InitBitDataInputBits(data, bits)

	for _, want := range hits {
		got, err := InflateHit(dec)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestInflateHit_Truncated(t *testing.T) {
	h, err := NewPackedHit(1, 2, 3, 4)
	require.NoError(t, err)

	enc, err := codec.NewSimpleDeflater(HitParameters())
	require.NoError(t, err)
	defer enc.Finish()
	require.NoError(t, DeflateHit(enc, h))
	require.NoError(t, enc.Deflate(5)) // chan of a second, incomplete hit

	dec, err := codec.NewSimpleInflater(HitParameters())
	require.NoError(t, err)
	dec.InitBitDataInputBits(enc.Bytes(), enc.BitLen())

	got, err := InflateHit(dec)
	require.NoError(t, err)
	require.Equal(t, h, got)

	_, err = InflateHit(dec)
	require.ErrorIs(t, err, errs.ErrTruncatedField)
	require.False(t, codec.IsEndOfStream(err))
}
