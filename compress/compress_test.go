package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/arloliu/rawbit/errs"
	"github.com/arloliu/rawbit/format"
	"github.com/stretchr/testify/require"
)

// repetitivePayload mimics a packed run: a few hit patterns repeated with noise.
func repetitivePayload(n int) []byte {
	rng := rand.New(rand.NewSource(1)) //nolint: gosec
	patterns := [][]byte{
		{0x81, 0x20, 0x0C, 0x7F},
		{0x81, 0x22, 0x0C, 0x10},
		{0x40, 0x00, 0x00, 0x01},
	}

	var buf bytes.Buffer
	for buf.Len() < n {
		buf.Write(patterns[rng.Intn(len(patterns))])
		if rng.Intn(10) == 0 {
			buf.WriteByte(byte(rng.Intn(256)))
		}
	}

	return buf.Bytes()[:n]
}

func TestCodecs_RoundTrip(t *testing.T) {
	payload := repetitivePayload(64 * 1024)

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			c, err := GetCodec(ct)
			require.NoError(t, err)

			packed, err := c.Compress(payload)
			require.NoError(t, err)
			if ct != format.CompressionNone {
				require.Less(t, len(packed), len(payload))
			}

			restored, err := c.Decompress(packed, len(payload))
			require.NoError(t, err)
			require.Equal(t, payload, restored)

			_, err = c.Decompress(packed, len(payload)+1)
			require.ErrorIs(t, err, errs.ErrInvalidPayloadSize)
		})
	}
}

func TestCodecs_Empty(t *testing.T) {
	for ct, c := range builtinCodecs {
		t.Run(ct.String(), func(t *testing.T) {
			packed, err := c.Compress(nil)
			require.NoError(t, err)
			require.Empty(t, packed)

			restored, err := c.Decompress(nil, 0)
			require.NoError(t, err)
			require.Empty(t, restored)

			_, err = c.Decompress(nil, 4)
			require.ErrorIs(t, err, errs.ErrInvalidPayloadSize)
		})
	}
}

func TestCodecs_Corrupt(t *testing.T) {
	payload := repetitivePayload(4096)

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			c, err := GetCodec(ct)
			require.NoError(t, err)

			packed, err := c.Compress(payload)
			require.NoError(t, err)

			_, err = c.Decompress(packed[:len(packed)/2], len(payload))
			require.Error(t, err)
		})
	}
}

func TestLZ4Compressor_Incompressible(t *testing.T) {
	_, err := NewLZ4Compressor().Compress([]byte{0x01, 0x02, 0x03})
	require.ErrorIs(t, err, errs.ErrIncompressible)
}

func TestCodecs_SizeOutOfBounds(t *testing.T) {
	payload := repetitivePayload(1024)

	for ct, c := range builtinCodecs {
		t.Run(ct.String(), func(t *testing.T) {
			packed, err := c.Compress(payload)
			require.NoError(t, err)

			for _, size := range []int{-1, MaxPayloadSize + 1} {
				require.NotPanics(t, func() {
					_, err = c.Decompress(packed, size)
				})
				require.ErrorIs(t, err, errs.ErrInvalidPayloadSize)
			}
		})
	}
}

func TestGetCodec_Invalid(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)

	_, err = GetCodec(format.CompressionType(9))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func BenchmarkCompress(b *testing.B) {
	payload := repetitivePayload(16 * 1024)

	for ct, c := range builtinCodecs {
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			for b.Loop() {
				_, _ = c.Compress(payload)
			}
		})
	}
}

func BenchmarkDecompress(b *testing.B) {
	payload := repetitivePayload(16 * 1024)

	for ct, c := range builtinCodecs {
		packed, err := c.Compress(payload)
		require.NoError(b, err)

		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			for b.Loop() {
				_, _ = c.Decompress(packed, len(payload))
			}
		})
	}
}
