package hash

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
		{"another string", "another test string", 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestFingerprint(t *testing.T) {
	build := func(fields ...string) uint64 {
		fp := NewFingerprint()
		for i, name := range fields {
			fp.Add(name, uint64(i), 4)
		}

		return fp.Sum64()
	}

	require.Equal(t, build("slotId", "chan"), build("slotId", "chan"), "fingerprint must be deterministic")
	require.NotEqual(t, build("slotId", "chan"), build("chan", "slotId"), "fingerprint must depend on order")

	ab := NewFingerprint()
	ab.Add("ab")
	a := NewFingerprint()
	a.Add("a", 'b')
	require.NotEqual(t, ab.Sum64(), a.Sum64(), "name length prefix keeps fields apart")
}

func randString(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, n)
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range b {
		// random index
		b[i] = letters[seededRand.Intn(len(letters))]
	}

	return string(b)
}

func BenchmarkID(b *testing.B) {
	randStr := randString(20)
	b.ResetTimer()
	for b.Loop() {
		ID(randStr)
	}
}
