package param

import (
	"testing"

	"github.com/arloliu/rawbit/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_AddParameterDefinition(t *testing.T) {
	tbl := NewTable()

	idx, err := tbl.AddParameterDefinition("slotId", 4)
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	idx, err = tbl.AddParameterDefinition("charge", 16, 10)
	require.NoError(t, err)
	require.Equal(t, 1, idx)

	require.Equal(t, 2, tbl.Len())
	require.Equal(t, uint(16), tbl.MaxBitLength())

	def, err := tbl.Get(1)
	require.NoError(t, err)
	require.Equal(t, Definition{Name: "charge", BitLength: 16, ReducedBitLength: 10}, def)
	require.True(t, def.HasReduced())
	require.Equal(t, "charge[16/10]", def.String())
}

func TestTable_AddParameterDefinition_Errors(t *testing.T) {
	tests := []struct {
		name      string
		param     string
		bitLength uint
		reduced   []uint
		want      error
	}{
		{"empty name", "", 4, nil, errs.ErrInvalidName},
		{"duplicate", "slotId", 4, nil, errs.ErrDuplicateName},
		{"zero width", "time", 0, nil, errs.ErrInvalidWidth},
		{"too wide", "time", 65, nil, errs.ErrInvalidWidth},
		{"reduced wider than full", "time", 8, []uint{9}, errs.ErrInvalidWidth},
		{"two reduced widths", "time", 8, []uint{2, 3}, errs.ErrInvalidWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := NewTable()
			_, err := tbl.AddParameterDefinition("slotId", 4)
			require.NoError(t, err)

			idx, err := tbl.AddParameterDefinition(tt.param, tt.bitLength, tt.reduced...)
			require.ErrorIs(t, err, tt.want)
			require.Equal(t, InvalidIndex, idx)
			require.Equal(t, 1, tbl.Len(), "failed registration must not change the table")
		})
	}
}

func TestTable_Lookup(t *testing.T) {
	tbl := MustNewTable(
		Definition{Name: "chan", BitLength: 3},
		Definition{Name: "tdc", BitLength: 4},
	)

	idx, def, err := tbl.Lookup("tdc")
	require.NoError(t, err)
	require.Equal(t, 1, idx)
	require.Equal(t, uint(4), def.BitLength)

	_, _, err = tbl.Lookup("gain")
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = tbl.Get(2)
	require.ErrorIs(t, err, errs.ErrNotFound)
	_, err = tbl.Get(InvalidIndex)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTable_Definitions(t *testing.T) {
	tbl := MustNewTable(
		Definition{Name: "a", BitLength: 1},
		Definition{Name: "b", BitLength: 2},
		Definition{Name: "c", BitLength: 3},
	)

	var names []string
	for i, d := range tbl.Definitions() {
		require.Equal(t, uint(i+1), d.BitLength)
		names = append(names, d.Name)
		if d.Name == "b" {
			break
		}
	}
	require.Equal(t, []string{"a", "b"}, names)
}

func TestNewTableFrom_Error(t *testing.T) {
	tbl, err := NewTableFrom(
		Definition{Name: "a", BitLength: 4},
		Definition{Name: "a", BitLength: 4},
	)
	require.ErrorIs(t, err, errs.ErrDuplicateName)
	require.Nil(t, tbl)

	require.Panics(t, func() { MustNewTable(Definition{Name: "bad"}) })
}

func TestDefinition_Widths(t *testing.T) {
	full := Definition{Name: "w", BitLength: 64}
	require.Equal(t, ^uint64(0), full.MaxValue())
	require.True(t, full.Fits(^uint64(0)))

	d := Definition{Name: "q", BitLength: 10, ReducedBitLength: 4}
	require.Equal(t, uint64(1023), d.MaxValue())
	require.True(t, d.FitsReduced(15))
	require.False(t, d.FitsReduced(16))
	require.False(t, d.Fits(1024))

	same := Definition{Name: "s", BitLength: 4, ReducedBitLength: 4}
	require.False(t, same.HasReduced(), "reduced width equal to full width is no reduction")
	require.Equal(t, "s[4]", same.String())
}

func TestTable_Fingerprint(t *testing.T) {
	a := MustNewTable(Definition{Name: "chan", BitLength: 3}, Definition{Name: "gain", BitLength: 1})
	b := MustNewTable(Definition{Name: "chan", BitLength: 3}, Definition{Name: "gain", BitLength: 1})
	c := MustNewTable(Definition{Name: "chan", BitLength: 3}, Definition{Name: "gain", BitLength: 2})
	d := MustNewTable(Definition{Name: "chan", BitLength: 3}, Definition{Name: "gain", BitLength: 1, ReducedBitLength: 1})

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), d.Fingerprint())
}

func TestCursor_NextParameter(t *testing.T) {
	t.Run("cycles in registration order", func(t *testing.T) {
		tbl := MustNewTable(
			Definition{Name: "row", BitLength: 6},
			Definition{Name: "pad", BitLength: 8},
			Definition{Name: "time", BitLength: 10},
		)
		c := tbl.Cursor()
		require.Equal(t, InvalidIndex, c.Index())
		_, ok := c.Current()
		require.False(t, ok)

		got := make([]int, 0, 7)
		for range 7 {
			got = append(got, c.NextParameter())
		}
		require.Equal(t, []int{0, 1, 2, 0, 1, 2, 0}, got)

		def, ok := c.Current()
		require.True(t, ok)
		require.Equal(t, "row", def.Name)

		c.Reset()
		require.Equal(t, InvalidIndex, c.Index())
		require.Same(t, tbl, c.Table())
	})

	t.Run("empty table", func(t *testing.T) {
		c := NewTable().Cursor()
		require.Equal(t, InvalidIndex, c.NextParameter())
		require.Equal(t, InvalidIndex, c.NextParameter())
	})

	t.Run("single parameter", func(t *testing.T) {
		c := MustNewTable(Definition{Name: "slotId", BitLength: 4}).Cursor()
		for range 3 {
			require.Equal(t, 0, c.NextParameter())
		}
	})
}
