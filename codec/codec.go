package codec

import (
	"errors"
	"fmt"
	"iter"

	"github.com/arloliu/rawbit/bitio"
	"github.com/arloliu/rawbit/errs"
	"github.com/arloliu/rawbit/internal/options"
	"github.com/arloliu/rawbit/param"
)

// Inflater pulls successive parameter values out of a bitstream.
//
// Values are read in the cycling order of the configured parameter table (see
// param.Cursor); the parameter a value belongs to is reported by CurrentParameter.
type Inflater interface {
	// InitBitDataInput attaches a new bitstream and resets the cursor state.
	InitBitDataInput(data []byte)
	// InitBitDataInputBits attaches the first bitLen bits of data and resets the cursor state.
	InitBitDataInputBits(data []byte, bitLen uint64)
	// NextValue decodes the next value.
	//
	// Returns the value and the number of bits it occupied in the stream, including
	// any width marker. errs.ErrOutOfData alone means a clean end of stream.
	NextValue() (value uint64, length uint, err error)
	// CurrentParameter returns the parameter index of the value last returned by
	// NextValue, or param.InvalidIndex before the first value.
	CurrentParameter() int
	// Stats returns per-parameter decoding statistics for the current stream.
	Stats() []ParameterStats
}

// Deflater packs parameter values into a bitstream.
type Deflater interface {
	// InitBitDataOutput discards any output and resets the cursor state.
	InitBitDataOutput()
	// Deflate writes value for the next parameter in cycling order.
	Deflate(value uint64) error
	// OutputParameterBits writes value for the parameter at index and moves the
	// cursor there, so a following Deflate continues after it.
	OutputParameterBits(index int, value uint64) error
	// Bytes returns the output, zero-padded to a byte boundary.
	Bytes() []byte
	// BitLen returns the exact number of bits written.
	BitLen() uint64
	// Stats returns per-parameter encoding statistics for the current stream.
	Stats() []ParameterStats
	// Finish releases the output buffer. Copy Bytes() first.
	Finish()
}

// Value is one decoded parameter value.
type Value struct {
	Parameter int    // Index of the parameter in the table
	Value     uint64 // Decoded value
	Length    uint   // Bits consumed, including width markers
}

// ParameterStats accumulates what a codec saw for one parameter.
type ParameterStats struct {
	Name    string
	Values  uint64 // Number of values coded
	Bits    uint64 // Total bits, including width markers
	Reduced uint64 // Values coded in the reduced width (simple codecs only)
}

// AverageBits returns the mean number of bits per value, 0 if no value was coded.
func (s ParameterStats) AverageBits() float64 {
	if s.Values == 0 {
		return 0
	}

	return float64(s.Bits) / float64(s.Values)
}

// IsEndOfStream reports whether err marks a clean end of stream: the data ran out at
// a field boundary rather than in the middle of a field.
func IsEndOfStream(err error) bool {
	return errors.Is(err, errs.ErrOutOfData) && !errors.Is(err, errs.ErrTruncatedField)
}

// Values iterates over all values of the stream attached to in.
//
// Iteration stops silently at a clean end of stream; any other error is yielded once
// and ends the iteration.
func Values(in Inflater) iter.Seq2[Value, error] {
	return func(yield func(Value, error) bool) {
		for {
			v, n, err := in.NextValue()
			if err != nil {
				if !IsEndOfStream(err) {
					yield(Value{Parameter: in.CurrentParameter()}, err)
				}

				return
			}

			if !yield(Value{Parameter: in.CurrentParameter(), Value: v, Length: n}, nil) {
				return
			}
		}
	}
}

// Option configures an inflater or deflater.
type Option = options.Option[*config]

type config struct {
	legacy   bool
	capacity int
}

// WithLegacyMode decodes (or encodes) every value against parameter 0 without
// cycling through the table.
//
// This is a compatibility shim for streams written before per-parameter cycling
// existed. It is only accepted for tables with at most one parameter.
func WithLegacyMode() Option {
	return options.NoError(func(c *config) {
		c.legacy = true
	})
}

// WithCapacity bounds a deflater's output to n bytes. Writes that do not fit fail
// with errs.ErrBufferFull. By default deflaters write to a growable pooled buffer.
func WithCapacity(n int) Option {
	return options.New(func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("invalid output capacity: %d", n)
		}
		c.capacity = n

		return nil
	})
}

func newConfig(table *param.Table, opts []Option) (*config, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil parameter table", errs.ErrNotFound)
	}

	cfg := &config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.legacy && table.Len() > 1 {
		return nil, fmt.Errorf("%w: table has %d parameters", errs.ErrLegacyMode, table.Len())
	}

	return cfg, nil
}

// cursorState is the per-stream cursor shared by all codecs.
type cursorState struct {
	table  *param.Table
	cursor *param.Cursor
	legacy bool
	stats  []ParameterStats
}

func newCursorState(table *param.Table, legacy bool) cursorState {
	s := cursorState{
		table:  table,
		cursor: table.Cursor(),
		legacy: legacy,
	}
	s.reset()

	return s
}

// reset rewinds the cursor and clears the statistics.
func (s *cursorState) reset() {
	s.cursor.Reset()
	if len(s.stats) != s.table.Len() {
		s.stats = make([]ParameterStats, s.table.Len())
	}
	for i, d := range s.table.Definitions() {
		s.stats[i] = ParameterStats{Name: d.Name}
	}
}

// peekNext returns the parameter the next value belongs to without moving the cursor.
func (s *cursorState) peekNext() (int, param.Definition, error) {
	idx := 0
	if !s.legacy {
		idx = s.table.NextIndex(s.cursor.Index())
	}

	def, err := s.table.Get(idx)
	if err != nil {
		return param.InvalidIndex, param.Definition{}, fmt.Errorf("empty parameter table: %w", err)
	}

	return idx, def, nil
}

// commit moves the cursor to idx and records a coded value.
func (s *cursorState) commit(idx int, length uint, reduced bool) {
	s.cursor.Seek(idx)

	st := &s.stats[idx]
	st.Values++
	st.Bits += uint64(length)
	if reduced {
		st.Reduced++
	}
}

// currentParameter returns the cursor index.
func (s *cursorState) currentParameter() int {
	return s.cursor.Index()
}

// snapshot copies the statistics.
func (s *cursorState) snapshot() []ParameterStats {
	out := make([]ParameterStats, len(s.stats))
	copy(out, s.stats)

	return out
}

// truncated builds the error for a stream that ended inside a field.
func truncated(name string, consumed uint) error {
	return fmt.Errorf("%w: parameter %q after %d bits: %w", errs.ErrTruncatedField, name, consumed, errs.ErrOutOfData)
}

// newOutputWriter creates the deflater output writer for cfg.
func newOutputWriter(cfg *config) *bitio.Writer {
	if cfg.capacity > 0 {
		return bitio.NewWriter(make([]byte, cfg.capacity))
	}

	return bitio.NewGrowableWriter()
}
