package codec

import (
	"fmt"

	"github.com/arloliu/rawbit/bitio"
	"github.com/arloliu/rawbit/errs"
	"github.com/arloliu/rawbit/param"
)

// Width marker values for parameters with a reduced width.
const (
	markerReduced = 0 // reduced width follows
	markerFull    = 1 // full width follows
)

// SimpleDeflater packs values at fixed width, choosing the reduced width of a
// parameter whenever the value fits in it.
//
// Stream layout per value:
//   - parameter without reduced width: BitLength bits of value
//   - parameter with reduced width: 1 marker bit (0 = reduced, 1 = full), then
//     ReducedBitLength or BitLength bits of value
//
// A 4-bit parameter without reduced width encodes 9 as exactly "1001".
type SimpleDeflater struct {
	cursorState
	w *bitio.Writer
}

var _ Deflater = (*SimpleDeflater)(nil)

// NewSimpleDeflater creates a deflater for table.
//
// Parameters:
//   - table: parameter schema, shared with the decoder out of band
//   - opts: WithLegacyMode, WithCapacity
//
// Returns:
//   - *SimpleDeflater: deflater ready to write
//   - error: option errors or errs.ErrLegacyMode
func NewSimpleDeflater(table *param.Table, opts ...Option) (*SimpleDeflater, error) {
	cfg, err := newConfig(table, opts)
	if err != nil {
		return nil, err
	}

	return &SimpleDeflater{
		cursorState: newCursorState(table, cfg.legacy),
		w:           newOutputWriter(cfg),
	}, nil
}

// InitBitDataOutput discards any output and resets the cursor and statistics.
func (d *SimpleDeflater) InitBitDataOutput() {
	d.w.Reset()
	d.reset()
}

// Deflate writes value for the next parameter in cycling order.
func (d *SimpleDeflater) Deflate(value uint64) error {
	idx, def, err := d.peekNext()
	if err != nil {
		return err
	}

	return d.output(idx, def, value)
}

// OutputParameterBits writes value for the parameter at index.
func (d *SimpleDeflater) OutputParameterBits(index int, value uint64) error {
	if d.legacy && index != 0 {
		return fmt.Errorf("%w: parameter %d", errs.ErrLegacyMode, index)
	}

	def, err := d.table.Get(index)
	if err != nil {
		return err
	}

	return d.output(index, def, value)
}

func (d *SimpleDeflater) output(idx int, def param.Definition, value uint64) error {
	if !def.Fits(value) {
		return fmt.Errorf("%w: %s value %d", errs.ErrValueOverflow, def, value)
	}

	if !def.HasReduced() {
		if err := d.w.WriteBits(value, int(def.BitLength)); err != nil { //nolint: gosec
			return err
		}
		d.commit(idx, def.BitLength, false)

		return nil
	}

	// Marker and value are committed together so a full buffer never leaves a
	// dangling marker bit.
	reduced := def.FitsReduced(value)
	width, marker := def.BitLength, uint64(markerFull)
	if reduced {
		width, marker = def.ReducedBitLength, markerReduced
	}

	var err error
	if width < bitio.MaxFieldBits {
		err = d.w.WriteBits(marker<<width|value, int(width)+1) //nolint: gosec
	} else {
		err = d.writeMarkedWide(marker, value)
	}
	if err != nil {
		return err
	}
	d.commit(idx, width+1, reduced)

	return nil
}

// writeMarkedWide writes a marker followed by a 64-bit value, which together exceed a
// single WriteBits call.
func (d *SimpleDeflater) writeMarkedWide(marker, value uint64) error {
	if avail := d.w.Available(); avail >= 0 && avail < bitio.MaxFieldBits+1 {
		return errs.ErrBufferFull
	}
	if err := d.w.WriteBit(marker); err != nil {
		return err
	}

	return d.w.WriteBits(value, bitio.MaxFieldBits)
}

// OutputBits writes raw bits outside the parameter cycle, e.g. framing words.
func (d *SimpleDeflater) OutputBits(value uint64, n int) error {
	return d.w.WriteBits(value, n)
}

// OutputBit writes a single raw bit outside the parameter cycle.
func (d *SimpleDeflater) OutputBit(bit uint64) error {
	return d.w.WriteBit(bit)
}

// Align pads the output to a byte boundary.
func (d *SimpleDeflater) Align() (int, error) {
	return d.w.Align()
}

// Bytes returns the output, zero-padded to a byte boundary.
func (d *SimpleDeflater) Bytes() []byte {
	return d.w.Bytes()
}

// BitLen returns the exact number of bits written.
func (d *SimpleDeflater) BitLen() uint64 {
	return d.w.BitLen()
}

// Stats returns per-parameter encoding statistics.
func (d *SimpleDeflater) Stats() []ParameterStats {
	return d.snapshot()
}

// Finish releases the output buffer.
func (d *SimpleDeflater) Finish() {
	d.w.Finish()
}

// SimpleInflater decodes streams written by SimpleDeflater.
type SimpleInflater struct {
	cursorState
	r bitio.Reader
}

var _ Inflater = (*SimpleInflater)(nil)

// NewSimpleInflater creates an inflater for table. Attach data with InitBitDataInput.
func NewSimpleInflater(table *param.Table, opts ...Option) (*SimpleInflater, error) {
	cfg, err := newConfig(table, opts)
	if err != nil {
		return nil, err
	}

	return &SimpleInflater{
		cursorState: newCursorState(table, cfg.legacy),
	}, nil
}

// InitBitDataInput attaches data and resets the cursor and statistics.
func (in *SimpleInflater) InitBitDataInput(data []byte) {
	in.r.Reset(data)
	in.reset()
}

// InitBitDataInputBits attaches the first bitLen bits of data.
func (in *SimpleInflater) InitBitDataInputBits(data []byte, bitLen uint64) {
	in.r.ResetBits(data, bitLen)
	in.reset()
}

// NextValue decodes the value of the next parameter.
//
// Returns:
//   - value: decoded value
//   - length: bits consumed, including the width marker
//   - err: errs.ErrOutOfData at a clean end of stream; errs.ErrTruncatedField joined
//     with errs.ErrOutOfData if the stream ends inside the field
func (in *SimpleInflater) NextValue() (uint64, uint, error) {
	idx, def, err := in.peekNext()
	if err != nil {
		return 0, 0, err
	}
	if in.r.Remaining() == 0 {
		return 0, 0, errs.ErrOutOfData
	}

	width := def.BitLength
	var marker uint
	if def.HasReduced() {
		bit, _ := in.r.ReadBit() // at least one bit remains
		if bit == markerReduced {
			width = def.ReducedBitLength
		}
		marker = 1
	}

	v, err := in.r.ReadBits(int(width)) //nolint: gosec
	if err != nil {
		consumed := marker + uint(in.r.Remaining()) //nolint: gosec
		_ = in.r.Rewind(uint64(marker))

		return 0, 0, truncated(def.Name, consumed)
	}

	in.commit(idx, width+marker, marker == 1 && width == def.ReducedBitLength)

	return v, width + marker, nil
}

// CurrentParameter returns the parameter index of the last decoded value.
func (in *SimpleInflater) CurrentParameter() int {
	return in.currentParameter()
}

// InputBits reads raw bits outside the parameter cycle.
func (in *SimpleInflater) InputBits(n int) (uint64, error) {
	return in.r.ReadBits(n)
}

// InputBit reads a single raw bit outside the parameter cycle.
func (in *SimpleInflater) InputBit() (uint64, error) {
	return in.r.ReadBit()
}

// Align skips to the next byte boundary.
func (in *SimpleInflater) Align() int {
	return in.r.Align()
}

// Stats returns per-parameter decoding statistics.
func (in *SimpleInflater) Stats() []ParameterStats {
	return in.snapshot()
}
