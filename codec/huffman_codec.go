package codec

import (
	"fmt"

	"github.com/arloliu/rawbit/bitio"
	"github.com/arloliu/rawbit/errs"
	"github.com/arloliu/rawbit/param"
)

// coderSet maps parameter indices to their bound Huffman coders.
type coderSet []*HuffmanCoder

// bindCoders resolves coders against table by name.
//
// Binding is all or nothing: on error no coder is bound. Parameters without a coder
// stay unbound and fail with errs.ErrNotFound when they come up.
func bindCoders(table *param.Table, coders []*HuffmanCoder) (coderSet, error) {
	set := make(coderSet, table.Len())
	for _, c := range coders {
		if c == nil {
			return nil, fmt.Errorf("%w: nil huffman coder", errs.ErrNotFound)
		}

		idx, def, err := table.Lookup(c.Name())
		if err != nil {
			return nil, fmt.Errorf("%w: coder %q", errs.ErrUnknownParameter, c.Name())
		}
		if def.BitLength != c.BitLength() {
			return nil, fmt.Errorf("%w: coder %q has %d bits, parameter has %d",
				errs.ErrInvalidWidth, c.Name(), c.BitLength(), def.BitLength)
		}
		set[idx] = c
	}

	return set, nil
}

func (s coderSet) get(idx int, def param.Definition) (*HuffmanCoder, error) {
	if idx >= len(s) || s[idx] == nil {
		return nil, fmt.Errorf("%w: no huffman coder for %q", errs.ErrNotFound, def.Name)
	}

	return s[idx], nil
}

// HuffmanDeflater encodes each parameter value with the Huffman coder bound to its
// parameter.
type HuffmanDeflater struct {
	cursorState
	coders coderSet
	w      *bitio.Writer
}

var _ Deflater = (*HuffmanDeflater)(nil)

// NewHuffmanDeflater creates a deflater for table. Bind coders with InitEncoders
// before writing.
func NewHuffmanDeflater(table *param.Table, opts ...Option) (*HuffmanDeflater, error) {
	cfg, err := newConfig(table, opts)
	if err != nil {
		return nil, err
	}

	return &HuffmanDeflater{
		cursorState: newCursorState(table, cfg.legacy),
		coders:      make(coderSet, table.Len()),
		w:           newOutputWriter(cfg),
	}, nil
}

// InitEncoders binds coders to the table parameters of the same name.
//
// Returns:
//   - error: errs.ErrUnknownParameter for a coder whose name is not in the table,
//     errs.ErrInvalidWidth for a coder whose width differs from its parameter
func (d *HuffmanDeflater) InitEncoders(coders []*HuffmanCoder) error {
	set, err := bindCoders(d.table, coders)
	if err != nil {
		return err
	}
	d.coders = set

	return nil
}

// InitBitDataOutput discards any output and resets the cursor and statistics.
func (d *HuffmanDeflater) InitBitDataOutput() {
	d.w.Reset()
	d.reset()
}

// Deflate encodes value for the next parameter in cycling order.
func (d *HuffmanDeflater) Deflate(value uint64) error {
	idx, def, err := d.peekNext()
	if err != nil {
		return err
	}

	return d.output(idx, def, value)
}

// OutputParameterBits encodes value for the parameter at index.
func (d *HuffmanDeflater) OutputParameterBits(index int, value uint64) error {
	if d.legacy && index != 0 {
		return fmt.Errorf("%w: parameter %d", errs.ErrLegacyMode, index)
	}

	def, err := d.table.Get(index)
	if err != nil {
		return err
	}

	return d.output(index, def, value)
}

func (d *HuffmanDeflater) output(idx int, def param.Definition, value uint64) error {
	if !def.Fits(value) {
		return fmt.Errorf("%w: %s value %d", errs.ErrValueOverflow, def, value)
	}

	coder, err := d.coders.get(idx, def)
	if err != nil {
		return err
	}

	n, err := coder.Encode(d.w, value)
	if err != nil {
		return err
	}
	d.commit(idx, n, false)

	return nil
}

// OutputBits writes raw bits outside the parameter cycle.
func (d *HuffmanDeflater) OutputBits(value uint64, n int) error {
	return d.w.WriteBits(value, n)
}

// OutputBit writes a single raw bit outside the parameter cycle.
func (d *HuffmanDeflater) OutputBit(bit uint64) error {
	return d.w.WriteBit(bit)
}

// Align pads the output to a byte boundary.
func (d *HuffmanDeflater) Align() (int, error) {
	return d.w.Align()
}

// Bytes returns the output, zero-padded to a byte boundary.
func (d *HuffmanDeflater) Bytes() []byte {
	return d.w.Bytes()
}

// BitLen returns the exact number of bits written. Decoders of Huffman streams
// need it: padding bits may otherwise decode as codes.
func (d *HuffmanDeflater) BitLen() uint64 {
	return d.w.BitLen()
}

// Stats returns per-parameter encoding statistics.
func (d *HuffmanDeflater) Stats() []ParameterStats {
	return d.snapshot()
}

// Finish releases the output buffer.
func (d *HuffmanDeflater) Finish() {
	d.w.Finish()
}

// HuffmanInflater decodes streams written by HuffmanDeflater.
type HuffmanInflater struct {
	cursorState
	coders coderSet
	r      bitio.Reader
}

var _ Inflater = (*HuffmanInflater)(nil)

// NewHuffmanInflater creates an inflater for table. Bind coders with InitDecoders and
// attach data with InitBitDataInputBits.
func NewHuffmanInflater(table *param.Table, opts ...Option) (*HuffmanInflater, error) {
	cfg, err := newConfig(table, opts)
	if err != nil {
		return nil, err
	}

	return &HuffmanInflater{
		cursorState: newCursorState(table, cfg.legacy),
		coders:      make(coderSet, table.Len()),
	}, nil
}

// InitDecoders binds coders to the table parameters of the same name.
//
// Returns:
//   - error: errs.ErrUnknownParameter for a coder whose name is not in the table,
//     errs.ErrInvalidWidth for a coder whose width differs from its parameter
func (in *HuffmanInflater) InitDecoders(coders []*HuffmanCoder) error {
	set, err := bindCoders(in.table, coders)
	if err != nil {
		return err
	}
	in.coders = set

	return nil
}

// InitBitDataInput attaches data and resets the cursor and statistics.
//
// All of data is decoded, padding included; prefer InitBitDataInputBits.
func (in *HuffmanInflater) InitBitDataInput(data []byte) {
	in.r.Reset(data)
	in.reset()
}

// InitBitDataInputBits attaches the first bitLen bits of data.
func (in *HuffmanInflater) InitBitDataInputBits(data []byte, bitLen uint64) {
	in.r.ResetBits(data, bitLen)
	in.reset()
}

// NextValue decodes the value of the next parameter.
//
// Returns:
//   - value: decoded symbol
//   - length: code length in bits
//   - err: errs.ErrOutOfData at a clean end of stream, errs.ErrInvalidCode for a bit
//     pattern with no leaf, errs.ErrNotFound if the parameter has no coder
func (in *HuffmanInflater) NextValue() (uint64, uint, error) {
	idx, def, err := in.peekNext()
	if err != nil {
		return 0, 0, err
	}
	if in.r.Remaining() == 0 {
		return 0, 0, errs.ErrOutOfData
	}

	coder, err := in.coders.get(idx, def)
	if err != nil {
		return 0, 0, err
	}

	v, n, err := coder.Decode(&in.r)
	if err != nil {
		return 0, 0, err
	}
	in.commit(idx, n, false)

	return v, n, nil
}

// CurrentParameter returns the parameter index of the last decoded value.
func (in *HuffmanInflater) CurrentParameter() int {
	return in.currentParameter()
}

// InputBits reads raw bits outside the parameter cycle.
func (in *HuffmanInflater) InputBits(n int) (uint64, error) {
	return in.r.ReadBits(n)
}

// InputBit reads a single raw bit outside the parameter cycle.
func (in *HuffmanInflater) InputBit() (uint64, error) {
	return in.r.ReadBit()
}

// Align skips to the next byte boundary.
func (in *HuffmanInflater) Align() int {
	return in.r.Align()
}

// Stats returns per-parameter decoding statistics.
func (in *HuffmanInflater) Stats() []ParameterStats {
	return in.snapshot()
}
