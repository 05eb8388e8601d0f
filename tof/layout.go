package tof

import (
	"fmt"

	"github.com/arloliu/rawbit/errs"
)

// WordBits is the width of every TOF readout word.
const WordBits = 32

// Field is a bit field of a 32-bit readout word. Offset counts from the least
// significant bit. Reserved fields have an empty name.
type Field struct {
	Name   string
	Offset uint
	Width  uint
}

// Get extracts the field from w.
func (f Field) Get(w uint32) uint32 {
	return (w >> f.Offset) & f.mask()
}

// Set returns w with the field replaced by v. Bits of v beyond the field width are
// dropped.
func (f Field) Set(w, v uint32) uint32 {
	m := f.mask() << f.Offset
	return w&^m | (v<<f.Offset)&m
}

// Reserved reports whether the field has no defined meaning.
func (f Field) Reserved() bool {
	return f.Name == ""
}

func (f Field) mask() uint32 {
	return uint32(1)<<f.Width - 1
}

// Layout is the fixed bit layout of one hardware word type. Fields are packed
// from bit 0 upwards in declaration order and cover all 32 bits.
type Layout struct {
	name   string
	fields []Field
}

type fieldDef struct {
	name  string
	width uint
}

// reserved bits
const rsv = ""

// newLayout packs defs from bit 0 upwards. It panics unless the widths add up to
// exactly 32 bits; layouts are package-level constants of the hardware format.
func newLayout(name string, defs ...fieldDef) *Layout {
	l := &Layout{name: name, fields: make([]Field, 0, len(defs))}

	var offset uint
	for _, d := range defs {
		l.fields = append(l.fields, Field{Name: d.name, Offset: offset, Width: d.width})
		offset += d.width
	}
	if offset != WordBits {
		panic(fmt.Sprintf("tof: layout %s covers %d bits", name, offset))
	}

	return l
}

// Name returns the word type name.
func (l *Layout) Name() string {
	return l.name
}

// Fields returns the fields of l, reserved ones included, from bit 0 upwards.
func (l *Layout) Fields() []Field {
	out := make([]Field, len(l.fields))
	copy(out, l.fields)

	return out
}

// Field returns the field called name.
func (l *Layout) Field(name string) (Field, bool) {
	for _, f := range l.fields {
		if f.Name == name && !f.Reserved() {
			return f, true
		}
	}

	return Field{}, false
}

// Pack builds a word from one value per named field, in declaration order.
// Reserved bits are zero.
//
// Returns errs.ErrValueOverflow for a value wider than its field.
func (l *Layout) Pack(values ...uint32) (uint32, error) {
	var w uint32
	i := 0
	for _, f := range l.fields {
		if f.Reserved() {
			continue
		}
		if i >= len(values) {
			return 0, fmt.Errorf("layout %s: missing value for %s", l.name, f.Name)
		}
		if values[i]&^f.mask() != 0 {
			return 0, fmt.Errorf("%w: %s.%s is %d bits, got %d", errs.ErrValueOverflow, l.name, f.Name, f.Width, values[i])
		}
		w = f.Set(w, values[i])
		i++
	}
	if i != len(values) {
		return 0, fmt.Errorf("layout %s: %d values for %d fields", l.name, len(values), i)
	}

	return w, nil
}

// FieldValue is a decoded field.
type FieldValue struct {
	Field
	Value uint32
}

// Unpack decodes every named field of w.
func (l *Layout) Unpack(w uint32) []FieldValue {
	out := make([]FieldValue, 0, len(l.fields))
	for _, f := range l.fields {
		if f.Reserved() {
			continue
		}
		out = append(out, FieldValue{Field: f, Value: f.Get(w)})
	}

	return out
}

// get extracts field i of w. Views use it with indices fixed by their layout.
func (l *Layout) get(i int, w uint32) uint32 {
	return l.fields[i].Get(w)
}
