package param

import (
	"fmt"
	"iter"

	"github.com/arloliu/rawbit/errs"
	"github.com/arloliu/rawbit/internal/hash"
)

// InvalidIndex is the cursor index of an empty table, or of a cursor that has not
// been advanced yet.
const InvalidIndex = -1

// MaxBitLength is the widest parameter a table accepts.
const MaxBitLength = 64

// Definition describes one field of a stream schema.
type Definition struct {
	// Name identifies the parameter, unique within a table.
	Name string
	// BitLength is the full width of the field, 1 to 64 bits.
	BitLength uint
	// ReducedBitLength is an optional shorter width used for small values.
	// Zero means the parameter has no reduced width.
	ReducedBitLength uint
}

// HasReduced reports whether the definition has a reduced width shorter than its full
// width. Only such parameters carry a width marker bit in simple-coded streams; a
// reduced width equal to the full width is the same as none.
func (d Definition) HasReduced() bool {
	return d.ReducedBitLength > 0 && d.ReducedBitLength < d.BitLength
}

// MaxValue returns the largest value representable in the full width.
func (d Definition) MaxValue() uint64 {
	if d.BitLength >= MaxBitLength {
		return ^uint64(0)
	}

	return uint64(1)<<d.BitLength - 1
}

// Fits reports whether v is representable in the full width.
func (d Definition) Fits(v uint64) bool {
	return v <= d.MaxValue()
}

// FitsReduced reports whether v is representable in the reduced width.
func (d Definition) FitsReduced(v uint64) bool {
	return d.HasReduced() && v>>d.ReducedBitLength == 0
}

func (d Definition) String() string {
	if d.HasReduced() {
		return fmt.Sprintf("%s[%d/%d]", d.Name, d.BitLength, d.ReducedBitLength)
	}

	return fmt.Sprintf("%s[%d]", d.Name, d.BitLength)
}

// Table is an ordered set of parameter definitions keyed by index and by name.
//
// The zero value is not usable; create tables with NewTable or NewTableFrom.
type Table struct {
	defs   []Definition
	byName map[string]int
}

// NewTable creates an empty parameter table.
func NewTable() *Table {
	return &Table{
		defs:   make([]Definition, 0, 8),
		byName: make(map[string]int),
	}
}

// NewTableFrom creates a table and registers defs in order.
//
// Returns the first registration error; no partially configured table is returned.
func NewTableFrom(defs ...Definition) (*Table, error) {
	t := NewTable()
	for _, d := range defs {
		var err error
		if d.ReducedBitLength > 0 {
			_, err = t.AddParameterDefinition(d.Name, d.BitLength, d.ReducedBitLength)
		} else {
			_, err = t.AddParameterDefinition(d.Name, d.BitLength)
		}
		if err != nil {
			return nil, err
		}
	}

	return t, nil
}

// MustNewTable is like NewTableFrom but panics on error. It is meant for static
// per-detector layouts declared at package level.
func MustNewTable(defs ...Definition) *Table {
	t, err := NewTableFrom(defs...)
	if err != nil {
		panic(fmt.Sprintf("param: invalid static table: %v", err))
	}

	return t
}

// AddParameterDefinition registers a new parameter and returns its index.
//
// Parameters:
//   - name: unique parameter name
//   - bitLength: full width, 1 to 64
//   - reduced: optional reduced width, at most bitLength
//
// Returns:
//   - int: assigned index, increasing from 0 in registration order
//   - error: errs.ErrInvalidName, errs.ErrDuplicateName or errs.ErrInvalidWidth
func (t *Table) AddParameterDefinition(name string, bitLength uint, reduced ...uint) (int, error) {
	if name == "" {
		return InvalidIndex, errs.ErrInvalidName
	}
	if _, exists := t.byName[name]; exists {
		return InvalidIndex, fmt.Errorf("%w: %q", errs.ErrDuplicateName, name)
	}
	if bitLength == 0 || bitLength > MaxBitLength {
		return InvalidIndex, fmt.Errorf("%w: %q has %d bits", errs.ErrInvalidWidth, name, bitLength)
	}
	if len(reduced) > 1 {
		return InvalidIndex, fmt.Errorf("%w: %q has %d reduced widths", errs.ErrInvalidWidth, name, len(reduced))
	}

	def := Definition{Name: name, BitLength: bitLength}
	if len(reduced) == 1 {
		if reduced[0] > bitLength {
			return InvalidIndex, fmt.Errorf("%w: %q reduced width %d exceeds %d",
				errs.ErrInvalidWidth, name, reduced[0], bitLength)
		}
		def.ReducedBitLength = reduced[0]
	}

	idx := len(t.defs)
	t.defs = append(t.defs, def)
	t.byName[name] = idx

	return idx, nil
}

// Len returns the number of registered parameters.
func (t *Table) Len() int {
	return len(t.defs)
}

// Get returns the definition at index.
func (t *Table) Get(index int) (Definition, error) {
	if index < 0 || index >= len(t.defs) {
		return Definition{}, fmt.Errorf("%w: index %d", errs.ErrNotFound, index)
	}

	return t.defs[index], nil
}

// Lookup returns the index and definition registered under name.
func (t *Table) Lookup(name string) (int, Definition, error) {
	idx, ok := t.byName[name]
	if !ok {
		return InvalidIndex, Definition{}, fmt.Errorf("%w: %q", errs.ErrNotFound, name)
	}

	return idx, t.defs[idx], nil
}

// Definitions iterates over the definitions in registration order.
func (t *Table) Definitions() iter.Seq2[int, Definition] {
	return func(yield func(int, Definition) bool) {
		for i, d := range t.defs {
			if !yield(i, d) {
				return
			}
		}
	}
}

// MaxBitLength returns the widest full width in the table, or 0 if it is empty.
func (t *Table) MaxBitLength() uint {
	var maxLen uint
	for _, d := range t.defs {
		maxLen = max(maxLen, d.BitLength)
	}

	return maxLen
}

// NextIndex returns the index following index in cycling order, or InvalidIndex for
// an empty table. NextIndex(InvalidIndex) is 0.
func (t *Table) NextIndex(index int) int {
	if len(t.defs) == 0 {
		return InvalidIndex
	}
	if index < 0 {
		return 0
	}

	return (index + 1) % len(t.defs)
}

// Fingerprint returns an xxHash64 over the names and widths of all parameters in
// order. Two tables with the same fingerprint describe the same stream layout.
func (t *Table) Fingerprint() uint64 {
	fp := hash.NewFingerprint()
	for _, d := range t.defs {
		fp.Add(d.Name, uint64(d.BitLength), uint64(d.ReducedBitLength))
	}

	return fp.Sum64()
}

// Cursor returns a new cursor over t positioned before the first parameter.
func (t *Table) Cursor() *Cursor {
	return &Cursor{table: t, index: InvalidIndex}
}
