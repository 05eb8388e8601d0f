package codec

import (
	"fmt"

	"github.com/arloliu/rawbit/errs"
	"github.com/arloliu/rawbit/param"
)

// HuffmanTrainer collects observed values of one parameter and builds a coder from
// their frequencies.
//
// Symbols are registered in the order they are first observed, which fixes the
// tie-break order of NewHuffmanCoder; training on the same sequence of values always
// yields the same code table.
type HuffmanTrainer struct {
	def    param.Definition
	counts map[uint64]uint64
	order  []uint64
}

// NewHuffmanTrainer creates a trainer for the parameter name of width bitLength.
func NewHuffmanTrainer(name string, bitLength uint) (*HuffmanTrainer, error) {
	if err := validateCoderShape(name, bitLength); err != nil {
		return nil, err
	}

	return &HuffmanTrainer{
		def:    param.Definition{Name: name, BitLength: bitLength},
		counts: make(map[uint64]uint64),
	}, nil
}

// AddTrainingValue records one occurrence of value.
func (t *HuffmanTrainer) AddTrainingValue(value uint64) error {
	return t.AddTrainingValues(value, 1)
}

// AddTrainingValues records count occurrences of value.
func (t *HuffmanTrainer) AddTrainingValues(value, count uint64) error {
	if !t.def.Fits(value) {
		return fmt.Errorf("%w: %s value %d", errs.ErrValueOverflow, t.def, value)
	}
	if count == 0 {
		return nil
	}

	if _, seen := t.counts[value]; !seen {
		t.order = append(t.order, value)
	}
	t.counts[value] += count

	return nil
}

// Len returns the number of distinct values observed.
func (t *HuffmanTrainer) Len() int {
	return len(t.order)
}

// Build creates a coder from the observed frequencies.
//
// Returns errs.ErrEmptyAlphabet if nothing was observed.
func (t *HuffmanTrainer) Build() (*HuffmanCoder, error) {
	freqs := make([]SymbolFrequency, len(t.order))
	for i, v := range t.order {
		freqs[i] = SymbolFrequency{Symbol: v, Frequency: t.counts[v]}
	}

	return NewHuffmanCoder(t.def.Name, t.def.BitLength, freqs)
}

// Reset forgets every observed value.
func (t *HuffmanTrainer) Reset() {
	clear(t.counts)
	t.order = t.order[:0]
}
