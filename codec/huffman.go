package codec

import (
	"cmp"
	"container/heap"
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/rawbit/bitio"
	"github.com/arloliu/rawbit/errs"
	"github.com/arloliu/rawbit/internal/pool"
	"github.com/arloliu/rawbit/param"
)

// maxCodeLength is the longest code a HuffmanCoder accepts; one code must fit a
// single bitio field.
const maxCodeLength = bitio.MaxFieldBits

// SymbolFrequency declares how often a symbol occurs.
type SymbolFrequency struct {
	Symbol    uint64
	Frequency uint64
}

// HuffmanLeaf is one entry of a canonical code table.
type HuffmanLeaf struct {
	Symbol uint64
	Length uint   // Code length in bits
	Code   uint64 // Code bits, right-aligned, written MSB-first
}

// HuffmanCoder holds the canonical Huffman code of one named parameter.
//
// A coder is immutable once built and may be shared by any number of inflaters and
// deflaters, including concurrently.
type HuffmanCoder struct {
	name      string
	bitLength uint
	leaves    []HuffmanLeaf          // canonical order: (Length, Symbol)
	codes     map[uint64]HuffmanLeaf // symbol -> leaf
	nodes     []decodeNode           // decode tree, root at 0
}

// decodeNode is a node of the array-backed decode tree.
// child holds node indices; noChild marks an absent branch.
type decodeNode struct {
	child  [2]int32
	symbol uint64
	leaf   bool
}

const noChild = -1

// NewHuffmanCoder builds the canonical Huffman code for a parameter.
//
// The tree is built with the greedy two-lowest-weight merge. Ties are broken by
// insertion order, first registered has the lowest merge priority: among nodes of
// equal weight the most recently created one is merged first. Leaves are created in
// the order of freqs, before any internal node. The resulting code lengths are then
// turned into canonical codes ordered by (length, symbol), so the code table depends
// only on the lengths.
//
// Symbols with zero frequency are not part of the alphabet. A symbol listed twice has
// its frequencies summed and keeps its first position.
//
// Parameters:
//   - name: parameter name the coder binds to
//   - bitLength: parameter width; every symbol must fit in it
//   - freqs: symbol frequencies
//
// Returns:
//   - *HuffmanCoder: the coder
//   - error: errs.ErrInvalidName, errs.ErrInvalidWidth, errs.ErrValueOverflow (also for
//     frequencies summing past 2^64-1),
//     errs.ErrEmptyAlphabet or errs.ErrCodeTooLong
func NewHuffmanCoder(name string, bitLength uint, freqs []SymbolFrequency) (*HuffmanCoder, error) {
	if err := validateCoderShape(name, bitLength); err != nil {
		return nil, err
	}

	def := param.Definition{Name: name, BitLength: bitLength}
	alphabet := make([]SymbolFrequency, 0, len(freqs))
	position := make(map[uint64]int, len(freqs))
	var total uint64
	for _, f := range freqs {
		if !def.Fits(f.Symbol) {
			return nil, fmt.Errorf("%w: symbol %d of %s", errs.ErrValueOverflow, f.Symbol, def)
		}
		if f.Frequency == 0 {
			continue
		}
		// Merged weights never exceed the total, so bounding it keeps the merge exact.
		if total+f.Frequency < total {
			return nil, fmt.Errorf("%w: %q frequency total exceeds %d", errs.ErrValueOverflow, name, uint64(math.MaxUint64))
		}
		total += f.Frequency
		if i, ok := position[f.Symbol]; ok {
			alphabet[i].Frequency += f.Frequency
			continue
		}
		position[f.Symbol] = len(alphabet)
		alphabet = append(alphabet, f)
	}
	if len(alphabet) == 0 {
		return nil, fmt.Errorf("%w: %q", errs.ErrEmptyAlphabet, name)
	}

	lengths, cleanup := pool.GetIntSlice(len(alphabet))
	defer cleanup()
	codeLengths(alphabet, lengths)

	leaves := make([]HuffmanLeaf, len(alphabet))
	for i, f := range alphabet {
		if lengths[i] > maxCodeLength {
			return nil, fmt.Errorf("%w: %q symbol %d needs %d bits", errs.ErrCodeTooLong, name, f.Symbol, lengths[i])
		}
		leaves[i] = HuffmanLeaf{Symbol: f.Symbol, Length: uint(lengths[i])} //nolint: gosec
	}

	return newCanonicalCoder(name, bitLength, leaves)
}

func validateCoderShape(name string, bitLength uint) error {
	if name == "" {
		return errs.ErrInvalidName
	}
	if bitLength == 0 || bitLength > param.MaxBitLength {
		return fmt.Errorf("%w: %q has %d bits", errs.ErrInvalidWidth, name, bitLength)
	}

	return nil
}

// newCanonicalCoder assigns canonical codes to leaves holding symbols and lengths,
// then builds the decode tree.
func newCanonicalCoder(name string, bitLength uint, leaves []HuffmanLeaf) (*HuffmanCoder, error) {
	slices.SortFunc(leaves, func(a, b HuffmanLeaf) int {
		if c := cmp.Compare(a.Length, b.Length); c != 0 {
			return c
		}

		return cmp.Compare(a.Symbol, b.Symbol)
	})

	var code uint64
	for i := range leaves {
		if i > 0 {
			prevLen := leaves[i-1].Length
			code++
			// The next code must still fit the previous length before it is extended;
			// otherwise the lengths are over-subscribed.
			if (prevLen < maxCodeLength && code>>prevLen != 0) || code == 0 {
				return nil, fmt.Errorf("%w: %q lengths are over-subscribed", errs.ErrInvalidCoderPayload, name)
			}
			code <<= leaves[i].Length - prevLen
		}
		leaves[i].Code = code
	}

	c := &HuffmanCoder{
		name:      name,
		bitLength: bitLength,
		leaves:    leaves,
		codes:     make(map[uint64]HuffmanLeaf, len(leaves)),
		nodes:     make([]decodeNode, 1, 2*len(leaves)),
	}
	c.nodes[0] = decodeNode{child: [2]int32{noChild, noChild}}

	for _, l := range leaves {
		if _, dup := c.codes[l.Symbol]; dup {
			return nil, fmt.Errorf("%w: %q symbol %d listed twice", errs.ErrInvalidCoderPayload, name, l.Symbol)
		}
		c.codes[l.Symbol] = l
		c.insert(l)
	}

	return c, nil
}

// insert adds the path of leaf l to the decode tree.
func (c *HuffmanCoder) insert(l HuffmanLeaf) {
	node := int32(0)
	for i := int(l.Length) - 1; i >= 0; i-- { //nolint: gosec
		bit := (l.Code >> uint(i)) & 1
		next := c.nodes[node].child[bit]
		if next == noChild {
			next = int32(len(c.nodes)) //nolint: gosec
			c.nodes = append(c.nodes, decodeNode{child: [2]int32{noChild, noChild}})
			c.nodes[node].child[bit] = next
		}
		node = next
	}
	c.nodes[node].leaf = true
	c.nodes[node].symbol = l.Symbol
}

// Name returns the parameter name the coder binds to.
func (c *HuffmanCoder) Name() string {
	return c.name
}

// BitLength returns the parameter width.
func (c *HuffmanCoder) BitLength() uint {
	return c.bitLength
}

// Leaves returns a copy of the canonical code table ordered by (length, symbol).
func (c *HuffmanCoder) Leaves() []HuffmanLeaf {
	return slices.Clone(c.leaves)
}

// Code returns the leaf of symbol.
func (c *HuffmanCoder) Code(symbol uint64) (HuffmanLeaf, bool) {
	l, ok := c.codes[symbol]
	return l, ok
}

// AlphabetSize returns the number of symbols with a code.
func (c *HuffmanCoder) AlphabetSize() int {
	return len(c.leaves)
}

// Encode writes the code of symbol to w.
//
// Returns errs.ErrValueOverflow for a symbol wider than the parameter and
// errs.ErrSymbolNotInAlphabet for a symbol the coder was not trained on.
func (c *HuffmanCoder) Encode(w *bitio.Writer, symbol uint64) (uint, error) {
	l, ok := c.codes[symbol]
	if !ok {
		if c.bitLength < param.MaxBitLength && symbol>>c.bitLength != 0 {
			return 0, fmt.Errorf("%w: %q symbol %d exceeds %d bits", errs.ErrValueOverflow, c.name, symbol, c.bitLength)
		}

		return 0, fmt.Errorf("%w: %q symbol %d", errs.ErrSymbolNotInAlphabet, c.name, symbol)
	}

	if err := w.WriteBits(l.Code, int(l.Length)); err != nil { //nolint: gosec
		return 0, err
	}

	return l.Length, nil
}

// Decode walks the decode tree bit by bit until it reaches a leaf.
//
// On error the reader is left where it was.
//
// Returns:
//   - symbol: decoded symbol
//   - length: code length in bits
//   - err: errs.ErrOutOfData at a clean end of stream, errs.ErrInvalidCode for a bit
//     pattern with no leaf, errs.ErrTruncatedField joined with errs.ErrOutOfData for a
//     stream ending inside a code
func (c *HuffmanCoder) Decode(r *bitio.Reader) (uint64, uint, error) {
	node := int32(0)
	var n uint
	for {
		bit, err := r.ReadBit()
		if err != nil {
			if n == 0 {
				return 0, 0, errs.ErrOutOfData
			}
			_ = r.Rewind(uint64(n))

			return 0, 0, truncated(c.name, n)
		}
		n++

		next := c.nodes[node].child[bit]
		if next == noChild {
			_ = r.Rewind(uint64(n))
			return 0, 0, fmt.Errorf("%w: %q no leaf after %d bits at offset %d",
				errs.ErrInvalidCode, c.name, n, r.BitPosition())
		}
		if c.nodes[next].leaf {
			return c.nodes[next].symbol, n, nil
		}
		node = next
	}
}

// codeLengths computes the Huffman code length of every alphabet entry into lengths.
func codeLengths(alphabet []SymbolFrequency, lengths []int) {
	if len(alphabet) == 1 {
		lengths[0] = 1
		return
	}

	// Tree nodes: leaves first (index == alphabet index), then internal nodes.
	parent := make([]int, len(alphabet), 2*len(alphabet)-1)
	h := make(mergeHeap, 0, len(alphabet))
	for i, f := range alphabet {
		h = append(h, mergeItem{weight: f.Frequency, seq: i})
	}
	heap.Init(&h)

	for h.Len() > 1 {
		a := heap.Pop(&h).(mergeItem) //nolint: forcetypeassert
		b := heap.Pop(&h).(mergeItem) //nolint: forcetypeassert

		id := len(parent)
		parent = append(parent, -1)
		parent[a.seq] = id
		parent[b.seq] = id
		heap.Push(&h, mergeItem{weight: a.weight + b.weight, seq: id})
	}

	for i := range alphabet {
		depth := 0
		for n := i; parent[n] != -1; n = parent[n] {
			depth++
		}
		lengths[i] = depth
	}
}

// mergeItem is a node waiting to be merged. seq is the node's creation order, which
// is also its index in the parent table.
type mergeItem struct {
	weight uint64
	seq    int
}

// mergeHeap is a min-heap by weight; equal weights pop the newest node first.
type mergeHeap []mergeItem

func (h mergeHeap) Len() int { return len(h) }
func (h mergeHeap) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight < h[j].weight
	}

	return h[i].seq > h[j].seq
}
func (h mergeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *mergeHeap) Push(x any) {
	*h = append(*h, x.(mergeItem)) //nolint: forcetypeassert
}

func (h *mergeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]

	return x
}
