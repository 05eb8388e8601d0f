package pool

import "sync"

// intSlicePool holds scratch slices for Huffman code lengths.
var intSlicePool = sync.Pool{
	New: func() any { return &[]int{} },
}

// GetIntSlice retrieves an int slice of exactly size elements from the pool.
//
// The contents of the returned slice are unspecified; callers that need zeroed
// elements must clear it. The caller must call the returned cleanup function
// (typically with defer) to return the slice to the pool.
//
// Example:
//
//	lengths, cleanup := pool.GetIntSlice(len(symbols))
//	defer cleanup()
func GetIntSlice(size int) ([]int, func()) {
	ptr, _ := intSlicePool.Get().(*[]int)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { intSlicePool.Put(ptr) }
}
