package pool

import "sync"

// Scratch slices reused across statistic evaluations. Formulas that need a
// temporary copy of a vector, e.g. to sort it, borrow one here instead of
// allocating per call.
var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice retrieves and resizes a float64 slice from the pool.
//
// The returned slice will have the exact length specified by the size parameter.
// Its contents are unspecified; callers overwrite it before reading.
// The caller must call the returned cleanup function to return the slice to the pool
// and must not retain the slice afterwards.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []float64: A slice with length equal to size
//   - func(): Cleanup function that must be called (typically with defer) to return the slice to the pool
//
// Example:
//
//	scratch, cleanup := pool.GetFloat64Slice(len(response))
//	defer cleanup()
//	copy(scratch, response)
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { float64SlicePool.Put(ptr) }
}

// CloneFloat64 copies src into a pooled slice of the same length.
func CloneFloat64(src []float64) ([]float64, func()) {
	dst, cleanup := GetFloat64Slice(len(src))
	copy(dst, src)

	return dst, cleanup
}
