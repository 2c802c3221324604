// Package buffer converts between the engine's interleaved float32 layout
// and Go complex values.
//
// The engine only understands flat float32 arrays. Complex data crosses the
// boundary as (re, im) pairs, and results come back the same way. Because a
// complex64 is laid out in memory as exactly two float32 values, the two
// views can share storage; Interleave and Deinterleave reinterpret slices
// in place instead of copying them.
package buffer

import (
	"math"
	"math/bits"
	"unsafe"

	"github.com/pkg/errors"
)

// Align is the boundary engine buffers start on: one complex64 pair.
const Align = unsafe.Sizeof(complex64(0))

// Aligned reports whether p sits on an align byte boundary.
func Aligned(p unsafe.Pointer, align uintptr) bool {
	return uintptr(p)%align == 0
}

// Interleave views c as 2*len(c) float32 values. No data is copied; writes
// through either slice are visible in the other.
func Interleave(c []complex64) []float32 {
	if len(c) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(c))), 2*len(c))
}

// Deinterleave views f as len(f)/2 complex64 values. No data is copied. f
// must have an even length and start on a float32 boundary.
func Deinterleave(f []float32) ([]complex64, error) {
	if len(f) == 0 {
		return nil, nil
	}

	if len(f)%2 != 0 {
		return nil, errors.Errorf("interleaved buffer has odd length %d", len(f))
	}

	p := unsafe.Pointer(unsafe.SliceData(f))
	if !Aligned(p, unsafe.Alignof(complex64(0))) {
		return nil, errors.Errorf("interleaved buffer at %p is not aligned for complex64", p)
	}

	return unsafe.Slice((*complex64)(p), len(f)/2), nil
}

// NewInterleaved allocates an engine output buffer for rows×cols complex
// values: rows*2*cols float32, starting on an Align boundary. It panics when
// that size does not fit in an int.
func NewInterleaved(rows, cols int) []float32 {
	hi, lo := bits.Mul(uint(rows), uint(cols))
	if rows < 0 || cols < 0 || hi != 0 || lo > math.MaxInt/2 {
		panic(errors.Errorf("buffer: %dx%d interleaved buffer overflows int", rows, cols))
	}
	return Interleave(make([]complex64, int(lo)))
}

// Compliant returns f when it can be handed to the engine as is, or an
// aligned copy when it does not start on an Align boundary.
func Compliant(f []float32) []float32 {
	if len(f) == 0 || Aligned(unsafe.Pointer(unsafe.SliceData(f)), Align) {
		return f
	}

	dst := NewInterleaved(1, (len(f)+1)/2)[:len(f)]
	copy(dst, f)
	return dst
}

// SameMemory reports whether a and b start at the same address.
func SameMemory(a []float32, b []complex64) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return unsafe.Pointer(unsafe.SliceData(a)) == unsafe.Pointer(unsafe.SliceData(b))
}
