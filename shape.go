package gpufft

import (
	"math"
	"math/bits"
)

// IsPowerOfTwo reports whether n is a strictly positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns the exact base-2 logarithm of n, and false when n is not a
// power of two.
func Log2(n int) (int, bool) {
	if !IsPowerOfTwo(n) {
		return 0, false
	}
	return bits.TrailingZeros(uint(n)), true
}

func shapeErr(reason string, dims ...int) error {
	return &ShapeError{Dims: dims, Reason: reason}
}

// ValidateRank checks that dims describes an input of the given rank.
func ValidateRank(dims []int, rank int) error {
	if len(dims) != rank {
		return shapeErr("wrong rank", dims...)
	}
	return nil
}

// ValidateBatch checks a batch×length input for the 1D entry points.
// Only the transform length needs to be a power of two.
func ValidateBatch(batch, length int) error {
	switch {
	case batch < 1:
		return shapeErr("batch count must be positive", batch, length)
	case !IsPowerOfTwo(length):
		return shapeErr("length must be a power of two", batch, length)
	}
	return nil
}

// ValidateRect checks a rows×cols input for the rectangular 2D entry points.
func ValidateRect(rows, cols int) error {
	switch {
	case !IsPowerOfTwo(rows):
		return shapeErr("rows must be a power of two", rows, cols)
	case !IsPowerOfTwo(cols):
		return shapeErr("cols must be a power of two", rows, cols)
	}
	return nil
}

// ValidateSquare checks an N×N input for the square-only entry points.
func ValidateSquare(rows, cols int) error {
	if rows != cols {
		return shapeErr("input must be square", rows, cols)
	}
	return ValidateRect(rows, cols)
}

// elements returns rows*cols, and false when the interleaved form of that
// many values (2*rows*cols float32) does not fit in an int.
func elements(rows, cols int) (int, bool) {
	if rows < 0 || cols < 0 {
		return 0, false
	}

	hi, lo := bits.Mul(uint(rows), uint(cols))
	if hi != 0 || lo > math.MaxInt/2 {
		return 0, false
	}

	return int(lo), true
}

// validateData checks that a buffer holds exactly rows*cols values.
func validateData(have, rows, cols int) error {
	want, ok := elements(rows, cols)
	if !ok {
		return shapeErr("dimensions overflow", rows, cols)
	}
	if have != want {
		return shapeErr("data length does not match dimensions", rows, cols, have)
	}
	return nil
}

// maxDim is the largest dimension that fits the engine's uint32 arguments.
const maxDim = 1<<32 - 1

func fitsEngine(dims ...int) error {
	for _, d := range dims {
		if uint64(d) > maxDim {
			return shapeErr("dimension exceeds engine range", dims...)
		}
	}
	return nil
}
