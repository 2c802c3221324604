package gpufft

import (
	"github.com/pkg/errors"

	"github.com/noriah/gpufft/buffer"
)

// Matrix is a row-major rows×cols array of real samples. For the 1D entry
// points Rows is the batch count and Cols the transform length.
type Matrix struct {
	Rows, Cols int
	Data       []float32
}

// ComplexMatrix is a row-major rows×cols array of complex values.
type ComplexMatrix struct {
	Rows, Cols int
	Data       []complex64
}

// NewMatrix allocates a zeroed rows×cols matrix.
func NewMatrix(rows, cols int) Matrix {
	return Matrix{Rows: rows, Cols: cols, Data: make([]float32, rows*cols)}
}

// Real wraps numeric data of the given shape as a Matrix. The shape must
// have rank 2 and match the data length. []float32 data is used in place;
// other numeric types are converted into a new slice.
func Real(data any, dims ...int) (Matrix, error) {
	if err := ValidateRank(dims, 2); err != nil {
		return Matrix{}, err
	}

	f, err := buffer.Float32s(data)
	if err != nil {
		return Matrix{}, errors.Wrap(err, "failed to read real input")
	}

	if err := validateData(len(f), dims[0], dims[1]); err != nil {
		return Matrix{}, err
	}

	return Matrix{Rows: dims[0], Cols: dims[1], Data: f}, nil
}

// Complex wraps complex data of the given shape as a ComplexMatrix, with the
// same rules as Real.
func Complex(data any, dims ...int) (ComplexMatrix, error) {
	if err := ValidateRank(dims, 2); err != nil {
		return ComplexMatrix{}, err
	}

	c, err := buffer.Complex64s(data)
	if err != nil {
		return ComplexMatrix{}, errors.Wrap(err, "failed to read complex input")
	}

	if err := validateData(len(c), dims[0], dims[1]); err != nil {
		return ComplexMatrix{}, err
	}

	return ComplexMatrix{Rows: dims[0], Cols: dims[1], Data: c}, nil
}

func (m Matrix) Dims() []int { return []int{m.Rows, m.Cols} }

func (m Matrix) Row(i int) []float32 { return m.Data[i*m.Cols : (i+1)*m.Cols] }

func (m Matrix) At(r, c int) float32 { return m.Data[r*m.Cols+c] }

func (m ComplexMatrix) Dims() []int { return []int{m.Rows, m.Cols} }

func (m ComplexMatrix) Row(i int) []complex64 { return m.Data[i*m.Cols : (i+1)*m.Cols] }

func (m ComplexMatrix) At(r, c int) complex64 { return m.Data[r*m.Cols+c] }
