package gpufft

import (
	"github.com/pkg/errors"

	"github.com/noriah/gpufft/buffer"
	"github.com/noriah/gpufft/engine"
)

// SquareAdapter runs transforms on the legacy N×N engine. Unlike Adapter,
// its inverse returns complex output: the square engine writes interleaved
// (re, im) pairs on both directions.
type SquareAdapter struct {
	eng engine.SquareEngine
}

// NewSquare returns a SquareAdapter for e.
func NewSquare(e engine.SquareEngine) *SquareAdapter {
	return &SquareAdapter{eng: e}
}

// OpenSquare initializes the named engine backend and returns a
// SquareAdapter for it.
func OpenSquare(name string, opts engine.Options) (*SquareAdapter, error) {
	b, err := engine.InitBackend(name, opts)
	if err != nil {
		return nil, &LoadError{Engine: name, Err: err}
	}

	e, ok := b.(engine.SquareEngine)
	if !ok {
		return nil, errors.Errorf("engine %q has no square entry points", name)
	}

	return NewSquare(e), nil
}

// Engine returns the underlying engine.
func (a *SquareAdapter) Engine() engine.SquareEngine { return a.eng }

func squareLog2(rows, cols, have int) (int32, error) {
	if err := ValidateSquare(rows, cols); err != nil {
		return 0, err
	}
	if err := validateData(have, rows, cols); err != nil {
		return 0, err
	}

	log2N, _ := Log2(rows)
	return int32(log2N), nil
}

// ForwardSquare transforms an N×N real input.
func (a *SquareAdapter) ForwardSquare(in Matrix) (ComplexMatrix, error) {
	log2N, err := squareLog2(in.Rows, in.Cols, len(in.Data))
	if err != nil {
		return ComplexMatrix{}, err
	}

	n := in.Rows
	src := buffer.Compliant(in.Data)
	out := buffer.NewInterleaved(n, n)

	err = invoke("fft2d", func() engine.Status {
		return a.eng.FFT2DSquare(log2N, src, out)
	})
	if err != nil {
		return ComplexMatrix{}, err
	}

	return deinterleaved(n, out)
}

// InverseSquare inverts an N×N spectrum, normalized by N².
func (a *SquareAdapter) InverseSquare(in ComplexMatrix) (ComplexMatrix, error) {
	log2N, err := squareLog2(in.Rows, in.Cols, len(in.Data))
	if err != nil {
		return ComplexMatrix{}, err
	}

	n := in.Rows
	src := buffer.Compliant(buffer.Interleave(in.Data))
	out := buffer.NewInterleaved(n, n)

	err = invoke("ifft2d", func() engine.Status {
		return a.eng.IFFT2DSquare(log2N, src, out)
	})
	if err != nil {
		return ComplexMatrix{}, err
	}

	return deinterleaved(n, out)
}

func deinterleaved(n int, out []float32) (ComplexMatrix, error) {
	data, err := buffer.Deinterleave(out)
	if err != nil {
		return ComplexMatrix{}, errors.Wrap(err, "failed to reinterpret engine output")
	}
	return ComplexMatrix{Rows: n, Cols: n, Data: data}, nil
}
