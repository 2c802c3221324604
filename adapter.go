package gpufft

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/noriah/gpufft/buffer"
	"github.com/noriah/gpufft/engine"
	"github.com/noriah/gpufft/internal/log"
)

// callMu serializes every engine call in the process. The GPU engine owns
// the device exclusively and its own locking is unknown.
var callMu sync.Mutex

type rectFunc func(a, b uint32, in, out []float32) engine.Status

// Adapter runs transforms on a rectangular engine. It is safe for
// concurrent use; engine calls are serialized.
type Adapter struct {
	eng engine.Engine
}

// New returns an Adapter for e.
func New(e engine.Engine) *Adapter {
	return &Adapter{eng: e}
}

// Open initializes the named engine backend and returns an Adapter for it.
func Open(name string, opts engine.Options) (*Adapter, error) {
	b, err := engine.InitBackend(name, opts)
	if err != nil {
		return nil, &LoadError{Engine: name, Err: err}
	}

	e, ok := b.(engine.Engine)
	if !ok {
		return nil, errors.Errorf("engine %q has no rectangular entry points; use OpenSquare", name)
	}

	return New(e), nil
}

// Engine returns the underlying engine.
func (a *Adapter) Engine() engine.Engine { return a.eng }

// invoke makes one engine call under the process lock and checks its
// status before anything reads the output.
func invoke(op string, call func() engine.Status) error {
	callMu.Lock()
	status := call()
	callMu.Unlock()

	log.Debugf("%s: status %d", op, status)

	return CheckStatus(op, status)
}

// Forward1D transforms each row of a batch×length real input. The result
// has the same shape.
func (a *Adapter) Forward1D(in Matrix) (ComplexMatrix, error) {
	if err := ValidateBatch(in.Rows, in.Cols); err != nil {
		return ComplexMatrix{}, err
	}
	return a.forward("fft1d", a.eng.FFT1D, in)
}

// Inverse1D inverts each row of a batch×length spectrum, returning the real
// part normalized by length.
func (a *Adapter) Inverse1D(in ComplexMatrix) (Matrix, error) {
	if err := ValidateBatch(in.Rows, in.Cols); err != nil {
		return Matrix{}, err
	}
	return a.inverse("ifft1d", a.eng.IFFT1D, in)
}

// Forward2D transforms a rows×cols real input.
func (a *Adapter) Forward2D(in Matrix) (ComplexMatrix, error) {
	if err := ValidateRect(in.Rows, in.Cols); err != nil {
		return ComplexMatrix{}, err
	}
	return a.forward("fft2d", a.eng.FFT2D, in)
}

// Inverse2D inverts a rows×cols spectrum, returning the real part normalized
// by rows*cols.
func (a *Adapter) Inverse2D(in ComplexMatrix) (Matrix, error) {
	if err := ValidateRect(in.Rows, in.Cols); err != nil {
		return Matrix{}, err
	}
	return a.inverse("ifft2d", a.eng.IFFT2D, in)
}

func (a *Adapter) forward(op string, fn rectFunc, in Matrix) (ComplexMatrix, error) {
	rows, cols := in.Rows, in.Cols
	if err := validateData(len(in.Data), rows, cols); err != nil {
		return ComplexMatrix{}, err
	}
	if err := fitsEngine(rows, cols); err != nil {
		return ComplexMatrix{}, err
	}

	src := buffer.Compliant(in.Data)
	out := buffer.NewInterleaved(rows, cols)

	err := invoke(op, func() engine.Status {
		return fn(uint32(rows), uint32(cols), src, out)
	})
	if err != nil {
		return ComplexMatrix{}, err
	}

	data, err := buffer.Deinterleave(out)
	if err != nil {
		return ComplexMatrix{}, errors.Wrap(err, "failed to reinterpret engine output")
	}

	return ComplexMatrix{Rows: rows, Cols: cols, Data: data}, nil
}

func (a *Adapter) inverse(op string, fn rectFunc, in ComplexMatrix) (Matrix, error) {
	rows, cols := in.Rows, in.Cols
	if err := validateData(len(in.Data), rows, cols); err != nil {
		return Matrix{}, err
	}
	if err := fitsEngine(rows, cols); err != nil {
		return Matrix{}, err
	}

	src := buffer.Compliant(buffer.Interleave(in.Data))
	out := make([]float32, rows*cols)

	err := invoke(op, func() engine.Status {
		return fn(uint32(rows), uint32(cols), src, out)
	})
	if err != nil {
		return Matrix{}, err
	}

	return Matrix{Rows: rows, Cols: cols, Data: out}, nil
}
