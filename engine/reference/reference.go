// Package reference implements the engine calling convention on the CPU with
// gonum. It keeps the GPU library's rules: forward transforms are not
// normalized, inverse transforms divide by the transform size, and only
// lengths between 2^8 and 2^22 are accepted.
package reference

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/noriah/gpufft/engine"
)

func init() {
	engine.RegisterBackend("reference", New())
}

// bytes of device memory used per complex sample (two float32).
const sampleBytes = 8

// Engine is a gonum backed engine. It is safe for concurrent use.
type Engine struct {
	once  sync.Once
	mu    sync.Mutex
	limit int
	plans map[int]*fourier.CmplxFFT
}

// New returns a reference engine with no memory limit.
func New() *Engine {
	return &Engine{plans: make(map[int]*fourier.CmplxFFT)}
}

// Init applies the memory limit. Only the first call has an effect.
func (e *Engine) Init(opts engine.Options) error {
	e.once.Do(func() {
		e.mu.Lock()
		e.limit = opts.MemoryLimit
		e.mu.Unlock()
	})
	return nil
}

// SetMemoryLimit changes the per-call byte limit. Zero disables it.
func (e *Engine) SetMemoryLimit(n int) {
	e.mu.Lock()
	e.limit = n
	e.mu.Unlock()
}

func (e *Engine) Close() error { return nil }

func (e *Engine) plan(n int) *fourier.CmplxFFT {
	p, ok := e.plans[n]
	if !ok {
		p = fourier.NewCmplxFFT(n)
		e.plans[n] = p
	}
	return p
}

func (e *Engine) fits(samples, passes int) bool {
	return e.limit <= 0 || uint64(samples)*sampleBytes*uint64(passes) <= uint64(e.limit)
}

func (e *Engine) FFT1D(batch, length uint32, in, out []float32) engine.Status {
	size, st := check1D(batch, length, len(in), len(out), 1, 2)
	if st != engine.StatusOK {
		return st
	}
	n, m := int(batch), int(length)

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.fits(size, 1) {
		return engine.StatusOutOfMemory
	}

	plan := e.plan(m)
	seq := make([]complex128, m)
	coef := make([]complex128, m)

	for r := 0; r < n; r++ {
		row := in[r*m : (r+1)*m]
		for c, v := range row {
			seq[c] = complex(float64(v), 0)
		}

		plan.Coefficients(coef, seq)
		putInterleaved(out[2*r*m:2*(r+1)*m], coef, 1)
	}

	return engine.StatusOK
}

func (e *Engine) IFFT1D(batch, length uint32, in, out []float32) engine.Status {
	size, st := check1D(batch, length, len(in), len(out), 2, 1)
	if st != engine.StatusOK {
		return st
	}
	n, m := int(batch), int(length)

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.fits(size, 1) {
		return engine.StatusOutOfMemory
	}

	plan := e.plan(m)
	coef := make([]complex128, m)
	seq := make([]complex128, m)
	norm := 1 / float64(m)

	for r := 0; r < n; r++ {
		getInterleaved(coef, in[2*r*m:2*(r+1)*m])
		plan.Sequence(seq, coef)

		row := out[r*m : (r+1)*m]
		for c := range row {
			row[c] = float32(real(seq[c]) * norm)
		}
	}

	return engine.StatusOK
}

func (e *Engine) FFT2D(rows, cols uint32, in, out []float32) engine.Status {
	size, st := check2D(rows, cols, len(in), len(out), 1, 2)
	if st != engine.StatusOK {
		return st
	}
	n, m := int(rows), int(cols)

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.fits(size, 2) {
		return engine.StatusOutOfMemory
	}

	work := make([]complex128, size)
	for i, v := range in[:size] {
		work[i] = complex(float64(v), 0)
	}

	e.transform2D(work, n, m, false)
	putInterleaved(out, work, 1)

	return engine.StatusOK
}

func (e *Engine) IFFT2D(rows, cols uint32, in, out []float32) engine.Status {
	size, st := check2D(rows, cols, len(in), len(out), 2, 1)
	if st != engine.StatusOK {
		return st
	}
	n, m := int(rows), int(cols)

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.fits(size, 2) {
		return engine.StatusOutOfMemory
	}

	work := make([]complex128, size)
	getInterleaved(work, in)

	e.transform2D(work, n, m, true)

	norm := 1 / float64(size)
	for i := range out[:size] {
		out[i] = float32(real(work[i]) * norm)
	}

	return engine.StatusOK
}

func (e *Engine) FFT2DSquare(log2N int32, in, out []float32) engine.Status {
	if log2N < engine.MinLog2 || log2N > engine.MaxLog2 {
		return engine.StatusUnsupportedShape
	}

	n := uint32(1) << uint(log2N)
	return e.FFT2D(n, n, in, out)
}

// IFFT2DSquare differs from IFFT2D in that it keeps the imaginary part and
// writes interleaved output.
func (e *Engine) IFFT2DSquare(log2N int32, in, out []float32) engine.Status {
	if log2N < engine.MinLog2 || log2N > engine.MaxLog2 {
		return engine.StatusUnsupportedShape
	}

	n := uint32(1) << uint(log2N)
	size, st := check2D(n, n, len(in), len(out), 2, 2)
	if st != engine.StatusOK {
		return st
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.fits(size, 2) {
		return engine.StatusOutOfMemory
	}

	work := make([]complex128, size)
	getInterleaved(work, in)

	e.transform2D(work, int(n), int(n), true)
	putInterleaved(out, work, 1/float64(size))

	return engine.StatusOK
}

// transform2D runs row transforms followed by column transforms in place on
// a row-major rows×cols matrix. Caller holds e.mu.
func (e *Engine) transform2D(work []complex128, rows, cols int, inverse bool) {
	rowPlan := e.plan(cols)
	colPlan := e.plan(rows)

	tmp := make([]complex128, cols)
	for r := 0; r < rows; r++ {
		row := work[r*cols : (r+1)*cols]
		if inverse {
			rowPlan.Sequence(tmp, row)
		} else {
			rowPlan.Coefficients(tmp, row)
		}
		copy(row, tmp)
	}

	col := make([]complex128, rows)
	res := make([]complex128, rows)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			col[r] = work[r*cols+c]
		}

		if inverse {
			colPlan.Sequence(res, col)
		} else {
			colPlan.Coefficients(res, col)
		}

		for r := 0; r < rows; r++ {
			work[r*cols+c] = res[r]
		}
	}
}

// check1D validates a batched shape against the buffer lengths. in and out are
// the float32 per sample of each buffer, 1 for real and 2 for interleaved. It
// returns the number of samples in the transform.
func check1D(batch, length uint32, inLen, outLen, in, out int) (int, engine.Status) {
	if batch == 0 || !engine.InRange(length) {
		return 0, engine.StatusUnsupportedShape
	}
	return checkLen(batch, length, inLen, outLen, in, out)
}

func check2D(rows, cols uint32, inLen, outLen, in, out int) (int, engine.Status) {
	if !engine.InRange(rows) || !engine.InRange(cols) {
		return 0, engine.StatusUnsupportedShape
	}
	return checkLen(rows, cols, inLen, outLen, in, out)
}

// checkLen rejects shapes whose interleaved size does not fit in an int,
// which a 32-bit host reaches well inside the accepted lengths.
func checkLen(a, b uint32, inLen, outLen, in, out int) (int, engine.Status) {
	size := uint64(a) * uint64(b)
	if size > math.MaxInt/2 {
		return 0, engine.StatusUnsupportedShape
	}

	n := int(size)
	if inLen < in*n || outLen < out*n {
		return 0, engine.StatusUnsupportedShape
	}
	return n, engine.StatusOK
}

func putInterleaved(dst []float32, src []complex128, scale float64) {
	for i, v := range src {
		dst[2*i] = float32(real(v) * scale)
		dst[2*i+1] = float32(imag(v) * scale)
	}
}

func getInterleaved(dst []complex128, src []float32) {
	for i := range dst {
		dst[i] = complex(float64(src[2*i]), float64(src[2*i+1]))
	}
}
