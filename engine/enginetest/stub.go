// Package enginetest provides a scripted engine for tests.
package enginetest

import (
	"sync"

	"github.com/noriah/gpufft/engine"
)

// Call records one engine invocation.
type Call struct {
	Op     string
	A, B   uint32 // batch/length, rows/cols, or log2N in A
	In     []float32
	Out    []float32
	Status engine.Status
}

// Stub implements engine.Engine, engine.SquareEngine and engine.Backend.
// Each call consults Fn when set, otherwise returns Status. Out buffers are
// filled with Fill before Fn runs so tests can see whether a failed call's
// output leaked back to the caller.
type Stub struct {
	mu sync.Mutex

	// Status is returned by every call when Fn is nil.
	Status engine.Status
	// Fn, when set, computes the result for a call.
	Fn func(c *Call) engine.Status
	// Fill is written into every out buffer before the call completes.
	Fill float32
	// InitErr is returned by Init.
	InitErr error

	Calls []Call
	Inits int
}

func (s *Stub) Init(engine.Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Inits++
	return s.InitErr
}

func (s *Stub) Close() error { return nil }

// Count reports how many transform calls reached the engine.
func (s *Stub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

// Last returns the most recent call.
func (s *Stub) Last() Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Calls) == 0 {
		return Call{}
	}
	return s.Calls[len(s.Calls)-1]
}

func (s *Stub) do(op string, a, b uint32, in, out []float32) engine.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range out {
		out[i] = s.Fill
	}

	c := Call{Op: op, A: a, B: b, In: in, Out: out, Status: s.Status}
	if s.Fn != nil {
		c.Status = s.Fn(&c)
	}

	s.Calls = append(s.Calls, c)
	return c.Status
}

func (s *Stub) FFT1D(batch, length uint32, in, out []float32) engine.Status {
	return s.do("fft1d", batch, length, in, out)
}

func (s *Stub) IFFT1D(batch, length uint32, in, out []float32) engine.Status {
	return s.do("ifft1d", batch, length, in, out)
}

func (s *Stub) FFT2D(rows, cols uint32, in, out []float32) engine.Status {
	return s.do("fft2d", rows, cols, in, out)
}

func (s *Stub) IFFT2D(rows, cols uint32, in, out []float32) engine.Status {
	return s.do("ifft2d", rows, cols, in, out)
}

func (s *Stub) FFT2DSquare(log2N int32, in, out []float32) engine.Status {
	return s.do("fft2d_square", uint32(log2N), 0, in, out)
}

func (s *Stub) IFFT2DSquare(log2N int32, in, out []float32) engine.Status {
	return s.do("ifft2d_square", uint32(log2N), 0, in, out)
}
