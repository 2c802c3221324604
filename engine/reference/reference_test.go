package reference

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/noriah/gpufft/engine"
)

func naiveDFT(x []float64) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for t, v := range x {
			angle := -2 * math.Pi * float64(k*t) / float64(n)
			sum += complex(v, 0) * cmplx.Exp(complex(0, angle))
		}
		out[k] = sum
	}
	return out
}

func TestFFT1DMatchesDFT(t *testing.T) {
	const batch, length = 2, 256

	rnd := rand.New(rand.NewSource(7))
	in := make([]float32, batch*length)
	for i := range in {
		in[i] = rnd.Float32()*2 - 1
	}

	out := make([]float32, 2*batch*length)
	if st := New().FFT1D(batch, length, in, out); st != engine.StatusOK {
		t.Fatalf("FFT1D status %d", st)
	}

	for r := 0; r < batch; r++ {
		x := make([]float64, length)
		for c := range x {
			x[c] = float64(in[r*length+c])
		}

		want := naiveDFT(x)
		for k, w := range want {
			i := r*length + k
			got := complex(float64(out[2*i]), float64(out[2*i+1]))
			if cmplx.Abs(got-w) > 1e-3 {
				t.Fatalf("row %d bin %d: got %v want %v", r, k, got, w)
			}
		}
	}
}

func TestRoundTrip1D(t *testing.T) {
	const batch, length = 3, 1024

	in := make([]float32, batch*length)
	for i := range in {
		in[i] = float32(math.Sin(float64(i) * 0.01))
	}

	e := New()
	spec := make([]float32, 2*batch*length)
	back := make([]float32, batch*length)

	if st := e.FFT1D(batch, length, in, spec); st != engine.StatusOK {
		t.Fatalf("FFT1D status %d", st)
	}
	if st := e.IFFT1D(batch, length, spec, back); st != engine.StatusOK {
		t.Fatalf("IFFT1D status %d", st)
	}

	for i := range in {
		if math.Abs(float64(in[i]-back[i])) > 1e-4 {
			t.Fatalf("index %d: got %v want %v", i, back[i], in[i])
		}
	}
}

func TestRoundTrip2D(t *testing.T) {
	const rows, cols = 256, 512

	in := make([]float32, rows*cols)
	for i := range in {
		in[i] = float32(i%7) - 3
	}

	e := New()
	spec := make([]float32, 2*rows*cols)
	back := make([]float32, rows*cols)

	if st := e.FFT2D(rows, cols, in, spec); st != engine.StatusOK {
		t.Fatalf("FFT2D status %d", st)
	}
	if st := e.IFFT2D(rows, cols, spec, back); st != engine.StatusOK {
		t.Fatalf("IFFT2D status %d", st)
	}

	for i := range in {
		if math.Abs(float64(in[i]-back[i])) > 1e-3 {
			t.Fatalf("index %d: got %v want %v", i, back[i], in[i])
		}
	}
}

func TestSquareInverseIsInterleaved(t *testing.T) {
	const log2N = 8
	const n = 1 << log2N

	in := make([]float32, n*n)
	for i := range in {
		in[i] = float32(i % 5)
	}

	e := New()
	spec := make([]float32, 2*n*n)
	back := make([]float32, 2*n*n)

	if st := e.FFT2DSquare(log2N, in, spec); st != engine.StatusOK {
		t.Fatalf("FFT2DSquare status %d", st)
	}
	if st := e.IFFT2DSquare(log2N, spec, back); st != engine.StatusOK {
		t.Fatalf("IFFT2DSquare status %d", st)
	}

	for i := range in {
		re, im := back[2*i], back[2*i+1]
		if math.Abs(float64(re-in[i])) > 1e-3 || math.Abs(float64(im)) > 1e-3 {
			t.Fatalf("index %d: got (%v, %v) want (%v, 0)", i, re, im, in[i])
		}
	}
}

func TestUnsupportedShapes(t *testing.T) {
	e := New()
	small := make([]float32, 2*128)
	real256, cplx256 := make([]float32, 256), make([]float32, 512)

	tests := []struct {
		name string
		call func() engine.Status
	}{
		{"1d short length", func() engine.Status { return e.FFT1D(1, 128, small, small) }},
		{"1d zero batch", func() engine.Status { return e.FFT1D(0, 256, small, small) }},
		{"1d non power of two", func() engine.Status { return e.IFFT1D(1, 300, small, small) }},
		{"1d short buffer", func() engine.Status { return e.FFT1D(2, 256, small, small) }},
		{"2d short rows", func() engine.Status { return e.FFT2D(128, 256, small, small) }},
		{"square log2 too small", func() engine.Status { return e.FFT2DSquare(7, small, small) }},
		{"square log2 too large", func() engine.Status { return e.IFFT2DSquare(23, small, small) }},
		{"1d batch wraps int", func() engine.Status { return e.FFT1D(1<<24+1, 256, real256, cplx256) }},
		{"1d inverse batch wraps int", func() engine.Status { return e.IFFT1D(1<<24+1, 256, cplx256, real256) }},
		{"1d largest batch", func() engine.Status { return e.FFT1D(1<<31, 1<<22, small, small) }},
		{"2d largest", func() engine.Status { return e.IFFT2D(1<<22, 1<<22, small, small) }},
		{"square largest", func() engine.Status { return e.IFFT2DSquare(22, small, small) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if st := tt.call(); st != engine.StatusUnsupportedShape {
				t.Errorf("got status %d, want %d", st, engine.StatusUnsupportedShape)
			}
		})
	}
}

func TestMemoryLimit(t *testing.T) {
	e := New()
	if err := e.Init(engine.Options{MemoryLimit: 1024}); err != nil {
		t.Fatal(err)
	}

	in := make([]float32, 256)
	out := make([]float32, 512)
	if st := e.FFT1D(1, 256, in, out); st != engine.StatusOutOfMemory {
		t.Fatalf("got status %d, want %d", st, engine.StatusOutOfMemory)
	}

	e.SetMemoryLimit(0)
	if st := e.FFT1D(1, 256, in, out); st != engine.StatusOK {
		t.Fatalf("got status %d after lifting the limit", st)
	}
}

func TestRegistered(t *testing.T) {
	if !engine.HasBackend("reference") {
		t.Fatal("reference engine is not registered")
	}
}

// Adapted from https://github.com/project-gemmi/benchmarking-fft/blob/master/1d-r.cpp

const numReals = 1 << 16

func generateReals() []float32 {
	input := make([]float32, numReals)

	c := 3.1
	for i := range input {
		c += 0.3
		input[i] = float32(2*c - c*c)
	}

	return input
}

func BenchmarkFFT1D(b *testing.B) {
	reals := generateReals()
	out := make([]float32, 2*len(reals))
	e := New()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.FFT1D(1, numReals, reals, out)
	}
}
