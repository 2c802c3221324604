package buffer

import (
	"math"
	"testing"
	"unsafe"
)

func TestInterleaveSharesMemory(t *testing.T) {
	c := []complex64{complex(1, 2), complex(3, 4)}
	f := Interleave(c)

	if len(f) != 4 {
		t.Fatalf("len = %d, want 4", len(f))
	}

	want := []float32{1, 2, 3, 4}
	for i := range want {
		if f[i] != want[i] {
			t.Errorf("f[%d] = %v, want %v", i, f[i], want[i])
		}
	}

	f[3] = 9
	if imag(c[1]) != 9 {
		t.Errorf("write through float view not visible: %v", c[1])
	}

	if !SameMemory(f, c) {
		t.Error("Interleave copied the data")
	}
}

func TestDeinterleave(t *testing.T) {
	f := NewInterleaved(2, 3)
	if len(f) != 12 {
		t.Fatalf("NewInterleaved len = %d, want 12", len(f))
	}

	for i := range f {
		f[i] = float32(i)
	}

	c, err := Deinterleave(f)
	if err != nil {
		t.Fatalf("Deinterleave: %v", err)
	}

	if len(c) != 6 {
		t.Fatalf("len = %d, want 6", len(c))
	}
	if c[2] != complex(4, 5) {
		t.Errorf("c[2] = %v, want (4+5i)", c[2])
	}
	if !SameMemory(f, c) {
		t.Error("Deinterleave copied the data")
	}
}

func TestDeinterleaveOddLength(t *testing.T) {
	if _, err := Deinterleave(make([]float32, 3)); err == nil {
		t.Fatal("expected an error for an odd length buffer")
	}
}

func TestNewInterleavedAligned(t *testing.T) {
	f := NewInterleaved(4, 4)
	if !Aligned(unsafe.Pointer(&f[0]), Align) {
		t.Errorf("buffer at %p is not %d byte aligned", &f[0], Align)
	}
}

func TestNewInterleavedOverflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a size that overflows int")
		}
	}()

	NewInterleaved(math.MaxInt/4+1, 2)
}

func TestCompliant(t *testing.T) {
	f := NewInterleaved(1, 8)
	for i := range f {
		f[i] = float32(i)
	}

	if g := Compliant(f); &g[0] != &f[0] {
		t.Error("aligned buffer was copied")
	}

	shifted := f[1:]
	g := Compliant(shifted)
	if &g[0] == &shifted[0] {
		t.Fatal("misaligned buffer was not copied")
	}
	if !Aligned(unsafe.Pointer(&g[0]), Align) {
		t.Error("copy is not aligned")
	}
	for i := range shifted {
		if g[i] != shifted[i] {
			t.Fatalf("g[%d] = %v, want %v", i, g[i], shifted[i])
		}
	}
}

func TestInterleaveZeroAllocs(t *testing.T) {
	c := make([]complex64, 1024)
	allocs := testing.AllocsPerRun(100, func() {
		f := Interleave(c)
		if _, err := Deinterleave(f); err != nil {
			t.Fatal(err)
		}
	})

	if allocs > 0 {
		t.Errorf("expected zero allocations reinterpreting buffers, got %.1f", allocs)
	}
}

func TestFloat32s(t *testing.T) {
	orig := []float32{1, 2, 3}
	got, err := Float32s(orig)
	if err != nil {
		t.Fatal(err)
	}
	if &got[0] != &orig[0] {
		t.Error("[]float32 input was copied")
	}

	f64 := []float64{1.5, -2.5}
	got, err = Float32s(f64)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 1.5 || got[1] != -2.5 {
		t.Errorf("Float32s(%v) = %v", f64, got)
	}

	got[0] = 7
	if f64[0] != 1.5 {
		t.Error("source slice was modified")
	}

	if _, err := Float32s([]string{"x"}); err == nil {
		t.Error("expected an error for []string")
	}
}

func TestComplex64s(t *testing.T) {
	c128 := []complex128{complex(1, -1)}
	got, err := Complex64s(c128)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != complex(1, -1) {
		t.Errorf("got %v", got[0])
	}

	got, err = Complex64s([]int16{3})
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != complex(3, 0) {
		t.Errorf("got %v", got[0])
	}

	if _, err := Complex64s(42); err == nil {
		t.Error("expected an error for a scalar")
	}
}
