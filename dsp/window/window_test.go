package window

import (
	"math"
	"testing"
)

func ones(n int) []float32 {
	buf := make([]float32, n)
	for i := range buf {
		buf[i] = 1
	}
	return buf
}

func TestWindowShape(t *testing.T) {
	const n = 256

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			fn, err := Lookup(name)
			if err != nil {
				t.Fatal(err)
			}

			buf := ones(n)
			fn(buf)

			for i, v := range buf {
				if v < -1e-6 || v > 1+1e-6 {
					t.Fatalf("buf[%d] = %v out of [0, 1]", i, v)
				}
			}

			// periodic windows peak at the centre
			if math.Abs(float64(buf[n/2])-1) > 1e-6 {
				t.Errorf("centre = %v, want 1", buf[n/2])
			}

			// and are symmetric around it
			for i := 1; i < n/2; i++ {
				if math.Abs(float64(buf[n/2-i]-buf[n/2+i])) > 1e-5 {
					t.Fatalf("asymmetric at %d: %v vs %v", i, buf[n/2-i], buf[n/2+i])
				}
			}
		})
	}
}

func TestWindowEdges(t *testing.T) {
	for _, fn := range []Function{Hann, Bartlett} {
		buf := ones(64)
		fn(buf)
		if math.Abs(float64(buf[0])) > 1e-6 {
			t.Errorf("buf[0] = %v, want 0", buf[0])
		}
	}

	buf := ones(64)
	Hamming(buf)
	if math.Abs(float64(buf[0])-(2*25.0/46.0-1)) > 1e-6 {
		t.Errorf("hamming buf[0] = %v", buf[0])
	}
}

func TestLookup(t *testing.T) {
	if _, err := Lookup("HANN"); err != nil {
		t.Errorf("Lookup is case sensitive: %v", err)
	}
	if _, err := Lookup("kaiser"); err == nil {
		t.Error("unknown window accepted")
	}
}
