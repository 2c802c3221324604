// Package window provides window functions applied to frames before a
// forward transform.
//
// See https://wikipedia.org/wiki/Window_function
package window

import (
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Function scales buf in place by a window of len(buf) points.
type Function func(buf []float32)

var functions = map[string]Function{
	"rectangle": Rectangle,
	"hann":      Hann,
	"hamming":   Hamming,
	"bartlett":  Bartlett,
	"blackman":  Blackman,
}

// Lookup returns the window function with the given name.
func Lookup(name string) (Function, error) {
	if fn, ok := functions[strings.ToLower(name)]; ok {
		return fn, nil
	}
	return nil, errors.Errorf("unknown window %q (have %s)", name, strings.Join(Names(), ", "))
}

// Names returns the known window names, sorted.
func Names() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rectangle leaves the buffer as is.
func Rectangle(buf []float32) {}

// CosSum applies a two-term cosine sum window with coefficient a0.
func CosSum(buf []float32, a0 float64) {
	size := len(buf)
	a1 := 1.0 - a0
	coef := 2.0 * math.Pi / float64(size)
	for n := range buf {
		buf[n] *= float32(a0 - a1*math.Cos(coef*float64(n)))
	}
}

// Hamming applies a Hamming window.
func Hamming(buf []float32) {
	CosSum(buf, 25.0/46.0)
}

// Hann applies a Hann window.
func Hann(buf []float32) {
	CosSum(buf, 0.5)
}

// Bartlett applies a triangular window.
func Bartlett(buf []float32) {
	fSize := float64(len(buf))
	for n := range buf {
		buf[n] *= float32(1.0 - math.Abs((2.0*float64(n)-fSize)/fSize))
	}
}

// Blackman applies a Blackman window.
func Blackman(buf []float32) {
	coef := 2.0 * math.Pi / float64(len(buf))
	for n := range buf {
		x := coef * float64(n)
		buf[n] *= float32(0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x))
	}
}
