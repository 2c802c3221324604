// Package spectrum finds the dominant frequencies of a signal with batched
// forward transforms.
package spectrum

import (
	"math/cmplx"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/noriah/gpufft"
	"github.com/noriah/gpufft/dsp/window"
	"github.com/noriah/gpufft/internal/log"
)

// Spectrum is the mean magnitude spectrum of a signal's frames, for bins
// 0 through FrameSize/2.
type Spectrum struct {
	SampleRate int
	FrameSize  int
	Frames     int
	Magnitudes []float64
}

// Peak is a local maximum of a Spectrum.
type Peak struct {
	Bin       int
	Frequency float64
	Magnitude float64
}

type Analyzer struct {
	FFT       *gpufft.Adapter
	FrameSize int             // transform length, a power of two
	Window    window.Function // applied to each frame; nil is rectangle
}

// Frames cuts samples into consecutive frames of size samples as one
// batch×size matrix. A trailing partial frame is dropped unless it is the
// only one, in which case it is zero padded.
func Frames(samples []float32, size int) gpufft.Matrix {
	n := len(samples) / size
	if n == 0 {
		n = 1
	}

	m := gpufft.NewMatrix(n, size)
	copy(m.Data, samples)
	return m
}

// Analyze transforms every frame of sig in one batched call and averages the
// magnitudes.
func (a *Analyzer) Analyze(sig Signal) (Spectrum, error) {
	if len(sig.Samples) == 0 {
		return Spectrum{}, errors.New("empty signal")
	}
	if !gpufft.IsPowerOfTwo(a.FrameSize) {
		return Spectrum{}, errors.Errorf("frame size %d is not a power of two", a.FrameSize)
	}

	frames := Frames(sig.Samples, a.FrameSize)
	if n := len(sig.Samples) % a.FrameSize; n > 0 && len(sig.Samples) > a.FrameSize {
		log.Infof("spectrum: dropping %d trailing samples", n)
	}
	if a.Window != nil {
		for r := 0; r < frames.Rows; r++ {
			a.Window(frames.Row(r))
		}
	}

	log.Debugf("spectrum: %d frames of %d samples", frames.Rows, frames.Cols)

	spec, err := a.FFT.Forward1D(frames)
	if err != nil {
		return Spectrum{}, errors.Wrap(err, "failed to transform frames")
	}

	mags := make([]float64, a.FrameSize/2+1)
	for r := 0; r < spec.Rows; r++ {
		row := spec.Row(r)
		for i := range mags {
			mags[i] += cmplx.Abs(complex128(row[i]))
		}
	}
	floats.Scale(1/float64(spec.Rows), mags)

	return Spectrum{
		SampleRate: sig.SampleRate,
		FrameSize:  a.FrameSize,
		Frames:     spec.Rows,
		Magnitudes: mags,
	}, nil
}

// Frequency returns the centre frequency of bin.
func (s Spectrum) Frequency(bin int) float64 {
	return float64(bin) * float64(s.SampleRate) / float64(s.FrameSize)
}

// Peaks returns up to n local maxima, largest first. The DC bin is skipped.
func (s Spectrum) Peaks(n int) []Peak {
	if n <= 0 {
		return nil
	}

	var peaks []Peak

	m := s.Magnitudes
	for i := 1; i < len(m); i++ {
		if m[i] <= m[i-1] || (i+1 < len(m) && m[i] < m[i+1]) {
			continue
		}
		peaks = append(peaks, Peak{Bin: i, Frequency: s.Frequency(i), Magnitude: m[i]})
	}

	sort.Slice(peaks, func(i, j int) bool {
		return peaks[i].Magnitude > peaks[j].Magnitude
	})

	if len(peaks) > n {
		peaks = peaks[:n]
	}

	return peaks
}
