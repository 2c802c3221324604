package spectrum

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/noriah/gpufft"
	"github.com/noriah/gpufft/dsp/window"
	"github.com/noriah/gpufft/engine/reference"
)

// writeSine writes a 16-bit WAV holding the sum of the given tones, each at
// half amplitude scaled by its index.
func writeSine(t *testing.T, rate, chans, samples int, freqs ...float64) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sine.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, chans, 1)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: chans, SampleRate: rate},
		SourceBitDepth: 16,
		Data:           make([]int, samples*chans),
	}

	for i := 0; i < samples; i++ {
		var v float64
		for k, freq := range freqs {
			v += 0.5 / float64(k+1) * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
		}
		for c := 0; c < chans; c++ {
			buf.Data[i*chans+c] = int(v * 32767)
		}
	}

	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoadWAV(t *testing.T) {
	path := writeSine(t, 8000, 2, 4000, 500)

	sig, err := LoadWAV(path)
	if err != nil {
		t.Fatalf("LoadWAV: %v", err)
	}

	if sig.SampleRate != 8000 || len(sig.Samples) != 4000 {
		t.Fatalf("got %d Hz, %d samples", sig.SampleRate, len(sig.Samples))
	}

	// 500 Hz at 8 kHz peaks at sample 4
	if math.Abs(float64(sig.Samples[4])-0.5) > 1e-3 {
		t.Errorf("sample 4 = %v, want 0.5", sig.Samples[4])
	}
}

func TestLoadWAVErrors(t *testing.T) {
	if _, err := LoadWAV(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("missing file accepted")
	}

	path := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(path, []byte("this is not a riff file"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWAV(path); err == nil {
		t.Error("junk file accepted")
	}
}

func TestTopPeak(t *testing.T) {
	const (
		rate = 8000
		size = 1024
	)

	// 1000 Hz and 250 Hz sit exactly on bins 128 and 32
	sig, err := LoadWAV(writeSine(t, rate, 1, 4*size, 1000, 250))
	if err != nil {
		t.Fatal(err)
	}

	a := Analyzer{
		FFT:       gpufft.New(reference.New()),
		FrameSize: size,
		Window:    window.Hann,
	}

	spec, err := a.Analyze(sig)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if spec.Frames != 4 || len(spec.Magnitudes) != size/2+1 {
		t.Fatalf("got %d frames, %d bins", spec.Frames, len(spec.Magnitudes))
	}

	peaks := spec.Peaks(2)
	if len(peaks) != 2 {
		t.Fatalf("got %d peaks", len(peaks))
	}
	if peaks[0].Bin != 128 || peaks[0].Frequency != 1000 {
		t.Errorf("top peak = %+v, want 1000 Hz", peaks[0])
	}
	if peaks[1].Bin != 32 || peaks[1].Frequency != 250 {
		t.Errorf("second peak = %+v, want 250 Hz", peaks[1])
	}
}

func TestPeaksCount(t *testing.T) {
	spec := Spectrum{SampleRate: 8000, FrameSize: 8, Magnitudes: []float64{0, 3, 1, 5, 2}}

	for _, n := range []int{-1, 0} {
		if got := spec.Peaks(n); len(got) != 0 {
			t.Errorf("Peaks(%d) returned %d peaks", n, len(got))
		}
	}

	if got := spec.Peaks(10); len(got) != 2 || got[0].Bin != 3 || got[1].Bin != 1 {
		t.Errorf("Peaks(10) = %+v, want bins 3 and 1", got)
	}
}

func TestFrames(t *testing.T) {
	samples := make([]float32, 700)
	for i := range samples {
		samples[i] = float32(i)
	}

	m := Frames(samples, 256)
	if m.Rows != 2 || m.Cols != 256 || m.At(1, 0) != 256 {
		t.Errorf("got %dx%d, At(1, 0) = %v", m.Rows, m.Cols, m.At(1, 0))
	}

	short := Frames(samples[:100], 256)
	if short.Rows != 1 || short.At(0, 99) != 99 || short.At(0, 100) != 0 {
		t.Errorf("short signal not zero padded: %dx%d", short.Rows, short.Cols)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	a := Analyzer{FFT: gpufft.New(reference.New()), FrameSize: 1000}
	if _, err := a.Analyze(Signal{SampleRate: 8000, Samples: make([]float32, 4000)}); err == nil {
		t.Error("frame size 1000 accepted")
	}

	a.FrameSize = 256
	if _, err := a.Analyze(Signal{SampleRate: 8000}); err == nil {
		t.Error("empty signal accepted")
	}
}
