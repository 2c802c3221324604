package config

import (
	"github.com/pkg/errors"

	"github.com/noriah/gpufft"
	"github.com/noriah/gpufft/dsp/window"
	"github.com/noriah/gpufft/engine"
	"github.com/noriah/gpufft/internal/log"
)

// Config holds everything the gpufft command can be told.
type Config struct {
	// Engine is the engine name from list-engines. Empty picks the default.
	Engine string `yaml:"engine"`
	// Library is the path to the engine's shared library
	Library string `yaml:"library"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`
	// MemoryLimit caps the bytes a reference engine call may use (0 is none)
	MemoryLimit int `yaml:"memory_limit"`

	Bench    BenchConfig    `yaml:"bench"`
	Spectrum SpectrumConfig `yaml:"spectrum"`
}

// BenchConfig sets the shapes and trial counts of the bench command.
type BenchConfig struct {
	// Trials is the number of timed round trips per engine and shape
	Trials int `yaml:"trials"`
	// Warmup is the number of untimed round trips run first
	Warmup int `yaml:"warmup"`
	// Batch and Length shape the 1D benchmark
	Batch  int `yaml:"batch"`
	Length int `yaml:"length"`
	// Rows and Cols shape the 2D benchmark
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// SpectrumConfig sets how the spectrum command frames its input.
type SpectrumConfig struct {
	// FrameSize is the transform length of each frame
	FrameSize int `yaml:"frame_size"`
	// Window is a window name from dsp/window
	Window string `yaml:"window"`
	// Peaks is how many peak frequencies to print
	Peaks int `yaml:"peaks"`
}

// NewZeroConfig returns a zero config
// it is the "default"
//
// the shapes are the ones GPU_FFT ships benchmarks for:
//   - 1D: 1x65536
//   - 2D: 1024x1024
func NewZeroConfig() Config {
	return Config{
		LogLevel: "info",
		Bench: BenchConfig{
			Trials: 10,
			Warmup: 1,
			Batch:  1,
			Length: 1 << 16,
			Rows:   1024,
			Cols:   1024,
		},
		Spectrum: SpectrumConfig{
			FrameSize: 4096,
			Window:    "hann",
			Peaks:     5,
		},
	}
}

func pow2InRange(n int) bool {
	return gpufft.IsPowerOfTwo(n) && n <= 1<<engine.MaxLog2 && engine.InRange(uint32(n))
}

// Sanitize cleans things up
func (cfg *Config) Sanitize() error {

	if _, ok := log.ParseLevel(cfg.LogLevel); !ok {
		return errors.Errorf("unknown log level %q", cfg.LogLevel)
	}

	if cfg.MemoryLimit < 0 {
		return errors.New("memory limit must not be negative")
	}

	switch {

	case cfg.Bench.Trials < 1:
		return errors.New("too few trials (1 min)")

	case cfg.Bench.Warmup < 0:
		cfg.Bench.Warmup = 0

	}

	switch {

	case cfg.Bench.Batch < 1:
		return errors.New("bench batch must be positive")

	case !pow2InRange(cfg.Bench.Length):
		return errors.Errorf("bench length %d must be a power of two in [2^%d, 2^%d]",
			cfg.Bench.Length, engine.MinLog2, engine.MaxLog2)

	case !pow2InRange(cfg.Bench.Rows) || !pow2InRange(cfg.Bench.Cols):
		return errors.Errorf("bench shape %dx%d must be powers of two in [2^%d, 2^%d]",
			cfg.Bench.Rows, cfg.Bench.Cols, engine.MinLog2, engine.MaxLog2)

	}

	if !pow2InRange(cfg.Spectrum.FrameSize) {
		return errors.Errorf("frame size %d must be a power of two in [2^%d, 2^%d]",
			cfg.Spectrum.FrameSize, engine.MinLog2, engine.MaxLog2)
	}

	if _, err := window.Lookup(cfg.Spectrum.Window); err != nil {
		return err
	}

	if cfg.Spectrum.Peaks < 1 {
		cfg.Spectrum.Peaks = 1
	}

	return nil
}
