package main

import "github.com/noriah/gpufft/config"

// flags holds command line values. Zero values mean "not given" and leave
// the loaded config alone.
type flags struct {
	// configPath is the yaml file to load
	configPath string
	// engine is the engine name from list-engines
	engine string
	// library is the shared library path for native engines
	library string
	// verbose turns on debug logging
	verbose bool

	// bench
	trials int
	warmup int
	only1D bool
	only2D bool

	// spectrum
	wavPath   string
	frameSize int
	window    string
	peaks     int
}

// apply overrides cfg with every flag that was given.
func (f *flags) apply(cfg *config.Config) error {
	if f.engine != "" {
		cfg.Engine = f.engine
	}

	if f.library != "" {
		cfg.Library = f.library
	}

	if f.verbose {
		cfg.LogLevel = "debug"
	}

	if f.trials > 0 {
		cfg.Bench.Trials = f.trials
	}

	if f.warmup > 0 {
		cfg.Bench.Warmup = f.warmup
	}

	if f.frameSize > 0 {
		cfg.Spectrum.FrameSize = f.frameSize
	}

	if f.window != "" {
		cfg.Spectrum.Window = f.window
	}

	if f.peaks > 0 {
		cfg.Spectrum.Peaks = f.peaks
	}

	return cfg.Sanitize()
}
