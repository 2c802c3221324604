package main

import (
	"testing"

	"github.com/noriah/gpufft/config"
)

func TestFlagsApply(t *testing.T) {
	cfg := config.NewZeroConfig()
	cfg.Engine = "reference"

	f := flags{verbose: true, trials: 4, window: "blackman"}
	if err := f.apply(&cfg); err != nil {
		t.Fatal(err)
	}

	if cfg.Engine != "reference" || cfg.LogLevel != "debug" || cfg.Bench.Trials != 4 || cfg.Spectrum.Window != "blackman" {
		t.Errorf("flags not applied: %+v", cfg)
	}

	// unset flags leave the config alone
	if cfg.Bench.Warmup != 1 || cfg.Spectrum.FrameSize != 4096 {
		t.Errorf("defaults overwritten: %+v", cfg)
	}

	bad := flags{frameSize: 1000}
	if err := bad.apply(&cfg); err == nil {
		t.Error("frame size 1000 accepted")
	}
}
