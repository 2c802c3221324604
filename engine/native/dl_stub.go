//go:build !cgo || !linux

package native

import (
	"runtime"

	"github.com/pkg/errors"

	"github.com/noriah/gpufft/engine"
)

// Available is false when this build cannot load native libraries.
const Available = false

type lib struct {
	def  string
	path string
}

// Library is the rectangular GPU_FFT library. This build cannot load it.
type Library struct {
	lib
}

// SquareLibrary is the legacy square-only GPU_FFT library. This build cannot
// load it.
type SquareLibrary struct {
	lib
}

func (l *lib) unavailable() error {
	return errors.Errorf("cannot load %s: native engines need cgo on linux (built for %s/%s)",
		l.Path(), runtime.GOOS, runtime.GOARCH)
}

func (l *Library) Init(engine.Options) error       { return l.unavailable() }
func (l *SquareLibrary) Init(engine.Options) error { return l.unavailable() }
func (l *lib) Close() error                        { return nil }

func (l *Library) FFT1D(_, _ uint32, _, _ []float32) engine.Status {
	return engine.StatusLibraryMissing
}

func (l *Library) IFFT1D(_, _ uint32, _, _ []float32) engine.Status {
	return engine.StatusLibraryMissing
}

func (l *Library) FFT2D(_, _ uint32, _, _ []float32) engine.Status {
	return engine.StatusLibraryMissing
}

func (l *Library) IFFT2D(_, _ uint32, _, _ []float32) engine.Status {
	return engine.StatusLibraryMissing
}

func (l *SquareLibrary) FFT2DSquare(_ int32, _, _ []float32) engine.Status {
	return engine.StatusLibraryMissing
}

func (l *SquareLibrary) IFFT2DSquare(_ int32, _, _ []float32) engine.Status {
	return engine.StatusLibraryMissing
}
