// Package native loads the compiled VideoCore GPU_FFT libraries.
//
// Two libraries are supported. "vc4" is the rectangular library
// (rpi0_gpu_fft.so) exporting fft1d, ifft1d, fft2d and ifft2d with explicit
// uint32 sizes. "vc4-square" is the older N×N library (gpu_fft_2d.so) whose
// fft2d and ifft2d take log2(N) and return interleaved inverse output.
//
// The GPU mailbox needs root, so programs using these engines usually run
// under sudo.
package native

import (
	"os"
	"path/filepath"

	"github.com/noriah/gpufft/engine"
)

const (
	// DefaultLibrary is the rectangular library, looked up in the working
	// directory unless GPUFFT_LIBRARY or Options.LibraryPath is set.
	DefaultLibrary = "rpi0_gpu_fft.so"
	// DefaultSquareLibrary is the legacy square-only library.
	DefaultSquareLibrary = "gpu_fft_2d.so"
)

var (
	rect   = &Library{lib: lib{def: DefaultLibrary}}
	square = &SquareLibrary{lib: lib{def: DefaultSquareLibrary}}
)

func init() {
	engine.RegisterBackend("vc4", rect)
	engine.RegisterBackend("vc4-square", square)
}

// resolvePath picks the library to load: explicit option, then environment,
// then the default name in the working directory.
func resolvePath(opt, def string) string {
	switch {
	case opt != "":
		return opt
	case os.Getenv("GPUFFT_LIBRARY") != "":
		return os.Getenv("GPUFFT_LIBRARY")
	}

	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, def)
	}

	return def
}

// Path reports the library a backend loaded, or would load with no options.
func (l *lib) Path() string {
	if l.path != "" {
		return l.path
	}
	return resolvePath("", l.def)
}

// LibraryPath reports the file the named backend would load with opt as its
// Options.LibraryPath.
func LibraryPath(backend, opt string) string {
	def := DefaultLibrary
	if backend == "vc4-square" {
		def = DefaultSquareLibrary
	}
	return resolvePath(opt, def)
}
