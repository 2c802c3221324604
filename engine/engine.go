// Package engine describes the boundary to a native power-of-two FFT engine.
//
// The interfaces here mirror the calling convention of the compiled GPU_FFT
// libraries: sizes cross the boundary as unsigned 32-bit integers (or a
// signed log2 for the square-only library), buffers are contiguous float32
// arrays, and every call returns a Status.
package engine

import (
	"fmt"
	"os"
	"runtime"

	"github.com/pkg/errors"
)

// Status is the raw result of an engine call.
type Status int32

// Status codes reported by the engine.
const (
	StatusOK                Status = 0
	StatusDeviceUnavailable Status = -1
	StatusUnsupportedShape  Status = -2
	StatusOutOfMemory       Status = -3
	StatusMapFailure        Status = -4
	StatusLibraryMissing    Status = -5
)

// Transform lengths supported by the GPU engine, as base-2 logarithms.
const (
	MinLog2 = 8
	MaxLog2 = 22
)

// Engine is the rectangular entry point family.
//
// Forward calls take real input of batch*length (rows*cols) floats and write
// interleaved complex output of twice that size. Inverse calls take
// interleaved complex input and write real output, normalized by the
// transform size.
type Engine interface {
	FFT1D(batch, length uint32, in, out []float32) Status
	IFFT1D(batch, length uint32, in, out []float32) Status
	FFT2D(rows, cols uint32, in, out []float32) Status
	IFFT2D(rows, cols uint32, in, out []float32) Status
}

// SquareEngine is the legacy N×N entry point family. Sizes are given as
// log2(N), and the inverse writes interleaved complex output.
type SquareEngine interface {
	FFT2DSquare(log2N int32, in, out []float32) Status
	IFFT2DSquare(log2N int32, in, out []float32) Status
}

// Options configure a backend on Init.
type Options struct {
	// LibraryPath overrides the shared library a native backend loads.
	LibraryPath string
	// MemoryLimit caps the bytes a single call may use. Zero means no limit.
	MemoryLimit int
}

// Backend is a named engine implementation. A backend implements Engine,
// SquareEngine, or both.
type Backend interface {
	// Init should do nothing if called more than once.
	Init(Options) error
	Close() error
}

type NamedBackend struct {
	Name string
	Backend
}

var Backends []NamedBackend

// RegisterBackend registers a backend globally. This function is not
// thread-safe, and most packages should call it on init().
func RegisterBackend(name string, b Backend) {
	Backends = append(Backends, NamedBackend{
		Name:    name,
		Backend: b,
	})
}

// Get all installed backend names.
func GetAllBackendNames() []string {
	out := make([]string, len(Backends))
	for i, backend := range Backends {
		out[i] = backend.Name
	}
	return out
}

// DefaultName picks the backend to use when none is configured. The
// GPUFFT_ENGINE environment variable wins; otherwise the GPU engine is
// preferred on 32/64-bit ARM Linux and the reference engine everywhere else.
func DefaultName() string {
	if name := os.Getenv("GPUFFT_ENGINE"); name != "" {
		return name
	}

	if runtime.GOOS == "linux" && (runtime.GOARCH == "arm" || runtime.GOARCH == "arm64") {
		if HasBackend("vc4") {
			return "vc4"
		}
	}

	if HasBackend("reference") {
		return "reference"
	}

	return ""
}

// FindBackend is a helper function that finds a backend. It returns nil if the
// backend is not found.
func FindBackend(name string) Backend {
	for _, backend := range Backends {
		if backend.Name == name {
			return backend.Backend
		}
	}
	return nil
}

func HasBackend(name string) bool {
	return FindBackend(name) != nil
}

// InitBackend finds and initializes a backend.
func InitBackend(name string, opts Options) (Backend, error) {
	backend := FindBackend(name)
	if backend == nil {
		return nil, fmt.Errorf("engine not found: %q; check list-engines", name)
	}

	if err := backend.Init(opts); err != nil {
		return nil, errors.Wrapf(err, "failed to initialize engine %q", name)
	}

	return backend, nil
}

// InRange reports whether n is a transform length the GPU engine accepts.
func InRange(n uint32) bool {
	return n >= 1<<MinLog2 && n <= 1<<MaxLog2 && n&(n-1) == 0
}
