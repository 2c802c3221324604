package gpufft

import (
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/noriah/gpufft/engine"
	_ "github.com/noriah/gpufft/engine/all"
	"github.com/noriah/gpufft/internal/log"
)

var (
	defaultOnce    sync.Once
	defaultAdapter *Adapter
	defaultErr     error
)

// Default returns the process-wide Adapter. The engine is chosen by
// engine.DefaultName and loaded on first use; GPUFFT_LIBRARY overrides the
// library path. A load failure is kept and returned by every later call.
func Default() (*Adapter, error) {
	defaultOnce.Do(func() {
		name := engine.DefaultName()
		if name == "" {
			defaultErr = &LoadError{Engine: name, Err: errors.New("no engine registered")}
			return
		}

		defaultAdapter, defaultErr = Open(name, engine.Options{
			LibraryPath: os.Getenv("GPUFFT_LIBRARY"),
		})
		if defaultErr != nil {
			log.Warnf("default engine %q unavailable: %v", name, defaultErr)
		}
	})
	return defaultAdapter, defaultErr
}

// Forward1D runs Adapter.Forward1D on the default adapter.
func Forward1D(in Matrix) (ComplexMatrix, error) {
	a, err := Default()
	if err != nil {
		return ComplexMatrix{}, err
	}
	return a.Forward1D(in)
}

// Inverse1D runs Adapter.Inverse1D on the default adapter.
func Inverse1D(in ComplexMatrix) (Matrix, error) {
	a, err := Default()
	if err != nil {
		return Matrix{}, err
	}
	return a.Inverse1D(in)
}

// Forward2D runs Adapter.Forward2D on the default adapter.
func Forward2D(in Matrix) (ComplexMatrix, error) {
	a, err := Default()
	if err != nil {
		return ComplexMatrix{}, err
	}
	return a.Forward2D(in)
}

// Inverse2D runs Adapter.Inverse2D on the default adapter.
func Inverse2D(in ComplexMatrix) (Matrix, error) {
	a, err := Default()
	if err != nil {
		return Matrix{}, err
	}
	return a.Inverse2D(in)
}
