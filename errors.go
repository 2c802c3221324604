package gpufft

import (
	"fmt"

	"github.com/noriah/gpufft/engine"
)

// Condition is the closed set of ways a transform can fail.
type Condition int

const (
	InvalidShape Condition = iota + 1
	DeviceUnavailable
	UnsupportedShape
	OutOfDeviceMemory
	PeripheralMappingFailure
	LibraryLoadFailure
	UnknownEngineFailure
)

var conditionMessages = [...]string{
	InvalidShape:             "invalid shape",
	DeviceUnavailable:        "unable to enable V3D, please check your firmware is up to date",
	UnsupportedShape:         "shape not supported, transform lengths must be between 2^8 and 2^22",
	OutOfDeviceMemory:        "out of GPU memory, try a smaller batch or increase GPU memory",
	PeripheralMappingFailure: "unable to map VideoCore peripherals into ARM memory space",
	LibraryLoadFailure:       "cannot load engine library (libbcm_host or the FFT library)",
	UnknownEngineFailure:     "unknown engine failure",
}

func (c Condition) Error() string {
	if c <= 0 || int(c) >= len(conditionMessages) {
		return fmt.Sprintf("gpufft: condition %d", int(c))
	}
	return "gpufft: " + conditionMessages[c]
}

// statusConditions maps every documented engine status to its condition.
var statusConditions = map[engine.Status]Condition{
	engine.StatusDeviceUnavailable: DeviceUnavailable,
	engine.StatusUnsupportedShape:  UnsupportedShape,
	engine.StatusOutOfMemory:       OutOfDeviceMemory,
	engine.StatusMapFailure:        PeripheralMappingFailure,
	engine.StatusLibraryMissing:    LibraryLoadFailure,
}

// Translate maps a non-zero engine status to a Condition. Codes the engine
// does not document, positive ones included, are UnknownEngineFailure.
// Translate must not be called with StatusOK.
func Translate(status engine.Status) Condition {
	if c, ok := statusConditions[status]; ok {
		return c
	}
	return UnknownEngineFailure
}

// StatusError is returned when an engine call reports a failure.
type StatusError struct {
	Op        string        // engine entry point, e.g. "fft1d"
	Status    engine.Status // raw status code
	Condition Condition
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Condition)
}

func (e *StatusError) Unwrap() error { return e.Condition }

// CheckStatus returns nil for StatusOK and a *StatusError otherwise.
func CheckStatus(op string, status engine.Status) error {
	if status == engine.StatusOK {
		return nil
	}

	return &StatusError{
		Op:        op,
		Status:    status,
		Condition: Translate(status),
	}
}

// LoadError is returned when an engine backend cannot be initialized.
type LoadError struct {
	Engine string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%v: %s: %v", LibraryLoadFailure, e.Engine, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == LibraryLoadFailure }

// ShapeError describes input rejected before reaching the engine.
type ShapeError struct {
	Dims   []int
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v %v: %s", InvalidShape, e.Dims, e.Reason)
}

func (e *ShapeError) Unwrap() error { return InvalidShape }
