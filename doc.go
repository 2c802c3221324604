// Package gpufft runs power-of-two FFTs on the Raspberry Pi VideoCore GPU
// through the compiled GPU_FFT libraries, with a gonum reference engine for
// every other machine.
//
// Every call validates its input shape, hands contiguous float32 buffers to
// the engine, checks the returned status, and gives back the engine's output
// viewed as complex64 without copying it:
//
//	fft, err := gpufft.Open("vc4", engine.Options{})
//	if err != nil {
//		return err
//	}
//
//	in, _ := gpufft.Real(samples, 1, 65536)
//	spec, err := fft.Forward1D(in)
//	if errors.Is(err, gpufft.UnsupportedShape) {
//		...
//	}
//
// The rectangular engine ("vc4", "reference") takes batch×length or
// rows×cols sizes and returns real output from its inverse transforms. The
// older square engine ("vc4-square") takes log2(N) and returns complex
// output from its inverse; use SquareAdapter for it.
//
// Engine calls are serialized process-wide and block until the engine
// returns. There is no cancellation.
package gpufft
