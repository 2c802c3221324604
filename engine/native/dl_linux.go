//go:build cgo && linux

package native

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdint.h>
#include <stdlib.h>

typedef int32_t (*vc_rect_fn)(uint32_t, uint32_t, float*, float*);
typedef int32_t (*vc_square_fn)(int32_t, float*, float*);

static void* vc_dlopen(const char* path) {
	return dlopen(path, RTLD_NOW | RTLD_LOCAL);
}

static int vc_dlclose(void* h) {
	return dlclose(h);
}

static const char* vc_dlerror(void) {
	return dlerror();
}

// Clear dlerror, call dlsym, and return the error (if any) alongside the symbol.
static void* vc_dlsym(void* h, const char* name, const char** err) {
	dlerror();
	void* p = dlsym(h, name);
	const char* e = dlerror();
	*err = e;
	return e ? NULL : p;
}

static int32_t vc_call_rect(void* fn, uint32_t a, uint32_t b, float* in, float* out) {
	return ((vc_rect_fn)fn)(a, b, in, out);
}

static int32_t vc_call_square(void* fn, int32_t log2n, float* in, float* out) {
	return ((vc_square_fn)fn)(log2n, in, out);
}
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/noriah/gpufft/engine"
)

// Available is true when this build can load native libraries.
const Available = true

// lib is a dlopen handle. It is opened once on Init and held for the life of
// the process.
type lib struct {
	def  string
	path string

	once   sync.Once
	err    error
	handle unsafe.Pointer
}

// Library is the rectangular GPU_FFT library.
type Library struct {
	lib
	fft1d, ifft1d, fft2d, ifft2d unsafe.Pointer
}

// SquareLibrary is the legacy square-only GPU_FFT library. Its fft2d and
// ifft2d symbols share names with the rectangular library but not the
// signature, so the two are never mixed.
type SquareLibrary struct {
	lib
	fft2d, ifft2d unsafe.Pointer
}

func (l *lib) open(path string, symbols map[string]*unsafe.Pointer) error {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	handle := C.vc_dlopen(cpath)
	if handle == nil {
		return errors.Errorf("dlopen %s: %s", path, C.GoString(C.vc_dlerror()))
	}

	for name, dst := range symbols {
		cname := C.CString(name)
		var cerr *C.char
		sym := C.vc_dlsym(handle, cname, &cerr)
		C.free(unsafe.Pointer(cname))

		if cerr != nil {
			err := errors.Errorf("dlsym %s in %s: %s", name, path, C.GoString(cerr))
			for _, dst := range symbols {
				*dst = nil
			}
			C.vc_dlclose(handle)
			return err
		}
		*dst = sym
	}

	l.path = path
	l.handle = handle
	return nil
}

// Init loads the library. Only the first call has an effect; later calls
// return the first result.
func (l *Library) Init(opts engine.Options) error {
	l.once.Do(func() {
		l.err = l.open(resolvePath(opts.LibraryPath, l.def), map[string]*unsafe.Pointer{
			"fft1d":  &l.fft1d,
			"ifft1d": &l.ifft1d,
			"fft2d":  &l.fft2d,
			"ifft2d": &l.ifft2d,
		})
	})
	return l.err
}

func (l *SquareLibrary) Init(opts engine.Options) error {
	l.once.Do(func() {
		l.err = l.open(resolvePath(opts.LibraryPath, l.def), map[string]*unsafe.Pointer{
			"fft2d":  &l.fft2d,
			"ifft2d": &l.ifft2d,
		})
	})
	return l.err
}

// Close keeps the library loaded. The engine holds device state that is
// only released when the process exits.
func (l *lib) Close() error { return nil }

func ptr(f []float32) *C.float {
	return (*C.float)(unsafe.Pointer(&f[0]))
}

func (l *Library) call(fn unsafe.Pointer, a, b uint32, in, out []float32) engine.Status {
	if len(in) == 0 || len(out) == 0 {
		return engine.StatusUnsupportedShape
	}
	if fn == nil {
		return engine.StatusLibraryMissing
	}
	return engine.Status(C.vc_call_rect(fn, C.uint32_t(a), C.uint32_t(b), ptr(in), ptr(out)))
}

func (l *Library) FFT1D(batch, length uint32, in, out []float32) engine.Status {
	return l.call(l.fft1d, batch, length, in, out)
}

func (l *Library) IFFT1D(batch, length uint32, in, out []float32) engine.Status {
	return l.call(l.ifft1d, batch, length, in, out)
}

func (l *Library) FFT2D(rows, cols uint32, in, out []float32) engine.Status {
	return l.call(l.fft2d, rows, cols, in, out)
}

func (l *Library) IFFT2D(rows, cols uint32, in, out []float32) engine.Status {
	return l.call(l.ifft2d, rows, cols, in, out)
}

func (l *SquareLibrary) callSquare(fn unsafe.Pointer, log2N int32, in, out []float32) engine.Status {
	if len(in) == 0 || len(out) == 0 {
		return engine.StatusUnsupportedShape
	}
	if fn == nil {
		return engine.StatusLibraryMissing
	}
	return engine.Status(C.vc_call_square(fn, C.int32_t(log2N), ptr(in), ptr(out)))
}

func (l *SquareLibrary) FFT2DSquare(log2N int32, in, out []float32) engine.Status {
	return l.callSquare(l.fft2d, log2N, in, out)
}

func (l *SquareLibrary) IFFT2DSquare(log2N int32, in, out []float32) engine.Status {
	return l.callSquare(l.ifft2d, log2N, in, out)
}
