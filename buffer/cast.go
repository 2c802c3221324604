package buffer

import (
	"github.com/pkg/errors"
)

// Float32s returns real samples as float32. A []float32 is returned as is;
// other numeric slices are copied and converted. The source is never
// modified.
func Float32s(src any) ([]float32, error) {
	switch s := src.(type) {
	case []float32:
		return s, nil
	case []float64:
		return convert(s), nil
	case []int:
		return convert(s), nil
	case []int16:
		return convert(s), nil
	case []int32:
		return convert(s), nil
	default:
		return nil, errors.Errorf("unsupported real sample type %T", src)
	}
}

type number interface {
	~float64 | ~int | ~int16 | ~int32
}

func convert[T number](s []T) []float32 {
	out := make([]float32, len(s))
	for i, v := range s {
		out[i] = float32(v)
	}
	return out
}

// Complex64s returns complex values as complex64. A []complex64 is returned
// as is; a []complex128 is copied. Real slices become complex values with a
// zero imaginary part.
func Complex64s(src any) ([]complex64, error) {
	switch s := src.(type) {
	case []complex64:
		return s, nil
	case []complex128:
		out := make([]complex64, len(s))
		for i, v := range s {
			out[i] = complex64(v)
		}
		return out, nil
	}

	re, err := Float32s(src)
	if err != nil {
		return nil, errors.Errorf("unsupported complex sample type %T", src)
	}

	out := make([]complex64, len(re))
	for i, v := range re {
		out[i] = complex(v, 0)
	}
	return out, nil
}
