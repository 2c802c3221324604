// Package bench times forward/inverse round trips on an engine against a
// CPU reference.
package bench

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/noriah/gpufft"
	"github.com/noriah/gpufft/engine/reference"
	"github.com/noriah/gpufft/internal/log"
)

// Case is one benchmark shape.
type Case struct {
	Dim  int // 1 or 2
	Rows int // batch count for 1D
	Cols int // transform length for 1D
}

func (c Case) String() string {
	return fmt.Sprintf("%dD %dx%d", c.Dim, c.Rows, c.Cols)
}

type Config struct {
	Trials int                   // timed round trips per adapter
	Warmup int                   // untimed round trips run first
	Engine *gpufft.Adapter       // adapter under test
	Square *gpufft.SquareAdapter // square adapter under test, used when Engine is nil
	CPU    *gpufft.Adapter       // reference adapter; nil uses the gonum engine
}

// Result holds the timings of one Case.
type Result struct {
	Case   Case
	Engine Timing
	CPU    Timing
	// Speedup is the CPU mean over the engine mean.
	Speedup float64
	// MaxError is the largest absolute difference between the input and the
	// engine's round trip output.
	MaxError float64
	// DC is the engine's forward output at [0, 0].
	DC complex64
}

type Runner struct {
	trials int
	warmup int
	eng    *gpufft.Adapter
	sq     *gpufft.SquareAdapter
	cpu    *gpufft.Adapter
}

func New(cfg Config) *Runner {
	r := &Runner{
		trials: cfg.Trials,
		warmup: cfg.Warmup,
		eng:    cfg.Engine,
		sq:     cfg.Square,
		cpu:    cfg.CPU,
	}

	if r.trials < 1 {
		r.trials = 1
	}

	if r.cpu == nil {
		r.cpu = gpufft.New(reference.New())
	}

	return r
}

// Signal returns the benchmark input: 3.1415 everywhere except columns
// [2, cols/2), which are zero.
func Signal(rows, cols int) gpufft.Matrix {
	m := gpufft.NewMatrix(rows, cols)
	for r := 0; r < rows; r++ {
		row := m.Row(r)
		for c := range row {
			if c < 2 || c >= cols/2 {
				row[c] = 3.1415
			}
		}
	}
	return m
}

// Run times c on the CPU adapter, then on the engine. The context is checked
// between trials; a running engine call is never interrupted.
func (r *Runner) Run(ctx context.Context, c Case) (Result, error) {
	if c.Dim != 1 && c.Dim != 2 {
		return Result{}, errors.Errorf("bad benchmark dimension %d", c.Dim)
	}

	var engTrip tripFunc
	switch {
	case r.eng != nil:
		engTrip = rectTrip(r.eng, c.Dim)
	case r.sq != nil && c.Dim == 2:
		engTrip = squareTrip(r.sq)
	case r.sq != nil:
		return Result{}, errors.Errorf("square engine cannot run %v", c)
	default:
		return Result{}, errors.New("no engine to benchmark")
	}

	in := Signal(c.Rows, c.Cols)
	res := Result{Case: c}

	cpu, _, err := r.time(ctx, "cpu", rectTrip(r.cpu, c.Dim), c, in)
	if err != nil {
		return Result{}, errors.Wrapf(err, "cpu %v", c)
	}

	eng, last, err := r.time(ctx, "engine", engTrip, c, in)
	if err != nil {
		return Result{}, errors.Wrapf(err, "engine %v", c)
	}

	res.CPU = cpu
	res.Engine = eng
	if eng.Mean > 0 {
		res.Speedup = float64(cpu.Mean) / float64(eng.Mean)
	}

	res.DC = last.dc
	for i, v := range last.out.Data {
		if d := math.Abs(float64(v - in.Data[i])); d > res.MaxError {
			res.MaxError = d
		}
	}

	return res, nil
}

type trip struct {
	out gpufft.Matrix
	dc  complex64
}

// tripFunc runs one forward/inverse round trip.
type tripFunc func(in gpufft.Matrix) (trip, error)

func (r *Runner) time(ctx context.Context, name string, rt tripFunc, c Case, in gpufft.Matrix) (Timing, trip, error) {
	var last trip

	for i := 0; i < r.warmup; i++ {
		if err := ctx.Err(); err != nil {
			return Timing{}, last, err
		}

		if _, err := rt(in); err != nil {
			return Timing{}, last, err
		}
	}

	durs := make([]time.Duration, 0, r.trials)

	for i := 0; i < r.trials; i++ {
		if err := ctx.Err(); err != nil {
			return Timing{}, last, err
		}

		start := time.Now()
		t, err := rt(in)
		elapsed := time.Since(start)

		if err != nil {
			return Timing{}, last, err
		}

		log.Debugf("%s %v trial %d: %v", name, c, i, elapsed)

		durs = append(durs, elapsed)
		last = t
	}

	return NewTiming(durs), last, nil
}

func rectTrip(a *gpufft.Adapter, dim int) tripFunc {
	forward, inverse := a.Forward2D, a.Inverse2D
	if dim == 1 {
		forward, inverse = a.Forward1D, a.Inverse1D
	}

	return func(in gpufft.Matrix) (trip, error) {
		spec, err := forward(in)
		if err != nil {
			return trip{}, err
		}

		out, err := inverse(spec)
		if err != nil {
			return trip{}, err
		}

		return trip{out: out, dc: spec.Data[0]}, nil
	}
}

// squareTrip keeps the real part of the square engine's complex inverse.
func squareTrip(sq *gpufft.SquareAdapter) tripFunc {
	return func(in gpufft.Matrix) (trip, error) {
		spec, err := sq.ForwardSquare(in)
		if err != nil {
			return trip{}, err
		}

		back, err := sq.InverseSquare(spec)
		if err != nil {
			return trip{}, err
		}

		out := gpufft.NewMatrix(back.Rows, back.Cols)
		for i, v := range back.Data {
			out.Data[i] = real(v)
		}

		return trip{out: out, dc: spec.Data[0]}, nil
	}
}
