package bench

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Timing summarizes the wall-clock durations of a set of trials.
type Timing struct {
	Trials []time.Duration
	Mean   time.Duration
	StdDev time.Duration
	Median time.Duration
	Min    time.Duration
	Max    time.Duration
}

// NewTiming computes the statistics of durs.
func NewTiming(durs []time.Duration) Timing {
	t := Timing{Trials: durs}
	if len(durs) == 0 {
		return t
	}

	secs := make([]float64, len(durs))
	for i, d := range durs {
		secs[i] = d.Seconds()
	}

	mean, std := stat.MeanStdDev(secs, nil)
	if len(secs) < 2 {
		std = 0
	}

	sort.Float64s(secs)

	t.Mean = seconds(mean)
	t.StdDev = seconds(std)
	t.Median = seconds(stat.Quantile(0.5, stat.Empirical, secs, nil))
	t.Min = seconds(floats.Min(secs))
	t.Max = seconds(floats.Max(secs))

	return t
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
