package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteReport prints one block per result and a summary table.
func WriteReport(w io.Writer, engine string, results []Result) error {
	for _, r := range results {
		c := r.Case
		fmt.Fprintf(w, "CPU FFT/IFFT %dD time %dx%d: avg %v (min %v, max %v)\n",
			c.Dim, c.Rows, c.Cols, r.CPU.Mean, r.CPU.Min, r.CPU.Max)
		fmt.Fprintf(w, "%s FFT/IFFT %dD time %dx%d: avg %v (min %v, max %v)\n",
			engine, c.Dim, c.Rows, c.Cols, r.Engine.Mean, r.Engine.Min, r.Engine.Max)
		fmt.Fprintf(w, "%s/CPU FFT/IFFT %dD time %dx%d: avg time (%d trials): %0.4f\n\n",
			engine, c.Dim, c.Rows, c.Cols, len(r.Engine.Trials), r.Speedup)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "case\tcpu mean\tengine mean\tengine stddev\tspeedup\tmax error\tdc")
	for _, r := range results {
		fmt.Fprintf(tw, "%v\t%v\t%v\t%v\t%0.4f\t%.3g\t%.6g\n",
			r.Case, r.CPU.Mean, r.Engine.Mean, r.Engine.StdDev, r.Speedup, r.MaxError, real(r.DC))
	}

	return tw.Flush()
}
