package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/noriah/gpufft"
	"github.com/noriah/gpufft/bench"
	"github.com/noriah/gpufft/config"
	"github.com/noriah/gpufft/dsp/window"
	"github.com/noriah/gpufft/engine"
	"github.com/noriah/gpufft/engine/reference"
	ilog "github.com/noriah/gpufft/internal/log"
	"github.com/noriah/gpufft/spectrum"

	_ "github.com/noriah/gpufft/engine/all"

	"github.com/integrii/flaggy"
)

// AppName is the app name
const AppName = "gpufft"

// AppDesc is the app description
const AppDesc = "FFTs on the Raspberry Pi VideoCore GPU"

// AppSite is the app website
const AppSite = "http://www.aholme.co.uk/GPU_FFT/Main.htm"

var version = "unknown"

type command int

const (
	cmdNone command = iota
	cmdListEngines
	cmdProbe
	cmdBench
	cmdSpectrum
)

func main() {
	log.SetFlags(0)

	var f flags
	cmd := doFlags(&f)
	if cmd == cmdNone {
		return
	}

	cfg, err := config.Load(f.configPath)
	chk(err, "failed to load config")
	chk(f.apply(&cfg), "invalid config")

	level, _ := ilog.ParseLevel(cfg.LogLevel)
	ilog.SetLevel(level)

	if cfg.Engine == "" {
		cfg.Engine = engine.DefaultName()
	}

	opts := engine.Options{
		LibraryPath: cfg.Library,
		MemoryLimit: cfg.MemoryLimit,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	switch cmd {
	case cmdListEngines:
		listEngines(cfg.Engine)

	case cmdProbe:
		if !printProbe(cfg.Engine, opts) {
			os.Exit(1)
		}

	case cmdBench:
		chk(runBench(ctx, cfg, f, opts), "failed to run benchmark")

	case cmdSpectrum:
		chk(runSpectrum(cfg, f.wavPath, opts), "failed to analyze "+f.wavPath)
	}
}

func doFlags(f *flags) command {

	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.AdditionalHelpPrepend = AppSite
	parser.Version = version

	listEnginesCmd := flaggy.NewSubcommand("list-engines")
	listEnginesCmd.ShortName = "le"
	listEnginesCmd.Description = "list all registered engines"
	listEnginesCmd.AdditionalHelpAppend = "\n'*' marks the default"

	probeCmd := flaggy.NewSubcommand("probe")
	probeCmd.Description = "check this host can run the GPU engine"
	probeCmd.AdditionalHelpAppend = "\nthe GPU engine needs root: run with sudo -E"

	benchCmd := flaggy.NewSubcommand("bench")
	benchCmd.ShortName = "b"
	benchCmd.Description = "time forward/inverse round trips against the CPU"
	benchCmd.Int(&f.trials, "t", "trials", "timed round trips per engine")
	benchCmd.Int(&f.warmup, "w", "warmup", "untimed round trips run first")
	benchCmd.Bool(&f.only1D, "", "1d", "only run the 1D benchmark")
	benchCmd.Bool(&f.only2D, "", "2d", "only run the 2D benchmark")

	spectrumCmd := flaggy.NewSubcommand("spectrum")
	spectrumCmd.ShortName = "sp"
	spectrumCmd.Description = "print the peak frequencies of a wav file"
	spectrumCmd.AddPositionalValue(&f.wavPath, "file", 1, true, "wav file to analyze")
	spectrumCmd.Int(&f.frameSize, "n", "frame", "frame size (power of two)")
	spectrumCmd.String(&f.window, "w", "window", "window function")
	spectrumCmd.Int(&f.peaks, "p", "peaks", "number of peaks to print")

	for _, sc := range []*flaggy.Subcommand{listEnginesCmd, probeCmd, benchCmd, spectrumCmd} {
		parser.AttachSubcommand(sc, 1)
	}

	parser.String(&f.configPath, "c", "config", "config file (default "+config.DefaultPath+")")
	parser.String(&f.engine, "e", "engine", "engine name")
	parser.String(&f.library, "l", "library", "engine shared library")
	parser.Bool(&f.verbose, "v", "verbose", "debug logging")

	chk(parser.Parse(), "failed to parse arguments")

	switch {
	case listEnginesCmd.Used:
		return cmdListEngines
	case probeCmd.Used:
		return cmdProbe
	case benchCmd.Used:
		return cmdBench
	case spectrumCmd.Used:
		return cmdSpectrum
	}

	parser.ShowHelp()
	return cmdNone
}

func listEngines(def string) {
	fmt.Println("all registered engines. '*' marks default")

	for _, name := range engine.GetAllBackendNames() {
		star := ' '
		if name == def {
			star = '*'
		}

		fmt.Printf("- %s %c\n", name, star)
	}
}

func runBench(ctx context.Context, cfg config.Config, f flags, opts engine.Options) error {
	bcfg := bench.Config{
		Trials: cfg.Bench.Trials,
		Warmup: cfg.Bench.Warmup,
		CPU:    gpufft.New(reference.New()),
	}

	// square-only engines get the square adapter
	var err error
	if _, rect := engine.FindBackend(cfg.Engine).(engine.Engine); rect || !engine.HasBackend(cfg.Engine) {
		bcfg.Engine, err = gpufft.Open(cfg.Engine, opts)
	} else {
		bcfg.Square, err = gpufft.OpenSquare(cfg.Engine, opts)
	}

	if err != nil {
		return err
	}

	var cases []bench.Case
	if !f.only2D && bcfg.Engine != nil {
		cases = append(cases, bench.Case{Dim: 1, Rows: cfg.Bench.Batch, Cols: cfg.Bench.Length})
	}
	if !f.only1D {
		rows, cols := cfg.Bench.Rows, cfg.Bench.Cols
		if bcfg.Square != nil {
			cols = rows
		}
		cases = append(cases, bench.Case{Dim: 2, Rows: rows, Cols: cols})
	}

	runner := bench.New(bcfg)

	var results []bench.Result
	for _, c := range cases {
		fmt.Printf("Testing the FFT/IFFT %v on %s...\n", c, cfg.Engine)

		res, err := runner.Run(ctx, c)
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	return bench.WriteReport(os.Stdout, cfg.Engine, results)
}

func runSpectrum(cfg config.Config, path string, opts engine.Options) error {
	fft, err := gpufft.Open(cfg.Engine, opts)
	if err != nil {
		return err
	}

	wnd, err := window.Lookup(cfg.Spectrum.Window)
	if err != nil {
		return err
	}

	sig, err := spectrum.LoadWAV(path)
	if err != nil {
		return err
	}

	a := spectrum.Analyzer{
		FFT:       fft,
		FrameSize: cfg.Spectrum.FrameSize,
		Window:    wnd,
	}

	spec, err := a.Analyze(sig)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d Hz, %d frames of %d samples (%s window)\n",
		path, spec.SampleRate, spec.Frames, spec.FrameSize, cfg.Spectrum.Window)

	for i, p := range spec.Peaks(cfg.Spectrum.Peaks) {
		fmt.Printf("%2d. %10.2f Hz  %12.4f\n", i+1, p.Frequency, p.Magnitude)
	}

	return nil
}

func chk(err error, wrap string) {
	if err != nil {
		log.Fatalln(wrap+": ", err)
	}
}
