package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ftracker/internal/config"
	"ftracker/internal/data"
	"ftracker/internal/logging"
	"ftracker/internal/replay"
	"ftracker/internal/report"
	"ftracker/internal/workout"
)

const (
	ExitSuccess = 0
	ExitError   = 2
)

// samplePackages are replayed when no input is given.
var samplePackages = []workout.Package{
	{Type: workout.CodeSwimming, Args: []float64{720, 1, 80, 25, 40}},
	{Type: workout.CodeRunning, Args: []float64{15000, 1, 75}},
	{Type: workout.CodeWalking, Args: []float64{9000, 1, 75, 180}},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// options are the command line flags after parsing.
type options struct {
	configPath string
	input      string
	output     string
	rate       float64
	verbose    bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("ftracker", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to YAML config file")
	fs.StringVar(&opts.input, "input", "", "CSV or JSON file with sensor packages")
	fs.StringVar(&opts.output, "output", "", "output format: text, json (default text)")
	fs.Float64Var(&opts.rate, "rate", 0, "packages per second (0 = unpaced)")
	fs.BoolVar(&opts.verbose, "verbose", false, "enable debug output")
	fs.Usage = func() { usage(fs) }
	err := fs.Parse(args)
	return opts, err
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(opts options) (*config.Config, error) {
	cfg := &config.Config{}
	if opts.configPath != "" {
		var err error
		cfg, err = config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
	}

	// CLI flags override config file values
	if opts.output != "" {
		cfg.Output = opts.output
	}
	if opts.rate > 0 {
		cfg.Rate = opts.rate
	}
	return cfg, nil
}

// collectPackages gathers config packages, then the -input file, falling
// back to the sample packages when both are empty.
func collectPackages(cfg *config.Config, input string) ([]workout.Package, error) {
	pkgs, err := cfg.AllPackages()
	if err != nil {
		return nil, err
	}
	if input != "" {
		loaded, err := data.LoadFile(input, "")
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, loaded...)
	}
	if len(pkgs) == 0 {
		return samplePackages, nil
	}
	return pkgs, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		return ExitError
	}

	log := logging.New(stderr, opts.verbose)

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitError
	}

	format, err := report.ParseFormat(cfg.Output)
	if err != nil {
		fmt.Fprintf(stderr, "error: --%v\n", err)
		return ExitError
	}

	pkgs, err := collectPackages(cfg, opts.input)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitError
	}

	r := replay.New(replay.WithRate(cfg.Rate, cfg.Burst), replay.WithLogger(log))
	log.Debug("replay starting",
		slog.Int("packages", len(pkgs)),
		slog.Bool("paced", r.Paced()),
		slog.String("output", string(format)))

	if err := write(ctx, stdout, r, pkgs, format); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

// write streams text lines as packages are processed; JSON is written once at the end.
func write(ctx context.Context, w io.Writer, r *replay.Replayer, pkgs []workout.Package, format report.Format) error {
	if format == report.Text {
		return r.Run(ctx, pkgs, func(m report.InfoMessage) error {
			return report.FormatText(w, []report.InfoMessage{m})
		})
	}

	msgs, err := r.Collect(ctx, pkgs)
	if err != nil {
		return err
	}
	return report.FormatJSON(w, msgs)
}

func usage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: %s [flags]\n\nSupported workout types:\n", fs.Name())
	for _, k := range workout.Kinds() {
		fmt.Fprintf(fs.Output(), "  %s  %-14s %v\n", k.Code, k.Name, k.Fields)
	}
	fmt.Fprintln(fs.Output(), "\nFlags:")
	fs.PrintDefaults()
}
