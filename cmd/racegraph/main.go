// Command racegraph charts lap time and position for each driver's timing
// exports and deletes the exports once charted.
//
// Usage:
//
//	racegraph [-config racegraph.yaml] [-output charts] [-encoding shift_jis]
//	          [-pause 0] [-no-prompt] [-log-level debug] [-version]
//
// On first run the driver folders are created and the program exits. Drop
// exports into them and run again.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/racegraph/internal/chart"
	"github.com/banshee-data/racegraph/internal/config"
	"github.com/banshee-data/racegraph/internal/console"
	"github.com/banshee-data/racegraph/internal/fsutil"
	"github.com/banshee-data/racegraph/internal/monitoring"
	"github.com/banshee-data/racegraph/internal/racegraph"
	"github.com/banshee-data/racegraph/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type flags struct {
	configPath  string
	outputDir   string
	encoding    string
	pause       int
	noPrompt    bool
	logLevel    string
	showVersion bool

	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	f := &flags{set: make(map[string]bool)}
	fs := flag.NewFlagSet("racegraph", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "path to a JSON or YAML config file (default "+config.DefaultConfigPath+" if present)")
	fs.StringVar(&f.outputDir, "output", "", "directory charts are written to")
	fs.StringVar(&f.encoding, "encoding", "", "text encoding of CSV exports, e.g. utf-8 or shift_jis")
	fs.IntVar(&f.pause, "pause", 0, "seconds of dotted pause before each progress step")
	fs.BoolVar(&f.noPrompt, "no-prompt", false, "do not wait for Enter before exiting")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.BoolVar(&f.showVersion, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// loadConfig layers the config file, the environment and explicit flags, in
// that order of increasing precedence.
func loadConfig(f *flags) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case f.configPath != "":
		c, err := config.LoadConfig(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = c
	case fileExists(config.DefaultConfigPath):
		c, err := config.LoadConfig(config.DefaultConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = c
	default:
		cfg = config.DefaultConfig()
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if f.set["output"] {
		cfg.OutputDir = &f.outputDir
	}
	if f.set["encoding"] {
		cfg.Encoding = &f.encoding
	}
	if f.set["pause"] {
		cfg.PauseSeconds = &f.pause
	}
	if f.noPrompt {
		interactive := false
		cfg.Interactive = &interactive
	}
	if f.set["log-level"] {
		cfg.LogLevel = &f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "racegraph: %v\n", err)
		return 2
	}
	if f.showVersion {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	monitoring.SetOutput(stderr)
	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintf(stderr, "racegraph: %v\n", err)
		return 1
	}
	if err := monitoring.SetLevel(cfg.GetLogLevel()); err != nil {
		fmt.Fprintf(stderr, "racegraph: invalid log level: %v\n", err)
		return 1
	}
	monitoring.Logf("%s starting", version.String())

	fsys := fsutil.OSFileSystem{}
	renderer := chart.NewRenderer(fsys, chart.Options{
		OutputDir: cfg.GetOutputDir(),
		Width:     vg.Length(cfg.GetChartWidthInches()) * vg.Inch,
		Height:    vg.Length(cfg.GetChartHeightInches()) * vg.Inch,
		DPI:       cfg.GetChartDPI(),
	})
	con := console.New(stdout, stdin, nil, console.Options{
		Dots:        cfg.GetPauseSeconds(),
		Interval:    time.Second,
		Interactive: cfg.GetInteractive(),
	})

	runner, err := racegraph.NewRunner(racegraph.OptionsFromConfig(cfg), racegraph.Deps{
		FS:       fsys,
		Renderer: renderer,
		Console:  con,
		Logger:   monitoring.Logger(),
	})
	if err != nil {
		fmt.Fprintf(stderr, "racegraph: %v\n", err)
		return 1
	}

	res, err := runner.Run(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "racegraph: %v\n", err)
		return 1
	}
	if !res.Bootstrapped {
		monitoring.Logf("charted %d file(s), %d empty, %d failed",
			res.Count(racegraph.OutcomeRendered),
			res.Count(racegraph.OutcomeEmpty),
			res.Count(racegraph.OutcomeFailed))
	}
	return 0
}
