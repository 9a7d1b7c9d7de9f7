package racegraph

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/banshee-data/racegraph/internal/config"
	"github.com/banshee-data/racegraph/internal/console"
	"github.com/banshee-data/racegraph/internal/fsutil"
	"github.com/banshee-data/racegraph/internal/laps"
	"github.com/banshee-data/racegraph/internal/monitoring"
	"github.com/banshee-data/racegraph/internal/timeutil"
)

// ChartRenderer writes a chart for one series and returns the file written.
type ChartRenderer interface {
	Render(series laps.TimeSeries, label string) (string, error)
}

// Options selects what a run reads.
type Options struct {
	Drivers    []config.Driver
	Extensions []string
	Encoding   string
	Columns    laps.Columns
	// OutputDir is created before any input is consumed. Empty means the
	// renderer writes to the working directory and nothing is created.
	OutputDir string
}

// OptionsFromConfig builds run options from a validated configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Drivers:    cfg.GetDrivers(),
		Extensions: cfg.GetExtensions(),
		Encoding:   cfg.GetEncoding(),
		Columns: laps.Columns{
			Lap:      cfg.GetLapColumn(),
			Time:     cfg.GetTimeColumn(),
			Position: cfg.GetPositionColumn(),
		},
		OutputDir: cfg.GetOutputDir(),
	}
}

// Deps are the collaborators a Runner talks to. Nil fields get defaults:
// the OS filesystem, a silent non-interactive console, the shared logger and
// the real clock. Renderer is required.
type Deps struct {
	FS       fsutil.FileSystem
	Renderer ChartRenderer
	Console  *console.Console
	Logger   logrus.FieldLogger
	Clock    timeutil.Clock
}

// Runner performs racegraph runs.
type Runner struct {
	opts   Options
	fs     fsutil.FileSystem
	charts ChartRenderer
	con    *console.Console
	log    logrus.FieldLogger
	clock  timeutil.Clock
}

// NewRunner creates a Runner.
func NewRunner(opts Options, deps Deps) (*Runner, error) {
	if deps.Renderer == nil {
		return nil, errors.New("racegraph: renderer is required")
	}
	if len(opts.Drivers) == 0 {
		return nil, errors.New("racegraph: no drivers configured")
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".csv"}
	}
	if opts.Encoding == "" {
		opts.Encoding = laps.DefaultEncoding
	}
	if opts.Columns == (laps.Columns{}) {
		opts.Columns = laps.DefaultColumns
	}

	r := &Runner{
		opts:   opts,
		fs:     deps.FS,
		charts: deps.Renderer,
		con:    deps.Console,
		log:    deps.Logger,
		clock:  deps.Clock,
	}
	if r.fs == nil {
		r.fs = fsutil.OSFileSystem{}
	}
	if r.clock == nil {
		r.clock = timeutil.RealClock{}
	}
	if r.con == nil {
		r.con = console.New(io.Discard, nil, r.clock, console.Options{})
	}
	if r.log == nil {
		r.log = monitoring.Logger()
	}
	return r, nil
}

// Run performs one pass: bootstrap if any driver folder is missing,
// otherwise chart and consume every export found. Per-file problems are
// recorded in the Result; the returned error is reserved for faults that
// stop the run before or between files, including context cancellation.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	log := r.log.WithField("run_id", res.RunID)
	start := r.clock.Now()

	r.con.Delay("Checking driver folders")

	if missing := r.missingFolders(); len(missing) > 0 {
		log.WithField("missing", missing).Info("driver folders missing, bootstrapping")
		created, err := r.bootstrap()
		res.Bootstrapped = true
		res.Created = created
		if err != nil {
			return res, err
		}
		r.con.WaitForKey("Press Enter to exit...")
		return res, nil
	}

	if r.opts.OutputDir != "" {
		if err := r.fs.MkdirAll(r.opts.OutputDir, 0755); err != nil {
			return res, fmt.Errorf("create output directory %s: %w", r.opts.OutputDir, err)
		}
	}

	r.con.Delay("Loading lap data")

	for _, d := range r.opts.Drivers {
		dlog := log.WithField("driver", d.Label)

		files, skipped, err := discover(r.fs, d.Folder, r.opts.Extensions)
		if err != nil {
			dlog.WithError(err).Error("cannot list driver folder")
			r.con.Errorf("Cannot read %s: %v", d.Folder, err)
			continue
		}
		for _, s := range skipped {
			dlog.WithField("file", s).Warn("skipping link that points outside the driver folder")
			r.con.Warnf("Skipped %s: link points outside %s", s, d.Folder)
		}
		if len(files) == 0 {
			dlog.Debug("no exports found")
			continue
		}

		for _, path := range files {
			if err := ctx.Err(); err != nil {
				log.WithError(err).Warn("run interrupted")
				return res, err
			}
			fr := r.processFile(d, path, dlog.WithField("file", path))
			res.Files = append(res.Files, fr)
		}
	}

	log.WithFields(logrus.Fields{
		"rendered": res.Count(OutcomeRendered),
		"empty":    res.Count(OutcomeEmpty),
		"failed":   res.Count(OutcomeFailed),
		"elapsed":  r.clock.Since(start).String(),
	}).Info("run complete")

	r.con.Delay("All charts generated")
	if len(res.Files) > 0 {
		r.con.Printf("Processed files have been deleted from the driver folders.")
	} else {
		r.con.Printf("No exports were found. Drop files into the driver folders and run again.")
	}
	r.con.WaitForKey("Press Enter to exit...")
	return res, nil
}

func (r *Runner) missingFolders() []string {
	var missing []string
	for _, d := range r.opts.Drivers {
		if !fsutil.IsDir(r.fs, d.Folder) {
			missing = append(missing, d.Folder)
		}
	}
	return missing
}

func (r *Runner) bootstrap() ([]string, error) {
	r.con.Errorf("Driver folders not found.")
	r.con.Delay("First run: creating the required folders")

	var created []string
	for _, d := range r.opts.Drivers {
		if fsutil.IsDir(r.fs, d.Folder) {
			continue
		}
		if err := r.fs.MkdirAll(d.Folder, 0755); err != nil {
			return created, fmt.Errorf("create folder %s: %w", d.Folder, err)
		}
		created = append(created, d.Folder)
	}

	r.con.Successf("Folders are ready:")
	for _, d := range r.opts.Drivers {
		r.con.Printf("  %s  (%s)", d.Folder, d.Label)
	}
	r.con.Printf("Put each driver's lap exports into their folder, then run again.")
	return created, nil
}

// processFile loads, cleans and charts one export, then removes it.
func (r *Runner) processFile(d config.Driver, path string, log logrus.FieldLogger) FileResult {
	fr := FileResult{Driver: d.Label, Path: path}

	series, err := r.chart(d, path, &fr)
	switch {
	case err != nil:
		fr.Outcome = OutcomeFailed
		fr.Err = err
		log.WithError(err).Error("failed to process export")
		r.con.Errorf("Error processing %s: %v", path, err)
	case len(series) == 0:
		fr.Outcome = OutcomeEmpty
		log.Warn("no usable laps after cleaning")
		r.con.Warnf("No usable laps in %s, skipped", path)
	default:
		fr.Outcome = OutcomeRendered
		log.WithFields(logrus.Fields{
			"output": fr.Output,
			"laps":   fr.Summary.Laps,
			"best":   laps.FormatLapTime(fr.Summary.BestLapTime),
		}).Info("chart written")
		r.con.Successf("Chart saved for %s: %s", d.Label, fr.Output)
		r.con.Printf("  %d laps, best %s (lap %d), mean %s, P%d -> P%d",
			fr.Summary.Laps,
			laps.FormatLapTime(fr.Summary.BestLapTime), fr.Summary.BestLap,
			laps.FormatLapTime(fr.Summary.MeanLapTime),
			fr.Summary.StartPosition, fr.Summary.FinalPosition)
	}

	if err := r.fs.Remove(path); err != nil {
		log.WithError(err).Error("failed to delete processed export")
		r.con.Errorf("Could not delete %s: %v", path, err)
	} else {
		fr.Removed = true
	}
	return fr
}

// chart runs the load, clean and render steps. An empty series is returned
// without rendering.
func (r *Runner) chart(d config.Driver, path string, fr *FileResult) (laps.TimeSeries, error) {
	tbl, err := laps.LoadFile(r.fs, path, r.opts.Encoding)
	if err != nil {
		return nil, err
	}
	fr.Rows = len(tbl.Rows)

	series, err := laps.Normalize(tbl, r.opts.Columns)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return series, nil
	}

	out, err := r.charts.Render(series, d.Label)
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	fr.Output = out
	fr.Summary, _ = laps.Summarize(series)
	return series, nil
}
