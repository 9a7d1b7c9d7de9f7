package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/banshee-data/racegraph/internal/fsutil"
	"github.com/banshee-data/racegraph/internal/laps"
	"github.com/banshee-data/racegraph/internal/security"
)

// ErrEmptySeries is returned when asked to render a series with no laps.
var ErrEmptySeries = errors.New("empty lap series")

// FileSuffix is appended to the driver label to form the output file name.
const FileSuffix = "_race_graph.png"

var (
	lapTimeColor  = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff} // matplotlib tab:blue
	positionColor = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff} // matplotlib tab:red
)

// Options sizes the output image.
type Options struct {
	OutputDir string
	Width     vg.Length
	Height    vg.Length
	DPI       int
}

// DefaultOptions writes a 10x6 inch, 100 dpi chart to the working directory.
func DefaultOptions() Options {
	return Options{
		OutputDir: ".",
		Width:     10 * vg.Inch,
		Height:    6 * vg.Inch,
		DPI:       100,
	}
}

// Renderer writes lap charts through a FileSystem.
type Renderer struct {
	fs   fsutil.FileSystem
	opts Options
}

// NewRenderer creates a Renderer. Zero option fields take their defaults.
func NewRenderer(fsys fsutil.FileSystem, opts Options) *Renderer {
	def := DefaultOptions()
	if opts.OutputDir == "" {
		opts.OutputDir = def.OutputDir
	}
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.DPI <= 0 {
		opts.DPI = def.DPI
	}
	return &Renderer{fs: fsys, opts: opts}
}

// OutputPath returns where the chart for label is written.
func (r *Renderer) OutputPath(label string) string {
	return filepath.Join(r.opts.OutputDir, security.SanitizeFilename(label)+FileSuffix)
}

// Render draws series and writes it to OutputPath(label), replacing any
// existing file. It returns the path written.
func (r *Renderer) Render(series laps.TimeSeries, label string) (string, error) {
	if len(series) == 0 {
		return "", ErrEmptySeries
	}

	// Encode before Create: a failed draw must not truncate the last chart.
	var buf bytes.Buffer
	if err := r.WritePNG(&buf, series, label); err != nil {
		return "", err
	}

	path := r.OutputPath(label)
	f, err := r.fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := buf.WriteTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// WritePNG draws series as a PNG onto w.
func (r *Renderer) WritePNG(w io.Writer, series laps.TimeSeries, label string) error {
	p, right, err := build(series, label)
	if err != nil {
		return err
	}

	img := vgimg.NewWith(
		vgimg.UseWH(r.opts.Width, r.opts.Height),
		vgimg.UseDPI(r.opts.DPI),
	)
	dc := draw.New(img)
	p.Draw(draw.Crop(dc, 0, -right.margin(), 0, 0))

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// build lays out the plot. Lap time owns the plot's y-axis; positions are
// mapped onto that range and labelled by the returned secondary axis.
func build(series laps.TimeSeries, label string) (*plot.Plot, *secondaryAxis, error) {
	if len(series) == 0 {
		return nil, nil, ErrEmptySeries
	}

	lapsX := series.Laps()
	times := series.LapTimes()
	positions := series.Positions()

	tLo, tHi := padRange(floats.Min(times), floats.Max(times), 0.05, 1)
	pLo, pHi := padRange(floats.Min(positions), floats.Max(positions), 0.05, 1)
	xLo, xHi := padRange(floats.Min(lapsX), floats.Max(lapsX), 0.02, 1)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Race Data", label)

	p.X.Label.Text = "Lap"
	p.X.Tick.Marker = integerTicks{}

	p.Y.Label.Text = "Lap Time (seconds)"
	p.Y.Label.TextStyle.Color = lapTimeColor
	p.Y.Tick.Label.Color = lapTimeColor

	right := &secondaryAxis{
		label:      "Position",
		lo:         pLo,
		hi:         pHi,
		primLo:     tLo,
		primHi:     tHi,
		ticks:      integerTicks{}.Ticks(pLo, pHi),
		line:       p.Y.LineStyle,
		tickLen:    p.Y.Tick.Length,
		pad:        vg.Points(3),
		tickLabel:  p.Y.Tick.Label,
		labelStyle: p.Y.Label.TextStyle,
	}
	right.tickLabel.Color = positionColor
	right.tickLabel.XAlign = text.XLeft
	right.tickLabel.YAlign = text.YCenter
	right.labelStyle.Color = positionColor
	right.labelStyle.Rotation = math.Pi / 2
	right.labelStyle.XAlign = text.XCenter
	right.labelStyle.YAlign = text.YCenter

	timePts := make(plotter.XYs, len(series))
	posPts := make(plotter.XYs, len(series))
	for i := range series {
		timePts[i] = plotter.XY{X: lapsX[i], Y: times[i]}
		posPts[i] = plotter.XY{X: lapsX[i], Y: right.toPrimary(positions[i])}
	}

	timeLine, err := plotter.NewLine(timePts)
	if err != nil {
		return nil, nil, fmt.Errorf("lap time line: %w", err)
	}
	timeLine.Color = lapTimeColor
	timeLine.Width = vg.Points(1.5)

	posLine, err := plotter.NewLine(posPts)
	if err != nil {
		return nil, nil, fmt.Errorf("position line: %w", err)
	}
	posLine.Color = positionColor
	posLine.Width = vg.Points(1.5)
	posLine.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}

	p.Add(timeLine, posLine, right)
	p.Legend.Add("Lap Time", timeLine)
	p.Legend.Add("Position", posLine)
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	// Fix ranges after Add so the mapping used for positions stays exact.
	p.X.Min, p.X.Max = xLo, xHi
	p.Y.Min, p.Y.Max = tLo, tHi

	return p, right, nil
}
