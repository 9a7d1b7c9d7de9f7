package chart

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// integerTicks places major ticks on whole numbers, at most about ten of them.
// Laps and positions are counts, so fractional ticks would be noise.
type integerTicks struct{}

// maxIntegerTicks bounds the tick count when float64 can no longer
// distinguish neighbouring integers.
const maxIntegerTicks = 50

func (integerTicks) Ticks(min, max float64) []plot.Tick {
	lo, hi := math.Ceil(min), math.Floor(max)
	if hi < lo {
		return nil
	}

	step := 1.0
	nice := []float64{1, 2, 5}
	for i := 1; (hi-lo)/step > 10; i++ {
		step = nice[i%3] * math.Pow(10, float64(i/3))
	}

	var ticks []plot.Tick
	start := math.Ceil(lo/step) * step
	for i := 0; i < maxIntegerTicks; i++ {
		v := start + float64(i)*step
		if v > hi {
			break
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
		if v+step == v {
			break
		}
	}
	return ticks
}

// padRange widens [lo, hi] by frac on each side, or by minHalf when the range
// is degenerate.
func padRange(lo, hi, frac, minHalf float64) (float64, float64) {
	if hi-lo < 1e-9 {
		return lo - minHalf, hi + minHalf
	}
	pad := (hi - lo) * frac
	return lo - pad, hi + pad
}

// secondaryAxis draws a right-hand y-axis for a series that has been mapped
// onto the primary y range. It is added to the plot as a Plotter so it is
// drawn with the final data-area transforms.
type secondaryAxis struct {
	label          string
	lo, hi         float64 // secondary range
	primLo, primHi float64 // primary range it maps onto

	ticks      []plot.Tick
	line       draw.LineStyle
	tickLen    vg.Length
	pad        vg.Length
	tickLabel  text.Style
	labelStyle text.Style
}

// toPrimary maps a secondary value onto the primary axis.
func (a *secondaryAxis) toPrimary(v float64) float64 {
	return a.primLo + (v-a.lo)/(a.hi-a.lo)*(a.primHi-a.primLo)
}

func (a *secondaryAxis) maxTickLabelWidth() vg.Length {
	var w vg.Length
	for _, t := range a.ticks {
		if tw := a.tickLabel.Width(t.Label); tw > w {
			w = tw
		}
	}
	return w
}

// margin is the space needed to the right of the data area.
func (a *secondaryAxis) margin() vg.Length {
	return a.tickLen + a.pad + a.maxTickLabelWidth() + a.pad + a.labelStyle.Height(a.label) + a.pad
}

// Plot implements plot.Plotter.
func (a *secondaryAxis) Plot(c draw.Canvas, p *plot.Plot) {
	_, trY := p.Transforms(&c)
	x := c.Max.X

	c.StrokeLine2(a.line, x, c.Min.Y, x, c.Max.Y)
	for _, t := range a.ticks {
		if t.Value < a.lo || t.Value > a.hi {
			continue
		}
		y := trY(a.toPrimary(t.Value))
		c.StrokeLine2(a.line, x, y, x+a.tickLen, y)
		c.FillText(a.tickLabel, vg.Point{X: x + a.tickLen + a.pad, Y: y}, t.Label)
	}

	lx := x + a.tickLen + a.pad + a.maxTickLabelWidth() + a.pad + a.labelStyle.Height(a.label)/2
	c.FillText(a.labelStyle, vg.Point{X: lx, Y: (c.Min.Y + c.Max.Y) / 2}, a.label)
}
