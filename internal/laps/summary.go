package laps

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a lap series at a glance.
type Summary struct {
	Laps          int
	BestLap       int
	BestLapTime   float64
	MeanLapTime   float64
	StdDevLapTime float64
	StartPosition int
	FinalPosition int
	BestPosition  int
}

// PositionsGained is positive when the driver finished ahead of where they started.
func (s Summary) PositionsGained() int {
	return s.StartPosition - s.FinalPosition
}

// Summarize computes lap statistics. It returns false for an empty series.
func Summarize(s TimeSeries) (Summary, bool) {
	if len(s) == 0 {
		return Summary{}, false
	}

	times := s.LapTimes()
	best := floats.MinIdx(times)

	sum := Summary{
		Laps:          len(s),
		BestLap:       s[best].Lap,
		BestLapTime:   times[best],
		StartPosition: s[0].Position,
		FinalPosition: s[len(s)-1].Position,
		BestPosition:  int(floats.Min(s.Positions())),
	}
	sum.MeanLapTime, sum.StdDevLapTime = stat.MeanStdDev(times, nil)
	if len(s) == 1 {
		// MeanStdDev uses the unbiased estimator, which is NaN for n=1.
		sum.StdDevLapTime = 0
	}
	return sum, true
}
