package laps

// Optional holds a value that may be absent. The zero value is absent.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Present reports whether a value is held.
func (o Optional[T]) Present() bool {
	return o.ok
}

// Or returns the held value, or fallback when absent.
func (o Optional[T]) Or(fallback T) T {
	if !o.ok {
		return fallback
	}
	return o.value
}

// RawRow is one untyped record as read from an export.
type RawRow []string

// Table is a header plus its rows, as loaded from a single file.
type Table struct {
	Header []string
	Rows   []RawRow
}

// CleanRow is a fully coerced lap record.
type CleanRow struct {
	Lap      int
	LapTime  float64 // seconds
	Position int
}

// TimeSeries is the ordered lap data for one driver and file.
type TimeSeries []CleanRow

// Columns names the source columns holding lap index, lap time and position.
type Columns struct {
	Lap      string
	Time     string
	Position string
}

// DefaultColumns matches the Japanese headers written by the timing software
// the tool was built around.
var DefaultColumns = Columns{
	Lap:      "ラップ",
	Time:     "タイム",
	Position: "順位",
}

// Laps returns the lap indices as float64, for plotting and statistics.
func (s TimeSeries) Laps() []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		out[i] = float64(r.Lap)
	}
	return out
}

// LapTimes returns the lap times in seconds.
func (s TimeSeries) LapTimes() []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		out[i] = r.LapTime
	}
	return out
}

// Positions returns the positions as float64.
func (s TimeSeries) Positions() []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		out[i] = float64(r.Position)
	}
	return out
}
