package laps

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CleanHeader strips surrounding whitespace, a leading byte-order mark and any
// embedded tab characters from a column name.
func CleanHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.TrimSpace(h)
	return strings.ReplaceAll(h, "\t", "")
}

// Normalize coerces a raw table into an ordered lap series.
//
// Rows whose lap cell is not purely numeric (start markers, separators,
// repeated headers) are discarded, as is any row where the lap, lap time or
// position cannot be coerced. The result is sorted by lap; rows sharing a lap
// keep their file order. An empty series is not an error.
func Normalize(t Table, cols Columns) (TimeSeries, error) {
	idx, err := columnIndex(t.Header, cols)
	if err != nil {
		return nil, err
	}

	series := make(TimeSeries, 0, len(t.Rows))
	for _, row := range t.Rows {
		lapCell := cell(row, idx.lap)
		if !isNumeric(lapCell) {
			continue
		}

		lap := coerceInt(lapCell)
		lapTime := ParseLapTime(cell(row, idx.time))
		pos := coerceInt(cell(row, idx.position))

		r, ok := complete(lap, lapTime, pos)
		if !ok {
			continue
		}
		series = append(series, r)
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Lap < series[j].Lap
	})

	return series, nil
}

// FromSeries renders a series back into a table using the given column names.
// Lap times are written with full precision so Normalize(FromSeries(s)) == s.
func FromSeries(s TimeSeries, cols Columns) Table {
	t := Table{
		Header: []string{cols.Lap, cols.Time, cols.Position},
		Rows:   make([]RawRow, 0, len(s)),
	}
	for _, r := range s {
		t.Rows = append(t.Rows, RawRow{
			strconv.Itoa(r.Lap),
			"0:" + strconv.FormatFloat(r.LapTime, 'g', -1, 64),
			strconv.Itoa(r.Position),
		})
	}
	return t
}

type columnIndices struct {
	lap, time, position int
}

func columnIndex(header []string, cols Columns) (columnIndices, error) {
	find := func(name string) (int, error) {
		for i, h := range header {
			if CleanHeader(h) == name {
				return i, nil
			}
		}
		return -1, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}

	var idx columnIndices
	var err error
	if idx.lap, err = find(cols.Lap); err != nil {
		return idx, err
	}
	if idx.time, err = find(cols.Time); err != nil {
		return idx, err
	}
	if idx.position, err = find(cols.Position); err != nil {
		return idx, err
	}
	return idx, nil
}

func complete(lap Optional[int], lapTime Optional[float64], pos Optional[int]) (CleanRow, bool) {
	l, ok := lap.Get()
	if !ok {
		return CleanRow{}, false
	}
	t, ok := lapTime.Get()
	if !ok {
		return CleanRow{}, false
	}
	p, ok := pos.Get()
	if !ok {
		return CleanRow{}, false
	}
	return CleanRow{Lap: l, LapTime: t, Position: p}, true
}

// cell returns the normalized text of column i, or "" for short rows.
// NFKC folds full-width digits and colons to ASCII.
func cell(row RawRow, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(norm.NFKC.String(row[i]))
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// coerceInt parses an integer within int32 range, accepting integral
// decimals such as "3.0". Laps and positions are small counts; anything
// larger is a corrupt cell.
func coerceInt(s string) Optional[int] {
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return Some(int(n))
	}
	f, ok := parseDecimal(s)
	if !ok || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return None[int]()
	}
	return Some(int(f))
}
