// Package laps turns per-lap timing exports into clean lap series.
//
// Timing tools export one row per lap with locale-specific headers, padded
// cells and marker rows such as the race start. The package loads those files
// into a Table, then Normalize coerces the lap, lap time and position columns,
// drops incomplete rows and orders what is left by lap.
//
// Coerced values are carried as Optional so that a cell which could not be
// parsed is explicitly absent rather than a zero that looks like real data.
package laps
