package racegraph

import (
	"github.com/banshee-data/racegraph/internal/laps"
)

// Outcome is what happened to one input file.
type Outcome string

const (
	// OutcomeRendered means a chart was written.
	OutcomeRendered Outcome = "rendered"
	// OutcomeEmpty means no usable laps survived cleaning; no chart was written.
	OutcomeEmpty Outcome = "empty"
	// OutcomeFailed means the file could not be loaded, cleaned or charted.
	OutcomeFailed Outcome = "failed"
)

// FileResult records the handling of one input file.
type FileResult struct {
	Driver  string
	Path    string
	Outcome Outcome
	// Output is the chart path; empty unless Outcome is OutcomeRendered.
	Output  string
	Rows    int
	Summary laps.Summary
	Err     error
	// Removed reports whether the source file was deleted afterwards.
	Removed bool
}

// Result describes a whole run.
type Result struct {
	RunID string
	// Bootstrapped is true when the run only created missing folders.
	Bootstrapped bool
	// Created lists the folders made during bootstrap.
	Created []string
	Files   []FileResult
}

// Count returns how many files ended with outcome o.
func (r Result) Count(o Outcome) int {
	n := 0
	for _, f := range r.Files {
		if f.Outcome == o {
			n++
		}
	}
	return n
}
