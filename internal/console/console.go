// Package console prints the human-paced progress messages and key-press
// prompts shown around a racegraph run.
package console

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/banshee-data/racegraph/internal/timeutil"
)

// Options controls pacing and interactivity.
type Options struct {
	// Dots is how many progress dots Delay prints. Zero disables the pause.
	Dots int
	// Interval is the pause before each dot.
	Interval time.Duration
	// Interactive enables WaitForKey; when false prompts return immediately.
	Interactive bool
}

// DefaultOptions pauses for three one-second dots and waits for key presses.
func DefaultOptions() Options {
	return Options{Dots: 3, Interval: time.Second, Interactive: true}
}

// Console writes progress to out and reads key presses from in.
type Console struct {
	out   io.Writer
	in    *bufio.Reader
	clock timeutil.Clock
	opts  Options

	info    *color.Color
	success *color.Color
	warn    *color.Color
	fail    *color.Color
}

// New creates a Console. A nil clock uses the real clock.
func New(out io.Writer, in io.Reader, clock timeutil.Clock, opts Options) *Console {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	var br *bufio.Reader
	if in != nil {
		br = bufio.NewReader(in)
	}
	return &Console{
		out:     out,
		in:      br,
		clock:   clock,
		opts:    opts,
		info:    color.New(color.FgCyan),
		success: color.New(color.FgGreen, color.Bold),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed),
	}
}

// Delay prints message followed by a dot per interval, then ends the line.
func (c *Console) Delay(message string) {
	c.info.Fprint(c.out, message)
	for i := 0; i < c.opts.Dots; i++ {
		c.clock.Sleep(c.opts.Interval)
		fmt.Fprint(c.out, ".")
	}
	fmt.Fprintln(c.out)
}

// Printf prints a plain line.
func (c *Console) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Successf prints a highlighted completion line.
func (c *Console) Successf(format string, args ...interface{}) {
	c.success.Fprintf(c.out, format+"\n", args...)
}

// Warnf prints a skipped-work notice.
func (c *Console) Warnf(format string, args ...interface{}) {
	c.warn.Fprintf(c.out, format+"\n", args...)
}

// Errorf prints a failure line.
func (c *Console) Errorf(format string, args ...interface{}) {
	c.fail.Fprintf(c.out, format+"\n", args...)
}

// WaitForKey prints prompt and blocks until a line (or EOF) is read.
func (c *Console) WaitForKey(prompt string) {
	if !c.opts.Interactive || c.in == nil {
		return
	}
	fmt.Fprint(c.out, prompt)
	_, _ = c.in.ReadString('\n')
}
