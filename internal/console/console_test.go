package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/racegraph/internal/timeutil"
)

func newTestConsole(in string, opts Options) (*Console, *bytes.Buffer, *timeutil.MockClock) {
	color.NoColor = true
	var out bytes.Buffer
	clock := timeutil.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	return New(&out, strings.NewReader(in), clock, opts), &out, clock
}

func TestDelay_PrintsDotsAndSleeps(t *testing.T) {
	c, out, clock := newTestConsole("", DefaultOptions())

	c.Delay("Checking folders")

	assert.Equal(t, "Checking folders...\n", out.String())
	require.Len(t, clock.Sleeps(), 3)
	assert.Equal(t, 3*time.Second, clock.TotalSlept())
}

func TestDelay_ZeroDotsDoesNotPause(t *testing.T) {
	c, out, clock := newTestConsole("", Options{Interval: time.Second})

	c.Delay("Loading")

	assert.Equal(t, "Loading\n", out.String())
	assert.Empty(t, clock.Sleeps())
}

func TestWaitForKey_ReadsOneLine(t *testing.T) {
	c, out, _ := newTestConsole("\nsecond\n", DefaultOptions())

	c.WaitForKey("Press Enter to exit...")

	assert.Equal(t, "Press Enter to exit...", out.String())
	rest, _ := c.in.ReadString('\n')
	assert.Equal(t, "second\n", rest)
}

func TestWaitForKey_EOFReturns(t *testing.T) {
	c, _, _ := newTestConsole("", DefaultOptions())

	done := make(chan struct{})
	go func() {
		c.WaitForKey("> ")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitForKey blocked on EOF")
	}
}

func TestWaitForKey_NonInteractive(t *testing.T) {
	c, out, _ := newTestConsole("\n", Options{})

	c.WaitForKey("Press Enter to exit...")

	assert.Empty(t, out.String())
}

func TestMessageHelpers(t *testing.T) {
	c, out, _ := newTestConsole("", Options{})

	c.Printf("plain %d", 1)
	c.Successf("saved %s", "Driver1_race_graph.png")
	c.Warnf("skipped %s", "empty.csv")
	c.Errorf("failed %s", "bad.csv")

	text := out.String()
	for _, want := range []string{"plain 1\n", "saved Driver1_race_graph.png", "skipped empty.csv", "failed bad.csv"} {
		assert.Contains(t, text, want)
	}
}
