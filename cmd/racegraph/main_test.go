package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/racegraph/internal/testutil"
)

func writeConfig(t *testing.T, root string) string {
	t.Helper()
	yaml := fmt.Sprintf(`drivers:
  - label: Driver1
    folder: %q
  - label: Driver2
    folder: %q
output_dir: %q
chart_width_inches: 4
chart_height_inches: 3
chart_dpi: 50
pause_seconds: 0
log_level: warn
`, filepath.Join(root, "Driver1_CSV"), filepath.Join(root, "Driver2_CSV"), filepath.Join(root, "charts"))
	return testutil.WriteFile(t, root, "racegraph.yaml", []byte(yaml))
}

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(""), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCmd(t, "-version")
	if code != 0 {
		t.Fatalf("exit = %d, want 0", code)
	}
	if !strings.HasPrefix(out, "racegraph ") {
		t.Errorf("version output = %q", out)
	}
}

func TestRun_BadFlag(t *testing.T) {
	if code, _, _ := runCmd(t, "-no-such-flag"); code != 2 {
		t.Errorf("exit = %d, want 2", code)
	}
	if code, _, _ := runCmd(t, "stray"); code != 2 {
		t.Errorf("exit = %d, want 2", code)
	}
}

func TestRun_InvalidConfigIsStartupError(t *testing.T) {
	root := t.TempDir()
	path := testutil.WriteFile(t, root, "bad.yaml", []byte("chart_dpi: 1\n"))

	code, _, stderr := runCmd(t, "-config", path, "-no-prompt")
	if code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	if !strings.Contains(stderr, "chart_dpi") {
		t.Errorf("stderr = %q, want chart_dpi error", stderr)
	}
}

func TestRun_BadEncodingFlag(t *testing.T) {
	root := t.TempDir()
	cfg := writeConfig(t, root)
	testutil.WriteLapCSV(t, filepath.Join(root, "Driver1_CSV"), "race.csv")
	if err := os.MkdirAll(filepath.Join(root, "Driver2_CSV"), 0755); err != nil {
		t.Fatal(err)
	}

	// An unknown encoding is a per-file failure; the run still completes.
	code, out, _ := runCmd(t, "-config", cfg, "-no-prompt", "-encoding", "klingon")
	if code != 0 {
		t.Fatalf("exit = %d, want 0", code)
	}
	if !strings.Contains(out, "unsupported encoding") {
		t.Errorf("stdout = %q, want encoding error", out)
	}
}

func TestRun_BootstrapThenChart(t *testing.T) {
	root := t.TempDir()
	cfg := writeConfig(t, root)

	code, out, _ := runCmd(t, "-config", cfg, "-no-prompt")
	if code != 0 {
		t.Fatalf("first run exit = %d, want 0", code)
	}
	if !strings.Contains(out, "run again") {
		t.Errorf("first run output = %q, want instructions", out)
	}
	for _, d := range []string{"Driver1_CSV", "Driver2_CSV"} {
		if fi, err := os.Stat(filepath.Join(root, d)); err != nil || !fi.IsDir() {
			t.Fatalf("%s not created: %v", d, err)
		}
	}

	src := testutil.WriteLapCSV(t, filepath.Join(root, "Driver2_CSV"), "race.csv")

	code, out, _ = runCmd(t, "-config", cfg, "-no-prompt", "-output", filepath.Join(root, "out"))
	if code != 0 {
		t.Fatalf("second run exit = %d, want 0", code)
	}
	png := filepath.Join(root, "out", "Driver2_race_graph.png")
	if _, err := os.Stat(png); err != nil {
		t.Errorf("chart not written: %v\noutput:\n%s", err, out)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("source still present: %v", err)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	root := t.TempDir()
	cfgPath := writeConfig(t, root)
	t.Setenv("RACEGRAPH_ENCODING", "shift_jis")
	t.Setenv("RACEGRAPH_PAUSE_SECONDS", "2")

	f, err := parseFlags([]string{"-config", cfgPath, "-pause", "1", "-no-prompt"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	cfg, err := loadConfig(f)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if got := cfg.GetEncoding(); got != "shift_jis" {
		t.Errorf("encoding = %q, want shift_jis from env", got)
	}
	if got := cfg.GetPauseSeconds(); got != 1 {
		t.Errorf("pause = %d, want 1 from flag", got)
	}
	if cfg.GetInteractive() {
		t.Error("interactive = true, want false from -no-prompt")
	}
	if got := cfg.GetLogLevel(); got != "warn" {
		t.Errorf("log level = %q, want warn from file", got)
	}
}
