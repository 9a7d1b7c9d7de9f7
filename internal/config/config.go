package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the path to the canonical defaults file shipped with
// the repository. It mirrors DefaultConfig and is checked against it in tests.
const DefaultConfigPath = "config/racegraph.defaults.json"

// EnvPrefix is the prefix for environment overrides, e.g. RACEGRAPH_ENCODING.
const EnvPrefix = "RACEGRAPH"

// Driver pairs a chart label with the folder its exports are dropped into.
type Driver struct {
	Label  string `json:"label" yaml:"label"`
	Folder string `json:"folder" yaml:"folder"`
}

// Config is the racegraph run configuration. Pointer fields distinguish
// "not set" from zero values; the Get* methods supply defaults for anything
// omitted, so partial files are safe.
type Config struct {
	// Input
	Drivers    []Driver `json:"drivers,omitempty" yaml:"drivers,omitempty"`
	Extensions []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	Encoding   *string  `json:"encoding,omitempty" yaml:"encoding,omitempty"`

	// Source column names
	LapColumn      *string `json:"lap_column,omitempty" yaml:"lap_column,omitempty"`
	TimeColumn     *string `json:"time_column,omitempty" yaml:"time_column,omitempty"`
	PositionColumn *string `json:"position_column,omitempty" yaml:"position_column,omitempty"`

	// Output
	OutputDir         *string  `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	ChartWidthInches  *float64 `json:"chart_width_inches,omitempty" yaml:"chart_width_inches,omitempty"`
	ChartHeightInches *float64 `json:"chart_height_inches,omitempty" yaml:"chart_height_inches,omitempty"`
	ChartDPI          *int     `json:"chart_dpi,omitempty" yaml:"chart_dpi,omitempty"`

	// Console
	PauseSeconds *int    `json:"pause_seconds,omitempty" yaml:"pause_seconds,omitempty"`
	Interactive  *bool   `json:"interactive,omitempty" yaml:"interactive,omitempty"`
	LogLevel     *string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// DefaultConfig returns a Config with every field populated with the values
// the Get* methods fall back to.
func DefaultConfig() *Config {
	return &Config{
		Drivers: []Driver{
			{Label: "Driver1", Folder: "Driver1_CSV"},
			{Label: "Driver2", Folder: "Driver2_CSV"},
		},
		Extensions:        []string{".csv"},
		Encoding:          ptrString("utf-8"),
		LapColumn:         ptrString("ラップ"),
		TimeColumn:        ptrString("タイム"),
		PositionColumn:    ptrString("順位"),
		OutputDir:         ptrString("."),
		ChartWidthInches:  ptrFloat64(10),
		ChartHeightInches: ptrFloat64(6),
		ChartDPI:          ptrInt(100),
		PauseSeconds:      ptrInt(3),
		Interactive:       ptrBool(true),
		LogLevel:          ptrString("info"),
	}
}

// LoadConfig loads a Config from a JSON or YAML file.
// The file must have a .json, .yaml or .yml extension and be under 1MB.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if ext == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// envOverrides lists the settings that may come from the environment.
type envOverrides struct {
	Encoding     string `envconfig:"ENCODING"`
	OutputDir    string `envconfig:"OUTPUT_DIR"`
	PauseSeconds *int   `envconfig:"PAUSE_SECONDS"`
	Interactive  *bool  `envconfig:"INTERACTIVE"`
	LogLevel     string `envconfig:"LOG_LEVEL"`
}

// ApplyEnv overlays RACEGRAPH_* environment variables onto c and re-validates.
func (c *Config) ApplyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	if env.Encoding != "" {
		c.Encoding = ptrString(env.Encoding)
	}
	if env.OutputDir != "" {
		c.OutputDir = ptrString(env.OutputDir)
	}
	if env.PauseSeconds != nil {
		c.PauseSeconds = env.PauseSeconds
	}
	if env.Interactive != nil {
		c.Interactive = env.Interactive
	}
	if env.LogLevel != "" {
		c.LogLevel = ptrString(env.LogLevel)
	}

	return c.Validate()
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	seenLabels := make(map[string]bool)
	seenFolders := make(map[string]bool)
	for i, d := range c.Drivers {
		if strings.TrimSpace(d.Label) == "" {
			return fmt.Errorf("drivers[%d]: label must not be empty", i)
		}
		if strings.TrimSpace(d.Folder) == "" {
			return fmt.Errorf("drivers[%d]: folder must not be empty", i)
		}
		if seenLabels[d.Label] {
			return fmt.Errorf("drivers[%d]: duplicate label %q", i, d.Label)
		}
		folder := filepath.Clean(d.Folder)
		if seenFolders[folder] {
			return fmt.Errorf("drivers[%d]: duplicate folder %q", i, d.Folder)
		}
		seenLabels[d.Label] = true
		seenFolders[folder] = true
	}

	for _, ext := range c.Extensions {
		switch strings.ToLower(ext) {
		case ".csv", ".xlsx":
		default:
			return fmt.Errorf("unsupported extension %q (want .csv or .xlsx)", ext)
		}
	}

	for name, col := range map[string]*string{
		"lap_column":      c.LapColumn,
		"time_column":     c.TimeColumn,
		"position_column": c.PositionColumn,
	} {
		if col != nil && strings.TrimSpace(*col) == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}

	if c.ChartWidthInches != nil && (*c.ChartWidthInches <= 0 || *c.ChartWidthInches > 100) {
		return fmt.Errorf("chart_width_inches must be in (0, 100], got %g", *c.ChartWidthInches)
	}
	if c.ChartHeightInches != nil && (*c.ChartHeightInches <= 0 || *c.ChartHeightInches > 100) {
		return fmt.Errorf("chart_height_inches must be in (0, 100], got %g", *c.ChartHeightInches)
	}
	if c.ChartDPI != nil && (*c.ChartDPI < 10 || *c.ChartDPI > 1200) {
		return fmt.Errorf("chart_dpi must be between 10 and 1200, got %d", *c.ChartDPI)
	}
	if c.PauseSeconds != nil && (*c.PauseSeconds < 0 || *c.PauseSeconds > 60) {
		return fmt.Errorf("pause_seconds must be between 0 and 60, got %d", *c.PauseSeconds)
	}

	return nil
}

// GetDrivers returns the configured drivers or the two default folders.
func (c *Config) GetDrivers() []Driver {
	if len(c.Drivers) == 0 {
		return DefaultConfig().Drivers
	}
	return c.Drivers
}

// GetExtensions returns the recognized input extensions, lower-cased.
func (c *Config) GetExtensions() []string {
	if len(c.Extensions) == 0 {
		return []string{".csv"}
	}
	out := make([]string, len(c.Extensions))
	for i, e := range c.Extensions {
		out[i] = strings.ToLower(e)
	}
	return out
}

// GetEncoding returns the input text encoding label.
func (c *Config) GetEncoding() string {
	if c.Encoding == nil || *c.Encoding == "" {
		return "utf-8"
	}
	return *c.Encoding
}

// GetLapColumn returns the lap index column name.
func (c *Config) GetLapColumn() string {
	if c.LapColumn == nil {
		return "ラップ"
	}
	return *c.LapColumn
}

// GetTimeColumn returns the lap time column name.
func (c *Config) GetTimeColumn() string {
	if c.TimeColumn == nil {
		return "タイム"
	}
	return *c.TimeColumn
}

// GetPositionColumn returns the position column name.
func (c *Config) GetPositionColumn() string {
	if c.PositionColumn == nil {
		return "順位"
	}
	return *c.PositionColumn
}

// GetOutputDir returns the chart output directory.
func (c *Config) GetOutputDir() string {
	if c.OutputDir == nil || *c.OutputDir == "" {
		return "."
	}
	return *c.OutputDir
}

// GetChartWidthInches returns the chart width.
func (c *Config) GetChartWidthInches() float64 {
	if c.ChartWidthInches == nil {
		return 10
	}
	return *c.ChartWidthInches
}

// GetChartHeightInches returns the chart height.
func (c *Config) GetChartHeightInches() float64 {
	if c.ChartHeightInches == nil {
		return 6
	}
	return *c.ChartHeightInches
}

// GetChartDPI returns the raster resolution.
func (c *Config) GetChartDPI() int {
	if c.ChartDPI == nil {
		return 100
	}
	return *c.ChartDPI
}

// GetPauseSeconds returns how many one-second dots each progress message shows.
func (c *Config) GetPauseSeconds() int {
	if c.PauseSeconds == nil {
		return 3
	}
	return *c.PauseSeconds
}

// GetInteractive reports whether the run waits for key presses.
func (c *Config) GetInteractive() bool {
	if c.Interactive == nil {
		return true
	}
	return *c.Interactive
}

// GetLogLevel returns the log level name.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == nil || *c.LogLevel == "" {
		return "info"
	}
	return *c.LogLevel
}
