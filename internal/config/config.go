/*
PURPOSE:
  Defines the configuration structure and loading logic for Bench Merge.
  Adheres to "Config IS Code" philosophy: the defaults are the tool.

REQUIREMENTS:
  User-specified:
  - Report directory, output filename and metric list are fixed constants.
  - Running with no config reproduces the fixed behaviour exactly.

  Implementation-discovered:
  - Reusing the tool on another results directory should not need a rebuild,
    so YAML, .env and environment overrides are layered on the defaults.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3, github.com/joho/godotenv

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - A missing default config file is not an error (falls back to defaults).
  - An explicitly named config file that cannot be read is an error.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Precedence: defaults < config file < .env / environment < CLI flags.

USAGE:
  cfg, err := config.Load("bench_merge.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct, DefaultConfig() and applyEnv().

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/daryltucker/bench-merge/internal/model"
)

// Defaults for the sglang results run the tool was first written for.
const (
	DefaultReportDir  = "/project/full_benchmark/sglang_bench_results_20250815_040232"
	DefaultOutputFile = "benchmark_summary_fixed.csv"
	DefaultJSONFile   = "benchmark_summary_fixed.jsonl"
)

// Environment variable names.
const (
	EnvReportDir  = "BENCH_MERGE_REPORT_DIR"
	EnvOutputFile = "BENCH_MERGE_OUTPUT_FILE"
	EnvMetrics    = "BENCH_MERGE_METRICS"
	EnvJSON       = "BENCH_MERGE_JSON"
)

// DefaultFiles are searched in order when no config path is given.
var DefaultFiles = []string{"bench_merge.yaml", "bench-merge.yaml"}

// Config represents the full configuration for Bench Merge.
type Config struct {
	ReportDir  string `yaml:"report_dir"`
	OutputFile string `yaml:"output_file"`
	// Metrics is the ordered list of report labels to extract.
	Metrics    []string `yaml:"metrics"`
	JSONOutput bool     `yaml:"json_output"`
	JSONFile   string   `yaml:"json_file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ReportDir:  DefaultReportDir,
		OutputFile: DefaultOutputFile,
		Metrics:    append([]string(nil), model.DefaultMetrics...),
		JSONOutput: false,
		JSONFile:   DefaultJSONFile,
	}
}

// Load reads configuration from a file, then applies .env and environment
// overrides.
// If path is specified, it attempts to load that file.
// If path is empty, it searches DefaultFiles in order.
// If no file found, the defaults are used.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				break
			}
		}
	}

	if path != "" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// .env is optional; variables already set in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvReportDir); v != "" {
		cfg.ReportDir = v
	}
	if v := os.Getenv(EnvOutputFile); v != "" {
		cfg.OutputFile = v
	}
	if v := os.Getenv(EnvMetrics); v != "" {
		cfg.Metrics = SplitMetrics(v)
	}
	if v := os.Getenv(EnvJSON); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvJSON, v, err)
		}
		cfg.JSONOutput = b
	}
	return nil
}

// SplitMetrics splits a comma separated metric list, dropping blanks.
func SplitMetrics(s string) []string {
	var out []string
	for _, m := range strings.Split(s, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if c.ReportDir == "" {
		return errors.New("report_dir must not be empty")
	}
	if c.OutputFile == "" {
		return errors.New("output_file must not be empty")
	}
	if len(c.Metrics) == 0 {
		return errors.New("metrics must not be empty")
	}
	seen := map[string]bool{
		model.ColConfiguredConcurrency: true,
		model.ColInputLength:           true,
		model.ColOutputLength:          true,
		model.ColDailyInputTokens:      true,
		model.ColDailyOutputTokens:     true,
	}
	for _, m := range c.Metrics {
		col := model.ColumnFor(m)
		if seen[col] {
			return fmt.Errorf("duplicate metric column %q", col)
		}
		seen[col] = true
	}
	if c.JSONOutput && c.JSONFile == "" {
		return errors.New("json_file must not be empty when json_output is set")
	}
	return nil
}
