/*
PURPOSE:
  Parses a single sglang serving benchmark report into a model.Record.
  Filename triple, report section, per-metric values, daily token counts.

REQUIREMENTS:
  User-specified:
  - Filenames follow concurrency_<n>_input_<n>_output_<n>.txt exactly.
  - Only the text between the result markers is searched.
  - Metric lines look like "<Label>: <value>".
  - Daily tokens = round(throughput * 86400).

  Implementation-discovered:
  - Labels contain regex metacharacters ("(tok/s)"), so they are quoted.
  - The end marker is a plain run of '=' that may also appear earlier in the
    file; it is searched after the start marker only.
  - Rounding is half-to-even, matching the existing summary files.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Produces: internal/model.Record

ERROR HANDLING:
  - File-level problems (bad filename, missing markers) return an error and
    the caller skips the file.
  - Field-level problems (missing metric, bad throughput) are returned as
    Issues; the record is still produced.

IMPLEMENTATION RULES:
  - No I/O here. The engine reads files; this package only sees strings.
  - Compile metric patterns once per Parser.

USAGE:
  p := report.NewParser(model.DefaultMetrics)
  rec, issues, err := p.Parse(name, content)

SELF-HEALING INSTRUCTIONS:
  - If sglang changes its banner, update StartMarker/EndMarker.

RELATED FILES:
  - internal/model/types.go
  - internal/engine/runner.go

MAINTENANCE:
  - Update when the report format changes.
*/

package report

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/daryltucker/bench-merge/internal/model"
)

// Section markers printed by the sglang benchmark client.
const (
	StartMarker = "============ Serving Benchmark Result ============"
	EndMarker   = "=================================================="
)

// SecondsPerDay scales a per-second throughput to a daily token count.
const SecondsPerDay = 86400

var (
	ErrFilenameMismatch    = errors.New("filename does not match report pattern")
	ErrStartMarkerNotFound = errors.New("start marker not found")
	ErrEndMarkerNotFound   = errors.New("end marker not found")
	ErrMetricNotFound      = errors.New("metric not found")
	ErrInvalidThroughput   = errors.New("invalid throughput")
)

var filenamePattern = regexp.MustCompile(`^concurrency_(\d+)_input_(\d+)_output_(\d+)\.txt$`)

// Config is the benchmark configuration encoded in a report filename.
type Config struct {
	Concurrency  string
	InputLength  string
	OutputLength string
}

// Issue is a non-fatal, field-level parse problem.
type Issue struct {
	Field string
	Err   error
}

// ParseFilename extracts the configuration triple from a report filename.
func ParseFilename(name string) (Config, error) {
	m := filenamePattern.FindStringSubmatch(name)
	if m == nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFilenameMismatch, name)
	}
	return Config{Concurrency: m[1], InputLength: m[2], OutputLength: m[3]}, nil
}

// ExtractSection returns the report text from the start marker up to (not
// including) the first end marker that follows it.
func ExtractSection(content string) (string, error) {
	start := strings.Index(content, StartMarker)
	if start == -1 {
		return "", ErrStartMarkerNotFound
	}
	end := strings.Index(content[start+len(StartMarker):], EndMarker)
	if end == -1 {
		return "", ErrEndMarkerNotFound
	}
	return content[start : start+len(StartMarker)+end], nil
}

func metricPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(label) + `:\s+(.*?)[\n\r]`)
}

// ExtractMetric finds "<label>: <value>" in section and returns the trimmed value.
func ExtractMetric(section, label string) (string, bool) {
	return extract(metricPattern(label), section)
}

func extract(re *regexp.Regexp, section string) (string, bool) {
	m := re.FindStringSubmatch(section)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// DailyTokens converts a tok/s throughput value into a daily token count.
func DailyTokens(value string) (int64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidThroughput, value)
	}
	daily := math.RoundToEven(f * SecondsPerDay)
	if math.IsNaN(daily) || math.IsInf(daily, 0) || math.Abs(daily) >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidThroughput, value)
	}
	return int64(daily), nil
}

// Parser extracts a fixed metric list from reports.
type Parser struct {
	metrics  []string
	patterns []*regexp.Regexp
}

// NewParser compiles the search patterns for metrics.
func NewParser(metrics []string) *Parser {
	p := &Parser{
		metrics:  metrics,
		patterns: make([]*regexp.Regexp, len(metrics)),
	}
	for i, m := range metrics {
		p.patterns[i] = metricPattern(m)
	}
	return p
}

// Parse builds a Record from a report's filename and content.
func (p *Parser) Parse(name, content string) (model.Record, []Issue, error) {
	cfg, err := ParseFilename(name)
	if err != nil {
		return model.Record{}, nil, err
	}

	section, err := ExtractSection(content)
	if err != nil {
		return model.Record{}, nil, err
	}

	rec := model.Record{
		Source:                name,
		ConfiguredConcurrency: cfg.Concurrency,
		InputLength:           cfg.InputLength,
		OutputLength:          cfg.OutputLength,
		Metrics:               make(map[string]string, len(p.metrics)),
	}

	var issues []Issue
	for i, metric := range p.metrics {
		v, ok := extract(p.patterns[i], section)
		if !ok {
			issues = append(issues, Issue{Field: metric, Err: ErrMetricNotFound})
			continue
		}
		rec.Metrics[model.ColumnFor(metric)] = v
	}

	rec.DailyMaxInputTokens, issues = derive(rec, model.MetricInputThroughput, model.ColDailyInputTokens, issues)
	rec.DailyMaxOutputTokens, issues = derive(rec, model.MetricOutputThroughput, model.ColDailyOutputTokens, issues)

	return rec, issues, nil
}

func derive(rec model.Record, metric, column string, issues []Issue) (*int64, []Issue) {
	v, ok := rec.Metrics[model.ColumnFor(metric)]
	if !ok {
		return nil, append(issues, Issue{Field: column, Err: fmt.Errorf("%w: %s missing", ErrInvalidThroughput, metric)})
	}
	n, err := DailyTokens(v)
	if err != nil {
		return nil, append(issues, Issue{Field: column, Err: err})
	}
	return &n, issues
}
