/*
PURPOSE:
  Defines the core data structures used throughout Bench Merge.
  A Record is one parsed benchmark report, flattened into CSV columns.

REQUIREMENTS:
  User-specified:
  - Keep the filename triple (concurrency, input, output) as text.
  - One optional value per metric, absent when the report lacks it.
  - Two derived daily token counts.

  Implementation-discovered:
  - "Concurrency" inside the report collides with the filename concurrency,
    so it is renamed to "Measured Concurrency".
  - Column order is fixed and must be derivable from the metric list alone.

ARCHITECTURE INTEGRATION:
  - Used by: internal/report, internal/engine, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Records are built once and never mutated afterwards.
  - Absent values are represented by a missing map key / nil pointer, never "".

USAGE:
  cols := model.Columns(metrics)
  v, ok := rec.Value(cols[3])

SELF-HEALING INSTRUCTIONS:
  - If a new derived column is added, extend Columns() and Value().

RELATED FILES:
  - internal/output/csv.go
  - internal/report/parser.go

MAINTENANCE:
  - Update when adding new derived metrics.
*/

package model

import "strconv"

// Fixed column names.
const (
	ColConfiguredConcurrency = "Configured Concurrency"
	ColInputLength           = "Input Length"
	ColOutputLength          = "Output Length"
	ColMeasuredConcurrency   = "Measured Concurrency"
	ColDailyInputTokens      = "每日最大输入token数"
	ColDailyOutputTokens     = "每日最大输出token数"

	// MetricConcurrency is the in-report label renamed to ColMeasuredConcurrency.
	MetricConcurrency = "Concurrency"
	// MetricInputThroughput and MetricOutputThroughput feed the daily token columns.
	MetricInputThroughput  = "Input token throughput (tok/s)"
	MetricOutputThroughput = "Output token throughput (tok/s)"
)

// DefaultMetrics is the metric list of an sglang serving benchmark, in output order.
var DefaultMetrics = []string{
	"Backend", "Traffic request rate", "Max request concurrency", "Successful requests",
	"Benchmark duration (s)", "Total input tokens", "Total generated tokens",
	"Total generated tokens (retokenized)", "Request throughput (req/s)",
	MetricInputThroughput, MetricOutputThroughput,
	"Total token throughput (tok/s)", MetricConcurrency,
	"Mean E2E Latency (ms)", "Median E2E Latency (ms)",
	"Mean TTFT (ms)", "Median TTFT (ms)", "P99 TTFT (ms)",
	"Mean ITL (ms)", "Median ITL (ms)", "P95 ITL (ms)", "P99 ITL (ms)", "Max ITL (ms)",
}

// Record represents one successfully parsed report file.
type Record struct {
	Source string `json:"source"` // Report filename

	ConfiguredConcurrency string `json:"configured_concurrency"`
	InputLength           string `json:"input_length"`
	OutputLength          string `json:"output_length"`

	// Metrics is keyed by output column name (see ColumnFor).
	// Missing metrics have no key.
	Metrics map[string]string `json:"metrics"`

	DailyMaxInputTokens  *int64 `json:"daily_max_input_tokens"`
	DailyMaxOutputTokens *int64 `json:"daily_max_output_tokens"`
}

// ColumnFor returns the output column name of a report metric label.
func ColumnFor(metric string) string {
	if metric == MetricConcurrency {
		return ColMeasuredConcurrency
	}
	return metric
}

// Columns returns the CSV header for the given metric list.
func Columns(metrics []string) []string {
	cols := make([]string, 0, len(metrics)+5)
	cols = append(cols, ColConfiguredConcurrency, ColInputLength, ColOutputLength)
	for _, m := range metrics {
		cols = append(cols, ColumnFor(m))
	}
	return append(cols, ColDailyInputTokens, ColDailyOutputTokens)
}

// Value returns the rendered value of a column and whether it is present.
func (r Record) Value(column string) (string, bool) {
	switch column {
	case ColConfiguredConcurrency:
		return r.ConfiguredConcurrency, true
	case ColInputLength:
		return r.InputLength, true
	case ColOutputLength:
		return r.OutputLength, true
	case ColDailyInputTokens:
		return formatCount(r.DailyMaxInputTokens)
	case ColDailyOutputTokens:
		return formatCount(r.DailyMaxOutputTokens)
	}
	v, ok := r.Metrics[column]
	return v, ok
}

func formatCount(n *int64) (string, bool) {
	if n == nil {
		return "", false
	}
	return strconv.FormatInt(*n, 10), true
}
