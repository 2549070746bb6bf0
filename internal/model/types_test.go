package model

import (
	"reflect"
	"testing"
)

func TestColumns(t *testing.T) {
	got := Columns([]string{"Backend", "Concurrency", "Median TTFT (ms)"})
	want := []string{
		"Configured Concurrency", "Input Length", "Output Length",
		"Backend", "Measured Concurrency", "Median TTFT (ms)",
		"每日最大输入token数", "每日最大输出token数",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
}

func TestColumnsDefaultNeverContainsConcurrency(t *testing.T) {
	cols := Columns(DefaultMetrics)
	if len(cols) != len(DefaultMetrics)+5 {
		t.Fatalf("expected %d columns, got %d", len(DefaultMetrics)+5, len(cols))
	}
	for _, c := range cols {
		if c == MetricConcurrency {
			t.Fatalf("column %q must be renamed", MetricConcurrency)
		}
	}
}

func TestRecordValue(t *testing.T) {
	n := int64(8640000)
	r := Record{
		ConfiguredConcurrency: "16",
		InputLength:           "128",
		OutputLength:          "256",
		Metrics:               map[string]string{"Backend": "sglang", ColMeasuredConcurrency: "15.8"},
		DailyMaxInputTokens:   &n,
	}

	tests := []struct {
		column string
		want   string
		ok     bool
	}{
		{ColConfiguredConcurrency, "16", true},
		{ColInputLength, "128", true},
		{ColOutputLength, "256", true},
		{"Backend", "sglang", true},
		{ColMeasuredConcurrency, "15.8", true},
		{"Median TTFT (ms)", "", false},
		{ColDailyInputTokens, "8640000", true},
		{ColDailyOutputTokens, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			got, ok := r.Value(tt.column)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Value(%q) = (%q, %v), want (%q, %v)", tt.column, got, ok, tt.want, tt.ok)
			}
		})
	}
}
