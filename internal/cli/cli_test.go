package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daryltucker/bench-merge/internal/output"
	"github.com/daryltucker/bench-merge/internal/report"
)

// execute runs the root command with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	original := output.Logger
	t.Cleanup(func() { output.SetLogger(original) })

	cfgFile, logLevel, logJSON, dirOverride = "", "info", false, ""
	outputOverride, metricsOverride, jsonOutput = "", "", false
	showGraph, graphHeight = false, 10

	{
		wd, err := os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
		if err := os.Chdir(t.TempDir()); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = os.Chdir(wd) })
	}
	t.Setenv("BENCH_MERGE_REPORT_DIR", "")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func reportBody(throughput string) string {
	return report.StartMarker + "\n" +
		"Backend: sglang\n" +
		"Output token throughput (tok/s): " + throughput + "\n" +
		"Concurrency: 7.5\n" +
		report.EndMarker + "\n"
}

func reportDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"concurrency_8_input_64_output_64.txt":  reportBody("42.0"),
		"concurrency_16_input_64_output_64.txt": reportBody("80.5"),
		"concurrency_bad.txt":                   reportBody("1"),
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestMergeCommand(t *testing.T) {
	dir := reportDir(t)
	out := filepath.Join(t.TempDir(), "summary.csv")

	logs, err := execute(t, "merge", "--dir", dir, "-o", out, "--metrics", "Backend,Concurrency")
	if err != nil {
		t.Fatalf("merge failed: %v\n%s", err, logs)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("summary not written: %v", err)
	}
	want := "Configured Concurrency,Input Length,Output Length,Backend,Measured Concurrency,每日最大输入token数,每日最大输出token数\n" +
		"16,64,64,sglang,7.5,,\n" +
		"8,64,64,sglang,7.5,,\n"
	if string(data) != want {
		t.Errorf("unexpected CSV:\n%s\nwant:\n%s", data, want)
	}
	if !strings.Contains(logs, "concurrency_bad.txt") {
		t.Errorf("expected a skip diagnostic for concurrency_bad.txt:\n%s", logs)
	}
}

func TestRootRunsMerge(t *testing.T) {
	dir := reportDir(t)

	if _, err := execute(t, "--dir", dir, "--log-level", "error"); err != nil {
		t.Fatalf("root failed: %v", err)
	}
	// Default output file lands in the working directory.
	if _, err := os.Stat("benchmark_summary_fixed.csv"); err != nil {
		t.Errorf("default summary not written: %v", err)
	}
}

func TestListCommand(t *testing.T) {
	dir := reportDir(t)

	out, err := execute(t, "list", "--dir", dir)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{
		"concurrency_8_input_64_output_64.txt concurrency=8 input=64 output=64",
		"concurrency_bad.txt (skipped",
		"3 file(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestShowCommand(t *testing.T) {
	dir := reportDir(t)

	out, err := execute(t, "show", "--dir", dir, "--graph", "--log-level", "error")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	for _, want := range []string{"Measured", "7.5", "3,628,800", "Output token throughput"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestMetricsCommand(t *testing.T) {
	out, err := execute(t, "metrics")
	if err != nil {
		t.Fatalf("metrics failed: %v", err)
	}
	if !strings.Contains(out, `Concurrency (as "Measured Concurrency")`) {
		t.Errorf("expected renamed metric in output:\n%s", out)
	}
	if !strings.Contains(out, "每日最大输出token数") {
		t.Errorf("expected derived column in output:\n%s", out)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	if _, err := execute(t, "metrics", "--log-level", "loud"); err == nil {
		t.Error("expected error for unknown log level")
	}
}
