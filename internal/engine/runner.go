/*
PURPOSE:
  High-level runner that orchestrates the merge.
  Lists the report directory, parses every report, writes the summary.

REQUIREMENTS:
  User-specified:
  - One record per valid report file.
  - Skip (and log) bad filenames, unreadable files, reports without markers.
  - Log each missing metric; the row is still written.
  - No data: print a message and write nothing.

  Implementation-discovered:
  - Directory order is made deterministic by sorting on filename, so two runs
    over the same directory give byte-identical CSVs.
  - Non-UTF-8 reports are treated as unreadable.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/report, internal/output, internal/config

ERROR HANDLING:
  - Logs per-file and per-field errors but continues (resilience).
  - Only an unreadable report directory or a failed output write is returned.

IMPLEMENTATION RULES:
  - Strictly sequential; each file is opened, read and closed before the next.

USAGE:
  engine.Run(cfg)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/report/parser.go
  - internal/output/csv.go

MAINTENANCE:
  - Update if the filename glob changes.
*/

package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/daryltucker/bench-merge/internal/config"
	"github.com/daryltucker/bench-merge/internal/model"
	"github.com/daryltucker/bench-merge/internal/output"
	"github.com/daryltucker/bench-merge/internal/report"
)

// ReportGlob selects candidate report files inside the report directory.
const ReportGlob = "concurrency_*.txt"

// ErrInvalidEncoding is returned for report files that are not UTF-8 text.
var ErrInvalidEncoding = errors.New("file is not valid UTF-8")

// Engine aggregates reports from one directory.
type Engine struct {
	Config *config.Config
	Parser *report.Parser
}

// New creates a new Engine.
func New(cfg *config.Config) *Engine {
	return &Engine{
		Config: cfg,
		Parser: report.NewParser(cfg.Metrics),
	}
}

// Discover returns the names of files in the report directory matching
// ReportGlob, sorted by name.
func (e *Engine) Discover() ([]string, error) {
	entries, err := os.ReadDir(e.Config.ReportDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read report directory %s: %w", e.Config.ReportDir, err)
	}

	var names []string
	for _, entry := range entries {
		if ok, _ := filepath.Match(ReportGlob, entry.Name()); ok {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Aggregate parses every discovered report and returns the valid records in
// filename order.
func (e *Engine) Aggregate() ([]model.Record, error) {
	names, err := e.Discover()
	if err != nil {
		return nil, err
	}

	var records []model.Record
	for _, name := range names {
		output.Logger.Debug("Processing file", "file", name)

		rec, err := e.parseFile(name)
		if err != nil {
			output.Logger.Warn("Skipping file", "file", name, "error", err)
			continue
		}
		records = append(records, rec)
	}

	output.Logger.Info("Scan complete", "files", len(names), "records", len(records), "skipped", len(names)-len(records))
	return records, nil
}

func (e *Engine) parseFile(name string) (model.Record, error) {
	// Cheap filename check first so mismatches never touch the file.
	if _, err := report.ParseFilename(name); err != nil {
		return model.Record{}, err
	}

	content, err := readReport(filepath.Join(e.Config.ReportDir, name))
	if err != nil {
		return model.Record{}, fmt.Errorf("failed to read file: %w", err)
	}

	rec, issues, err := e.Parser.Parse(name, content)
	if err != nil {
		return model.Record{}, err
	}

	for _, is := range issues {
		switch {
		case errors.Is(is.Err, report.ErrMetricNotFound):
			output.Logger.Warn("Metric not found", "file", name, "metric", is.Field)
		default:
			output.Logger.Warn("Cannot compute daily token count", "file", name, "field", is.Field, "error", is.Err)
		}
	}
	return rec, nil
}

func readReport(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	return string(data), nil
}

// Write writes records to the configured CSV file, and to the JSON Lines file
// when enabled.
func (e *Engine) Write(records []model.Record) error {
	cols := model.Columns(e.Config.Metrics)

	if err := ensureParent(e.Config.OutputFile); err != nil {
		return err
	}
	csvWriter, err := output.NewCSVWriter(e.Config.OutputFile, cols)
	if err != nil {
		return fmt.Errorf("failed to init CSV writer at %s: %w", e.Config.OutputFile, err)
	}
	for _, r := range records {
		if err := csvWriter.Write(output.Row(r, cols)); err != nil {
			csvWriter.Close()
			return fmt.Errorf("failed to write %s to CSV: %w", r.Source, err)
		}
	}
	if err := csvWriter.Close(); err != nil {
		return fmt.Errorf("failed to close CSV %s: %w", e.Config.OutputFile, err)
	}

	if !e.Config.JSONOutput {
		return nil
	}

	if err := ensureParent(e.Config.JSONFile); err != nil {
		return err
	}
	jsonWriter, err := output.NewJSONWriter(e.Config.JSONFile)
	if err != nil {
		return fmt.Errorf("failed to init JSON writer at %s: %w", e.Config.JSONFile, err)
	}
	defer jsonWriter.Close()

	for _, r := range records {
		if err := jsonWriter.Write(r); err != nil {
			return fmt.Errorf("failed to write %s to JSON: %w", r.Source, err)
		}
	}
	return nil
}

func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// Run executes the full merge: aggregate, then write if anything was found.
func Run(cfg *config.Config) error {
	e := New(cfg)

	records, err := e.Aggregate()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		output.Logger.Warn("No valid data found, summary not written", "dir", cfg.ReportDir)
		return nil
	}

	if err := e.Write(records); err != nil {
		return err
	}

	output.Logger.Info("Summary written", "path", cfg.OutputFile, "records", len(records))
	if cfg.JSONOutput {
		output.Logger.Info("JSON summary written", "path", cfg.JSONFile)
	}
	return nil
}
