package output

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"

	"github.com/daryltucker/bench-merge/internal/model"
)

// summaryColumns are the columns shown by RenderTable, in order.
var summaryColumns = []struct {
	title  string
	column string
}{
	{"Conc", model.ColConfiguredConcurrency},
	{"In", model.ColInputLength},
	{"Out", model.ColOutputLength},
	{"Measured", model.ColMeasuredConcurrency},
	{"Req/s", "Request throughput (req/s)"},
	{"Out tok/s", model.MetricOutputThroughput},
	{"Median TTFT", "Median TTFT (ms)"},
	{"Median ITL", "Median ITL (ms)"},
	{"Daily In", model.ColDailyInputTokens},
	{"Daily Out", model.ColDailyOutputTokens},
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// RenderTable renders a compact terminal summary of records.
// Missing values are shown as "-"; daily token counts get thousand separators.
func RenderTable(records []model.Record) string {
	headers := make([]string, len(summaryColumns))
	for i, c := range summaryColumns {
		headers[i] = c.title
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, len(summaryColumns))
		for i, c := range summaryColumns {
			row[i] = cell(r, c.column)
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col < 3 {
				return cellStyle
			}
			return numberStyle
		})

	return t.String()
}

func cell(r model.Record, column string) string {
	switch column {
	case model.ColDailyInputTokens:
		return comma(r.DailyMaxInputTokens)
	case model.ColDailyOutputTokens:
		return comma(r.DailyMaxOutputTokens)
	}
	v, ok := r.Value(column)
	if !ok || v == "" {
		return "-"
	}
	return v
}

func comma(n *int64) string {
	if n == nil {
		return "-"
	}
	return humanize.Comma(*n)
}

// RenderGraph plots output token throughput across records in order.
// Records whose throughput is missing or non-numeric are left out.
// It returns "" when there is nothing to plot.
func RenderGraph(records []model.Record, height int) string {
	var series []float64
	for _, r := range records {
		v, ok := r.Value(model.MetricOutputThroughput)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		series = append(series, f)
	}
	if len(series) == 0 {
		return ""
	}

	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Caption("Output token throughput (tok/s) per report"),
	)
}
