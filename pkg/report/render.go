package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameCellStyle = lipgloss.NewStyle().Padding(0, 1)

	numericCellStyle = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5A9CF7"))
)

// Render produces the full tabular report: raw table, adjusted table (when
// present), percentile table, and the summary footer — in that order,
// joined by blank lines, matching spec.md §6's table ordering.
func (r Report) Render() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("PER REQUEST METRICS"))
	b.WriteString("\n")
	b.WriteString(renderTable(
		[]string{"Name", "Avg (ms)", "Min", "Max", "Median"},
		rawTableRows(r.Raw),
	))

	if len(r.Adjusted) > 0 {
		b.WriteString("\n\n")
		b.WriteString(titleStyle.Render("Adjusted for Coordinated Omission:"))
		b.WriteString("\n")
		b.WriteString(renderTable(
			[]string{"Name", "Avg (ms)", "Std Dev", "Max", "Median"},
			adjustedTableRows(r.Adjusted),
		))
	}

	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render("Slowest page load within specified percentile"))
	b.WriteString("\n")
	b.WriteString(renderTable(
		append([]string{"Name"}, percentileLabels...),
		percentileTableRows(r.RawPercentiles),
	))

	if len(r.AdjustedPercentiles) > 0 {
		b.WriteString("\n\n")
		b.WriteString(titleStyle.Render("Adjusted for Coordinated Omission:"))
		b.WriteString("\n")
		b.WriteString(renderTable(
			append([]string{"Name"}, percentileLabels...),
			percentileTableRows(r.AdjustedPercentiles),
		))
	}

	b.WriteString("\n\n")
	b.WriteString(r.renderSummary())

	return b.String()
}

func rawTableRows(rows []RawRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, []string{
			row.Name,
			fmt.Sprintf("%.1f", row.AvgMs),
			strconv.FormatInt(row.MinMs, 10),
			strconv.FormatInt(row.MaxMs, 10),
			strconv.FormatInt(row.Median, 10),
		})
	}
	return out
}

func adjustedTableRows(rows []AdjustedRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, []string{
			row.Name,
			fmt.Sprintf("%.1f", row.AvgMs),
			fmt.Sprintf("%.1f", row.StdDevMs),
			strconv.FormatInt(row.MaxMs, 10),
			strconv.FormatInt(row.Median, 10),
		})
	}
	return out
}

func percentileTableRows(rows []PercentileRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, 0, len(percentileLabels)+1)
		line = append(line, row.Name)
		for _, label := range percentileLabels {
			line = append(line, strconv.FormatInt(row.Values[label], 10))
		}
		out = append(out, line)
	}
	return out
}

// renderTable lays out header+rows as fixed-width columns (widened to fit
// the longest cell in each column), with the header styled and numeric
// columns right-aligned.
func renderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for i, h := range header {
		style := nameCellStyle
		if i > 0 {
			style = numericCellStyle
		}
		b.WriteString(headerStyle.Render(style.Width(widths[i]).Render(h)))
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			style := nameCellStyle
			if i > 0 {
				style = numericCellStyle
			}
			b.WriteString(style.Width(widths[i]).Render(cell))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (r Report) renderSummary() string {
	s := r.Summary
	return fmt.Sprintf(
		"%s\nElapsed: %s | Requests: %d (%.2f/s) | Failures: %d (%.2f/s)",
		titleStyle.Render("Summary"),
		s.Elapsed.Round(time.Millisecond),
		s.TotalRequests, s.RequestsPerSec,
		s.TotalFailures, s.FailuresPerSec,
	)
}
