package ui

import (
	"fmt"
	"strconv"
	"strings"

	"sortbench/internal/benchmark"
	"sortbench/internal/dataset"
	"sortbench/internal/sorting"

	"github.com/charmbracelet/lipgloss"
)

var resultHeaders = []string{"Size", "Type", "Bubble (ms)", "Merge (ms)", "Quick (ms)", "Status"}

// Fastest returns the algorithm with the lowest mean in rec. It reports
// false for failed records.
func Fastest(rec benchmark.Record) (sorting.Algorithm, bool) {
	if rec.Failed() {
		return 0, false
	}
	algs := sorting.All()
	best := algs[0]
	for _, alg := range algs[1:] {
		if rec.Mean(alg) < rec.Mean(best) {
			best = alg
		}
	}
	return best, true
}

// ResultsTable renders records as a terminal table with the fastest mean of
// each row highlighted and failed rows marked.
func ResultsTable(records []benchmark.Record) string {
	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = []string{
			strconv.Itoa(rec.Size),
			rec.Shape.String(),
			formatMs(rec.BubbleMs),
			formatMs(rec.MergeMs),
			formatMs(rec.QuickMs),
			string(rec.Status),
		}
	}
	return Table(resultHeaders, rows, func(row, col int) lipgloss.Style {
		if row < 0 || row >= len(records) {
			return cellStyle
		}
		rec := records[row]
		switch {
		case col == 5 && rec.Failed():
			return failureCellStyle
		case col >= 2 && col <= 4:
			if best, ok := Fastest(rec); ok && int(best) == col-2 {
				return fastestCellStyle
			}
			return numberCellStyle
		case col == 0:
			return numberCellStyle
		}
		return cellStyle
	})
}

// ComparisonTable renders per-algorithm changes between two runs. Rows
// slower than threshold percent are highlighted as regressions.
func ComparisonTable(comps []benchmark.Comparison, threshold float64) string {
	headers := []string{"Size", "Type", "Algorithm", "Previous (ms)", "Current (ms)", "Change"}
	rows := make([][]string, len(comps))
	for i, c := range comps {
		rows[i] = []string{
			strconv.Itoa(c.Size),
			c.Shape.String(),
			c.Algorithm.String(),
			formatMs(c.PrevMs),
			formatMs(c.CurrMs),
			fmt.Sprintf("%+.2f%%", c.DiffPct),
		}
	}
	return Table(headers, rows, func(row, col int) lipgloss.Style {
		if col != 5 || row < 0 || row >= len(comps) {
			return cellStyle
		}
		switch c := comps[row]; {
		case c.Regressed(threshold):
			return regressionStyle.Padding(0, 1)
		case c.DiffPct < 0:
			return improvementStyle.Padding(0, 1)
		}
		return cellStyle
	})
}

// MarkdownReport builds a Markdown document with one table per shape and a
// summary of which algorithm was fastest how often.
func MarkdownReport(title string, records []benchmark.Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)

	failed := 0
	wins := map[sorting.Algorithm]int{}
	byShape := map[dataset.Shape][]benchmark.Record{}
	for _, rec := range records {
		byShape[rec.Shape] = append(byShape[rec.Shape], rec)
		if best, ok := Fastest(rec); ok {
			wins[best]++
		} else {
			failed++
		}
	}

	fmt.Fprintf(&sb, "%d configurations, %d failed.\n\n", len(records), failed)
	if len(records) == 0 {
		return sb.String()
	}

	sb.WriteString("## Fastest algorithm\n\n| Algorithm | Configurations |\n|---|---:|\n")
	for _, alg := range sorting.All() {
		fmt.Fprintf(&sb, "| %s | %d |\n", alg, wins[alg])
	}
	sb.WriteString("\n")

	for _, shape := range dataset.AllShapes() {
		recs := byShape[shape]
		if len(recs) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "## %s\n\n", shape)
		sb.WriteString("| Size | Bubble (ms) | Merge (ms) | Quick (ms) | Status |\n|---:|---:|---:|---:|---|\n")
		for _, rec := range recs {
			cells := []string{formatMs(rec.BubbleMs), formatMs(rec.MergeMs), formatMs(rec.QuickMs)}
			if best, ok := Fastest(rec); ok {
				cells[best] = "**" + cells[best] + "**"
			}
			fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s |\n", rec.Size, cells[0], cells[1], cells[2], rec.Status)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatMs(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
