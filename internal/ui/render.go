package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderMarkdown renders markdown for the terminal, falling back to the
// plain text when the renderer cannot be built.
func RenderMarkdown(text string, width int) string {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}

// Title renders a heading bar.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Muted renders secondary text.
func Muted(s string) string {
	return mutedStyle.Render(s)
}

// StyleFunc picks the style of a body cell; row and col are zero-based
// indexes into the data rows.
type StyleFunc func(row, col int) lipgloss.Style

// Table renders rows under headers with a rounded border.
func Table(headers []string, rows [][]string, style StyleFunc) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if style != nil {
				return style(row, col)
			}
			return cellStyle
		})
	return strings.TrimRight(t.Render(), "\n")
}
