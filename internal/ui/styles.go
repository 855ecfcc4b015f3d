package ui

import "github.com/charmbracelet/lipgloss"

// This file centralizes the lipgloss styles used by the report views.

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#7D56F4")). // Brand Color
			Bold(true).
			Padding(0, 1)

	tableBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("63")) // Purple-ish

	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Bold(true).
				Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	numberCellStyle = cellStyle.Align(lipgloss.Right)

	failureCellStyle = cellStyle.
				Foreground(lipgloss.Color("196")). // Red
				Bold(true)

	fastestCellStyle = numberCellStyle.
				Foreground(lipgloss.Color("46")) // Green

	regressionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	improvementStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("46"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)
