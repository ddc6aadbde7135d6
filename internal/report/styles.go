package report

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	HeaderCell = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1)

	Cell = lipgloss.NewStyle().Padding(0, 1)

	NumberCell = Cell.Align(lipgloss.Right)

	DNFCell = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ff4444")).
		Padding(0, 1).
		Align(lipgloss.Right)

	TableBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("#444466"))
)

// seriesColors cycles over the vehicles of a chart.
var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Red,
	asciigraph.Green,
	asciigraph.Yellow,
	asciigraph.Blue,
	asciigraph.Magenta,
	asciigraph.Cyan,
}
