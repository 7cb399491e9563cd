package render

import "github.com/charmbracelet/lipgloss"

type styles struct {
	correct lipgloss.Style
	present lipgloss.Style
	absent  lipgloss.Style
	unused  lipgloss.Style
	title   lipgloss.Style
	faint   lipgloss.Style
	alert   lipgloss.Style
}

func newStyles() styles {
	tile := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("231"))
	return styles{
		correct: tile.Background(lipgloss.Color("28")),
		present: tile.Background(lipgloss.Color("178")),
		absent:  tile.Background(lipgloss.Color("240")),
		unused:  lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("252")),
		title:   lipgloss.NewStyle().Bold(true),
		faint:   lipgloss.NewStyle().Faint(true),
		alert:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}
