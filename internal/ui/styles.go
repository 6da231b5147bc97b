package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the overlay
type Styles struct {
	Title        lipgloss.Style
	TabActive    lipgloss.Style
	TabInactive  lipgloss.Style
	Prompt       lipgloss.Style
	Result       lipgloss.Style
	ResultCursor lipgloss.Style
	Score        lipgloss.Style
	Dim          lipgloss.Style
	Status       lipgloss.Style
	Empty        lipgloss.Style
	Help         lipgloss.Style
	Main         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Result: lipgloss.NewStyle().PaddingLeft(2),
		ResultCursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("238")),
		Score:  lipgloss.NewStyle().Faint(true).Italic(true),
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		Empty:  lipgloss.NewStyle().Faint(true).Italic(true).PaddingLeft(2),
		Help:   lipgloss.NewStyle().Faint(true),
		Main:   lipgloss.NewStyle().Padding(1, 2),
	}
}
