// Package tui is the full-screen terminal interface of the fitness tracker,
// built on bubbletea. Sections are tabs driven by the router; dialogs are
// forms shown inside the modal controller's focus trap.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary     = lipgloss.Color("#8BC34A")
	accent      = lipgloss.Color("#2196F3")
	muted       = lipgloss.Color("#7a8599")
	destructive = lipgloss.Color("#e53935")
	warning     = lipgloss.Color("#FFC107")
)

// Styles groups the lipgloss styles used by the views.
type Styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Cursor    lipgloss.Style
	Done      lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	BarFill   lipgloss.Style
	BarEmpty  lipgloss.Style
	Toast     lipgloss.Style
	Modal     lipgloss.Style
	Danger    lipgloss.Style
	Button    lipgloss.Style
	Focused   lipgloss.Style
	Status    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(primary),
		Tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(muted),
		ActiveTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#101F38")).Background(primary),
		Cursor:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Done:      lipgloss.NewStyle().Strikethrough(true).Foreground(muted),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Selected:  lipgloss.NewStyle().Foreground(warning),
		BarFill:   lipgloss.NewStyle().Foreground(primary),
		BarEmpty:  lipgloss.NewStyle().Foreground(muted),
		Toast:     lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#f2f2f2")).Background(accent),
		Modal:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primary).Padding(1, 2),
		Danger:    lipgloss.NewStyle().Bold(true).Foreground(destructive),
		Button:    lipgloss.NewStyle().Padding(0, 1).Foreground(muted),
		Focused:   lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("#101F38")).Background(accent),
		Status:    lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}
