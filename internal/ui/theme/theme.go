// Package theme holds the lipgloss styles used for terminal output.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary = lipgloss.Color("#8B5CF6") // Vivid Purple
	Success = lipgloss.Color("#22C55E") // Green
	Error   = lipgloss.Color("#F43F5E") // Rose
	Warning = lipgloss.Color("#F97316") // Orange
	TextDim = lipgloss.Color("#94A3B8") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Header = lipgloss.NewStyle().
		Bold(true)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Complete = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	Incomplete = lipgloss.NewStyle().
			Foreground(Error)

	Unknown = lipgloss.NewStyle().
		Foreground(Warning)
)
