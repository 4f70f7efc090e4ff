// Package styles provides shared lipgloss styles for UI components.
//
// This package centralizes color definitions so tables, the picker and
// result lines look the same across commands.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette used throughout the UI
var (
	// Primary is the main accent color (cyan/teal)
	Primary lipgloss.TerminalColor = lipgloss.Color("62")

	// Accent is the highlight color for selected/active items (pink)
	Accent lipgloss.TerminalColor = lipgloss.Color("212")

	// Success is used for checkmarks and in-sync states (green)
	Success lipgloss.TerminalColor = lipgloss.Color("82")

	// Error is used for failures (red)
	Error lipgloss.TerminalColor = lipgloss.Color("196")

	// Warning is used for dirty trees and divergence (orange)
	Warning lipgloss.TerminalColor = lipgloss.Color("214")

	// Muted is used for secondary text (gray)
	Muted lipgloss.TerminalColor = lipgloss.Color("240")

	// Normal is the standard text color (light gray)
	Normal lipgloss.TerminalColor = lipgloss.Color("252")
)

// Common styles
var (
	Bold = lipgloss.NewStyle().Bold(true)

	// Header is used for section titles
	Header = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	// Branch renders branch names
	Branch = lipgloss.NewStyle().Foreground(Accent)

	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	NormalStyle  = lipgloss.NewStyle().Foreground(Normal)

	// Selected marks the picker row under the cursor
	Selected = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true)

	// Highlight marks fuzzy-matched characters
	Highlight = lipgloss.NewStyle().Foreground(Accent).Bold(true).Underline(true)
)
