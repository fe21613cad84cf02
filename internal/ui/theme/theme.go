package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Amber     = lipgloss.Color("#EAB308")
	Blue      = lipgloss.Color("#3B82F6")
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Frame = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Starred = lipgloss.NewStyle().
		Foreground(Accent)
)

// Cards
var (
	// DueStrip colours the due-strip segments, overdue first.
	DueStrip = []color.Color{Error, Accent, Amber, Secondary, Blue, Border}

	// Tones colours syllables by tone; index 0 is tone 1, index 4 the
	// neutral tone.
	Tones = []color.Color{
		lipgloss.Color("#EF4444"), // Red
		Success,
		Blue,
		lipgloss.Color("#A855F7"), // Purple
		TextDim,
	}
)

// AccuracyColor grades a 0..1 accuracy using the same tiers that scale
// review intervals.
func AccuracyColor(acc float64) color.Color {
	switch {
	case acc >= 0.9:
		return Success
	case acc >= 0.7:
		return Secondary
	case acc >= 0.5:
		return Amber
	default:
		return Error
	}
}
