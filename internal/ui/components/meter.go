package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabz/internal/ui/theme"
)

// Meter is a labelled horizontal bar for a 0..1 ratio. The fill colour
// follows the accuracy tiers so a weak score reads as a warning.
type Meter struct {
	Label string
	Ratio float64
	Width int
}

func NewMeter(label string, ratio float64, width int) Meter {
	return Meter{Label: label, Ratio: ratio, Width: width}
}

// Filled returns how many of barWidth cells the ratio covers.
func (m Meter) Filled(barWidth int) int {
	return min(max(int(float64(barWidth)*m.Ratio+0.5), 0), barWidth)
}

func (m Meter) View() string {
	var b strings.Builder
	if m.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(m.Label))
		b.WriteString("  ")
	}

	pct := fmt.Sprintf("  %3d%%", int(m.Ratio*100+0.5))
	barWidth := max(m.Width-lipgloss.Width(b.String())-len(pct), 4)
	filled := m.Filled(barWidth)

	b.WriteString(lipgloss.NewStyle().
		Background(theme.AccuracyColor(m.Ratio)).
		Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(pct))
	return b.String()
}
