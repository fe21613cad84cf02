package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabz/internal/spacedrep"
	"github.com/abhisek/vocabz/internal/ui/theme"
)

// DueStrip renders due-bucket counts as one horizontal bar whose segment
// widths are proportional to the counts.
type DueStrip struct {
	Counts spacedrep.DueCounts
	Width  int
}

// NewDueStrip creates a due strip.
func NewDueStrip(counts spacedrep.DueCounts, width int) DueStrip {
	return DueStrip{Counts: counts, Width: width}
}

// SegmentWidths splits Width across the non-empty buckets. Every
// non-empty bucket gets at least one cell when there is room; the
// remainder goes to the largest buckets.
func (d DueStrip) SegmentWidths() []int {
	segs := d.Counts.Segments()
	widths := make([]int, len(segs))
	total := d.Counts.Total()
	if total == 0 || d.Width <= 0 {
		return widths
	}

	used := 0
	for i, n := range segs {
		if n == 0 {
			continue
		}
		w := n * d.Width / total
		if w == 0 {
			w = 1
		}
		widths[i] = w
		used += w
	}

	// Trim overflow from the widest segments, then pad the largest.
	for used > d.Width {
		i := widest(widths)
		widths[i]--
		used--
	}
	if used < d.Width {
		widths[largest(segs)] += d.Width - used
	}
	return widths
}

func widest(ws []int) int {
	best := 0
	for i, w := range ws {
		if w > ws[best] {
			best = i
		}
	}
	return best
}

func largest(ns []int) int {
	best := 0
	for i, n := range ns {
		if n > ns[best] {
			best = i
		}
	}
	return best
}

// View renders the bar.
func (d DueStrip) View() string {
	if d.Counts.Total() == 0 {
		return lipgloss.NewStyle().
			Background(theme.Border).
			Render(strings.Repeat(" ", max(d.Width, 0)))
	}
	var b strings.Builder
	for i, w := range d.SegmentWidths() {
		if w == 0 {
			continue
		}
		b.WriteString(lipgloss.NewStyle().
			Background(theme.DueStrip[i]).
			Render(strings.Repeat(" ", w)))
	}
	return b.String()
}

// Legend renders one "■ label n" entry per non-empty bucket.
func (d DueStrip) Legend() string {
	var parts []string
	for i, n := range d.Counts.Segments() {
		if n == 0 {
			continue
		}
		swatch := lipgloss.NewStyle().Foreground(theme.DueStrip[i]).Render("■")
		label := lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("%s %d", spacedrep.BucketLabels[i], n))
		parts = append(parts, swatch+" "+label)
	}
	return strings.Join(parts, "  ")
}
