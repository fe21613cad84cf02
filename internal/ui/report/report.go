// Package report renders deck progress for the stats screen and the
// stats command.
package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabz/internal/deck"
	"github.com/abhisek/vocabz/internal/session"
	"github.com/abhisek/vocabz/internal/spacedrep"
	"github.com/abhisek/vocabz/internal/stats"
	"github.com/abhisek/vocabz/internal/ui/components"
	"github.com/abhisek/vocabz/internal/ui/theme"
)

// Report is everything shown about one deck in one mode.
type Report struct {
	DeckName string
	ModeName string
	Filter   string
	Metrics  stats.Metrics
	Counts   spacedrep.DueCounts
	DueNow   int
	Next     *spacedrep.NextReview
	// Cards resolves item ids to cards for the top lists.
	Cards func(id string) (deck.Card, bool)
	// TopN limits the strongest and weakest lists; zero shows none.
	TopN int
}

// FromSession snapshots a session's deck and mode.
func FromSession(sess *session.Session) Report {
	next, _ := sess.NextReview()
	return Report{
		DeckName: sess.Deck.Name,
		ModeName: sess.Mode.Name,
		Filter:   sess.Filter.Describe(),
		Metrics:  sess.Metrics(),
		Counts:   sess.DueCounts(),
		DueNow:   sess.DueCount(),
		Next:     next,
		Cards:    sess.Deck.Card,
		TopN:     stats.TopN,
	}
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders counts as one block character each, scaled to the
// largest count. Zero counts render as spaces.
func Sparkline(counts []int) string {
	peak := 0
	for _, n := range counts {
		peak = max(peak, n)
	}
	var b strings.Builder
	for _, n := range counts {
		if n == 0 || peak == 0 {
			b.WriteRune(' ')
			continue
		}
		i := (n*len(sparkLevels) - 1) / peak
		b.WriteRune(sparkLevels[min(i, len(sparkLevels)-1)])
	}
	return b.String()
}

func heading(s string) string {
	return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s)
}

func dim(s string) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(s)
}

// Render draws the report at the given width.
func (r Report) Render(width int) string {
	m := r.Metrics
	inner := max(width-4, 20)

	var b strings.Builder
	title := r.DeckName
	if r.ModeName != "" {
		title += " · " + r.ModeName
	}
	b.WriteString(heading(title))
	b.WriteString("\n")
	if r.Filter != "" {
		b.WriteString(dim(r.Filter))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Cards %d   Reviewed %d   New %d   Answers %d✓ %d✗\n",
		m.Total, m.Reviewed, m.New, m.TotalCorrect, m.TotalIncorrect))
	b.WriteString(components.NewMeter("Accuracy", m.OverallAccuracy, min(inner, 60)).View())
	b.WriteString("\n\n")

	b.WriteString(heading("Due"))
	b.WriteString("\n")
	strip := components.NewDueStrip(r.Counts, min(inner, 60))
	b.WriteString(strip.View())
	b.WriteString("\n")
	b.WriteString(strip.Legend())
	b.WriteString("\n")
	switch {
	case r.DueNow > 0:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("%d due now", r.DueNow)))
		b.WriteString("\n")
	case r.Next != nil:
		b.WriteString(dim(fmt.Sprintf("Next: %d card(s) in %s", r.Next.ClusterCount, r.Next.ETALabel)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(heading("Next 24h"))
	b.WriteString(dim("  (15 min slots)"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(Sparkline(m.DueRate[:])))
	b.WriteString("\n\n")

	b.WriteString(heading("Correct streaks"))
	b.WriteString("\n")
	for i, n := range m.StreakHistogram {
		b.WriteString(fmt.Sprintf("%-4s %s %d\n", stats.StreakBucketLabels[i], bar(n, m.Reviewed, 30), n))
	}
	b.WriteString(dim(fmt.Sprintf("longest %d   average %.1f   longest miss run %d",
		m.MaxCorrectStreak, m.AvgCorrectStreak, m.MaxIncorrectStreak)))
	b.WriteString("\n")

	if r.TopN > 0 && len(m.Strongest) > 0 {
		b.WriteString("\n")
		left := r.topList("Strongest", m.Strongest)
		right := r.topList("Weakest", m.Weakest)
		if inner >= 2*lipgloss.Width(left)+4 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
		} else {
			b.WriteString(left + "\n" + right)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func bar(n, total, width int) string {
	w := 0
	if total > 0 {
		w = n * width / total
	}
	return lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", w)) +
		strings.Repeat(" ", width-w)
}

func (r Report) topList(title string, scores []stats.ItemScore) string {
	var b strings.Builder
	b.WriteString(heading(title))
	for i, s := range scores {
		if i == r.TopN {
			break
		}
		label := s.ItemID
		if r.Cards != nil {
			if c, ok := r.Cards(s.ItemID); ok {
				label = fmt.Sprintf("%s %s", c.Hanzi, c.Pinyin)
			}
		}
		b.WriteString(fmt.Sprintf("\n%3.0f%% %2d/%-2d %s", s.Accuracy*100, s.Correct, s.Total(), label))
	}
	return b.String()
}
