package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabz/internal/deck"
	"github.com/abhisek/vocabz/internal/router"
	"github.com/abhisek/vocabz/internal/screen"
	"github.com/abhisek/vocabz/internal/session"
	"github.com/abhisek/vocabz/internal/spacedrep"
	"github.com/abhisek/vocabz/internal/ui/layout"
	"github.com/abhisek/vocabz/internal/ui/theme"
)

// maxMissedShown caps the missed-card list.
const maxMissedShown = 8

// SessionSummary is what the summary screen reports about a finished review.
type SessionSummary struct {
	DeckName string
	ModeName string
	Duration time.Duration
	Answered int
	Correct  int
	Accuracy float64
	DueLeft  int
	Next     *spacedrep.NextReview
	Missed   []deck.Card
}

// FromSession builds a summary from a session at now.
func FromSession(sess *session.Session, now time.Time) *SessionSummary {
	sum := sess.Summary
	out := &SessionSummary{
		DeckName: sess.Deck.Name,
		ModeName: sess.Mode.Name,
		Duration: now.Sub(sum.StartedAt),
		Answered: sum.Answered,
		Correct:  sum.Correct,
		Accuracy: sum.Accuracy(),
		DueLeft:  sess.DueCount(),
	}
	if nr, ok := sess.NextReview(); ok {
		out.Next = nr
	}
	for _, id := range sum.Missed {
		if c, ok := sess.Deck.Card(id); ok {
			out.Missed = append(out.Missed, c)
		}
	}
	return out
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *SessionSummary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *SessionSummary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Session complete!"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center.Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s · %s · %d:%02d", sum.DeckName, sum.ModeName, mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Answered: %d        Correct: %d        Accuracy: %.0f%%",
		sum.Answered, sum.Correct, sum.Accuracy*100)
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n\n")

	switch {
	case sum.DueLeft > 0:
		b.WriteString(center.Foreground(theme.Accent).Render(
			fmt.Sprintf("%d card(s) still due", sum.DueLeft)))
	case sum.Next != nil:
		b.WriteString(center.Foreground(theme.Secondary).Render(
			fmt.Sprintf("Next: %d card(s) in %s", sum.Next.ClusterCount, sum.Next.ETALabel)))
	}
	b.WriteString("\n\n")

	if len(sum.Missed) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Missed")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for i, c := range sum.Missed {
			if i == maxMissedShown {
				b.WriteString(center.Foreground(theme.TextDim).Render(
					fmt.Sprintf("… and %d more", len(sum.Missed)-maxMissedShown)))
				b.WriteString("\n")
				break
			}
			line := fmt.Sprintf("%s  %s  %s", c.Hanzi, c.Pinyin, c.Def)
			b.WriteString(center.Foreground(theme.Error).Render(line))
			b.WriteString("\n")
		}
	}

	return b.String()
}
