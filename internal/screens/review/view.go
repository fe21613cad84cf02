package review

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabz/internal/deck"
	"github.com/abhisek/vocabz/internal/session"
	"github.com/abhisek/vocabz/internal/ui/components"
	"github.com/abhisek/vocabz/internal/ui/theme"
)

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n  Loading cards...")
}

// front describes what each mode shows before the flip.
func (s *ReviewScreen) front(c deck.Card) components.CardTable {
	t := components.CardTable{Card: c}
	switch s.sess.Mode.ID {
	case deck.ModeListening:
		// Without audio playback the pinyin stands in for the sound.
		t.ShowPinyin = true
	case deck.ModeRecognition:
		t.ShowHanzi = true
	}
	return t
}

func (s *ReviewScreen) renderCard(width int) string {
	c := s.sess.Current
	if c == nil {
		return renderLoading(width)
	}
	revealed := s.sess.Phase == session.PhaseRevealed
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	// Info line.
	flags := s.sess.Flags(c.ID)
	var marks []string
	if flags.Starred {
		marks = append(marks, theme.Starred.Render("★ starred"))
	}
	if flags.Ignored {
		marks = append(marks, lipgloss.NewStyle().Foreground(theme.Error).Render("⊘ ignored"))
	}
	info := lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.cardInfo(*c))
	if len(marks) > 0 {
		info += "  " + strings.Join(marks, " ")
	}
	b.WriteString("  " + info + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	table := s.front(*c)
	if revealed {
		table.ShowHanzi = true
		table.ShowPinyin = !s.hidePinyin
		table.ShowDefWords = true
	}
	if s.sess.Mode.ID != deck.ModeProduction || revealed {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, table.View()))
		b.WriteString("\n\n")
	}

	if s.sess.Mode.ID == deck.ModeProduction || revealed {
		b.WriteString(center.Foreground(theme.Text).Bold(true).Render(c.Def))
		b.WriteString("\n\n")
	}
	if s.sess.Mode.ID == deck.ModeListening && c.Audio != "" && !revealed {
		b.WriteString(center.Foreground(theme.TextDim).Render("♪ " + c.Audio))
		b.WriteString("\n\n")
	}

	if s.typing() {
		b.WriteString(center.Render("Pinyin: " + s.input.View()))
		b.WriteString("\n")
		if revealed && !s.typedCorrect {
			b.WriteString(center.Foreground(theme.TextDim).Render("Expected: " + c.Pinyin))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	} else if !revealed {
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render("Space to flip"))
		b.WriteString("\n\n")
	}

	if s.last != nil {
		b.WriteString(center.Render(renderLast(*s.last)))
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString(center.Foreground(theme.Error).Render("Error: " + s.errMsg))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *ReviewScreen) cardInfo(c deck.Card) string {
	rec, ok := s.sess.Record(c.ID)
	parts := []string{c.ID}
	if c.HSK != "" {
		parts = append(parts, "HSK "+c.HSK)
	}
	if !ok || rec.Unanswered() {
		parts = append(parts, "new")
	} else {
		parts = append(parts, fmt.Sprintf("%d/%d correct", rec.TotalCorrect, rec.Total()))
		if rec.CorrectStreakLen > 1 {
			parts = append(parts, fmt.Sprintf("streak %d", rec.CorrectStreakLen))
		}
	}
	return strings.Join(parts, " · ")
}

func renderLast(r result) string {
	mark := theme.Correct.Render("✓")
	if !r.Correct {
		mark = theme.Incorrect.Render("✗")
	}
	return mark + lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf(" %s  %s  %s", r.Card.Hanzi, r.Card.Pinyin, r.Card.Def))
}

func (s *ReviewScreen) renderIdle(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Bold(true).Render("All caught up!"))
	b.WriteString("\n\n")

	if nr, ok := s.sess.NextReview(); ok {
		b.WriteString(center.Foreground(theme.Text).Render(
			fmt.Sprintf("%d card(s) due in %s (%s)", nr.ClusterCount, nr.ETALabel, nr.At.Local().Format("Mon 15:04"))))
	} else {
		b.WriteString(center.Foreground(theme.TextDim).Render("No cards match the current filter."))
	}
	b.WriteString("\n\n")

	sum := s.sess.Summary
	if sum.Answered > 0 {
		b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf(
			"This session: %d answered, %d correct (%.0f%%)", sum.Answered, sum.Correct, sum.Accuracy()*100)))
		b.WriteString("\n\n")
	}
	if s.last != nil {
		b.WriteString(center.Render(renderLast(*s.last)))
		b.WriteString("\n")
	}
	return b.String()
}
