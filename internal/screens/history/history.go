package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabz/internal/deck"
	"github.com/abhisek/vocabz/internal/router"
	"github.com/abhisek/vocabz/internal/screen"
	"github.com/abhisek/vocabz/internal/session"
	"github.com/abhisek/vocabz/internal/store"
	"github.com/abhisek/vocabz/internal/ui/layout"
	"github.com/abhisek/vocabz/internal/ui/theme"
)

// answerLimit caps how many answers are loaded.
const answerLimit = 500

// Sitting groups the answers of one review session.
type Sitting struct {
	SessionID string
	Mode      string
	Start     time.Time
	End       time.Time
	Answers   []store.AnswerEvent // oldest first
	Correct   int
}

// Accuracy returns the share of correct answers.
func (s Sitting) Accuracy() float64 {
	if len(s.Answers) == 0 {
		return 0
	}
	return float64(s.Correct) / float64(len(s.Answers))
}

// GroupSittings groups newest-first answers by session, newest sitting first.
func GroupSittings(events []store.AnswerEvent) []Sitting {
	var out []Sitting
	index := make(map[string]int)
	for _, e := range events {
		i, ok := index[e.SessionID]
		if !ok {
			i = len(out)
			index[e.SessionID] = i
			out = append(out, Sitting{SessionID: e.SessionID, Mode: e.Mode, End: e.AnsweredAt})
		}
		s := &out[i]
		s.Answers = append([]store.AnswerEvent{e}, s.Answers...)
		s.Start = e.AnsweredAt
		if e.Correct {
			s.Correct++
		}
	}
	return out
}

type historyLoadedMsg struct {
	Sittings []Sitting
	Err      error
}

// HistoryScreen lists past review sittings of the current deck.
type HistoryScreen struct {
	sess     *session.Session
	events   store.EventRepo
	sittings []Sitting
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(sess *session.Session, events store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		sess:     sess,
		events:   events,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	deckID := s.sess.Deck.ID
	return func() tea.Msg {
		events, err := s.events.RecentAnswers(context.Background(), deckID, store.QueryOpts{Limit: answerLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Sittings: GroupSittings(events)}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sittings = msg.Sittings
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sittings)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sittings) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No reviews yet. Start reviewing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, st := range s.sittings {
		dur := st.End.Sub(st.Start)
		mins := int(dur.Minutes())
		secs := int(dur.Seconds()) % 60

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		mode := deck.ParseMode(st.Mode).Name
		line := fmt.Sprintf("%s%s  %d:%02d  %-11s  %3d answers  %3.0f%% correct",
			prefix, st.Start.Local().Format("Jan 02 15:04"), mins, secs, mode,
			len(st.Answers), st.Accuracy()*100)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, a := range st.Answers {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderAnswer(a)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderAnswer(a store.AnswerEvent) string {
	label := a.ItemID
	if c, ok := s.sess.Deck.Card(a.ItemID); ok {
		label = fmt.Sprintf("%s  %s", c.Hanzi, c.Pinyin)
	}
	mark := theme.Correct.Render("✓")
	if !a.Correct {
		mark = theme.Incorrect.Render("✗")
	}
	return mark + lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("  %s  %-24s %5.1fs", a.AnsweredAt.Local().Format("15:04:05"), label, a.ResponseTime.Seconds()))
}
