package review

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabz/internal/deck"
	"github.com/abhisek/vocabz/internal/router"
	"github.com/abhisek/vocabz/internal/screen"
	"github.com/abhisek/vocabz/internal/screens/summary"
	"github.com/abhisek/vocabz/internal/session"
	"github.com/abhisek/vocabz/internal/store"
	"github.com/abhisek/vocabz/internal/ui/components"
	"github.com/abhisek/vocabz/internal/ui/layout"
)

// ReviewScreen shows due cards one at a time and records grades.
type ReviewScreen struct {
	sess  *session.Session
	input components.TextInput

	// typedCorrect is the grade of a submitted production answer.
	typedCorrect bool
	hidePinyin   bool
	last         *result
	errMsg       string
}

// result is the outcome of the previous card, shown under the next one.
type result struct {
	Card    deck.Card
	Correct bool
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)
var _ screen.StatusProvider = (*ReviewScreen)(nil)
var _ screen.BackHandler = (*ReviewScreen)(nil)

// New creates a review screen over a loaded session.
func New(sess *session.Session) *ReviewScreen {
	return &ReviewScreen{
		sess:  sess,
		input: components.NewTextInput("type the pinyin...", 64),
	}
}

func (s *ReviewScreen) typing() bool {
	return s.sess.Mode.ID == deck.ModeProduction
}

func (s *ReviewScreen) Init() tea.Cmd {
	return s.advance()
}

// advance moves to the next due card.
func (s *ReviewScreen) advance() tea.Cmd {
	s.input.Reset()
	s.typedCorrect = false
	if _, ok := s.sess.Next(); !ok {
		return nil
	}
	if s.typing() {
		return s.input.Init()
	}
	return nil
}

func (s *ReviewScreen) Title() string {
	return "Review · " + s.sess.Mode.Name
}

// Status shows the due count and session score.
func (s *ReviewScreen) Status() string {
	sum := s.sess.Summary
	return fmt.Sprintf("%d due · %d/%d", s.sess.DueCount(), sum.Correct, sum.Answered)
}

// Back ends the review, showing a summary when anything was answered.
func (s *ReviewScreen) Back() tea.Cmd {
	if s.sess.Summary.Answered == 0 {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	sum := summary.FromSession(s.sess, s.sess.Now())
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: summary.New(sum)} }
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	switch s.sess.Phase {
	case session.PhasePrompt:
		if s.typing() {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Check"},
				{Key: "Esc", Description: "Finish"},
			}
		}
		return []layout.KeyHint{
			{Key: "Space", Description: "Flip"},
			{Key: "S", Description: "Star"},
			{Key: "I", Description: "Ignore"},
			{Key: "Esc", Description: "Finish"},
		}
	case session.PhaseRevealed:
		hints := []layout.KeyHint{
			{Key: "→/Y", Description: "Knew it"},
			{Key: "←/N", Description: "Missed"},
		}
		if s.typing() {
			hints = []layout.KeyHint{
				{Key: "Enter", Description: "Next"},
				{Key: "Y/N", Description: "Override"},
			}
		}
		return append(hints,
			layout.KeyHint{Key: "P", Description: "Pinyin"},
			layout.KeyHint{Key: "S", Description: "Star"},
			layout.KeyHint{Key: "I", Description: "Ignore"},
		)
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Finish"},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.typing() && s.sess.Phase == session.PhasePrompt {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch s.sess.Phase {
	case session.PhasePrompt:
		return s.handlePromptKey(kmsg)
	case session.PhaseRevealed:
		return s.handleRevealedKey(kmsg)
	case session.PhaseIdle:
		switch kmsg.String() {
		case "enter", "q":
			return s, s.Back()
		case "r":
			// Cards may have come due while idle.
			return s, s.advance()
		}
	}
	return s, nil
}

func (s *ReviewScreen) handlePromptKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.typing() {
		if msg.String() == "enter" {
			s.typedCorrect = s.sess.CheckTyped(s.input.Value())
			s.input.Submit(s.typedCorrect)
			s.sess.Reveal()
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch msg.String() {
	case "space", " ", "enter", "up", "down":
		s.sess.Reveal()
	case "s":
		s.toggle(store.FlagStarred)
	case "i":
		s.toggle(store.FlagIgnored)
	}
	return s, nil
}

func (s *ReviewScreen) handleRevealedKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "right", "y", "l":
		return s, s.grade(true)
	case "left", "n", "h":
		return s, s.grade(false)
	case "enter", "space", " ":
		if s.typing() {
			return s, s.grade(s.typedCorrect)
		}
	case "p", "up":
		s.hidePinyin = !s.hidePinyin
	case "s":
		s.toggle(store.FlagStarred)
	case "i":
		s.toggle(store.FlagIgnored)
	}
	return s, nil
}

func (s *ReviewScreen) grade(correct bool) tea.Cmd {
	c := *s.sess.Current
	if _, err := s.sess.Answer(context.Background(), correct); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	s.last = &result{Card: c, Correct: correct}
	return s.advance()
}

func (s *ReviewScreen) toggle(kind store.FlagKind) {
	if _, err := s.sess.ToggleFlag(context.Background(), kind); err != nil {
		s.errMsg = err.Error()
		return
	}
	s.errMsg = ""
}

func (s *ReviewScreen) View(width, height int) string {
	switch s.sess.Phase {
	case session.PhaseIdle:
		return s.renderIdle(width)
	case session.PhasePrompt, session.PhaseRevealed:
		return s.renderCard(width)
	}
	return renderLoading(width)
}
