package filter

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabz/internal/deck"
	"github.com/abhisek/vocabz/internal/router"
	"github.com/abhisek/vocabz/internal/screen"
	"github.com/abhisek/vocabz/internal/session"
	"github.com/abhisek/vocabz/internal/ui/layout"
	"github.com/abhisek/vocabz/internal/ui/theme"
)

type optionKind int

const (
	optStarred optionKind = iota
	optIgnored
	optHSK
	optTag
)

// option is one toggleable row.
type option struct {
	kind  optionKind
	value string
}

// FilterScreen edits the session's card filter.
type FilterScreen struct {
	sess     *session.Session
	draft    deck.Filter
	options  []option
	selected int
	errMsg   string
}

var _ screen.Screen = (*FilterScreen)(nil)
var _ screen.KeyHintProvider = (*FilterScreen)(nil)

// New creates a filter screen seeded with the session's filter.
func New(sess *session.Session) *FilterScreen {
	f := sess.Filter
	draft := deck.Filter{
		Tags:        slices.Clone(f.Tags),
		HSK:         slices.Clone(f.HSK),
		StarredOnly: f.StarredOnly,
		IgnoredOnly: f.IgnoredOnly,
	}
	opts := []option{{kind: optStarred}, {kind: optIgnored}}
	for _, h := range sess.Deck.AvailableHSK() {
		opts = append(opts, option{kind: optHSK, value: h})
	}
	for _, t := range sess.Deck.AvailableTags() {
		opts = append(opts, option{kind: optTag, value: t})
	}
	return &FilterScreen{sess: sess, draft: draft, options: opts}
}

func (s *FilterScreen) Init() tea.Cmd {
	return nil
}

func (s *FilterScreen) Title() string {
	return "Filter"
}

func (s *FilterScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Toggle"},
		{Key: "Enter", Description: "Apply"},
		{Key: "C", Description: "Clear"},
		{Key: "Esc", Description: "Cancel"},
	}
}

// Draft returns the filter as currently edited.
func (s *FilterScreen) Draft() deck.Filter {
	return s.draft
}

func (s *FilterScreen) checked(o option) bool {
	switch o.kind {
	case optStarred:
		return s.draft.StarredOnly
	case optIgnored:
		return s.draft.IgnoredOnly
	case optHSK:
		return slices.Contains(s.draft.HSK, o.value)
	default:
		return slices.Contains(s.draft.Tags, o.value)
	}
}

func toggleValue(list []string, v string) []string {
	if i := slices.Index(list, v); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	out := append(list, v)
	slices.Sort(out)
	return out
}

func (s *FilterScreen) toggle(o option) {
	switch o.kind {
	case optStarred:
		s.draft.StarredOnly = !s.draft.StarredOnly
	case optIgnored:
		s.draft.IgnoredOnly = !s.draft.IgnoredOnly
	case optHSK:
		s.draft.HSK = toggleValue(s.draft.HSK, o.value)
	case optTag:
		s.draft.Tags = toggleValue(s.draft.Tags, o.value)
	}
}

// matching counts the cards the draft keeps before the flag toggles.
func (s *FilterScreen) matching() int {
	return len(s.draft.Apply(s.sess.Deck.Cards))
}

func (s *FilterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.options)-1 {
			s.selected++
		}
	case "space", " ", "x":
		s.toggle(s.options[s.selected])
	case "c":
		s.draft = deck.Filter{}
	case "enter":
		if err := s.sess.SetFilter(context.Background(), s.draft); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *FilterScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s  ·  %d of %d cards", s.draft.Describe(), s.matching(), len(s.sess.Deck.Cards))))
	b.WriteString("\n\n")

	var rows []string
	section := optionKind(-1)
	for i, o := range s.options {
		if o.kind != section && o.kind >= optHSK {
			title := "HSK level"
			if o.kind == optTag {
				title = "Tags"
			}
			rows = append(rows, "", lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(title))
		}
		section = o.kind

		box := "[ ]"
		if s.checked(o) {
			box = "[x]"
		}
		label := o.value
		switch o.kind {
		case optStarred:
			label = "Starred only"
		case optIgnored:
			label = "Ignored only"
		case optHSK:
			label = "HSK " + o.value
		}
		style := theme.Unselected
		prefix := "  "
		if i == s.selected {
			style = theme.Selected
			prefix = "▸ "
		}
		rows = append(rows, style.Render(prefix+box+" "+label))
	}

	list := strings.Join(rows, "\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Render(list)))
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Error).Render("Error: " + s.errMsg))
	}
	return b.String()
}
