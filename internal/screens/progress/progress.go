package progress

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabz/internal/router"
	"github.com/abhisek/vocabz/internal/screen"
	"github.com/abhisek/vocabz/internal/session"
	"github.com/abhisek/vocabz/internal/ui/layout"
	"github.com/abhisek/vocabz/internal/ui/report"
)

// ProgressScreen shows progress metrics for the session's deck and mode.
type ProgressScreen struct {
	sess   *session.Session
	report report.Report
	offset int
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a progress screen.
func New(sess *session.Session) *ProgressScreen {
	return &ProgressScreen{sess: sess}
}

func (s *ProgressScreen) Init() tea.Cmd {
	s.report = report.FromSession(s.sess)
	return nil
}

func (s *ProgressScreen) Title() string {
	return "Stats"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			s.offset++
		}
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	body := s.report.Render(min(width, 100))
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	rows := max(height-2, 1)
	s.offset = min(s.offset, max(len(lines)-rows, 0))
	end := min(s.offset+rows, len(lines))
	visible := lipgloss.JoinVertical(lipgloss.Left, lines[s.offset:end]...)
	return lipgloss.NewStyle().Padding(1, 2).Render(visible)
}
