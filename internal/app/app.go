package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabz/internal/logger"
	"github.com/abhisek/vocabz/internal/router"
	"github.com/abhisek/vocabz/internal/screen"
	"github.com/abhisek/vocabz/internal/screens/home"
	"github.com/abhisek/vocabz/internal/screens/review"
	"github.com/abhisek/vocabz/internal/session"
	"github.com/abhisek/vocabz/internal/store"
	"github.com/abhisek/vocabz/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Session *session.Session
	Events  store.EventRepo
	Logger  *logger.Logger
	// StartInReview opens the review screen on top of home.
	StartInReview bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	log    *logger.Logger
	start  tea.Cmd
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen at the bottom
// of the stack.
func newAppModel(opts Options) AppModel {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	homeScreen := home.New(opts.Session, opts.Events)
	m := AppModel{
		router: router.New(homeScreen),
		log:    log,
		start:  homeScreen.Init(),
	}
	if opts.StartInReview {
		m.start = tea.Batch(m.start, m.router.Push(review.New(opts.Session)))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.start
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m, m.router.Back()
		}

	case router.PushScreenMsg:
		m.log.Debug("push screen", "screen", msg.Screen.Title(), "depth", m.router.Depth()+1)
	case router.PopScreenMsg:
		m.log.Debug("pop screen", "depth", m.router.Depth())
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	status := ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
