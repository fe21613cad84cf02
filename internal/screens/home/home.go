package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/vocabz/internal/deck"
	"github.com/abhisek/vocabz/internal/router"
	"github.com/abhisek/vocabz/internal/screen"
	"github.com/abhisek/vocabz/internal/screens/filter"
	"github.com/abhisek/vocabz/internal/screens/history"
	"github.com/abhisek/vocabz/internal/screens/progress"
	"github.com/abhisek/vocabz/internal/screens/review"
	"github.com/abhisek/vocabz/internal/session"
	"github.com/abhisek/vocabz/internal/store"
	"github.com/abhisek/vocabz/internal/ui/components"
	"github.com/abhisek/vocabz/internal/ui/layout"
	"github.com/abhisek/vocabz/internal/ui/theme"
)

const (
	itemReview = iota
	itemStats
	itemHistory
	itemFilter
	itemMode
	itemQuit
)

// todayMsg carries the answer counts since midnight.
type todayMsg struct {
	Total   int
	Correct int
	Err     error
}

// HomeScreen shows the deck overview and the main menu.
type HomeScreen struct {
	sess   *session.Session
	events store.EventRepo
	menu   components.Menu

	dueCount int
	counts   components.DueStrip
	next     string
	today    todayMsg
	saveErr  error
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)
var _ screen.StatusProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen over a loaded session.
func New(sess *session.Session, events store.EventRepo) *HomeScreen {
	h := &HomeScreen{sess: sess, events: events}
	h.buildMenu()
	h.refresh()
	return h
}

func (h *HomeScreen) buildMenu() {
	selected := 0
	if len(h.menu.Items) > 0 {
		selected = h.menu.Selected
	}
	push := func(s func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: s()} }
		}
	}
	items := make([]components.MenuItem, itemQuit+1)
	items[itemReview] = components.MenuItem{
		Label:  "REVIEW",
		Hint:   fmt.Sprintf("%d due", h.dueCount),
		Action: push(func() screen.Screen { return review.New(h.sess) }),
	}
	items[itemStats] = components.MenuItem{
		Label:  "STATS",
		Action: push(func() screen.Screen { return progress.New(h.sess) }),
	}
	items[itemHistory] = components.MenuItem{
		Label:    "HISTORY",
		Action:   push(func() screen.Screen { return history.New(h.sess, h.events) }),
		Disabled: h.events == nil,
	}
	items[itemFilter] = components.MenuItem{
		Label:  "FILTER",
		Hint:   h.sess.Filter.Describe(),
		Action: push(func() screen.Screen { return filter.New(h.sess) }),
	}
	items[itemMode] = components.MenuItem{
		Label:  "MODE: " + strings.ToUpper(h.sess.Mode.Name),
		Hint:   h.sess.Mode.Description,
		Action: h.requestModeCycle,
	}
	items[itemQuit] = components.MenuItem{
		Label:  "QUIT",
		Action: func() tea.Cmd { return tea.Quit },
	}
	h.menu = components.NewMenu(items)
	h.menu.Selected = selected
}

// refresh recomputes everything derived from the session snapshot.
func (h *HomeScreen) refresh() {
	h.dueCount = h.sess.DueCount()
	h.counts = components.NewDueStrip(h.sess.DueCounts(), 0)
	h.next = ""
	if h.dueCount == 0 {
		if nr, ok := h.sess.NextReview(); ok {
			h.next = fmt.Sprintf("Next: %d card(s) in %s", nr.ClusterCount, nr.ETALabel)
		}
	}
	h.buildMenu()
}

// cycleModeMsg asks the screen to switch to the next mode. The switch
// happens in Update so the menu is rebuilt after the menu's own update.
type cycleModeMsg struct{}

func (h *HomeScreen) requestModeCycle() tea.Cmd {
	return func() tea.Msg { return cycleModeMsg{} }
}

func (h *HomeScreen) cycleMode() {
	modes := deck.Modes()
	next := modes[0]
	for i, m := range modes {
		if m.ID == h.sess.Mode.ID {
			next = modes[(i+1)%len(modes)]
			break
		}
	}
	// A failed save only means the mode is not remembered next time.
	h.saveErr = h.sess.SetMode(context.Background(), next.ID)
	h.refresh()
}

func (h *HomeScreen) loadToday() tea.Cmd {
	sess := h.sess
	return func() tea.Msg {
		total, correct, err := sess.Today(context.Background())
		return todayMsg{Total: total, Correct: correct, Err: err}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadToday()
}

// Resume refreshes counts after a review or filter change.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return h.loadToday()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// Status shows the deck and how many cards are due.
func (h *HomeScreen) Status() string {
	return fmt.Sprintf("%s · %d due", h.sess.Deck.Name, h.dueCount)
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "R", Description: "Review"},
		{Key: "M", Description: "Mode"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case todayMsg:
		h.today = msg
		return h, nil

	case cycleModeMsg:
		h.cycleMode()
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return h, h.menu.Items[itemReview].Action()
		case "s":
			return h, h.menu.Items[itemStats].Action()
		case "m":
			h.cycleMode()
			return h, nil
		case "q":
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(width-4, 72)
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Render(theme.Title.Render(h.sess.Deck.Name)))
	b.WriteString("\n")
	b.WriteString(center.Render(theme.Subtitle.Render(fmt.Sprintf(
		"%d cards · %s · %s", len(h.sess.Cards()), h.sess.Mode.Name, h.sess.Filter.Describe()))))
	b.WriteString("\n\n")

	due := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("%d due now", h.dueCount))
	if h.next != "" {
		due += lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + h.next)
	}
	b.WriteString(center.Render(due))
	b.WriteString("\n")

	strip := h.counts
	strip.Width = cw
	b.WriteString(center.Render(strip.View()))
	b.WriteString("\n")
	b.WriteString(center.Render(strip.Legend()))
	b.WriteString("\n\n")

	if h.today.Err == nil && h.today.Total > 0 {
		b.WriteString(center.Render(lipgloss.NewStyle().Foreground(theme.Secondary).Render(
			fmt.Sprintf("Today: %d answered, %d correct", h.today.Total, h.today.Correct))))
		b.WriteString("\n\n")
	}

	if h.saveErr != nil {
		b.WriteString(center.Render(lipgloss.NewStyle().Foreground(theme.Error).Render(
			"Could not save mode: " + h.saveErr.Error())))
		b.WriteString("\n\n")
	}

	if n := len(h.sess.Deck.Invalid); n > 0 {
		b.WriteString(center.Render(lipgloss.NewStyle().Foreground(theme.Error).Render(
			fmt.Sprintf("%d invalid card(s) skipped; run `vocabz deck validate` for details", n))))
		b.WriteString("\n\n")
	}

	menu := theme.Card.Width(cw).Render(h.menu.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	return b.String()
}
