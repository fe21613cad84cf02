package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabz/internal/deck"
	"github.com/abhisek/vocabz/internal/router"
	"github.com/abhisek/vocabz/internal/session/sessiontest"
)

func newModel(t *testing.T, startInReview bool) AppModel {
	t.Helper()
	env := sessiontest.New(t, deck.ModeRecognition)
	m := newAppModel(Options{
		Session:       env.Session,
		Events:        env.Store.EventRepo(),
		StartInReview: startInReview,
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(AppModel)
}

func TestAppModel_StartInReview(t *testing.T) {
	m := newModel(t, true)
	if m.router.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", m.router.Depth())
	}
	if !strings.HasPrefix(m.router.Active().Title(), "Review") {
		t.Errorf("active = %q, want review", m.router.Active().Title())
	}
}

func TestAppModel_EscFromUnansweredReviewPops(t *testing.T) {
	m := newModel(t, true)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	if _, ok := msg.(router.PopScreenMsg); !ok {
		t.Fatalf("expected PopScreenMsg, got %T", msg)
	}
	updated, _ := m.Update(msg)
	if updated.(AppModel).router.Depth() != 1 {
		t.Error("expected to be back on home")
	}
}

func TestAppModel_EscAtHomeIsNoop(t *testing.T) {
	m := newModel(t, false)
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("expected no command at the bottom of the stack")
	}
}

func TestAppModel_ViewHasHeaderStatus(t *testing.T) {
	m := newModel(t, false)
	content := m.render()
	if !strings.Contains(content, "vocabz") {
		t.Error("expected app name in header")
	}
	if !strings.Contains(content, "3 due") {
		t.Error("expected due count in header status")
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newModel(t, false)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(updated.(AppModel).render(), "Terminal too small") {
		t.Error("expected min size message")
	}
}
