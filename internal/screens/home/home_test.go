package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabz/internal/deck"
	"github.com/abhisek/vocabz/internal/router"
	"github.com/abhisek/vocabz/internal/screens/review"
	"github.com/abhisek/vocabz/internal/session/sessiontest"
	"github.com/abhisek/vocabz/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestHomeScreen_View(t *testing.T) {
	env := sessiontest.New(t, deck.ModeRecognition)
	h := New(env.Session, env.Store.EventRepo())

	view := h.View(100, 30)
	for _, want := range []string{"HSK 1", "3 due now", "REVIEW", "MODE: RECOGNITION"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if got := h.Status(); got != "HSK 1 · 3 due" {
		t.Errorf("Status() = %q", got)
	}
}

func TestHomeScreen_ReviewKeyPushesReview(t *testing.T) {
	env := sessiontest.New(t, deck.ModeRecognition)
	h := New(env.Session, env.Store.EventRepo())

	_, cmd := h.Update(keyPress('r'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*review.ReviewScreen); !ok {
		t.Errorf("expected a review screen, got %T", msg.Screen)
	}
}

func TestHomeScreen_ModeCycle(t *testing.T) {
	env := sessiontest.New(t, deck.ModeRecognition)
	h := New(env.Session, env.Store.EventRepo())

	h.Update(keyPress('m'))
	if env.Session.Mode.ID != deck.ModeProduction {
		t.Fatalf("Mode = %s, want production", env.Session.Mode.ID)
	}
	if !strings.Contains(h.View(100, 30), "MODE: PRODUCTION") {
		t.Error("menu label not refreshed")
	}

	var saved string
	ok, err := env.Store.SettingsRepo().Get(context.Background(), store.SettingMode, &saved)
	if err != nil || !ok || saved != deck.ModeProduction {
		t.Errorf("saved mode = %q, %v, %v", saved, ok, err)
	}

	h.Update(keyPress('m'))
	h.Update(keyPress('m'))
	if env.Session.Mode.ID != deck.ModeRecognition {
		t.Errorf("Mode = %s, want wrap to recognition", env.Session.Mode.ID)
	}
}

func TestHomeScreen_ResumeRefreshes(t *testing.T) {
	env := sessiontest.New(t, deck.ModeRecognition)
	h := New(env.Session, env.Store.EventRepo())

	for range 3 {
		if _, ok := env.Session.Next(); !ok {
			t.Fatal("expected a card")
		}
		if _, err := env.Session.Answer(context.Background(), true); err != nil {
			t.Fatal(err)
		}
	}
	cmd := h.Resume()
	if h.dueCount != 0 {
		t.Errorf("dueCount = %d, want 0", h.dueCount)
	}
	if !strings.Contains(h.next, "3 card(s) in 4 hours") {
		t.Errorf("next = %q", h.next)
	}

	h.Update(cmd())
	if h.today.Total != 3 || h.today.Correct != 3 {
		t.Errorf("today = %+v", h.today)
	}
	if !strings.Contains(h.View(100, 30), "Today: 3 answered") {
		t.Error("expected today line")
	}
}
