package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/vocabz/internal/deck"
	"github.com/abhisek/vocabz/internal/session/sessiontest"
	"github.com/abhisek/vocabz/internal/store"
)

func TestGroupSittings(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	// Newest first, as RecentAnswers returns them.
	events := []store.AnswerEvent{
		{Sequence: 5, SessionID: "s2", ItemID: "c1", Correct: true, AnsweredAt: t0.Add(2 * time.Hour)},
		{Sequence: 4, SessionID: "s2", ItemID: "c2", Correct: false, AnsweredAt: t0.Add(time.Hour + time.Minute)},
		{Sequence: 3, SessionID: "s1", ItemID: "c3", Correct: true, AnsweredAt: t0.Add(2 * time.Minute)},
		{Sequence: 2, SessionID: "s1", ItemID: "c2", Correct: true, AnsweredAt: t0.Add(time.Minute)},
		{Sequence: 1, SessionID: "s1", ItemID: "c1", Correct: false, AnsweredAt: t0},
	}

	got := GroupSittings(events)
	if len(got) != 2 {
		t.Fatalf("expected 2 sittings, got %d", len(got))
	}
	if got[0].SessionID != "s2" || got[1].SessionID != "s1" {
		t.Errorf("unexpected order %q, %q", got[0].SessionID, got[1].SessionID)
	}

	s1 := got[1]
	if len(s1.Answers) != 3 || s1.Answers[0].Sequence != 1 {
		t.Errorf("expected s1 answers oldest first, got %+v", s1.Answers)
	}
	if !s1.Start.Equal(t0) || !s1.End.Equal(t0.Add(2*time.Minute)) {
		t.Errorf("unexpected span %v - %v", s1.Start, s1.End)
	}
	if s1.Correct != 2 {
		t.Errorf("Correct = %d, want 2", s1.Correct)
	}
	if acc := got[0].Accuracy(); acc != 0.5 {
		t.Errorf("Accuracy = %v, want 0.5", acc)
	}
}

func TestGroupSittingsEmpty(t *testing.T) {
	if got := GroupSittings(nil); len(got) != 0 {
		t.Errorf("expected no sittings, got %d", len(got))
	}
	if (Sitting{}).Accuracy() != 0 {
		t.Error("expected zero accuracy for an empty sitting")
	}
}

func TestHistoryScreen_LoadsSittings(t *testing.T) {
	env := sessiontest.New(t, deck.ModeRecognition)
	sess := env.Session
	for _, correct := range []bool{true, false} {
		if _, ok := sess.Next(); !ok {
			t.Fatal("expected a card")
		}
		env.Clock.Advance(5 * time.Second)
		if _, err := sess.Answer(context.Background(), correct); err != nil {
			t.Fatal(err)
		}
	}

	s := New(sess, env.Store.EventRepo())
	if !strings.Contains(s.View(100, 30), "Loading") {
		t.Error("expected loading view before Init completes")
	}
	s.Update(s.Init()())
	if len(s.sittings) != 1 {
		t.Fatalf("expected 1 sitting, got %d", len(s.sittings))
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "2 answers") || !strings.Contains(view, "50% correct") {
		t.Errorf("unexpected view %q", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(100, 30), "谢 谢") {
		t.Error("expected expanded answers with card labels")
	}
}
