package report

import (
	"strings"
	"testing"

	"github.com/abhisek/vocabz/internal/deck"
	"github.com/abhisek/vocabz/internal/session/sessiontest"
	"github.com/abhisek/vocabz/internal/spacedrep"
	"github.com/abhisek/vocabz/internal/stats"
)

func TestSparkline(t *testing.T) {
	tests := []struct {
		in   []int
		want string
	}{
		{[]int{0, 0}, "  "},
		{[]int{8, 4, 1, 0}, "█▄▁ "},
		{[]int{1}, "█"},
	}
	for _, tt := range tests {
		if got := Sparkline(tt.in); got != tt.want {
			t.Errorf("Sparkline(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func testReport() Report {
	return Report{
		DeckName: "HSK 1",
		ModeName: "Recognition",
		Filter:   "all cards",
		Metrics: stats.Metrics{
			Total: 3, Reviewed: 2, New: 1, TotalCorrect: 3, TotalIncorrect: 1,
			OverallAccuracy: 0.75,
			StreakHistogram: [5]int{1, 0, 1, 0, 0},
			Strongest:       []stats.ItemScore{{ItemID: "c1", Correct: 3, Accuracy: 1}},
			Weakest:         []stats.ItemScore{{ItemID: "c2", Incorrect: 1}},
		},
		Counts: spacedrep.DueCounts{Overdue: 1, DueLater: 2},
		DueNow: 1,
		Cards: func(id string) (deck.Card, bool) {
			if id == "c1" {
				return deck.Card{ID: "c1", Hanzi: "你好", Pinyin: "nǐhǎo"}, true
			}
			return deck.Card{}, false
		},
		TopN: 10,
	}
}

func TestRender(t *testing.T) {
	out := testReport().Render(100)
	for _, want := range []string{
		"HSK 1 · Recognition",
		"Cards 3   Reviewed 2   New 1",
		"1 due now",
		"Strongest",
		"你好 nǐhǎo",
		"c2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderNextWhenNothingDue(t *testing.T) {
	r := testReport()
	r.DueNow = 0
	r.Next = &spacedrep.NextReview{ClusterCount: 2, ETALabel: "3 hours"}
	out := r.Render(100)
	if !strings.Contains(out, "Next: 2 card(s) in 3 hours") {
		t.Error("expected next-due message")
	}
}

func TestRenderWithoutTopLists(t *testing.T) {
	r := testReport()
	r.TopN = 0
	if strings.Contains(r.Render(100), "Strongest") {
		t.Error("expected no top lists with TopN 0")
	}
}

func TestFromSession(t *testing.T) {
	env := sessiontest.New(t, deck.ModeRecognition)
	r := FromSession(env.Session)

	if r.DeckName != "HSK 1" || r.ModeName != "Recognition" {
		t.Errorf("report for %q/%q, want HSK 1/Recognition", r.DeckName, r.ModeName)
	}
	if r.DueNow != 3 || r.Counts.Overdue != 3 {
		t.Errorf("DueNow = %d, Overdue = %d, want 3 and 3", r.DueNow, r.Counts.Overdue)
	}
	if r.Metrics.Total != 3 || r.Metrics.New != 3 {
		t.Errorf("metrics = %+v, want 3 new cards", r.Metrics)
	}
	if r.Next != nil {
		t.Errorf("Next = %+v, want nil before any answer", r.Next)
	}
	if c, ok := r.Cards("c3"); !ok || c.Hanzi != "猫" {
		t.Errorf("Cards(c3) = %+v, %v", c, ok)
	}
}
