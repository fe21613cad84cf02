package spacedrep

import (
	"fmt"
	"testing"
	"time"
)

func TestBucketByTimeToDue_Scenario(t *testing.T) {
	now := t0.Add(100 * time.Hour)
	recs := map[string]PerformanceRecord{}
	var items []card
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("overdue-%d", i)
		recs[id] = correctRun(1, now.Add(-5*time.Hour))
		items = append(items, card(id))
	}
	for i := 0; i < 7; i++ {
		id := fmt.Sprintf("later-%d", i)
		recs[id] = correctRun(3, now)
		items = append(items, card(id))
	}

	got := BucketByTimeToDue(newRequest(items, history(recs), now))
	want := DueCounts{Overdue: 3, DueLater: 7}
	if got != want {
		t.Errorf("BucketByTimeToDue() = %+v, want %+v", got, want)
	}
}

func TestBucketByTimeToDue_Boundaries(t *testing.T) {
	now := t0.Add(100 * time.Hour)
	// A single correct answer gives a 4h interval, two give 24h.
	recs := map[string]PerformanceRecord{
		"in10m":  correctRun(1, now.Add(-4*time.Hour+10*time.Minute)),
		"in15m":  correctRun(1, now.Add(-4*time.Hour+15*time.Minute)),
		"in30m":  correctRun(1, now.Add(-4*time.Hour+30*time.Minute)),
		"in3h":   correctRun(1, now.Add(-time.Hour)),
		"in23h":  correctRun(2, now.Add(-time.Hour)),
		"in24h":  correctRun(2, now),
		"exact":  correctRun(1, now.Add(-4*time.Hour)),
		"overdu": correctRun(1, now.Add(-9*time.Hour)),
	}
	items := []card{"in10m", "in15m", "in30m", "in3h", "in23h", "in24h", "exact", "overdu", "new"}

	got := BucketByTimeToDue(newRequest(items, history(recs), now))
	want := DueCounts{
		Overdue:      3, // exact, overdu, new
		DueSoon15Min: 1,
		DueSoon1h:    2,
		DueSoon6h:    1,
		DueSoon24h:   1,
		DueLater:     1,
	}
	if got != want {
		t.Errorf("BucketByTimeToDue() = %+v, want %+v", got, want)
	}
	if got.Total() != len(items) {
		t.Errorf("Total() = %d, want %d", got.Total(), len(items))
	}
}

func TestBucketByTimeToDue_IgnoresPredicate(t *testing.T) {
	req := newRequest([]card{"a", "b"}, History{}, t0)
	req.Include = func(card) bool { return false }
	if got := BucketByTimeToDue(req).Total(); got != 2 {
		t.Errorf("Total() = %d, want 2", got)
	}
}

func TestNextReviewSummary_NoneReviewed(t *testing.T) {
	if s, ok := NextReviewSummary(newRequest([]card{"a", "b"}, History{}, t0)); ok {
		t.Errorf("NextReviewSummary() = %+v, want none", s)
	}
}

func TestNextReviewSummary_AllDue(t *testing.T) {
	h := history(map[string]PerformanceRecord{"a": correctRun(1, t0)})
	if _, ok := NextReviewSummary(newRequest([]card{"a"}, h, t0.Add(5*time.Hour))); ok {
		t.Error("expected none when every reviewed item is already due")
	}
}

func TestNextReviewSummary_Cluster(t *testing.T) {
	now := t0.Add(10 * time.Hour)
	h := history(map[string]PerformanceRecord{
		"a": correctRun(1, now.Add(-3*time.Hour)),                // due in 1h
		"b": correctRun(1, now.Add(-2*time.Hour-30*time.Minute)), // due in 1.5h
		"c": correctRun(1, now.Add(-2*time.Hour)),                // due in 2h
		"d": correctRun(2, now),                                  // due in 24h
		"e": correctRun(1, now.Add(-5*time.Hour)),                // already due
	})
	items := []card{"a", "b", "c", "d", "e", "new"}

	s, ok := NextReviewSummary(newRequest(items, h, now))
	if !ok {
		t.Fatal("expected a summary")
	}
	if s.ClusterCount != 3 {
		t.Errorf("ClusterCount = %d, want 3", s.ClusterCount)
	}
	if s.ETA != time.Hour {
		t.Errorf("ETA = %v, want 1h", s.ETA)
	}
	if s.ETALabel != "60 minutes" {
		t.Errorf("ETALabel = %q, want %q", s.ETALabel, "60 minutes")
	}
	if !s.At.Equal(now.Add(time.Hour)) {
		t.Errorf("At = %v, want %v", s.At, now.Add(time.Hour))
	}
}

func TestNextReviewSummary_Predicate(t *testing.T) {
	now := t0.Add(10 * time.Hour)
	h := history(map[string]PerformanceRecord{
		"a": correctRun(1, now.Add(-3*time.Hour)),
		"b": correctRun(2, now),
	})
	req := newRequest([]card{"a", "b"}, h, now)
	req.Include = func(c card) bool { return c == "b" }

	s, ok := NextReviewSummary(req)
	if !ok {
		t.Fatal("expected a summary")
	}
	if s.ClusterCount != 1 || s.ETALabel != "1 day" {
		t.Errorf("summary = %+v, want 1 item in 1 day", s)
	}
}

func TestHumanizeETA(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "1 minute"},
		{time.Minute, "1 minute"},
		{61 * time.Second, "2 minutes"},
		{90 * time.Minute, "90 minutes"},
		{2 * time.Hour, "2 hours"},
		{2*time.Hour + time.Minute, "3 hours"},
		{23 * time.Hour, "23 hours"},
		{24 * time.Hour, "1 day"},
		{25 * time.Hour, "2 days"},
		{72 * time.Hour, "3 days"},
	}
	for _, tt := range tests {
		if got := HumanizeETA(tt.d); got != tt.want {
			t.Errorf("HumanizeETA(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
