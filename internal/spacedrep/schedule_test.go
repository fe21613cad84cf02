package spacedrep

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// correctRun builds the record left by n consecutive correct answers, the
// last one at last.
func correctRun(n int, last time.Time) PerformanceRecord {
	rec := NewRecord()
	rec.TotalCorrect = n
	rec.CorrectStreakLen = n
	rec.LastCorrectAt = last
	rec.CorrectStreakStartedAt = last.Add(-time.Duration(n-1) * time.Minute)
	return rec
}

func TestRecommendedIntervalHours(t *testing.T) {
	tests := []struct {
		name string
		rec  PerformanceRecord
		want float64
	}{
		{"new item uses first rung", NewRecord(), 0.5},
		{"one correct", correctRun(1, t0), 4},
		{"two correct", correctRun(2, t0), 24},
		{"three correct with accuracy bonus", correctRun(3, t0), 72 * 1.3},
		{"six correct gets streak bonus", correctRun(6, t0), 720 * 1.3 * 1.1},
		{"seven correct clamps to max", correctRun(7, t0), MaxIntervalHours},
		{"twenty correct clamps to max", correctRun(20, t0), MaxIntervalHours},
		{
			name: "accuracy between 0.7 and 0.9 is neutral",
			rec: PerformanceRecord{
				TotalCorrect: 7, TotalIncorrect: 3, CorrectStreakLen: 2,
				LastCorrectAt: t0, LastIncorrectAt: t0.Add(-time.Hour),
			},
			want: 24,
		},
		{
			name: "accuracy between 0.5 and 0.7",
			rec: PerformanceRecord{
				TotalCorrect: 5, TotalIncorrect: 5, CorrectStreakLen: 2,
				LastCorrectAt: t0, LastIncorrectAt: t0.Add(-time.Hour),
			},
			want: 24 * 0.7,
		},
		{
			name: "accuracy below 0.5",
			rec: PerformanceRecord{
				TotalCorrect: 3, TotalIncorrect: 7, CorrectStreakLen: 2,
				LastCorrectAt: t0, LastIncorrectAt: t0.Add(-time.Hour),
			},
			want: 24 * 0.4,
		},
		{
			name: "accuracy at or above 0.9",
			rec: PerformanceRecord{
				TotalCorrect: 9, TotalIncorrect: 1, CorrectStreakLen: 2,
				LastCorrectAt: t0, LastIncorrectAt: t0.Add(-time.Hour),
			},
			want: 24 * 1.3,
		},
		{
			name: "repeated misses collapse to minimum",
			rec: PerformanceRecord{
				TotalCorrect: 1, TotalIncorrect: 3, IncorrectStreakLen: 3,
				LastCorrectAt: t0.Add(-time.Hour), LastIncorrectAt: t0,
			},
			want: MinIntervalHours,
		},
		{
			// Inconsistent records are tolerated; here the streak says two
			// correct while the most recent answer was a miss.
			name: "recent miss shrinks interval",
			rec: PerformanceRecord{
				TotalCorrect: 1, TotalIncorrect: 1, CorrectStreakLen: 2,
				LastCorrectAt: t0.Add(-time.Hour), LastIncorrectAt: t0,
			},
			want: 24 * 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecommendedIntervalHours(tt.rec)
			if !approxEqual(got, tt.want) {
				t.Errorf("RecommendedIntervalHours() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecommendedInterval_Duration(t *testing.T) {
	got := RecommendedInterval(correctRun(1, t0))
	if got != 4*time.Hour {
		t.Errorf("RecommendedInterval() = %v, want 4h", got)
	}
}

func TestRecommendedIntervalHours_Bounds(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 2000; i++ {
		rec := PerformanceRecord{
			TotalCorrect:   r.IntN(50),
			TotalIncorrect: r.IntN(50),
		}
		if r.IntN(2) == 0 {
			rec.CorrectStreakLen = r.IntN(30)
		} else {
			rec.IncorrectStreakLen = r.IntN(30)
		}
		if r.IntN(3) > 0 {
			rec.LastCorrectAt = t0.Add(time.Duration(r.IntN(1000)) * time.Minute)
		}
		if r.IntN(3) > 0 {
			rec.LastIncorrectAt = t0.Add(time.Duration(r.IntN(1000)) * time.Minute)
		}

		got := RecommendedIntervalHours(rec)
		if got < MinIntervalHours || got > MaxIntervalHours {
			t.Fatalf("interval %v out of bounds for %+v", got, rec)
		}
	}
}
