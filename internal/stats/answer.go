package stats

import (
	"time"

	"github.com/abhisek/vocabz/internal/spacedrep"
)

// ApplyAnswer returns rec updated with one graded answer at now. The
// matching total and timestamp advance; the opposite streak is broken and
// the matching streak starts (or continues). At most one streak is ever
// non-zero, and a zeroed streak has no start time.
func ApplyAnswer(rec spacedrep.PerformanceRecord, correct bool, now time.Time) spacedrep.PerformanceRecord {
	if correct {
		rec.TotalCorrect++
		rec.LastCorrectAt = now
		if rec.IncorrectStreakLen > 0 {
			rec.IncorrectStreakLen = 0
			rec.IncorrectStreakStartedAt = time.Time{}
			rec.CorrectStreakLen = 1
			rec.CorrectStreakStartedAt = now
			return rec
		}
		if rec.CorrectStreakLen == 0 {
			rec.CorrectStreakStartedAt = now
		}
		rec.CorrectStreakLen++
		return rec
	}

	rec.TotalIncorrect++
	rec.LastIncorrectAt = now
	if rec.CorrectStreakLen > 0 {
		rec.CorrectStreakLen = 0
		rec.CorrectStreakStartedAt = time.Time{}
		rec.IncorrectStreakLen = 1
		rec.IncorrectStreakStartedAt = now
		return rec
	}
	if rec.IncorrectStreakLen == 0 {
		rec.IncorrectStreakStartedAt = now
	}
	rec.IncorrectStreakLen++
	return rec
}
