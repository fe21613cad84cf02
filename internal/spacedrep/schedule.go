package spacedrep

import (
	"math"
	"time"
)

// BaseIntervalHours is the spacing ladder indexed by correct streak length,
// from 30 minutes up to 60 days.
var BaseIntervalHours = []float64{0.5, 4, 24, 72, 168, 336, 720, 1440}

const (
	// MinIntervalHours and MaxIntervalHours bound every recommendation.
	MinIntervalHours = 0.5
	MaxIntervalHours = 2160

	// AccuracyMinReviews is the answer count below which accuracy is ignored.
	AccuracyMinReviews = 3

	// RecentMissModifier shrinks the interval when the last answer was wrong.
	RecentMissModifier = 0.3

	// LongStreakStart is the correct streak after which the bonus applies.
	LongStreakStart = 5
	// LongStreakStep is the bonus per correct answer beyond LongStreakStart.
	LongStreakStep = 0.1
	// LongStreakCap caps the long streak bonus.
	LongStreakCap = 2.0
)

// RecommendedIntervalHours converts a record into the delay, in hours,
// before the item should be shown again.
func RecommendedIntervalHours(rec PerformanceRecord) float64 {
	rung := rec.CorrectStreakLen
	if rung > len(BaseIntervalHours)-1 {
		rung = len(BaseIntervalHours) - 1
	}
	if rung < 0 {
		rung = 0
	}
	base := BaseIntervalHours[rung]

	modifier := 1.0

	if rec.lastAnswerWrong() {
		modifier *= RecentMissModifier
	}

	if rec.Total() >= AccuracyMinReviews {
		modifier *= accuracyModifier(rec.Accuracy())
	}

	if rec.IncorrectStreakLen > 0 {
		modifier *= math.Pow(0.5, float64(rec.IncorrectStreakLen))
	}

	if rec.CorrectStreakLen > LongStreakStart {
		bonus := 1 + float64(rec.CorrectStreakLen-LongStreakStart)*LongStreakStep
		modifier *= math.Min(LongStreakCap, bonus)
	}

	return clamp(base*modifier, MinIntervalHours, MaxIntervalHours)
}

// RecommendedInterval is RecommendedIntervalHours as a duration.
func RecommendedInterval(rec PerformanceRecord) time.Duration {
	return hoursToDuration(RecommendedIntervalHours(rec))
}

func accuracyModifier(accuracy float64) float64 {
	switch {
	case accuracy >= 0.9:
		return 1.3
	case accuracy >= 0.7:
		return 1.0
	case accuracy >= 0.5:
		return 0.7
	default:
		return 0.4
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func hoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
