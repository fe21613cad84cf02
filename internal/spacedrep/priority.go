package spacedrep

import (
	"math"
	"time"
)

const (
	// NewItemPriority is the fixed score of an item that was never answered.
	// It outranks every practical score of a reviewed item.
	NewItemPriority = 1500

	missStreakBase   = 500
	missStreakStep   = 100
	overdueWeight    = 10
	lowAccuracyLimit = 0.6
	lowAccuracyScale = 200

	// JitterScale bounds the random tie breaker.
	JitterScale = 5
)

// Source supplies uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// ZeroSource is a Source that always returns 0.
type ZeroSource struct{}

func (ZeroSource) Float64() float64 { return 0 }

// Priority scores an item that is already due. Higher is more urgent.
// A nil src adds no jitter.
func Priority(rec PerformanceRecord, now time.Time, src Source) float64 {
	var priority float64

	if rec.Unanswered() {
		priority = NewItemPriority
	} else {
		if rec.IncorrectStreakLen > 0 {
			priority += missStreakBase + missStreakStep*float64(rec.IncorrectStreakLen)
		}

		expected := rec.LastReview().Add(RecommendedInterval(rec))
		overdue := math.Max(1, now.Sub(expected).Hours())
		priority += overdue * overdueWeight

		if acc := rec.Accuracy(); acc < lowAccuracyLimit {
			priority += (lowAccuracyLimit - acc) * lowAccuracyScale
		}
	}

	if src != nil {
		priority += src.Float64() * JitterScale
	}
	return priority
}
