package stats

import (
	"sort"
	"time"

	"github.com/abhisek/vocabz/internal/spacedrep"
)

// StreakBucketLabels names the correct-streak histogram buckets.
var StreakBucketLabels = [5]string{"0", "1", "2-3", "4-5", "6+"}

// TopN is the length of the strongest and weakest item lists.
const TopN = 10

// DueRateBuckets is the number of 15 minute slots in the due-rate
// timeline. Slot 0 holds overdue items and items due within 15 minutes.
const DueRateBuckets = 95

// ItemScore is one reviewed item's accuracy.
type ItemScore struct {
	ItemID    string
	Correct   int
	Incorrect int
	Accuracy  float64
}

// Total returns Correct + Incorrect.
func (s ItemScore) Total() int { return s.Correct + s.Incorrect }

// Metrics summarizes progress over a set of items in one mode.
type Metrics struct {
	Total    int
	Reviewed int
	New      int

	TotalCorrect    int
	TotalIncorrect  int
	OverallAccuracy float64

	StreakHistogram    [5]int
	MaxCorrectStreak   int
	MaxIncorrectStreak int
	AvgCorrectStreak   float64

	Strongest []ItemScore
	Weakest   []ItemScore

	// DueRate counts items by 15 minute slot over the next 24 hours.
	DueRate [DueRateBuckets]int
}

func streakBucket(n int) int {
	switch {
	case n <= 0:
		return 0
	case n == 1:
		return 1
	case n <= 3:
		return 2
	case n <= 5:
		return 3
	default:
		return 4
	}
}

// dueSlot places rec on the due-rate timeline. Items due 24h or more
// from now (less one slot) are off the chart.
func dueSlot(rec spacedrep.PerformanceRecord, now time.Time) (int, bool) {
	mins := spacedrep.NextReviewTime(rec, now).Sub(now).Minutes()
	if mins < 15 {
		return 0, true
	}
	slot := int(mins / 15)
	if slot >= DueRateBuckets {
		return 0, false
	}
	return slot, true
}

// Compute builds Metrics for items in mode as of now. Only items with at
// least one answer count towards accuracy, streaks and the top lists.
func Compute[T spacedrep.Item](items []T, lookup spacedrep.Lookup, mode string, now time.Time) Metrics {
	var m Metrics
	var scores []ItemScore
	streakSum := 0

	for _, it := range items {
		m.Total++
		rec := spacedrep.NewRecord()
		if lookup != nil {
			if r, ok := lookup(it.ItemID(), mode); ok {
				rec = r
			}
		}
		if slot, ok := dueSlot(rec, now); ok {
			m.DueRate[slot]++
		}

		if rec.Unanswered() {
			continue
		}
		m.Reviewed++
		m.TotalCorrect += rec.TotalCorrect
		m.TotalIncorrect += rec.TotalIncorrect
		m.StreakHistogram[streakBucket(rec.CorrectStreakLen)]++
		m.MaxCorrectStreak = max(m.MaxCorrectStreak, rec.CorrectStreakLen)
		m.MaxIncorrectStreak = max(m.MaxIncorrectStreak, rec.IncorrectStreakLen)
		streakSum += rec.CorrectStreakLen
		scores = append(scores, ItemScore{
			ItemID:    it.ItemID(),
			Correct:   rec.TotalCorrect,
			Incorrect: rec.TotalIncorrect,
			Accuracy:  rec.Accuracy(),
		})
	}

	m.New = m.Total - m.Reviewed
	if n := m.TotalCorrect + m.TotalIncorrect; n > 0 {
		m.OverallAccuracy = float64(m.TotalCorrect) / float64(n)
	}
	if m.Reviewed > 0 {
		m.AvgCorrectStreak = float64(streakSum) / float64(m.Reviewed)
	}

	best := append([]ItemScore(nil), scores...)
	sort.SliceStable(best, func(i, j int) bool {
		if best[i].Accuracy != best[j].Accuracy {
			return best[i].Accuracy > best[j].Accuracy
		}
		return best[i].Total() > best[j].Total()
	})
	worst := append([]ItemScore(nil), scores...)
	sort.SliceStable(worst, func(i, j int) bool {
		if worst[i].Accuracy != worst[j].Accuracy {
			return worst[i].Accuracy < worst[j].Accuracy
		}
		return worst[i].Total() > worst[j].Total()
	})
	m.Strongest = best[:min(TopN, len(best))]
	m.Weakest = worst[:min(TopN, len(worst))]
	return m
}
