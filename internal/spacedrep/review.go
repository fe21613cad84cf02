package spacedrep

import "time"

// IsDue returns true if the item should be reviewed at now. Items without
// any counted answer are always due, whatever their timestamps say.
func IsDue(rec PerformanceRecord, now time.Time) bool {
	if rec.IsNew() || rec.Unanswered() {
		return true
	}
	last := rec.LastReview()
	if last.IsZero() {
		return true
	}
	return !now.Before(last.Add(RecommendedInterval(rec)))
}

// NextReviewTime returns when the item becomes due. New items are due now.
func NextReviewTime(rec PerformanceRecord, now time.Time) time.Time {
	if rec.IsNew() || rec.Unanswered() {
		return now
	}
	return rec.LastReview().Add(RecommendedInterval(rec))
}

// OverdueHours returns how long past its due time the item is, in hours.
// Negative when the item is not due yet.
func OverdueHours(rec PerformanceRecord, now time.Time) float64 {
	return now.Sub(NextReviewTime(rec, now)).Hours()
}
