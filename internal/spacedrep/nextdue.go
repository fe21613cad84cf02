package spacedrep

import (
	"fmt"
	"math"
	"time"
)

// ClusterWindow is how far after the earliest due time items still count
// as arriving together.
const ClusterWindow = time.Hour

// NextReview describes when reviewing can resume.
type NextReview struct {
	At           time.Time     `json:"at"`
	ETA          time.Duration `json:"eta"`
	ETALabel     string        `json:"eta_label"`
	ClusterCount int           `json:"cluster_count"`
}

// NextReviewSummary finds the nearest future due time among reviewed items
// and how many items fall due within ClusterWindow of it. New items are
// skipped since they are already due. Returns false when no reviewed item
// is due in the future.
func NextReviewSummary[T Item](req Request[T]) (*NextReview, bool) {
	var (
		times    []time.Time
		earliest time.Time
	)
	for _, item := range req.Items {
		rec := req.record(item)
		if rec.IsNew() || !req.included(item) {
			continue
		}
		next := NextReviewTime(rec, req.Now)
		if !next.After(req.Now) {
			continue
		}
		times = append(times, next)
		if earliest.IsZero() || next.Before(earliest) {
			earliest = next
		}
	}
	if len(times) == 0 {
		return nil, false
	}

	limit := earliest.Add(ClusterWindow)
	cluster := 0
	for _, t := range times {
		if !t.After(limit) {
			cluster++
		}
	}

	eta := earliest.Sub(req.Now)
	return &NextReview{
		At:           earliest,
		ETA:          eta,
		ETALabel:     HumanizeETA(eta),
		ClusterCount: cluster,
	}, true
}

// HumanizeETA renders a positive wait as whole minutes under two hours,
// whole hours under a day, and whole days beyond. Values round up.
func HumanizeETA(d time.Duration) string {
	hours := d.Hours()
	switch {
	case hours < 2:
		return plural(int(math.Ceil(d.Minutes())), "minute")
	case hours < 24:
		return plural(int(math.Ceil(hours)), "hour")
	default:
		return plural(int(math.Ceil(hours/24)), "day")
	}
}

func plural(n int, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss", n, unit)
	}
	return fmt.Sprintf("%d %s", n, unit)
}
